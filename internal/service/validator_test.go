package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestValidateCreateTask(t *testing.T) {
	valid := CreateTaskParams{
		Title:    "Write release notes",
		Status:   domain.TaskStatusTodo,
		Priority: domain.TaskPriorityHigh,
	}
	assert.NoError(t, ValidateCreateTask(valid))

	t.Run("empty title", func(t *testing.T) {
		p := valid
		p.Title = "   "
		assert.ErrorIs(t, ValidateCreateTask(p), domain.ErrEmptyTitle)
	})

	t.Run("bad status", func(t *testing.T) {
		p := valid
		p.Status = domain.TaskStatus("archived")
		assert.ErrorIs(t, ValidateCreateTask(p), domain.ErrInvalidStatus)
	})

	t.Run("bad priority", func(t *testing.T) {
		p := valid
		p.Priority = domain.TaskPriority("urgent")
		assert.ErrorIs(t, ValidateCreateTask(p), domain.ErrInvalidPriority)
	})

	t.Run("empty enums take defaults", func(t *testing.T) {
		p := CreateTaskParams{Title: "x"}
		assert.NoError(t, ValidateCreateTask(p))
	})

	t.Run("malformed assignee id", func(t *testing.T) {
		p := valid
		p.AssignedUserID = strPtr("not-a-uuid")
		assert.ErrorIs(t, ValidateCreateTask(p), domain.ErrInvalidAssigneeID)
	})
}

func TestValidateUpdateTask(t *testing.T) {
	t.Run("empty patch is valid", func(t *testing.T) {
		assert.NoError(t, ValidateUpdateTask(UpdateTaskParams{}))
	})

	t.Run("blank title rejected", func(t *testing.T) {
		p := UpdateTaskParams{Title: strPtr("")}
		assert.ErrorIs(t, ValidateUpdateTask(p), domain.ErrEmptyTitle)
	})

	t.Run("bad status rejected", func(t *testing.T) {
		s := domain.TaskStatus("blocked")
		p := UpdateTaskParams{Status: &s}
		assert.ErrorIs(t, ValidateUpdateTask(p), domain.ErrInvalidStatus)
	})

	t.Run("empty assignee clears assignment", func(t *testing.T) {
		p := UpdateTaskParams{AssignedUserID: strPtr("")}
		assert.NoError(t, ValidateUpdateTask(p))
	})

	t.Run("malformed assignee rejected", func(t *testing.T) {
		p := UpdateTaskParams{AssignedUserID: strPtr("42")}
		assert.ErrorIs(t, ValidateUpdateTask(p), domain.ErrInvalidAssigneeID)
	})
}

func TestValidateRegister(t *testing.T) {
	valid := RegisterParams{
		Email:    "dev@example.com",
		Password: "correct horse",
	}
	assert.NoError(t, ValidateRegister(valid))

	t.Run("bad email", func(t *testing.T) {
		p := valid
		p.Email = "not-an-email"
		assert.ErrorIs(t, ValidateRegister(p), domain.ErrInvalidEmail)
	})

	t.Run("short password", func(t *testing.T) {
		p := valid
		p.Password = "short"
		assert.ErrorIs(t, ValidateRegister(p), domain.ErrWeakPassword)
	})
}

func TestParseDueDate(t *testing.T) {
	t.Run("empty means none", func(t *testing.T) {
		d, err := ParseDueDate("")
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("valid date", func(t *testing.T) {
		d, err := ParseDueDate("2026-03-15")
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), *d)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := ParseDueDate("15/03/2026")
		assert.ErrorIs(t, err, domain.ErrInvalidDueDate)
	})
}
