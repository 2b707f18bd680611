package service

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/domain"
)

const minPasswordLength = 8

// dueDateLayout is the wire format for due dates.
const dueDateLayout = "2006-01-02"

// ValidateCreateTask checks the shape of a task draft before the service
// logic runs. Referential checks (assignee existence) happen separately.
func ValidateCreateTask(params CreateTaskParams) error {
	if strings.TrimSpace(params.Title) == "" {
		return domain.ErrEmptyTitle
	}
	if params.Status != "" && !params.Status.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, params.Status)
	}
	if params.Priority != "" && !params.Priority.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidPriority, params.Priority)
	}
	if params.AssignedUserID != nil {
		if _, err := uuid.Parse(*params.AssignedUserID); err != nil {
			return domain.ErrInvalidAssigneeID
		}
	}
	return nil
}

// ValidateUpdateTask checks the shape of a task patch. Absent fields are
// left unchanged; an empty assignee string clears the assignment.
func ValidateUpdateTask(params UpdateTaskParams) error {
	if params.Title != nil && strings.TrimSpace(*params.Title) == "" {
		return domain.ErrEmptyTitle
	}
	if params.Status != nil && !params.Status.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, *params.Status)
	}
	if params.Priority != nil && !params.Priority.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidPriority, *params.Priority)
	}
	if params.AssignedUserID != nil && *params.AssignedUserID != "" {
		if _, err := uuid.Parse(*params.AssignedUserID); err != nil {
			return domain.ErrInvalidAssigneeID
		}
	}
	return nil
}

// ValidateRegister checks registration input.
func ValidateRegister(params RegisterParams) error {
	if _, err := mail.ParseAddress(params.Email); err != nil {
		return domain.ErrInvalidEmail
	}
	if len(params.Password) < minPasswordLength {
		return domain.ErrWeakPassword
	}
	return nil
}

// ParseDueDate parses an optional YYYY-MM-DD due date. An empty string
// means no due date.
func ParseDueDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dueDateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDueDate, value)
	}
	return &t, nil
}
