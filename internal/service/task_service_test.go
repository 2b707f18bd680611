package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/repository"
)

const (
	testCreatorID  = "11111111-1111-1111-1111-111111111111"
	testAssigneeID = "22222222-2222-2222-2222-222222222222"
	testStrangerID = "33333333-3333-3333-3333-333333333333"
	testTaskID     = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
)

func newTestTaskService() (*TaskService, *mockTaskStore, *mockUserDirectory, *mockEventSink) {
	store := &mockTaskStore{}
	users := &mockUserDirectory{}
	events := &mockEventSink{}
	return NewTaskService(store, users, events), store, users, events
}

func TestCreateTask(t *testing.T) {
	svc, store, users, events := newTestTaskService()
	ctx := context.Background()

	assignee := testAssigneeID
	params := CreateTaskParams{
		Title:          "Ship the release",
		Description:    "cut and tag v2.1",
		Priority:       domain.TaskPriorityHigh,
		AssignedUserID: &assignee,
	}

	users.On("Exists", ctx, testAssigneeID).Return(true, nil)
	store.On("Create", ctx, mock.AnythingOfType("*domain.Task")).
		Return(&domain.Task{
			ID:             testTaskID,
			Title:          params.Title,
			Description:    params.Description,
			Status:         domain.TaskStatusTodo,
			Priority:       domain.TaskPriorityHigh,
			CreatedByID:    testCreatorID,
			AssignedUserID: &assignee,
		}, nil)
	events.On("Append", ctx, mock.MatchedBy(func(e *domain.EventLogEntry) bool {
		return e.EventType == domain.EventTaskCreated &&
			e.Payload["taskId"] == testTaskID &&
			e.Payload["title"] == params.Title &&
			e.Payload["assignedUserId"] == testAssigneeID &&
			e.UserID != nil && *e.UserID == testCreatorID
	})).Return(nil)

	task, err := svc.CreateTask(ctx, params, testCreatorID)
	require.NoError(t, err)
	assert.Equal(t, testTaskID, task.ID)
	assert.Equal(t, domain.TaskStatusTodo, task.Status)

	store.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCreateTaskUnassignedPayloadHasNullAssignee(t *testing.T) {
	svc, store, _, events := newTestTaskService()
	ctx := context.Background()

	store.On("Create", ctx, mock.AnythingOfType("*domain.Task")).
		Return(&domain.Task{ID: testTaskID, Title: "solo", CreatedByID: testCreatorID}, nil)
	events.On("Append", ctx, mock.MatchedBy(func(e *domain.EventLogEntry) bool {
		v, present := e.Payload["assignedUserId"]
		return present && v == nil
	})).Return(nil)

	_, err := svc.CreateTask(ctx, CreateTaskParams{Title: "solo"}, testCreatorID)
	require.NoError(t, err)
	events.AssertExpectations(t)
}

func TestCreateTaskAssigneeMissing(t *testing.T) {
	svc, store, users, events := newTestTaskService()
	ctx := context.Background()

	ghost := testStrangerID
	users.On("Exists", ctx, ghost).Return(false, nil)

	_, err := svc.CreateTask(ctx, CreateTaskParams{
		Title:          "orphan",
		AssignedUserID: &ghost,
	}, testCreatorID)

	assert.ErrorIs(t, err, domain.ErrAssignedUserNotFound)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	events.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestCreateTaskSucceedsWhenAppendFails(t *testing.T) {
	svc, store, _, events := newTestTaskService()
	ctx := context.Background()

	store.On("Create", ctx, mock.AnythingOfType("*domain.Task")).
		Return(&domain.Task{ID: testTaskID, Title: "t", CreatedByID: testCreatorID}, nil)
	events.On("Append", ctx, mock.Anything).Return(errors.New("event store down"))

	task, err := svc.CreateTask(ctx, CreateTaskParams{Title: "t"}, testCreatorID)
	require.NoError(t, err)
	assert.Equal(t, testTaskID, task.ID)
}

func TestUpdateTaskByAssignee(t *testing.T) {
	svc, store, _, events := newTestTaskService()
	ctx := context.Background()

	assignee := testAssigneeID
	existing := &domain.Task{
		ID:             testTaskID,
		Title:          "old title",
		Status:         domain.TaskStatusTodo,
		CreatedByID:    testCreatorID,
		AssignedUserID: &assignee,
	}

	store.On("GetByID", ctx, testTaskID, repository.ScopeFilter{ActorID: &assignee}).
		Return(existing, nil)
	store.On("Update", ctx, mock.MatchedBy(func(task *domain.Task) bool {
		return task.Status == domain.TaskStatusDone && task.Title == "old title"
	})).Return(existing, nil)
	events.On("Append", ctx, mock.MatchedBy(func(e *domain.EventLogEntry) bool {
		changes, ok := e.Payload["changes"].(map[string]any)
		return e.EventType == domain.EventTaskUpdated && ok &&
			changes["status"] == string(domain.TaskStatusDone) &&
			*e.UserID == testAssigneeID
	})).Return(nil)

	status := domain.TaskStatusDone
	_, err := svc.UpdateTask(ctx, testTaskID, UpdateTaskParams{Status: &status}, testAssigneeID)
	require.NoError(t, err)

	store.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestUpdateTaskOutsideScopeIsNotFound(t *testing.T) {
	svc, store, _, events := newTestTaskService()
	ctx := context.Background()

	actor := testStrangerID
	store.On("GetByID", ctx, testTaskID, repository.ScopeFilter{ActorID: &actor}).
		Return(nil, domain.ErrTaskNotFound)

	status := domain.TaskStatusDone
	_, err := svc.UpdateTask(ctx, testTaskID, UpdateTaskParams{Status: &status}, actor)

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	events.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestUpdateTaskClearsAssignee(t *testing.T) {
	svc, store, _, events := newTestTaskService()
	ctx := context.Background()

	assignee := testAssigneeID
	creator := testCreatorID
	existing := &domain.Task{
		ID:             testTaskID,
		Title:          "t",
		CreatedByID:    testCreatorID,
		AssignedUserID: &assignee,
	}

	store.On("GetByID", ctx, testTaskID, repository.ScopeFilter{ActorID: &creator}).
		Return(existing, nil)
	store.On("Update", ctx, mock.MatchedBy(func(task *domain.Task) bool {
		return task.AssignedUserID == nil
	})).Return(existing, nil)
	events.On("Append", ctx, mock.MatchedBy(func(e *domain.EventLogEntry) bool {
		changes, ok := e.Payload["changes"].(map[string]any)
		if !ok {
			return false
		}
		v, present := changes["assignedUserId"]
		return present && v == nil
	})).Return(nil)

	empty := ""
	_, err := svc.UpdateTask(ctx, testTaskID, UpdateTaskParams{AssignedUserID: &empty}, testCreatorID)
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestUpdateTaskAssigneeMissing(t *testing.T) {
	svc, store, users, _ := newTestTaskService()
	ctx := context.Background()

	creator := testCreatorID
	existing := &domain.Task{ID: testTaskID, Title: "t", CreatedByID: testCreatorID}

	store.On("GetByID", ctx, testTaskID, repository.ScopeFilter{ActorID: &creator}).
		Return(existing, nil)
	users.On("Exists", ctx, testStrangerID).Return(false, nil)

	ghost := testStrangerID
	_, err := svc.UpdateTask(ctx, testTaskID, UpdateTaskParams{AssignedUserID: &ghost}, testCreatorID)

	assert.ErrorIs(t, err, domain.ErrAssignedUserNotFound)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRemoveTaskByCreator(t *testing.T) {
	svc, store, _, events := newTestTaskService()
	ctx := context.Background()

	creator := testCreatorID
	existing := &domain.Task{ID: testTaskID, CreatedByID: testCreatorID}

	store.On("GetByID", ctx, testTaskID, repository.ScopeFilter{ActorID: &creator}).
		Return(existing, nil)
	store.On("Delete", ctx, testTaskID).Return(nil)
	events.On("Append", ctx, mock.MatchedBy(func(e *domain.EventLogEntry) bool {
		return e.EventType == domain.EventTaskDeleted && e.Payload["taskId"] == testTaskID
	})).Return(nil)

	require.NoError(t, svc.RemoveTask(ctx, testTaskID, testCreatorID))
	store.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestRemoveTaskByAssigneeForbidden(t *testing.T) {
	svc, store, _, events := newTestTaskService()
	ctx := context.Background()

	assignee := testAssigneeID
	existing := &domain.Task{
		ID:             testTaskID,
		CreatedByID:    testCreatorID,
		AssignedUserID: &assignee,
	}

	store.On("GetByID", ctx, testTaskID, repository.ScopeFilter{ActorID: &assignee}).
		Return(existing, nil)

	err := svc.RemoveTask(ctx, testTaskID, testAssigneeID)
	assert.ErrorIs(t, err, domain.ErrNotTaskCreator)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	events.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestFindTaskPassesScope(t *testing.T) {
	svc, store, _, _ := newTestTaskService()
	ctx := context.Background()

	actor := testCreatorID
	store.On("GetByID", ctx, testTaskID, repository.ScopeFilter{ActorID: &actor}).
		Return(&domain.Task{ID: testTaskID, CreatedByID: testCreatorID}, nil)

	task, err := svc.FindTask(ctx, testTaskID, &actor)
	require.NoError(t, err)
	assert.Equal(t, testTaskID, task.ID)
	store.AssertExpectations(t)
}

func TestFindTaskGlobalView(t *testing.T) {
	svc, store, _, _ := newTestTaskService()
	ctx := context.Background()

	store.On("GetByID", ctx, testTaskID, repository.ScopeFilter{ActorID: nil}).
		Return(&domain.Task{ID: testTaskID, CreatedByID: testCreatorID}, nil)

	_, err := svc.FindTask(ctx, testTaskID, nil)
	require.NoError(t, err)
	store.AssertExpectations(t)
}
