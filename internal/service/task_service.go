package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/middleware"
	"github.com/taskdeck/taskdeck/internal/repository"
)

// TaskService owns the task lifecycle: validation, authorization, persistence
// and audit logging, in that order.
type TaskService struct {
	store  TaskStore
	users  UserDirectory
	events EventSink
}

// NewTaskService creates a TaskService over the given ports.
func NewTaskService(store TaskStore, users UserDirectory, events EventSink) *TaskService {
	return &TaskService{
		store:  store,
		users:  users,
		events: events,
	}
}

// CreateTaskParams carries a new task draft.
type CreateTaskParams struct {
	Title          string
	Description    string
	Status         domain.TaskStatus
	Priority       domain.TaskPriority
	DueDate        *time.Time
	AssignedUserID *string
}

// UpdateTaskParams carries a partial task patch. Nil fields are left
// untouched; a non-nil empty AssignedUserID clears the assignment.
type UpdateTaskParams struct {
	Title          *string
	Description    *string
	Status         *domain.TaskStatus
	Priority       *domain.TaskPriority
	DueDate        *time.Time
	DueDateSet     bool
	AssignedUserID *string
}

// appendEvent records an audit entry after the triggering write has been
// committed. Append failures are logged and swallowed: the audit log trails
// the primary store and must never fail an already-persisted operation.
func appendEvent(ctx context.Context, sink EventSink, eventType domain.EventType, payload map[string]any, userID *string) {
	entry := &domain.EventLogEntry{
		EventType: eventType,
		Payload:   payload,
		UserID:    userID,
	}
	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		entry.CorrelationID = &requestID
	}

	if err := sink.Append(ctx, entry); err != nil {
		slog.Error("failed to append audit event",
			"event_type", eventType,
			"error", err)
	}
}

// CreateTask validates the draft, confirms the assignee exists, persists the
// task and records a task.created event.
func (s *TaskService) CreateTask(ctx context.Context, params CreateTaskParams, creatorID string) (*domain.Task, error) {
	if err := ValidateCreateTask(params); err != nil {
		return nil, err
	}

	if params.AssignedUserID != nil {
		exists, err := s.users.Exists(ctx, *params.AssignedUserID)
		if err != nil {
			return nil, fmt.Errorf("check assignee: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", domain.ErrAssignedUserNotFound, *params.AssignedUserID)
		}
	}

	task := &domain.Task{
		Title:          params.Title,
		Description:    params.Description,
		Status:         params.Status,
		Priority:       params.Priority,
		DueDate:        params.DueDate,
		CreatedByID:    creatorID,
		AssignedUserID: params.AssignedUserID,
	}

	created, err := s.store.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	// assignedUserId is always present in the payload, null when unset.
	var assignedID any
	if created.AssignedUserID != nil {
		assignedID = *created.AssignedUserID
	}
	appendEvent(ctx, s.events, domain.EventTaskCreated, map[string]any{
		"taskId":         created.ID,
		"title":          created.Title,
		"assignedUserId": assignedID,
	}, &creatorID)

	slog.Info("task created",
		"task_id", created.ID,
		"created_by", creatorID)

	return created, nil
}

// FindTasks lists tasks under the given filters. A nil scope actor is the
// unscoped global view.
func (s *TaskService) FindTasks(ctx context.Context, filters repository.TaskFilters) ([]*domain.Task, int, error) {
	return s.store.List(ctx, filters)
}

// FindTask retrieves a single task visible to the actor. A task outside the
// actor's scope is reported as not found, never as forbidden.
func (s *TaskService) FindTask(ctx context.Context, taskID string, actorID *string) (*domain.Task, error) {
	return s.store.GetByID(ctx, taskID, repository.ScopeFilter{ActorID: actorID})
}

// FindAssignedTasks lists the tasks assigned to the actor.
func (s *TaskService) FindAssignedTasks(ctx context.Context, actorID string) ([]*domain.Task, error) {
	return s.store.ListByAssignee(ctx, actorID)
}

// FindCreatedTasks lists the tasks the actor created.
func (s *TaskService) FindCreatedTasks(ctx context.Context, actorID string) ([]*domain.Task, error) {
	return s.store.ListByCreator(ctx, actorID)
}

// UpdateTask applies a partial patch to a task the actor may update and
// records a task.updated event naming the changed fields.
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, params UpdateTaskParams, actorID string) (*domain.Task, error) {
	if err := ValidateUpdateTask(params); err != nil {
		return nil, err
	}

	task, err := s.store.GetByID(ctx, taskID, repository.ScopeFilter{ActorID: &actorID})
	if err != nil {
		return nil, err
	}

	if err := Authorize(actorID, task, ActionUpdate); err != nil {
		return nil, err
	}

	changes := map[string]any{}

	if params.Title != nil {
		task.Title = *params.Title
		changes["title"] = *params.Title
	}
	if params.Description != nil {
		task.Description = *params.Description
		changes["description"] = *params.Description
	}
	if params.Status != nil {
		task.Status = *params.Status
		changes["status"] = string(*params.Status)
	}
	if params.Priority != nil {
		task.Priority = *params.Priority
		changes["priority"] = string(*params.Priority)
	}
	if params.DueDateSet {
		task.DueDate = params.DueDate
		if params.DueDate != nil {
			changes["dueDate"] = params.DueDate.Format(dueDateLayout)
		} else {
			changes["dueDate"] = nil
		}
	}
	if params.AssignedUserID != nil {
		if *params.AssignedUserID == "" {
			task.AssignedUserID = nil
			changes["assignedUserId"] = nil
		} else {
			exists, err := s.users.Exists(ctx, *params.AssignedUserID)
			if err != nil {
				return nil, fmt.Errorf("check assignee: %w", err)
			}
			if !exists {
				return nil, fmt.Errorf("%w: %s", domain.ErrAssignedUserNotFound, *params.AssignedUserID)
			}
			task.AssignedUserID = params.AssignedUserID
			changes["assignedUserId"] = *params.AssignedUserID
		}
	}

	updated, err := s.store.Update(ctx, task)
	if err != nil {
		return nil, err
	}

	appendEvent(ctx, s.events, domain.EventTaskUpdated, map[string]any{
		"taskId":  updated.ID,
		"changes": changes,
	}, &actorID)

	slog.Info("task updated",
		"task_id", updated.ID,
		"updated_by", actorID)

	return updated, nil
}

// RemoveTask deletes a task. Only the creator may delete; an assignee gets a
// forbidden error, an unrelated actor a not-found.
func (s *TaskService) RemoveTask(ctx context.Context, taskID string, actorID string) error {
	task, err := s.store.GetByID(ctx, taskID, repository.ScopeFilter{ActorID: &actorID})
	if err != nil {
		return err
	}

	if err := Authorize(actorID, task, ActionDelete); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, taskID); err != nil {
		return err
	}

	appendEvent(ctx, s.events, domain.EventTaskDeleted, map[string]any{
		"taskId": taskID,
	}, &actorID)

	slog.Info("task deleted",
		"task_id", taskID,
		"deleted_by", actorID)

	return nil
}
