package service

import (
	"fmt"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// Action is an operation an actor wants to perform on a task.
type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Authorize decides whether the actor may perform the action on the task.
// Pure function over the task's ownership fields: no I/O, no side effects.
//
// Read and update are allowed for the creator or the assignee; delete for
// the creator only. The unscoped global view bypasses per-task read
// decisions entirely at the query layer, so it never reaches this function.
func Authorize(actorID string, task *domain.Task, action Action) error {
	switch action {
	case ActionRead, ActionUpdate:
		if task.IsCreatedBy(actorID) || task.IsAssignedTo(actorID) {
			return nil
		}
		return fmt.Errorf("%w: user %s is neither creator nor assignee of task %s",
			domain.ErrPermissionDenied, actorID, task.ID)
	case ActionDelete:
		if task.IsCreatedBy(actorID) {
			return nil
		}
		return fmt.Errorf("%w: user %s is not creator of task %s",
			domain.ErrNotTaskCreator, actorID, task.ID)
	default:
		return fmt.Errorf("%w: unknown action %q", domain.ErrPermissionDenied, action)
	}
}
