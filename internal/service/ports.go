package service

import (
	"context"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/repository"
)

// TaskStore is the persistence surface TaskService mutates and queries.
type TaskStore interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetByID(ctx context.Context, taskID string, scope repository.ScopeFilter) (*domain.Task, error)
	List(ctx context.Context, filters repository.TaskFilters) ([]*domain.Task, int, error)
	ListByAssignee(ctx context.Context, userID string) ([]*domain.Task, error)
	ListByCreator(ctx context.Context, userID string) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, taskID string) error
}

// UserDirectory confirms that a user id refers to a real account. It is
// consumed read-only, to validate assignee references before persistence.
type UserDirectory interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// EventSink records domain events in the append-only audit log.
type EventSink interface {
	Append(ctx context.Context, entry *domain.EventLogEntry) error
}

// UserStore is the account storage used by AuthService.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, userID string) (*domain.User, error)
}
