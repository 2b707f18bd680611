package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// taskColumns is the shared list of columns for task queries.
var taskColumns = []string{
	"id", "title", "description", "status", "priority", "due_date",
	"created_by_id", "assigned_user_id", "created_at", "updated_at",
}

// ScopeFilter restricts reads to tasks where the actor is creator or
// assignee. A nil ActorID is an explicit global view, not a missing value.
type ScopeFilter struct {
	ActorID *string
}

// apply adds the ownership predicate to a select builder.
func (f ScopeFilter) apply(qb sq.SelectBuilder) sq.SelectBuilder {
	if f.ActorID == nil {
		return qb
	}
	return qb.Where(sq.Or{
		sq.Eq{"created_by_id": *f.ActorID},
		sq.Eq{"assigned_user_id": *f.ActorID},
	})
}

// TaskFilters holds the supported filters for task listing.
type TaskFilters struct {
	Scope      ScopeFilter
	Statuses   []string
	Priorities []string
	Limit      int
	Offset     int
}

// TaskRepository handles database operations for tasks.
type TaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

// scanTask scans a single row into a Task struct.
func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.CreatedByID,
		&task.AssignedUserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &task, nil
}

// scanTasks scans multiple rows into a slice of Task structs.
func scanTasks(rows pgx.Rows) ([]*domain.Task, error) {
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return tasks, nil
}

// Create persists a new task and returns it with the generated id and
// store-maintained timestamps populated.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	// Set defaults
	if task.Status == "" {
		task.Status = domain.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = domain.TaskPriorityMedium
	}

	query, args, err := psql.
		Insert("tasks").
		Columns(
			"title", "description", "status", "priority", "due_date",
			"created_by_id", "assigned_user_id",
		).
		Values(
			task.Title,
			task.Description,
			task.Status,
			task.Priority,
			task.DueDate,
			task.CreatedByID,
			task.AssignedUserID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for task: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, unavailable("create task", err)
	}

	return task, nil
}

// GetByID retrieves a task by ID with the ownership predicate applied inside
// the lookup: a task the actor has no visibility into surfaces as
// ErrTaskNotFound, indistinguishable from a missing row.
func (r *TaskRepository) GetByID(ctx context.Context, taskID string, scope ScopeFilter) (*domain.Task, error) {
	qb := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": taskID})

	query, args, err := scope.apply(qb).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for task: %w", err)
	}

	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

// List retrieves tasks with filters and pagination, plus the unpaginated
// total. No ordering is guaranteed beyond a stable created_at sort.
func (r *TaskRepository) List(ctx context.Context, filters TaskFilters) ([]*domain.Task, int, error) {
	qb := filters.Scope.apply(psql.Select(taskColumns...).From("tasks"))
	countQb := filters.Scope.apply(psql.Select("COUNT(*)").From("tasks"))

	if len(filters.Statuses) > 0 {
		qb = qb.Where(sq.Eq{"status": filters.Statuses})
		countQb = countQb.Where(sq.Eq{"status": filters.Statuses})
	}
	if len(filters.Priorities) > 0 {
		qb = qb.Where(sq.Eq{"priority": filters.Priorities})
		countQb = countQb.Where(sq.Eq{"priority": filters.Priorities})
	}

	qb = qb.OrderBy("created_at ASC")
	if filters.Limit > 0 {
		qb = qb.Limit(uint64(filters.Limit)).Offset(uint64(filters.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build List query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, unavailable("query tasks", err)
	}

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, unavailable("count tasks", err)
	}

	return tasks, total, nil
}

// ListByAssignee retrieves all tasks assigned to the given user.
func (r *TaskRepository) ListByAssignee(ctx context.Context, userID string) ([]*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"assigned_user_id": userID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListByAssignee query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, unavailable("query assigned tasks", err)
	}

	return scanTasks(rows)
}

// ListByCreator retrieves all tasks created by the given user.
func (r *TaskRepository) ListByCreator(ctx context.Context, userID string) ([]*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"created_by_id": userID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListByCreator query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, unavailable("query created tasks", err)
	}

	return scanTasks(rows)
}

// Update persists the mutable fields of a task and refreshes updated_at.
// The last write to commit wins; there is no version column.
func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	query, args, err := psql.
		Update("tasks").
		Set("title", task.Title).
		Set("description", task.Description).
		Set("status", task.Status).
		Set("priority", task.Priority).
		Set("due_date", task.DueDate).
		Set("assigned_user_id", task.AssignedUserID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": task.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Update query for task %s: %w", task.ID, err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&task.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, unavailable("update task", err)
	}

	return task, nil
}

// Delete removes a task by ID.
func (r *TaskRepository) Delete(ctx context.Context, taskID string) error {
	query, args, err := psql.
		Delete("tasks").
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Delete query for task %s: %w", taskID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return unavailable("delete task", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}
