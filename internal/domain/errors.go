package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Task errors
	ErrTaskNotFound = errors.New("task not found")

	// Permission errors
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotTaskCreator   = errors.New("only the task creator can delete this task")

	// User errors
	ErrUserNotFound         = errors.New("user not found")
	ErrAssignedUserNotFound = errors.New("assigned user not found")
	ErrEmailTaken           = errors.New("user with this email already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid authentication token")

	// Validation errors
	ErrEmptyTitle        = errors.New("title is required")
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrWeakPassword      = errors.New("password must be at least 8 characters")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")
	ErrInvalidDueDate    = errors.New("due date must be in YYYY-MM-DD format")
	ErrInvalidAssigneeID = errors.New("assigned user id must be a valid UUID")

	// Store errors
	ErrStoreUnavailable = errors.New("store unavailable")
)
