package dto

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// ErrorResponse is the uniform error envelope for the API.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code" example:"TASK_NOT_FOUND"`
	Message string `json:"message" example:"task not found"`
}

// NewErrorResponse creates an error envelope.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError translates a domain error into an HTTP status and error
// envelope. Unknown errors are logged and reported as a generic 500.
func MapDomainError(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, NewErrorResponse("TASK_NOT_FOUND", domain.ErrTaskNotFound.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, NewErrorResponse("USER_NOT_FOUND", domain.ErrUserNotFound.Error())
	case errors.Is(err, domain.ErrAssignedUserNotFound):
		return http.StatusNotFound, NewErrorResponse("ASSIGNED_USER_NOT_FOUND", domain.ErrAssignedUserNotFound.Error())
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, NewErrorResponse("INSUFFICIENT_ACCESS", domain.ErrPermissionDenied.Error())
	case errors.Is(err, domain.ErrNotTaskCreator):
		return http.StatusForbidden, NewErrorResponse("INSUFFICIENT_ACCESS", domain.ErrNotTaskCreator.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, NewErrorResponse("EMAIL_TAKEN", domain.ErrEmailTaken.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, NewErrorResponse("INVALID_CREDENTIALS", domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, NewErrorResponse("INVALID_TOKEN", domain.ErrInvalidToken.Error())
	case errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidPriority),
		errors.Is(err, domain.ErrInvalidDueDate),
		errors.Is(err, domain.ErrInvalidAssigneeID):
		return http.StatusUnprocessableEntity, NewErrorResponse("VALIDATION_ERROR", err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		slog.Error("store unavailable", "error", err)
		return http.StatusServiceUnavailable, NewErrorResponse("STORE_UNAVAILABLE", domain.ErrStoreUnavailable.Error())
	default:
		slog.Error("unhandled error", "error", err)
		return http.StatusInternalServerError, NewErrorResponse("INTERNAL_ERROR", "internal server error")
	}
}
