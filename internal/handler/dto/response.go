package dto

import (
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/repository"
)

// TaskResponse is the wire representation of a task.
type TaskResponse struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Status         string  `json:"status"`
	Priority       string  `json:"priority"`
	DueDate        *string `json:"dueDate"`
	CreatedByID    string  `json:"createdById"`
	AssignedUserID *string `json:"assignedUserId"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ToTaskResponse converts a domain task to its wire form.
func ToTaskResponse(task *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         string(task.Status),
		Priority:       string(task.Priority),
		CreatedByID:    task.CreatedByID,
		AssignedUserID: task.AssignedUserID,
		CreatedAt:      task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      task.UpdatedAt.Format(time.RFC3339),
	}
	if task.DueDate != nil {
		due := task.DueDate.Format("2006-01-02")
		resp.DueDate = &due
	}
	return resp
}

// ToTaskResponses converts a slice of domain tasks.
func ToTaskResponses(tasks []*domain.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, ToTaskResponse(task))
	}
	return responses
}

// TasksListResponse is a paginated task listing.
type TasksListResponse struct {
	Tasks  []TaskResponse `json:"tasks"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// UserResponse is the public projection of an account. The password hash
// never leaves the server.
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	CreatedAt string `json:"createdAt"`
}

// ToUserResponse converts a domain user to its public wire form.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

// ToUserResponses converts a slice of domain users.
func ToUserResponses(users []*domain.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, ToUserResponse(user))
	}
	return responses
}

// AuthResponse is a signed-in user with an access token.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// EventLogResponse is the wire representation of an audit entry.
type EventLogResponse struct {
	ID            string         `json:"id"`
	EventType     string         `json:"eventType"`
	Payload       map[string]any `json:"payload"`
	UserID        *string        `json:"userId"`
	CorrelationID *string        `json:"correlationId"`
	CreatedAt     string         `json:"createdAt"`
}

// ToEventLogResponses converts a slice of audit entries.
func ToEventLogResponses(entries []*domain.EventLogEntry) []EventLogResponse {
	responses := make([]EventLogResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, EventLogResponse{
			ID:            entry.ID,
			EventType:     string(entry.EventType),
			Payload:       entry.Payload,
			UserID:        entry.UserID,
			CorrelationID: entry.CorrelationID,
			CreatedAt:     entry.CreatedAt.Format(time.RFC3339),
		})
	}
	return responses
}

// EventsListResponse wraps a recent-events query result.
type EventsListResponse struct {
	Events []EventLogResponse `json:"events"`
}

// TaskStatsResponse summarizes task counts.
type TaskStatsResponse struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"byStatus"`
	ByPriority map[string]int `json:"byPriority"`
}

// ToTaskStatsResponse converts repository stats to their wire form.
func ToTaskStatsResponse(stats *repository.TaskStatsResult) TaskStatsResponse {
	return TaskStatsResponse{
		Total:      stats.Total,
		ByStatus:   stats.ByStatus,
		ByPriority: stats.ByPriority,
	}
}
