package dto

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Email     string `json:"email" example:"dev@example.com"`
	Password  string `json:"password" example:"correct-horse-battery"`
	FirstName string `json:"firstName" example:"Ada"`
	LastName  string `json:"lastName" example:"Lovelace"`
}

// LoginRequest is the payload for exchanging credentials for a token.
type LoginRequest struct {
	Email    string `json:"email" example:"dev@example.com"`
	Password string `json:"password" example:"correct-horse-battery"`
}

// CreateTaskRequest is the payload for creating a task.
type CreateTaskRequest struct {
	Title          string  `json:"title" example:"Ship the release"`
	Description    string  `json:"description,omitempty" example:"Cut and tag v2.1"`
	Status         string  `json:"status,omitempty" example:"todo"`
	Priority       string  `json:"priority,omitempty" example:"high"`
	DueDate        string  `json:"dueDate,omitempty" example:"2026-09-30"`
	AssignedUserID *string `json:"assignedUserId,omitempty"`
}

// UpdateTaskRequest is a partial task patch. Absent fields are unchanged;
// an empty assignedUserId clears the assignment.
type UpdateTaskRequest struct {
	Title          *string `json:"title,omitempty"`
	Description    *string `json:"description,omitempty"`
	Status         *string `json:"status,omitempty"`
	Priority       *string `json:"priority,omitempty"`
	DueDate        *string `json:"dueDate,omitempty"`
	AssignedUserID *string `json:"assignedUserId,omitempty"`
}

// UpdateProfileRequest is a partial profile patch.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}
