package domain

import "time"

// User represents an account in the user directory.
//
// PasswordHash never leaves the domain/persistence boundary; responses and
// audit payloads are built from the public fields only.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
