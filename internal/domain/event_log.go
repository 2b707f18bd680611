package domain

import "time"

// EventType tags an audit log entry.
type EventType string

const (
	EventTaskCreated    EventType = "task.created"
	EventTaskUpdated    EventType = "task.updated"
	EventTaskDeleted    EventType = "task.deleted"
	EventAuthRegistered EventType = "auth.registered"
	EventAuthLoggedIn   EventType = "auth.logged_in"
)

// EventLogEntry is an immutable audit record of a completed state transition.
// Entries are append-only: once written they are never updated or deleted.
type EventLogEntry struct {
	ID            string
	EventType     EventType
	Payload       map[string]any
	UserID        *string // nil for system events
	CorrelationID *string
	CreatedAt     time.Time
}

// IsSystemEvent returns true if the entry has no responsible actor.
func (e *EventLogEntry) IsSystemEvent() bool {
	return e.UserID == nil
}
