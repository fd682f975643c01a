package storage

import "time"

// Task is the persisted row shape of a task.
type Task struct {
	ID         string
	Title      string
	Priority   string
	Completed  bool
	CreatedAt  time.Time
	DueDate    *time.Time
	AssignedTo *string
}

// Well-known kv keys. Each key has exactly one owning store.
const (
	KeySession         = "auth"
	KeyRegisteredUsers = "registeredUsers"
	KeyTheme           = "theme"
)
