package engine

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// DefaultPriority is used when the caller leaves priority unset.
const DefaultPriority = PriorityMedium

// Filter names a view over the task collection.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterToday     Filter = "today"
	FilterImportant Filter = "important"
	FilterPlanned   Filter = "planned"
	FilterAssigned  Filter = "assigned"
)

// Filters lists every view in navigation order.
var Filters = []Filter{FilterAll, FilterToday, FilterImportant, FilterPlanned, FilterAssigned}

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterToday, FilterImportant, FilterPlanned, FilterAssigned:
		return true
	default:
		return false
	}
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggled returns the other theme.
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// User is a registered account. Email is its identity key.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type Task struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Priority   Priority   `json:"priority"`
	Completed  bool       `json:"completed"`
	CreatedAt  time.Time  `json:"createdAt"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
	AssignedTo *string    `json:"assignedTo,omitempty"`
}

// NewTask is the caller-supplied part of a task. ID is optional.
type NewTask struct {
	ID         string
	Title      string
	Priority   Priority
	DueDate    *time.Time
	AssignedTo *string
}

// Session is a read-only copy of the authentication state.
type Session struct {
	CurrentUser     *User
	IsAuthenticated bool
	Pending         bool
	ErrorMessage    string
	Theme           Theme
}

// Stats is the completion summary of a task collection.
type Stats struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}
