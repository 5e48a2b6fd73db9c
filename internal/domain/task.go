package domain

import (
	"fmt"
	"time"
)

// Status is the task's lifecycle column. Closed set: a Task can only ever
// hold one of the three values below.
type Status string

const (
	StatusTodo  Status = "TODO"
	StatusDoing Status = "DOING"
	StatusDone  Status = "DONE"
)

// Valid reports whether s is one of the three known columns.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	default:
		return false
	}
}

func (s Status) String() string { return string(s) }

// ParseStatus converts a raw string into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q", raw)
	}
	return s, nil
}

// Board holds one user's tasks split into the three status columns, each
// ordered most recently created first.
type Board struct {
	Todo  []Task `json:"todo"`
	Doing []Task `json:"doing"`
	Done  []Task `json:"done"`
}

// Task is a single card on a user's board. A task belongs to exactly one
// owner for its whole lifetime; after creation only Status changes.
type Task struct {
	ID      int64
	OwnerID int64
	Title   string
	Body    string
	Status  Status

	CreatedAt time.Time
}
