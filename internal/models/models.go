package models

import (
	"time"
)

type Status string

const (
	StatusToDo       Status = "ToDo"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
)

// Valid reports whether s is one of the task states. The match is exact and
// case-sensitive.
func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Identity is the authenticated principal attached to a request.
type Identity struct {
	Username string `json:"username"`
}

type Task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	Labels      []int64   `json:"labels"`
}

// TaskInput carries the mutable fields of a task for create and update.
type TaskInput struct {
	Title       string
	Description string
	Status      Status
	Labels      []int64
}

type Label struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
