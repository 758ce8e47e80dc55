package repository

import (
	"time"

	"smart-todo/internal/model"
)

// CreateTaskOptions holds the parameters for creating a task.
type CreateTaskOptions struct {
	OwnerID          string
	Title            string
	Description      string
	RawInput         string
	Category         string
	Tags             []string
	Priority         string
	DueDate          *time.Time
	EstimatedMinutes *int
	AIConfidence     *float64
	AIMetadata       model.AIMetadata
}

// ListTasksOptions holds the filters for listing an owner's tasks.
type ListTasksOptions struct {
	OwnerID  string
	Status   string // optional
	Priority string // optional
	Category string // optional
	Limit    int    // default 20
	Offset   int
}
