package model

import "time"

// TaskStatus is the lifecycle state of a stored task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// Task is a persisted task created from a parsed draft.
type Task struct {
	ID               string     `json:"id"`
	OwnerID          string     `json:"ownerId"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	RawInput         string     `json:"rawInput,omitempty"`
	Category         string     `json:"category"`
	Tags             []string   `json:"tags"`
	Priority         string     `json:"priority"`
	Status           TaskStatus `json:"status"`
	DueDate          *time.Time `json:"dueDate,omitempty"`
	EstimatedMinutes *int       `json:"estimatedMinutes,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	AIConfidence     *float64   `json:"aiConfidence,omitempty"`
	AIMetadata       AIMetadata `json:"aiMetadata"`
	CalendarLink     string     `json:"calendarLink,omitempty"`
	Version          int        `json:"version"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// AIMetadata records how a task's fields were inferred.
type AIMetadata struct {
	UncertainFields []string `json:"uncertainFields,omitempty"`
	Source          string   `json:"source,omitempty"`
}
