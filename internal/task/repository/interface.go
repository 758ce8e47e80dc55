package repository

import (
	"context"
	"time"

	"smart-todo/internal/model"
)

// TaskRepository is the persistence interface for tasks. Every read and write is scoped to
// an owner; tasks of other owners behave as if they did not exist.
type TaskRepository interface {
	CreateTask(ctx context.Context, opt CreateTaskOptions) (model.Task, error)
	GetTask(ctx context.Context, ownerID, id string) (model.Task, error)
	ListTasks(ctx context.Context, opt ListTasksOptions) ([]model.Task, int, error)
	CompleteTask(ctx context.Context, ownerID, id string, at time.Time) (model.Task, error)
	SetCalendarLink(ctx context.Context, ownerID, id, link string) error
}
