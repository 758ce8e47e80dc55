package usecase

import (
	"context"
	"errors"
	"fmt"

	"smart-todo/internal/draft"
	"smart-todo/internal/model"
	"smart-todo/internal/task"
	"smart-todo/internal/task/repository"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// List returns one page of the caller's tasks. Limit defaults to defaultPageLimit and is capped at maxPageLimit.
func (uc *implUseCase) List(ctx context.Context, sc model.Scope, input task.ListInput) (task.ListOutput, error) {
	if err := validateListInput(input); err != nil {
		return task.ListOutput{}, err
	}

	page := max(input.Page, 1)
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	limit = min(limit, maxPageLimit)

	tasks, total, err := uc.repo.ListTasks(ctx, repository.ListTasksOptions{
		OwnerID:  sc.UserID,
		Status:   input.Status,
		Priority: input.Priority,
		Category: input.Category,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		return task.ListOutput{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	return task.ListOutput{Tasks: tasks, Total: total, Page: page, Limit: limit}, nil
}

// Detail returns one task of the caller
func (uc *implUseCase) Detail(ctx context.Context, sc model.Scope, id string) (model.Task, error) {
	t, err := uc.repo.GetTask(ctx, sc.UserID, id)
	if err != nil {
		return model.Task{}, mapRepoError(err)
	}
	return t, nil
}

// Complete marks a task completed. Completing it twice is not an error.
func (uc *implUseCase) Complete(ctx context.Context, sc model.Scope, id string) (model.Task, error) {
	t, err := uc.repo.CompleteTask(ctx, sc.UserID, id, uc.now())
	if err != nil {
		return model.Task{}, mapRepoError(err)
	}
	uc.l.Infof(ctx, "Complete: user=%s task=%s", sc.UserID, id)
	return t, nil
}

// validateListInput rejects unknown status and priority filters. Category is free text.
func validateListInput(input task.ListInput) error {
	switch model.TaskStatus(input.Status) {
	case "", model.TaskStatusPending, model.TaskStatusInProgress, model.TaskStatusCompleted, model.TaskStatusCancelled:
	default:
		return fmt.Errorf("%w: status %q", task.ErrInvalidFilter, input.Status)
	}
	if input.Priority != "" {
		if _, ok := draft.ParsePriority(input.Priority); !ok {
			return fmt.Errorf("%w: priority %q", task.ErrInvalidFilter, input.Priority)
		}
	}
	return nil
}

// mapRepoError translates storage errors into domain errors
func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return task.ErrTaskNotFound
	}
	return err
}
