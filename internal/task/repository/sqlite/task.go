package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"smart-todo/internal/model"
	"smart-todo/internal/task/repository"
)

const taskColumns = `id, owner_id, title, description, raw_input, category, tags, priority, status,
	due_date, estimated_minutes, completed_at, ai_confidence, ai_metadata, calendar_link,
	version, created_at, updated_at`

// CreateTask inserts a task and returns it as stored.
func (r *implRepository) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	tags, err := json.Marshal(nonNilTags(opt.Tags))
	if err != nil {
		return model.Task{}, fmt.Errorf("encoding tags: %w", err)
	}
	meta, err := json.Marshal(opt.AIMetadata)
	if err != nil {
		return model.Task{}, fmt.Errorf("encoding ai metadata: %w", err)
	}

	// Timestamps are stored in UTC; due dates keep their offset
	now := r.now().UTC()
	id := uuid.NewString()
	priority := opt.Priority
	if priority == "" {
		priority = "medium"
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO tasks
		(id, owner_id, title, description, raw_input, category, tags, priority, status,
		 due_date, estimated_minutes, ai_confidence, ai_metadata, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		id, opt.OwnerID, opt.Title, opt.Description, opt.RawInput, opt.Category, string(tags),
		priority, string(model.TaskStatusPending),
		formatTime(opt.DueDate), nullInt(opt.EstimatedMinutes), nullFloat(opt.AIConfidence),
		string(meta), now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("inserting task: %w", err)
	}

	return r.GetTask(ctx, opt.OwnerID, id)
}

// GetTask returns one live task of ownerID, or repository.ErrNotFound.
func (r *implRepository) GetTask(ctx context.Context, ownerID, id string) (model.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+`
		FROM tasks WHERE id = ? AND owner_id = ? AND deleted_at IS NULL`, id, ownerID)
	return scanTask(row)
}

// ListTasks returns one page of tasks, newest first, and the total matching the filters.
func (r *implRepository) ListTasks(ctx context.Context, opt repository.ListTasksOptions) ([]model.Task, int, error) {
	where := []string{"owner_id = ?", "deleted_at IS NULL"}
	args := []any{opt.OwnerID}
	if opt.Status != "" {
		where = append(where, "status = ?")
		args = append(args, opt.Status)
	}
	if opt.Priority != "" {
		where = append(where, "priority = ?")
		args = append(args, opt.Priority)
	}
	if opt.Category != "" {
		where = append(where, "category = ?")
		args = append(args, opt.Category)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting tasks: %w", err)
	}

	limit := opt.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE `+cond+`
		ORDER BY created_at DESC, id LIMIT ? OFFSET ?`, append(args, limit, max(opt.Offset, 0))...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, total, nil
}

// CompleteTask marks the task completed and bumps its version. Completing an already
// completed task is a no-op that returns the stored task.
func (r *implRepository) CompleteTask(ctx context.Context, ownerID, id string, at time.Time) (model.Task, error) {
	stamp := at.UTC().Format(time.RFC3339)
	res, err := r.db.ExecContext(ctx, `UPDATE tasks
		SET status = ?, completed_at = ?, updated_at = ?, version = version + 1
		WHERE id = ? AND owner_id = ? AND deleted_at IS NULL AND status != ?`,
		string(model.TaskStatusCompleted), stamp, stamp, id, ownerID, string(model.TaskStatusCompleted))
	if err != nil {
		return model.Task{}, fmt.Errorf("completing task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		r.l.Debugf(ctx, "sqlite.CompleteTask: no row updated for id=%s", id)
	}
	return r.GetTask(ctx, ownerID, id)
}

// SetCalendarLink stores the calendar event link of a task.
func (r *implRepository) SetCalendarLink(ctx context.Context, ownerID, id, link string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET calendar_link = ?, updated_at = ?
		WHERE id = ? AND owner_id = ? AND deleted_at IS NULL`,
		link, r.now().UTC().Format(time.RFC3339), id, ownerID)
	if err != nil {
		return fmt.Errorf("updating calendar link: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanTask decodes one row selected with taskColumns.
func scanTask(s scanner) (model.Task, error) {
	var (
		t                    model.Task
		status, tags, meta   string
		dueDate, completedAt sql.NullString
		createdAt, updatedAt string
		estimated            sql.NullInt64
		confidence           sql.NullFloat64
	)
	err := s.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.RawInput, &t.Category, &tags,
		&t.Priority, &status, &dueDate, &estimated, &completedAt, &confidence, &meta,
		&t.CalendarLink, &t.Version, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, repository.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("scanning task: %w", err)
	}

	t.Status = model.TaskStatus(status)
	if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
		return model.Task{}, fmt.Errorf("decoding tags of task %s: %w", t.ID, err)
	}
	if err := json.Unmarshal([]byte(meta), &t.AIMetadata); err != nil {
		return model.Task{}, fmt.Errorf("decoding ai metadata of task %s: %w", t.ID, err)
	}
	if t.DueDate, err = parseTime(dueDate); err != nil {
		return model.Task{}, err
	}
	if t.CompletedAt, err = parseTime(completedAt); err != nil {
		return model.Task{}, err
	}
	if estimated.Valid {
		v := int(estimated.Int64)
		t.EstimatedMinutes = &v
	}
	if confidence.Valid {
		v := confidence.Float64
		t.AIConfidence = &v
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return model.Task{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return model.Task{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return t, nil
}

// formatTime keeps the caller's offset and any fractional seconds, so a due date reads back
// as the same instant.
func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

// parseTime reads a nullable RFC 3339 column
func parseTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil, fmt.Errorf("parsing time %q: %w", s.String, err)
	}
	return &t, nil
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// nonNilTags stores [] rather than null
func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
