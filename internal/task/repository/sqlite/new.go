package sqlite

import (
	"database/sql"
	"time"

	"smart-todo/internal/task/repository"
	"smart-todo/pkg/log"
)

const defaultListLimit = 20

type implRepository struct {
	l   log.Logger
	db  *sql.DB
	now func() time.Time
}

var _ repository.TaskRepository = (*implRepository)(nil)

// New returns a TaskRepository backed by db. The schema must already be migrated.
func New(l log.Logger, db *sql.DB) repository.TaskRepository {
	return &implRepository{l: l, db: db, now: time.Now}
}
