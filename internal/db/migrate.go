package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations run in order on every start. Append only; never edit a shipped statement.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id                TEXT PRIMARY KEY,
		owner_id          TEXT NOT NULL,
		title             TEXT NOT NULL CHECK(length(title) <= 500),
		description       TEXT NOT NULL DEFAULT '',
		raw_input         TEXT NOT NULL DEFAULT '',
		category          TEXT NOT NULL DEFAULT '',
		tags              TEXT NOT NULL DEFAULT '[]',
		priority          TEXT NOT NULL DEFAULT 'medium'
		                  CHECK(priority IN ('urgent','high','medium','low')),
		status            TEXT NOT NULL DEFAULT 'pending'
		                  CHECK(status IN ('pending','in_progress','completed','cancelled')),
		due_date          TEXT,
		estimated_minutes INTEGER,
		completed_at      TEXT,
		ai_confidence     REAL,
		ai_metadata       TEXT NOT NULL DEFAULT '{}',
		version           INTEGER NOT NULL DEFAULT 1,
		deleted_at        TEXT,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner_id, created_at)`,
	// Added with calendar sync
	`ALTER TABLE tasks ADD COLUMN calendar_link TEXT NOT NULL DEFAULT ''`,
}

// Migrate runs all schema migrations. Statements are idempotent so it is safe on every start.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// sqlite has no ADD COLUMN IF NOT EXISTS
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
