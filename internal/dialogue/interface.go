package dialogue

import (
	"context"

	"smart-todo/internal/draft"
)

// TaskCreator persists a confirmed draft and returns the new task's ID.
type TaskCreator interface {
	CreateFromDraft(ctx context.Context, ownerID string, d draft.ParsedDraft, rawInput string) (string, error)
}
