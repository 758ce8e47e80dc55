package task

import (
	"time"

	"smart-todo/internal/draft"
	"smart-todo/internal/llmparse"
	"smart-todo/internal/model"
)

// ParseMode selects the parser used by Parse.
type ParseMode string

const (
	ParseModeModel ParseMode = "model"
	ParseModeRules ParseMode = "rules"
)

// ParseInput is the input for one-shot parsing.
type ParseInput struct {
	Text       string
	Mode       ParseMode // empty picks model when a provider is configured, rules otherwise
	AutoCreate bool
	Now        *time.Time // overrides the clock, mostly for tests and the CLI
}

// ParseOutput is the parsed draft, plus the stored task when autoCreate fired.
type ParseOutput struct {
	Draft   draft.ParsedDraft `json:"draft"`
	Outcome llmparse.Outcome  `json:"outcome"`
	Mode    ParseMode         `json:"mode"`
	Task    *model.Task       `json:"task,omitempty"`
}

// CreateInput is a draft confirmed by the user. RawInput is kept for audit.
type CreateInput struct {
	Draft    draft.ParsedDraft
	RawInput string
	Source   string
}

// ListInput holds list filters and paging.
type ListInput struct {
	Status   string
	Priority string
	Category string
	Page     int
	Limit    int
}

// ListOutput is one page of tasks.
type ListOutput struct {
	Tasks []model.Task `json:"tasks"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

// SendMessageInput is one user utterance for a chat session.
type SendMessageInput struct {
	SessionID string
	Text      string
}
