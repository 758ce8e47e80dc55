package task

import (
	"context"

	"smart-todo/internal/dialogue"
	"smart-todo/internal/draft"
	"smart-todo/internal/model"
)

// UseCase defines the business logic interface for the task domain.
type UseCase interface {
	// Parse turns one utterance into a draft and optionally stores it when confident enough.
	Parse(ctx context.Context, sc model.Scope, input ParseInput) (ParseOutput, error)

	Create(ctx context.Context, sc model.Scope, input CreateInput) (model.Task, error)
	List(ctx context.Context, sc model.Scope, input ListInput) (ListOutput, error)
	Detail(ctx context.Context, sc model.Scope, id string) (model.Task, error)
	Complete(ctx context.Context, sc model.Scope, id string) (model.Task, error)

	CreateSession(ctx context.Context, sc model.Scope) (dialogue.View, error)
	GetSession(ctx context.Context, sc model.Scope, id string) (dialogue.View, error)
	SendMessage(ctx context.Context, sc model.Scope, input SendMessageInput) (dialogue.TurnResult, error)
	DeleteSession(ctx context.Context, sc model.Scope, id string) error

	// Chat drives the conversation keyed by an external id such as a Telegram chat.
	Chat(ctx context.Context, sc model.Scope, chatKey, text string) (dialogue.TurnResult, error)
	// ResetChat drops the conversation stored under chatKey.
	ResetChat(ctx context.Context, sc model.Scope, chatKey string)

	// CreateFromDraft persists a confirmed draft; it backs the dialogue's task creation.
	CreateFromDraft(ctx context.Context, ownerID string, d draft.ParsedDraft, rawInput string) (string, error)
}
