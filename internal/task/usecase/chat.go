package usecase

import (
	"context"
	"errors"
	"strings"

	"smart-todo/internal/dialogue"
	"smart-todo/internal/model"
	"smart-todo/internal/task"
)

// CreateSession starts an empty conversation owned by the caller.
func (uc *implUseCase) CreateSession(ctx context.Context, sc model.Scope) (dialogue.View, error) {
	s := uc.sessions.Create(sc.UserID, uc.now())
	uc.l.Infof(ctx, "CreateSession: user=%s session=%s", sc.UserID, s.ID)
	return s.Snapshot(), nil
}

func (uc *implUseCase) GetSession(ctx context.Context, sc model.Scope, id string) (dialogue.View, error) {
	s, err := uc.sessions.Get(id, sc.UserID)
	if err != nil {
		return dialogue.View{}, mapSessionError(err)
	}
	return s.Snapshot(), nil
}

// SendMessage runs one dialogue turn in a session owned by the caller.
func (uc *implUseCase) SendMessage(ctx context.Context, sc model.Scope, input task.SendMessageInput) (dialogue.TurnResult, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return dialogue.TurnResult{}, task.ErrEmptyInput
	}

	s, err := uc.sessions.Get(input.SessionID, sc.UserID)
	if err != nil {
		return dialogue.TurnResult{}, mapSessionError(err)
	}

	res := uc.machine.HandleTurn(ctx, s, text)
	uc.sessions.Touch(s)
	return res, nil
}

func (uc *implUseCase) DeleteSession(ctx context.Context, sc model.Scope, id string) error {
	return mapSessionError(uc.sessions.Delete(id, sc.UserID))
}

// Chat runs one dialogue turn in the conversation stored under chatKey, starting it if needed.
func (uc *implUseCase) Chat(ctx context.Context, sc model.Scope, chatKey, text string) (dialogue.TurnResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return dialogue.TurnResult{}, task.ErrEmptyInput
	}

	s := uc.sessions.GetOrCreate(chatKey, sc.UserID, uc.now())
	res := uc.machine.HandleTurn(ctx, s, text)
	uc.sessions.Touch(s)
	return res, nil
}

// ResetChat drops the conversation under chatKey. Any member of the chat may reset it,
// since Chat lets any member continue it.
func (uc *implUseCase) ResetChat(ctx context.Context, sc model.Scope, chatKey string) {
	if uc.sessions.Remove(chatKey) {
		uc.l.Infof(ctx, "ResetChat: user=%s chat=%s", sc.UserID, chatKey)
	}
}

func mapSessionError(err error) error {
	if errors.Is(err, dialogue.ErrSessionNotFound) {
		return task.ErrSessionNotFound
	}
	return err
}
