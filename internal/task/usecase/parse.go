package usecase

import (
	"context"
	"strings"

	"smart-todo/internal/llmparse"
	"smart-todo/internal/model"
	"smart-todo/internal/task"
)

// Parse extracts a draft from one utterance. A parse never fails on ambiguity or model
// errors; only empty input and an unknown mode are rejected.
func (uc *implUseCase) Parse(ctx context.Context, sc model.Scope, input task.ParseInput) (task.ParseOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return task.ParseOutput{}, task.ErrEmptyInput
	}

	mode, err := uc.resolveMode(input.Mode)
	if err != nil {
		return task.ParseOutput{}, err
	}

	now := uc.now()
	if input.Now != nil {
		now = *input.Now
	}

	out := task.ParseOutput{Mode: mode, Outcome: llmparse.OutcomeSuccess}
	switch mode {
	case task.ParseModeRules:
		out.Draft = uc.parser.ParseRules(text, now)
	default:
		res := uc.parser.Parse(ctx, text, now)
		out.Draft, out.Outcome = res.Draft, res.Outcome
	}

	uc.l.Infof(ctx, "Parse: user=%s mode=%s outcome=%s confidence=%.2f", sc.UserID, mode, out.Outcome, out.Draft.Confidence)

	if !input.AutoCreate || out.Draft.Confidence < uc.cfg.AutoCreateThreshold {
		return out, nil
	}

	t, err := uc.Create(ctx, sc, task.CreateInput{Draft: out.Draft, RawInput: text, Source: string(mode)})
	if err != nil {
		return task.ParseOutput{}, err
	}
	out.Task = &t
	return out, nil
}

func (uc *implUseCase) resolveMode(m task.ParseMode) (task.ParseMode, error) {
	switch m {
	case "":
		if uc.cfg.ModelEnabled {
			return task.ParseModeModel, nil
		}
		return task.ParseModeRules, nil
	case task.ParseModeModel, task.ParseModeRules:
		return m, nil
	}
	return "", task.ErrInvalidMode
}
