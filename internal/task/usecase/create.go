package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"smart-todo/internal/draft"
	"smart-todo/internal/model"
	"smart-todo/internal/task"
	"smart-todo/internal/task/repository"
	"smart-todo/pkg/gcalendar"
)

const (
	defaultEventMinutes = 60
	sourceDialogue      = "dialogue"
)

// Create stores a confirmed draft and, when it has a due date, schedules a calendar event.
func (uc *implUseCase) Create(ctx context.Context, sc model.Scope, input task.CreateInput) (model.Task, error) {
	d := input.Draft
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return model.Task{}, task.ErrEmptyInput
	}
	// Unknown priorities become medium; an empty category takes the set default
	d.Priority, _ = draft.ParsePriority(string(d.Priority))
	if strings.TrimSpace(string(d.Category)) == "" {
		d.Category = uc.parser.CategorySet().Default
	}

	opt := toCreateOptions(sc.UserID, d, input.RawInput, input.Source)
	t, err := uc.repo.CreateTask(ctx, opt)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	uc.l.Infof(ctx, "Create: user=%s task=%s title=%q", sc.UserID, t.ID, t.Title)

	// Calendar sync never fails the create
	if link := uc.tryCreateCalendarEvent(ctx, t); link != "" {
		if err := uc.repo.SetCalendarLink(ctx, sc.UserID, t.ID, link); err != nil {
			uc.l.Warnf(ctx, "Create: failed to store calendar link for %s (non-fatal): %v", t.ID, err)
		} else {
			t.CalendarLink = link
		}
	}

	return t, nil
}

// CreateFromDraft backs the dialogue: a confirmed conversation draft becomes a task.
func (uc *implUseCase) CreateFromDraft(ctx context.Context, ownerID string, d draft.ParsedDraft, rawInput string) (string, error) {
	t, err := uc.Create(ctx, model.NewScope(ownerID), task.CreateInput{Draft: d, RawInput: rawInput, Source: sourceDialogue})
	if err != nil {
		return "", err
	}
	return t.ID, nil
}

// tryCreateCalendarEvent returns the event link, or "" when there is no calendar, no due
// date or the call failed.
func (uc *implUseCase) tryCreateCalendarEvent(ctx context.Context, t model.Task) string {
	if uc.calendar == nil || t.DueDate == nil {
		return ""
	}

	// The event lasts as long as the estimate, or an hour
	minutes := defaultEventMinutes
	if t.EstimatedMinutes != nil && *t.EstimatedMinutes > 0 {
		minutes = *t.EstimatedMinutes
	}
	start := uc.cal.In(*t.DueDate)

	event, err := uc.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:      uc.cfg.CalendarID,
		TaskID:          t.ID,
		Summary:         t.Title,
		Description:     strings.TrimSpace(t.Description),
		StartTime:       start,
		EndTime:         start.Add(time.Duration(minutes) * time.Minute),
		Timezone:        uc.cal.Location().String(),
		ReminderMinutes: uc.cfg.ReminderMinutes,
	})
	if err != nil {
		uc.l.Warnf(ctx, "Create: calendar event creation failed for %q (non-fatal): %v", t.Title, err)
		return ""
	}
	return event.HtmlLink
}

// toCreateOptions maps a draft onto the repository insert. A zero confidence is stored as NULL.
func toCreateOptions(ownerID string, d draft.ParsedDraft, rawInput, source string) repository.CreateTaskOptions {
	opt := repository.CreateTaskOptions{
		OwnerID:          ownerID,
		Title:            d.Title,
		Description:      d.Description,
		RawInput:         rawInput,
		Category:         string(d.Category),
		Tags:             d.Tags,
		Priority:         string(d.Priority),
		EstimatedMinutes: d.EstimatedMinutes,
		AIMetadata: model.AIMetadata{
			UncertainFields: fieldNames(d.UncertainFields),
			Source:          source,
		},
	}
	if due, ok := d.Due(); ok {
		opt.DueDate = &due
	}
	if d.Confidence > 0 {
		c := d.Confidence
		opt.AIConfidence = &c
	}
	return opt
}

func fieldNames(fields []draft.Field) []string {
	if len(fields) == 0 {
		return nil
	}
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}
