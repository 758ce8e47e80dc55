package usecase

import (
	"context"
	"time"

	"smart-todo/internal/dialogue"
	"smart-todo/internal/llmparse"
	"smart-todo/internal/task/repository"
	"smart-todo/pkg/datemath"
	"smart-todo/pkg/gcalendar"
	pkgLog "smart-todo/pkg/log"
)

// CalendarClient creates calendar events for tasks with a due date.
type CalendarClient interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
}

// Config carries the settings of the task use case.
type Config struct {
	// AutoCreateThreshold is the minimum confidence for Parse to store a draft on its own.
	AutoCreateThreshold float64
	// ModelEnabled reports whether a language model is configured; it picks the default parse mode.
	ModelEnabled    bool
	CalendarID      string
	ReminderMinutes int64
	Dialogue        dialogue.Options
}

type implUseCase struct {
	l        pkgLog.Logger
	repo     repository.TaskRepository
	parser   *llmparse.Parser
	machine  *dialogue.Machine
	sessions *dialogue.Store
	calendar CalendarClient
	cal      *datemath.Calendar
	cfg      Config
	now      func() time.Time
}

// New creates a new task UseCase instance. calendar may be nil.
func New(
	l pkgLog.Logger,
	repo repository.TaskRepository,
	parser *llmparse.Parser,
	sessions *dialogue.Store,
	calendar CalendarClient,
	cal *datemath.Calendar,
	cfg Config,
) *implUseCase {
	uc := &implUseCase{
		l:        l,
		repo:     repo,
		parser:   parser,
		sessions: sessions,
		calendar: calendar,
		cal:      cal,
		cfg:      cfg,
		now:      time.Now,
	}

	opts := cfg.Dialogue
	opts.Creator = uc
	if opts.Calendar == nil {
		opts.Calendar = cal
	}
	opts.Now = func() time.Time { return uc.now() }
	uc.machine = dialogue.NewMachine(l, opts)

	return uc
}
