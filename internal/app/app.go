// Package app wires the task service from configuration. Both the HTTP server and the
// command line client start from here.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"smart-todo/config"
	"smart-todo/internal/db"
	"smart-todo/internal/dialogue"
	"smart-todo/internal/draft"
	"smart-todo/internal/extract"
	"smart-todo/internal/llmparse"
	"smart-todo/internal/task"
	"smart-todo/internal/task/repository/sqlite"
	"smart-todo/internal/task/usecase"
	"smart-todo/pkg/datemath"
	"smart-todo/pkg/gcalendar"
	"smart-todo/pkg/llmprovider"
	"smart-todo/pkg/log"
)

// App holds the long-lived components built from a Config.
type App struct {
	UseCase  task.UseCase
	Parser   *llmparse.Parser
	Rules    *extract.Parser
	Calendar *datemath.Calendar
	Provider llmprovider.Provider

	db *sql.DB
}

// Ping checks that the database answers.
func (a *App) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

// Close releases the database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// New builds the service. A missing or broken language model configuration is not
// fatal: the service then answers from the rule parser. The same goes for Google Calendar.
func New(ctx context.Context, cfg *config.Config, l log.Logger) (*App, error) {
	cal, err := datemath.NewCalendar(cfg.Parser.Timezone)
	if err != nil {
		return nil, fmt.Errorf("parser.timezone: %w", err)
	}

	set, err := draft.LookupCategorySet(cfg.Parser.CategorySet)
	if err != nil {
		return nil, fmt.Errorf("parser.category_set: %w", err)
	}

	rules := extract.MustDefaultRules()
	if cfg.Parser.RulesFile != "" {
		if rules, err = extract.LoadRuleSet(cfg.Parser.RulesFile); err != nil {
			return nil, fmt.Errorf("parser.rules_file: %w", err)
		}
		l.Infof(ctx, "Loaded extraction rules from %s", cfg.Parser.RulesFile)
	}
	rulesParser := extract.NewParser(rules, set, cal)

	retryDelay, maxTotal, requestTimeout, err := cfg.LLM.Durations()
	if err != nil {
		return nil, err
	}
	provider := newProvider(ctx, cfg, l, retryDelay, maxTotal)

	parser := llmparse.New(l, llmparse.Options{
		Provider: provider,
		Rules:    rulesParser,
		Calendar: cal,
		Timeout:  requestTimeout,
		Fallback: llmparse.FallbackMode(cfg.Parser.Fallback),
	})

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	l.Infof(ctx, "Database ready at %s", cfg.Database.Path)

	var calendarClient usecase.CalendarClient
	if gc := newCalendarClient(ctx, cfg, l); gc != nil {
		calendarClient = gc
	}

	sessions := dialogue.NewStore(cfg.Dialogue.MaxSessions, cfg.Dialogue.SessionTTL)
	uc := usecase.New(l, sqlite.New(l, database), parser, sessions, calendarClient, cal, usecase.Config{
		AutoCreateThreshold: cfg.Parser.AutoCreateThreshold,
		ModelEnabled:        provider != nil,
		CalendarID:          cfg.GoogleCalendar.CalendarID,
		ReminderMinutes:     cfg.GoogleCalendar.ReminderMinutes,
		Dialogue: dialogue.Options{
			Provider:        provider,
			CategorySet:     set,
			Calendar:        cal,
			Timeout:         requestTimeout,
			MaxHistoryTurns: cfg.Dialogue.MaxHistoryTurns,
		},
	})

	return &App{
		UseCase:  uc,
		Parser:   parser,
		Rules:    rulesParser,
		Calendar: cal,
		Provider: provider,
		db:       database,
	}, nil
}

// newProvider returns nil when no model is configured.
func newProvider(ctx context.Context, cfg *config.Config, l log.Logger, retryDelay, maxTotal time.Duration) llmprovider.Provider {
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if errors.Is(err, llmprovider.ErrNoProvidersConfigured) {
		l.Warn(ctx, "No LLM provider configured, parsing with rules only")
		return nil
	}
	if err != nil {
		l.Warnf(ctx, "Some LLM providers failed to initialize: %v", err)
	}
	if len(providers) == 0 {
		return nil
	}

	manager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTotal,
	}, l)
	l.Infof(ctx, "LLM providers ready: %s (%s)", manager.Name(), manager.Model())
	return manager
}

// newCalendarClient returns nil when Google Calendar is not configured or not usable.
func newCalendarClient(ctx context.Context, cfg *config.Config, l log.Logger) *gcalendar.Client {
	if cfg.GoogleCalendar.CredentialsPath == "" {
		return nil
	}
	client, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath, cfg.GoogleCalendar.TokenPath)
	if err != nil {
		l.Warnf(ctx, "Google Calendar not available (optional): %v", err)
		if errors.Is(err, gcalendar.ErrNoToken) {
			l.Warn(ctx, "→ Run `smarttodo gcal-auth` to generate the token")
		}
		return nil
	}
	l.Info(ctx, "✅ Google Calendar initialized")
	return client
}
