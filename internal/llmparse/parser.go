package llmparse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smart-todo/internal/draft"
	"smart-todo/internal/extract"
	"smart-todo/pkg/datemath"
	"smart-todo/pkg/llmprovider"
	"smart-todo/pkg/log"
)

// Options configures a Parser.
type Options struct {
	Provider llmprovider.Provider
	Rules    *extract.Parser
	Calendar *datemath.Calendar
	Timeout  time.Duration
	Fallback FallbackMode
}

// Parser extracts drafts through a language model and falls back when the model fails.
type Parser struct {
	l        log.Logger
	provider llmprovider.Provider
	rules    *extract.Parser
	cal      *datemath.Calendar
	timeout  time.Duration
	fallback FallbackMode
}

// New creates a Parser. Rules are required; they also define the category set.
func New(l log.Logger, opts Options) *Parser {
	cal := opts.Calendar
	if cal == nil {
		cal = datemath.NewCalendarIn(time.Local)
	}
	rules := opts.Rules
	if rules == nil {
		rules = extract.NewParser(nil, draft.Conversational, cal)
	}
	fallback := opts.Fallback
	if fallback != FallbackRules {
		fallback = FallbackDegraded
	}
	return &Parser{
		l:        l,
		provider: opts.Provider,
		rules:    rules,
		cal:      cal,
		timeout:  opts.Timeout,
		fallback: fallback,
	}
}

// Parse asks the model for a draft. It never returns an error; failures are reported in
// Result.Outcome and Result.Draft holds the fallback.
func (p *Parser) Parse(ctx context.Context, raw string, now time.Time) Result {
	set := p.rules.CategorySet()
	req := &llmprovider.Request{
		Messages:     []llmprovider.Message{llmprovider.TextMessage(llmprovider.RoleUser, buildParsePrompt(raw, NewTimeContext(p.cal, now), set))},
		JSONResponse: true,
	}

	text, err := Complete(ctx, p.provider, req, p.timeout)
	if err != nil {
		return p.fail(ctx, raw, now, OutcomeRetrievalFailure, err)
	}

	obj, err := ExtractJSON(text)
	if err != nil {
		return p.fail(ctx, raw, now, OutcomeDecodeFailure, err)
	}

	return Result{
		Draft:   draft.Normalize(obj, draft.NormalizeOptions{Set: set, Location: p.cal.Location()}),
		Outcome: OutcomeSuccess,
	}
}

// ParseViaModel is Parse without the outcome.
func (p *Parser) ParseViaModel(ctx context.Context, raw string, now time.Time) draft.ParsedDraft {
	return p.Parse(ctx, raw, now).Draft
}

// CategorySet is the vocabulary drafts from this parser use.
func (p *Parser) CategorySet() draft.CategorySet {
	return p.rules.CategorySet()
}

// ParseRules runs only the rule based parser.
func (p *Parser) ParseRules(raw string, now time.Time) draft.ParsedDraft {
	return p.rules.Parse(raw, now)
}

// fail logs the failed model call and builds the fallback result. Errors that are neither
// retrieval nor decode failures are reported as retrieval failures.
func (p *Parser) fail(ctx context.Context, raw string, now time.Time, outcome Outcome, err error) Result {
	if !errors.Is(err, ErrRetrieval) && !errors.Is(err, ErrDecode) {
		err = fmt.Errorf("%w: %v", ErrRetrieval, err)
	}
	p.l.Warnf(ctx, "%s: %s, using %s fallback: %v", LogPrefixParse, outcome, p.fallback, err)

	d := draft.Degraded(raw, p.rules.CategorySet())
	if p.fallback == FallbackRules {
		d = p.rules.Parse(raw, now)
	}
	return Result{Draft: d, Outcome: outcome, Err: err}
}
