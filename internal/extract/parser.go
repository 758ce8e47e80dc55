package extract

import (
	"strings"
	"time"

	"smart-todo/internal/draft"
	"smart-todo/pkg/datemath"
)

// Parser is the rule based task parser. It holds no mutable state.
type Parser struct {
	rules *Rules
	set   draft.CategorySet
	cal   *datemath.Calendar
}

// NewParser builds a parser. Nil rules select the default zh table.
func NewParser(rules *Rules, set draft.CategorySet, cal *datemath.Calendar) *Parser {
	if rules == nil {
		rules = MustDefaultRules()
	}
	if cal == nil {
		cal = datemath.NewCalendarIn(time.Local)
	}
	if len(set.Members) == 0 {
		set = draft.Conversational
	}
	return &Parser{rules: rules, set: set, cal: cal}
}

func (p *Parser) CategorySet() draft.CategorySet { return p.set }

// Parse extracts a draft from raw. It is deterministic in (raw, now) and never panics:
// an unexpected failure yields the degraded draft.
func (p *Parser) Parse(raw string, now time.Time) (d draft.ParsedDraft) {
	defer func() {
		if r := recover(); r != nil {
			d = draft.Degraded(raw, p.set)
		}
	}()

	due := p.rules.DueDate(raw, now, p.cal)
	priority, priorityOK := p.rules.Priority(raw)
	category, categoryOK := p.rules.Category(raw, p.set)
	confidence, uncertain := Score(due.Confident, priorityOK, categoryOK)

	d = draft.ParsedDraft{
		Title:           p.rules.Title(raw),
		Priority:        priority,
		Category:        category,
		Tags:            p.rules.Tags(raw),
		Confidence:      confidence,
		UncertainFields: uncertain,
	}
	if strings.TrimSpace(d.Title) == "" {
		d.Title = draft.TruncateTitle(raw)
	}
	if due.Found {
		d.DueDate = draft.NewTimestamp(due.Date)
	}
	if m, ok := p.rules.EstimatedMinutes(raw); ok {
		d.EstimatedMinutes = &m
	}
	return d
}
