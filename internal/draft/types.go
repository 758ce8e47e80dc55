package draft

import (
	"strings"
	"time"
)

// Priority is the urgency of a task.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority maps s case-insensitively onto a known priority.
func ParsePriority(s string) (Priority, bool) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow:
		return p, true
	}
	return PriorityMedium, false
}

// Category is a coarse task bucket. Which members are valid depends on the active CategorySet.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryLife     Category = "life"
	CategoryHealth   Category = "health"
	CategoryStudy    Category = "study"
	CategoryShopping Category = "shopping"
	CategoryFinance  Category = "finance"
	CategorySocial   Category = "social"
	CategoryOther    Category = "other"
)

// Field names a draft field that extraction may be unsure about.
type Field string

const (
	FieldTitle    Field = "title"
	FieldDueDate  Field = "dueDate"
	FieldPriority Field = "priority"
	FieldCategory Field = "category"
)

func (f Field) valid() bool {
	switch f {
	case FieldTitle, FieldDueDate, FieldPriority, FieldCategory:
		return true
	}
	return false
}

// ParsedDraft is a structured task that has not been persisted yet.
type ParsedDraft struct {
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	DueDate          *Timestamp `json:"dueDate,omitempty"`
	Priority         Priority   `json:"priority"`
	Category         Category   `json:"category"`
	EstimatedMinutes *int       `json:"estimatedMinutes,omitempty"`
	Tags             []string   `json:"tags"`
	Confidence       float64    `json:"confidence"`
	UncertainFields  []Field    `json:"uncertainFields"`
}

// IsUncertain reports whether f was flagged as uncertain.
func (d ParsedDraft) IsUncertain(f Field) bool {
	for _, u := range d.UncertainFields {
		if u == f {
			return true
		}
	}
	return false
}

// Due returns the due date or the zero time.
func (d ParsedDraft) Due() (time.Time, bool) {
	if d.DueDate == nil {
		return time.Time{}, false
	}
	return d.DueDate.Time(), true
}

// Clone returns a deep copy so snapshots never alias a live draft.
func (d ParsedDraft) Clone() ParsedDraft {
	out := d
	if d.DueDate != nil {
		ts := *d.DueDate
		out.DueDate = &ts
	}
	if d.EstimatedMinutes != nil {
		m := *d.EstimatedMinutes
		out.EstimatedMinutes = &m
	}
	out.Tags = append([]string{}, d.Tags...)
	out.UncertainFields = append([]Field{}, d.UncertainFields...)
	return out
}
