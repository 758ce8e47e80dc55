package draft

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// PlaceholderTitle is used when model output carries no usable title.
	PlaceholderTitle = "未命名任务"

	maxTitleRunes      = 100
	defaultConfidence  = 0.5
	degradedConfidence = 0.3
)

// NormalizeOptions controls how untyped payloads are mapped onto a draft.
type NormalizeOptions struct {
	Set      CategorySet
	Location *time.Location
}

// Normalize maps an untyped JSON object onto a ParsedDraft. Every field is defaulted on its own,
// so one malformed field never discards the rest.
func Normalize(obj map[string]any, opts NormalizeOptions) ParsedDraft {
	set := opts.Set
	if len(set.Members) == 0 {
		set = Conversational
	}

	d := ParsedDraft{
		Title:      PlaceholderTitle,
		Priority:   PriorityMedium,
		Category:   set.Default,
		Tags:       []string{},
		Confidence: defaultConfidence,

		UncertainFields: []Field{},
	}

	if s, ok := obj["title"].(string); ok && strings.TrimSpace(s) != "" {
		d.Title = strings.TrimSpace(s)
	}
	if s, ok := obj["description"].(string); ok {
		d.Description = strings.TrimSpace(s)
	}
	if s, ok := obj["priority"].(string); ok {
		d.Priority, _ = ParsePriority(s)
	}
	if s, ok := obj["category"].(string); ok {
		d.Category = set.Resolve(s)
	}
	if s, ok := obj["dueDate"].(string); ok && s != "" {
		if t, ok := ParseLoose(s, opts.Location); ok {
			d.DueDate = NewTimestamp(t)
		}
	}
	if m, ok := minutes(obj["estimatedMinutes"]); ok {
		d.EstimatedMinutes = &m
	}
	if arr, ok := obj["tags"].([]any); ok {
		for _, v := range arr {
			if s, ok := v.(string); ok && s != "" {
				d.Tags = append(d.Tags, s)
			}
		}
	}
	if f, ok := obj["confidence"].(float64); ok && !math.IsNaN(f) {
		d.Confidence = math.Min(1, math.Max(0, f))
	}
	if arr, ok := obj["uncertainFields"].([]any); ok {
		for _, v := range arr {
			if s, ok := v.(string); ok && Field(s).valid() {
				d.UncertainFields = append(d.UncertainFields, Field(s))
			}
		}
	}

	return d
}

// minutes accepts a number or a numeric string, rounded to whole minutes; anything below 1
// is dropped.
func minutes(v any) (int, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	m := int(math.Round(f))
	if m < 1 {
		return 0, false
	}
	return m, true
}

// Degraded is the draft returned when extraction fails outright.
func Degraded(raw string, set CategorySet) ParsedDraft {
	if len(set.Members) == 0 {
		set = Conversational
	}
	return ParsedDraft{
		Title:           TruncateTitle(raw),
		Priority:        PriorityMedium,
		Category:        set.Default,
		Tags:            []string{},
		Confidence:      degradedConfidence,
		UncertainFields: []Field{FieldTitle, FieldPriority, FieldCategory, FieldDueDate},
	}
}

// TruncateTitle returns the first 100 runes of raw, or the placeholder for blank input.
func TruncateTitle(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PlaceholderTitle
	}
	if utf8.RuneCountInString(raw) <= maxTitleRunes {
		return raw
	}
	return string([]rune(raw)[:maxTitleRunes])
}
