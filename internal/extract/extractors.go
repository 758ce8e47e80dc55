package extract

import (
	"math"
	"strconv"
	"strings"
	"time"

	"smart-todo/internal/draft"
	"smart-todo/pkg/datemath"
)

// DateMatch is the due date extractor's result.
type DateMatch struct {
	Date      time.Time
	Found     bool
	Confident bool
}

// DueDate resolves a due date from text. Relative day tokens win over weekday tokens, and a clock
// time is written onto whichever anchor was chosen (or now when there is none). Anchors keep
// now's time of day at whole-second precision.
func (r *Rules) DueDate(text string, now time.Time, cal *datemath.Calendar) DateMatch {
	now = cal.In(now).Truncate(time.Second)

	anchor, anchored := r.anchor(text, now, cal)

	if hour, ok := r.clockHour(text); ok {
		base := now
		if anchored {
			base = anchor
		}
		for _, rd := range r.relative {
			if rd.Offset != 0 && strings.Contains(text, rd.Token) {
				base = cal.AddDays(now, rd.Offset)
				break
			}
		}
		return DateMatch{Date: cal.AtClock(base, hour, 0), Found: true, Confident: true}
	}

	if anchored {
		return DateMatch{Date: anchor, Found: true, Confident: true}
	}
	return DateMatch{}
}

func (r *Rules) anchor(text string, now time.Time, cal *datemath.Calendar) (time.Time, bool) {
	for _, rd := range r.relative {
		if strings.Contains(text, rd.Token) {
			return cal.AddDays(now, rd.Offset), true
		}
	}
	for _, w := range r.weekdays {
		if strings.Contains(text, w.Token) {
			return cal.NextWeekday(now, time.Weekday(w.Weekday)), true
		}
	}
	return time.Time{}, false
}

// clockHour returns the 24h hour of the first valid clock expression.
func (r *Rules) clockHour(text string) (int, bool) {
	for _, m := range r.clock.FindAllStringSubmatch(text, -1) {
		hour, err := strconv.Atoi(m[2])
		if err != nil || hour > 23 {
			continue
		}
		if r.afternoon[m[1]] && hour < 12 {
			hour += 12
		}
		return hour, true
	}
	return 0, false
}

// Priority returns the first matching priority group, or medium when nothing matches.
func (r *Rules) Priority(text string) (draft.Priority, bool) {
	for _, m := range r.priority {
		if m.re.MatchString(text) {
			return m.priority, true
		}
	}
	return draft.PriorityMedium, false
}

// Category returns the first matching group usable in set, or the set default.
func (r *Rules) Category(text string, set draft.CategorySet) (draft.Category, bool) {
	for _, m := range r.category {
		c, ok := firstMember(m.categories, set)
		if !ok {
			continue
		}
		if m.re.MatchString(text) {
			return c, true
		}
	}
	return set.Default, false
}

func firstMember(cs []draft.Category, set draft.CategorySet) (draft.Category, bool) {
	for _, c := range cs {
		if set.Contains(c) {
			return c, true
		}
	}
	return "", false
}

// Tags returns one tag per matching rule, in table order.
func (r *Rules) Tags(text string) []string {
	tags := []string{}
	for _, m := range r.tags {
		if m.re.MatchString(text) {
			tags = append(tags, m.tag)
		}
	}
	return tags
}

// EstimatedMinutes prefers an hour expression over a minute expression.
func (r *Rules) EstimatedMinutes(text string) (int, bool) {
	if m := r.hours.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > math.MaxInt32/60 {
			return 0, false
		}
		return n * 60, true
	}
	if m := r.minutes.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// Title strips date and clock phrases from raw. An empty residue falls back to raw.
func (r *Rules) Title(raw string) string {
	title := raw
	for _, re := range r.strip {
		title = re.ReplaceAllString(title, "")
	}
	title = strings.TrimSpace(whitespace.ReplaceAllString(title, " "))
	if title == "" {
		return raw
	}
	return title
}
