package datemath

import (
	"fmt"
	"time"
)

// Calendar does wall-clock arithmetic in one fixed timezone.
type Calendar struct {
	location *time.Location
}

// NewCalendar creates a calendar for the given IANA timezone string.
// e.g. "Asia/Shanghai"
func NewCalendar(timezone string) (*Calendar, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Calendar{location: loc}, nil
}

// NewCalendarIn wraps an already loaded location. A nil location means UTC.
func NewCalendarIn(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{location: loc}
}

func (c *Calendar) Location() *time.Location { return c.location }

// In converts t into the calendar's timezone.
func (c *Calendar) In(t time.Time) time.Time { return t.In(c.location) }

// AddDays moves t by n calendar days and keeps its time of day.
func (c *Calendar) AddDays(t time.Time, n int) time.Time {
	return t.In(c.location).AddDate(0, 0, n)
}

// NextWeekday returns the next occurrence of target strictly after t's day, keeping the time of day.
// Asking for the current weekday yields the same weekday one week later.
func (c *Calendar) NextWeekday(t time.Time, target time.Weekday) time.Time {
	t = t.In(c.location)
	daysUntil := int(target - t.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return t.AddDate(0, 0, daysUntil)
}

// AtClock sets the time of day on t's date, zeroing seconds.
func (c *Calendar) AtClock(t time.Time, hour, minute int) time.Time {
	t = t.In(c.location)
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, c.location)
}

// StartOfDay returns midnight at the start of t's day.
func (c *Calendar) StartOfDay(t time.Time) time.Time {
	return c.AtClock(t, 0, 0)
}

// EndOfWeek returns 23:59 on the Sunday closing t's week. Weeks start on Monday,
// so a Sunday maps onto itself.
func (c *Calendar) EndOfWeek(t time.Time) time.Time {
	t = t.In(c.location)
	daysUntil := (7 - int(t.Weekday())) % 7
	return c.AtClock(t.AddDate(0, 0, daysUntil), 23, 59)
}

// Offset renders t's UTC offset as +08:00.
func (c *Calendar) Offset(t time.Time) string {
	return t.In(c.location).Format("-07:00")
}
