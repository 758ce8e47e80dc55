package datemath_test

import (
	"testing"
	"time"

	"smart-todo/pkg/datemath"
)

func TestNewCalendar(t *testing.T) {
	_, err := datemath.NewCalendar("Asia/Shanghai")
	if err != nil {
		t.Fatalf("unexpected error creating valid calendar: %v", err)
	}

	_, err = datemath.NewCalendar("Invalid/Timezone")
	if err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestNextWeekday(t *testing.T) {
	cal := datemath.NewCalendarIn(time.UTC)
	base := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC) // Wednesday

	tests := []struct {
		name   string
		target time.Weekday
		want   time.Time
	}{
		{"Next Friday", time.Friday, time.Date(2024, 5, 3, 15, 30, 0, 0, time.UTC)},
		{"Next Monday", time.Monday, time.Date(2024, 5, 6, 15, 30, 0, 0, time.UTC)},
		{"Same weekday rolls a week", time.Wednesday, time.Date(2024, 5, 8, 15, 30, 0, 0, time.UTC)},
		{"Sunday", time.Sunday, time.Date(2024, 5, 5, 15, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cal.NextWeekday(base, tt.target)
			if !got.Equal(tt.want) {
				t.Errorf("NextWeekday() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAtClockAndAddDays(t *testing.T) {
	cal, _ := datemath.NewCalendar("Asia/Shanghai")
	base := time.Date(2024, 5, 1, 7, 45, 12, 0, time.UTC) // 15:45 in Shanghai

	got := cal.AtClock(cal.AddDays(base, 1), 15, 0)
	if got.Day() != 2 || got.Hour() != 15 || got.Minute() != 0 || got.Second() != 0 {
		t.Errorf("AtClock(AddDays) = %v", got)
	}
	if cal.Offset(base) != "+08:00" {
		t.Errorf("Offset() = %q, want +08:00", cal.Offset(base))
	}
}

func TestEndOfWeek(t *testing.T) {
	cal := datemath.NewCalendarIn(time.UTC)

	tests := []struct {
		name string
		base time.Time
		want time.Time
	}{
		{"Wednesday", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), time.Date(2024, 5, 5, 23, 59, 0, 0, time.UTC)},
		{"Sunday maps onto itself", time.Date(2024, 5, 5, 10, 0, 0, 0, time.UTC), time.Date(2024, 5, 5, 23, 59, 0, 0, time.UTC)},
		{"Monday", time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), time.Date(2024, 5, 12, 23, 59, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cal.EndOfWeek(tt.base); !got.Equal(tt.want) {
				t.Errorf("EndOfWeek() = %v, want %v", got, tt.want)
			}
		})
	}
}
