package draft

import (
	"encoding/json"
	"fmt"
	"time"
)

// offsetLayout always writes a numeric offset, so UTC becomes +00:00 rather than Z.
// Fractional seconds are written only when present, which keeps the round trip exact.
const offsetLayout = "2006-01-02T15:04:05.999999999-07:00"

// Timestamp is a due date serialized as ISO-8601 with an explicit offset.
type Timestamp time.Time

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) *Timestamp {
	ts := Timestamp(t)
	return &ts
}

func (t Timestamp) Time() time.Time { return time.Time(t) }

func (t Timestamp) String() string { return time.Time(t).Format(offsetLayout) }

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts RFC 3339 only. Model output goes through ParseLoose instead.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	*t = Timestamp(parsed)
	return nil
}

// looseLayouts are accepted from model output. Layouts without an offset are read in the server location.
var looseLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseLoose reads s in any of the accepted layouts and converts the result into loc.
// A bare date resolves to 09:00.
func ParseLoose(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range looseLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), true
		}
	}
	if d, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return d.Add(9 * time.Hour), true
	}
	return time.Time{}, false
}
