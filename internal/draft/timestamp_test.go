package draft

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_RoundTrip(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	for _, in := range []time.Time{
		time.Date(2025, 3, 5, 15, 0, 0, 0, loc),
		time.Date(2025, 3, 5, 7, 30, 0, 0, time.UTC),
		time.Date(2025, 3, 4, 10, 20, 30, 123456789, loc),
	} {
		b, err := json.Marshal(NewTimestamp(in))
		require.NoError(t, err)

		var out Timestamp
		require.NoError(t, json.Unmarshal(b, &out))
		assert.True(t, in.Equal(out.Time()), "round trip of %s gave %s", in, out)
	}
}

func TestTimestamp_ExplicitOffset(t *testing.T) {
	b, err := json.Marshal(NewTimestamp(time.Date(2025, 3, 5, 7, 30, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-05T07:30:00+00:00"`, string(b))

	b, err = json.Marshal(NewTimestamp(time.Date(2025, 3, 5, 15, 0, 0, 0, time.FixedZone("", 8*3600))))
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-05T15:00:00+08:00"`, string(b))
}

func TestTimestamp_RejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"tomorrow"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`42`), &ts))
}

func TestParseLoose(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2025-03-05T15:00:00+08:00", time.Date(2025, 3, 5, 15, 0, 0, 0, loc), true},
		{"2025-03-05T07:00:00Z", time.Date(2025, 3, 5, 15, 0, 0, 0, loc), true},
		{"2025-03-05 15:00", time.Date(2025, 3, 5, 15, 0, 0, 0, loc), true},
		{"2025-03-05", time.Date(2025, 3, 5, 9, 0, 0, 0, loc), true},
		{"下周", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLoose(tt.in, loc)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %s", got)
				_, off := got.Zone()
				assert.Equal(t, 8*3600, off)
			}
		})
	}
}
