package extract

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-todo/internal/draft"
	"smart-todo/pkg/datemath"
)

func TestLoadRuleSet_OverridesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
relative_days:
  - token: tomorrow
    offset: 1
priorities:
  - pattern: "asap|urgent"
    priority: urgent
`), 0o600))

	rules, err := LoadRuleSet(path)
	require.NoError(t, err)

	cal := datemath.NewCalendarIn(time.UTC)
	now := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	d := NewParser(rules, draft.Conversational, cal).Parse("tomorrow asap 开会", now)

	assert.Equal(t, draft.PriorityUrgent, d.Priority)
	assert.Equal(t, draft.CategoryWork, d.Category)
	require.NotNil(t, d.DueDate)
	assert.True(t, now.AddDate(0, 0, 1).Equal(d.DueDate.Time()))
}

func TestParseRuleSet_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad regex":      "priorities:\n  - pattern: \"(\"\n    priority: high\n",
		"bad priority":   "priorities:\n  - pattern: \"x\"\n    priority: critical\n",
		"bad weekday":    "weekdays:\n  - token: x\n    weekday: 9\n",
		"clock groups":   "clock_pattern: \"\\\\d+点\"\n",
		"not yaml table": "- just\n- a list\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRuleSet([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidRuleSet)
		})
	}
}

func TestLoadRuleSet_MissingFile(t *testing.T) {
	_, err := LoadRuleSet(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrReadRuleSet)
}
