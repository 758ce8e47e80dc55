package draft

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestNormalize_Defaults(t *testing.T) {
	d := Normalize(map[string]any{}, NormalizeOptions{Set: OneShot})

	assert.Equal(t, PlaceholderTitle, d.Title)
	assert.Equal(t, PriorityMedium, d.Priority)
	assert.Equal(t, CategoryLife, d.Category)
	assert.Equal(t, 0.5, d.Confidence)
	assert.Empty(t, d.Tags)
	assert.NotNil(t, d.Tags)
	assert.Empty(t, d.UncertainFields)
	assert.Nil(t, d.DueDate)
	assert.Nil(t, d.EstimatedMinutes)
}

func TestNormalize_FieldLevelMalformation(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	obj := decode(t, `{
		"title": "  写周报 ",
		"priority": "URGENT",
		"category": "finance",
		"dueDate": "2025-03-07T23:59:00+08:00",
		"estimatedMinutes": "45",
		"tags": ["工作", 3, null, "周报"],
		"confidence": 1.7,
		"uncertainFields": ["dueDate", "mood", 5]
	}`)

	d := Normalize(obj, NormalizeOptions{Set: Conversational, Location: loc})

	assert.Equal(t, "写周报", d.Title)
	assert.Equal(t, PriorityUrgent, d.Priority)
	assert.Equal(t, CategoryOther, d.Category)
	require.NotNil(t, d.DueDate)
	assert.True(t, time.Date(2025, 3, 7, 23, 59, 0, 0, loc).Equal(d.DueDate.Time()))
	require.NotNil(t, d.EstimatedMinutes)
	assert.Equal(t, 45, *d.EstimatedMinutes)
	assert.Equal(t, []string{"工作", "周报"}, d.Tags)
	assert.Equal(t, 1.0, d.Confidence)
	assert.Equal(t, []Field{FieldDueDate}, d.UncertainFields)
}

func TestNormalize_WrongTypesFallBack(t *testing.T) {
	obj := decode(t, `{"title": 12, "priority": "asap", "tags": "x", "confidence": "high",
		"uncertainFields": "all", "estimatedMinutes": 0, "dueDate": "soon"}`)

	d := Normalize(obj, NormalizeOptions{Set: OneShot})

	assert.Equal(t, PlaceholderTitle, d.Title)
	assert.Equal(t, PriorityMedium, d.Priority)
	assert.Equal(t, CategoryLife, d.Category)
	assert.Empty(t, d.Tags)
	assert.Equal(t, 0.5, d.Confidence)
	assert.Empty(t, d.UncertainFields)
	assert.Nil(t, d.EstimatedMinutes)
	assert.Nil(t, d.DueDate)
}

func TestDegraded(t *testing.T) {
	raw := strings.Repeat("很", 130)
	d := Degraded(raw, OneShot)

	assert.Equal(t, 0.3, d.Confidence)
	assert.Equal(t, []Field{FieldTitle, FieldPriority, FieldCategory, FieldDueDate}, d.UncertainFields)
	assert.Equal(t, strings.Repeat("很", 100), d.Title)
	assert.Equal(t, PriorityMedium, d.Priority)
	assert.Equal(t, CategoryLife, d.Category)

	assert.Equal(t, "买牛奶", Degraded("买牛奶", Conversational).Title)
	assert.Equal(t, CategoryOther, Degraded("买牛奶", Conversational).Category)
}

func TestCategorySet_Resolve(t *testing.T) {
	assert.Equal(t, CategoryPersonal, Conversational.Resolve("life"))
	assert.Equal(t, CategoryShopping, Conversational.Resolve("Shopping"))
	assert.Equal(t, CategoryOther, Conversational.Resolve("travel"))
	assert.Equal(t, CategoryLife, OneShot.Resolve("personal"))
	assert.Equal(t, CategoryFinance, OneShot.Resolve("finance"))
	assert.Equal(t, "work|life|study|health|finance|social", OneShot.Labels())
}

func TestLookupCategorySet(t *testing.T) {
	set, err := LookupCategorySet("")
	require.NoError(t, err)
	assert.Equal(t, SetConversational, set.Name)

	set, err = LookupCategorySet("ONESHOT")
	require.NoError(t, err)
	assert.Equal(t, SetOneShot, set.Name)

	_, err = LookupCategorySet("emoji")
	assert.ErrorIs(t, err, ErrUnknownCategorySet)
}

func TestClone_DoesNotAlias(t *testing.T) {
	m := 30
	d := ParsedDraft{Title: "a", Tags: []string{"x"}, EstimatedMinutes: &m, DueDate: NewTimestamp(time.Now())}
	c := d.Clone()
	c.Tags[0] = "y"
	*c.EstimatedMinutes = 60

	assert.Equal(t, "x", d.Tags[0])
	assert.Equal(t, 30, *d.EstimatedMinutes)
}
