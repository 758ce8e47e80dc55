package extract

import (
	"math"

	"smart-todo/internal/draft"
)

const (
	baseConfidence = 0.5
	confidentStep  = 0.15
)

// Score turns the three extractor flags into a confidence and the uncertain field list.
func Score(dateConfident, priorityConfident, categoryConfident bool) (float64, []draft.Field) {
	uncertain := []draft.Field{}
	count := 0
	for _, f := range []struct {
		field     draft.Field
		confident bool
	}{
		{draft.FieldDueDate, dateConfident},
		{draft.FieldPriority, priorityConfident},
		{draft.FieldCategory, categoryConfident},
	} {
		if f.confident {
			count++
			continue
		}
		uncertain = append(uncertain, f.field)
	}

	c := baseConfidence + confidentStep*float64(count)
	return math.Round(c*100) / 100, uncertain
}
