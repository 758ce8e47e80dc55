package dialogue

import (
	"encoding/json"
	"strings"

	"smart-todo/internal/draft"
	"smart-todo/internal/llmparse"
)

func buildSystemPrompt(tc llmparse.TimeContext, set draft.CategorySet) string {
	pairs := append(tc.Pairs(),
		"{{categories}}", set.Labels(),
		"{{categoryRules}}", llmparse.CategoryRules(set, "- %s → %s"),
		"{{defaultCategory}}", string(set.Default),
	)
	return strings.NewReplacer(pairs...).Replace(systemPromptTemplate)
}

func draftContext(d *draft.ParsedDraft) string {
	b, err := json.Marshal(d)
	if err != nil {
		return draftContextPrefix + "{}"
	}
	return draftContextPrefix + string(b)
}
