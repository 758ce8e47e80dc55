package dialogue

import (
	"strconv"
	"strings"
	"time"

	"smart-todo/internal/draft"
)

// modelReply is the decoded {text, taskDraft, shouldCreate} object.
type modelReply struct {
	Text         string
	Draft        *draft.ParsedDraft
	HasDraftKey  bool
	ShouldCreate bool
}

// decodeReply maps the model's JSON object defensively. A missing taskDraft key means
// "unchanged", while an explicit null means "cleared".
func decodeReply(obj map[string]any, set draft.CategorySet, loc *time.Location) modelReply {
	r := modelReply{Text: ReplyNotUnderstood}

	if s, ok := obj["text"].(string); ok && strings.TrimSpace(s) != "" {
		r.Text = strings.TrimSpace(s)
	}

	if raw, ok := obj["taskDraft"]; ok {
		r.HasDraftKey = true
		if m, ok := raw.(map[string]any); ok {
			d := draft.Normalize(m, draft.NormalizeOptions{Set: set, Location: loc})
			r.Draft = &d
		}
	}

	r.ShouldCreate = truthy(obj["shouldCreate"])
	return r
}

// truthy reads a loosely typed flag. Strings must spell a boolean; anything unreadable is false.
func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case string:
		ok, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && ok
	}
	return false
}
