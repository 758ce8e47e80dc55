package llmparse

import "smart-todo/internal/draft"

// Outcome classifies a model backed parse. Ambiguity is still a success.
type Outcome string

const (
	OutcomeSuccess          Outcome = "success"
	OutcomeRetrievalFailure Outcome = "retrieval_failure"
	OutcomeDecodeFailure    Outcome = "decode_failure"
)

// FallbackMode picks the draft used when the model path fails.
type FallbackMode string

const (
	FallbackDegraded FallbackMode = "degraded"
	FallbackRules    FallbackMode = "rules"
)

// Result is the outcome of one model backed parse. Draft is always usable:
// on failure it holds the fallback draft and Err holds the cause.
type Result struct {
	Draft   draft.ParsedDraft
	Outcome Outcome
	Err     error
}

// OK reports a draft that came from the model.
func (r Result) OK() bool { return r.Outcome == OutcomeSuccess }
