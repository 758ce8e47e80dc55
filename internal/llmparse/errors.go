package llmparse

import "errors"

var (
	// ErrRetrieval covers transport errors, non-2xx statuses, timeouts and empty completions.
	ErrRetrieval = errors.New("model retrieval failed")
	// ErrDecode means the completion held no JSON object, even after code fence stripping.
	ErrDecode = errors.New("model output is not a JSON object")
)
