package llmparse

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"smart-todo/pkg/llmprovider"
)

var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// Complete performs one bounded model call and returns the completion text.
// Every failure, including a panic inside the provider, is reported as ErrRetrieval.
func Complete(ctx context.Context, provider llmprovider.Provider, req *llmprovider.Request, timeout time.Duration) (text string, err error) {
	if provider == nil {
		return "", fmt.Errorf("%w: no provider configured", ErrRetrieval)
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: provider panic: %v", ErrRetrieval, r)
		}
	}()

	resp, err := provider.GenerateContent(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRetrieval, err)
	}
	text = strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", ErrRetrieval)
	}
	return text, nil
}

// ExtractJSON decodes the JSON object in a completion. A fenced code block wins;
// otherwise the whole trimmed text must be the object.
func ExtractJSON(text string) (map[string]any, error) {
	payload := strings.TrimSpace(text)
	if m := fencePattern.FindStringSubmatch(payload); m != nil {
		payload = strings.TrimSpace(m[1])
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(payload), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: null payload", ErrDecode)
	}
	return obj, nil
}
