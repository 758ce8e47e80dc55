package qwen

import (
	"context"
	"time"
)

const (
	DefaultModel = "qwen-plus"
	// DefaultBaseURL is the mainland DashScope OpenAI-compatible endpoint.
	DefaultBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
	DefaultTimeout = 20 * time.Second
)

// Client talks to the DashScope chat completions API. Safe for concurrent use.
type Client interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	Model() string
}

// New validates cfg and returns a client
func New(cfg Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newQwenImpl(cfg), nil
}
