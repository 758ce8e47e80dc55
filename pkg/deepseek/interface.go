package deepseek

import "context"

// IDeepSeek defines the interface for an OpenAI-compatible chat completion client.
// DeepSeek is the default endpoint; any compatible base URL works.
type IDeepSeek interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	Model() string
}
