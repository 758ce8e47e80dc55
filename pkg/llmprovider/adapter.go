package llmprovider

import (
	"context"
	"fmt"

	"smart-todo/pkg/deepseek"
	"smart-todo/pkg/gemini"
	"smart-todo/pkg/qwen"
)

// GeminiAdapter adapts pkg/gemini to llmprovider.Provider interface
type GeminiAdapter struct {
	client gemini.Client
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.Client) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	gReq := &gemini.Request{
		SystemInstruction: systemText(req),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
		JSONResponse:      req.JSONResponse,
	}
	for _, m := range req.Messages {
		if m.Role == RoleSystem {
			gReq.SystemInstruction = joinSystem(gReq.SystemInstruction, m.Text())
			continue
		}
		gReq.Messages = append(gReq.Messages, gemini.Content{Role: m.Role, Text: m.Text()})
	}

	resp, err := a.client.GenerateContent(ctx, gReq)
	if err != nil {
		return nil, err
	}

	return &Response{
		Content:      TextMessage(RoleAssistant, resp.Content.Text),
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (a *GeminiAdapter) Name() string  { return "gemini" }
func (a *GeminiAdapter) Model() string { return a.client.Model() }

// QwenAdapter adapts pkg/qwen to llmprovider.Provider interface
type QwenAdapter struct {
	client qwen.Client
}

// NewQwenAdapter creates a new Qwen adapter
func NewQwenAdapter(client qwen.Client) *QwenAdapter {
	return &QwenAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *QwenAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	qReq := &qwen.Request{
		SystemInstruction: systemText(req),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
		JSONResponse:      req.JSONResponse,
	}
	for _, m := range req.Messages {
		qReq.Messages = append(qReq.Messages, qwen.Content{Role: m.Role, Text: m.Text()})
	}

	resp, err := a.client.GenerateContent(ctx, qReq)
	if err != nil {
		return nil, err
	}

	return &Response{
		Content:      TextMessage(RoleAssistant, resp.Content.Text),
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (a *QwenAdapter) Name() string  { return "qwen" }
func (a *QwenAdapter) Model() string { return a.client.Model() }

// DeepSeekAdapter adapts pkg/deepseek to llmprovider.Provider interface.
// The same client serves any OpenAI-compatible endpoint, so the adapter carries its own name.
type DeepSeekAdapter struct {
	client deepseek.IDeepSeek
	name   string
}

// NewDeepSeekAdapter creates a new adapter reported under name
func NewDeepSeekAdapter(client deepseek.IDeepSeek, name string) *DeepSeekAdapter {
	if name == "" {
		name = "deepseek"
	}
	return &DeepSeekAdapter{client: client, name: name}
}

// GenerateContent implements Provider interface
func (a *DeepSeekAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	dsReq := &deepseek.Request{
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if sys := systemText(req); sys != "" {
		dsReq.Messages = append(dsReq.Messages, deepseek.Message{Role: RoleSystem, Content: sys})
	}
	for _, m := range req.Messages {
		dsReq.Messages = append(dsReq.Messages, deepseek.Message{Role: m.Role, Content: m.Text()})
	}
	if req.JSONResponse {
		dsReq.ResponseFormat = deepseek.JSONObject()
	}

	resp, err := a.client.GenerateContent(ctx, dsReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.name, err)
	}

	out := &Response{
		Content:      Message{Role: RoleAssistant},
		ProviderName: a.name,
		ModelName:    resp.Model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}
	if len(resp.Choices) > 0 {
		out.Content = TextMessage(RoleAssistant, resp.Choices[0].Message.Content)
	}
	return out, nil
}

func (a *DeepSeekAdapter) Name() string  { return a.name }
func (a *DeepSeekAdapter) Model() string { return a.client.Model() }

func systemText(req *Request) string {
	if req.SystemInstruction == nil {
		return ""
	}
	return req.SystemInstruction.Text()
}

func joinSystem(a, b string) string {
	if a == "" {
		return b
	}
	return a + "\n\n" + b
}
