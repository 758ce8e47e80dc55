package llmprovider_test

import (
	"errors"
	"testing"

	"smart-todo/config"
	"smart-todo/pkg/llmprovider"
)

func TestInitializeProviders_PriorityOrdering(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "gemini", Enabled: true, Priority: 3, APIKey: "g", Model: "gemini-2.5-flash"},
			{Name: "deepseek", Enabled: true, Priority: 1, APIKey: "d", Model: "deepseek-chat", Timeout: "10s"},
			{Name: "qwen", Enabled: true, Priority: 2, APIKey: "q", Model: "qwen-plus"},
			{Name: "openai", Enabled: false, Priority: 4, APIKey: "o", Model: "gpt"},
		},
	}

	providers, err := llmprovider.InitializeProviders(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"deepseek", "qwen", "gemini"}
	if len(providers) != len(want) {
		t.Fatalf("expected %d providers, got %d", len(want), len(providers))
	}
	for i, name := range want {
		if providers[i].Name() != name {
			t.Errorf("provider %d: expected %s, got %s", i, name, providers[i].Name())
		}
	}
}

func TestInitializeProviders_SkipsBrokenProvider(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "mystery", Enabled: true, Priority: 1, APIKey: "x", Model: "m"},
			{Name: "openai", Enabled: true, Priority: 2, APIKey: "x", Model: "m"},
			{Name: "qwen", Enabled: true, Priority: 3, APIKey: "q", Model: "qwen-plus"},
		},
	}

	providers, err := llmprovider.InitializeProviders(cfg)
	if err == nil {
		t.Error("expected an error describing the skipped providers")
	}
	if len(providers) != 1 || providers[0].Name() != "qwen" {
		t.Fatalf("expected only qwen, got %v", providers)
	}
}

func TestInitializeProviders_NoneEnabled(t *testing.T) {
	_, err := llmprovider.InitializeProviders(&config.LLMConfig{})
	if !errors.Is(err, llmprovider.ErrNoProvidersConfigured) {
		t.Errorf("expected ErrNoProvidersConfigured, got %v", err)
	}
}
