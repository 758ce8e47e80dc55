package config

import (
	"testing"
	"time"
)

func TestValidateLLMConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LLMConfig
		wantErr bool
	}{
		{"valid", LLMConfig{Providers: []ProviderConfig{{Name: "deepseek", Enabled: true, Priority: 1}}}, false},
		{"missing name", LLMConfig{Providers: []ProviderConfig{{Enabled: true, Priority: 1}}}, true},
		{"zero priority", LLMConfig{Providers: []ProviderConfig{{Name: "qwen", Enabled: true}}}, true},
		{"duplicate priority", LLMConfig{Providers: []ProviderConfig{
			{Name: "qwen", Enabled: true, Priority: 1},
			{Name: "gemini", Enabled: true, Priority: 1},
		}}, true},
		{"disabled ignored", LLMConfig{Providers: []ProviderConfig{{Name: "qwen", Enabled: false}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLLMConfig(&tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateLLMConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLLMConfigDurations(t *testing.T) {
	retry, total, req, err := LLMConfig{RetryDelay: "1s", MaxTotalTimeout: "1m", RequestTimeout: ""}.Durations()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if retry != time.Second || total != time.Minute || req != 0 {
		t.Errorf("got %v %v %v", retry, total, req)
	}

	if _, _, _, err := (LLMConfig{RequestTimeout: "soon"}).Durations(); err == nil {
		t.Error("expected error for invalid duration")
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("SMART_TODO_TEST_KEY", "secret")

	if got := expandEnvVar("${SMART_TODO_TEST_KEY}"); got != "secret" {
		t.Errorf("expandEnvVar() = %q", got)
	}
	if got := expandEnvVar("plain"); got != "plain" {
		t.Errorf("expandEnvVar() = %q", got)
	}
}
