package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	RateLimit  RateLimitConfig

	// Extraction and dialogue
	LLM      LLMConfig
	Parser   ParserConfig
	Dialogue DialogueConfig

	// Storage and integrations
	Database       DatabaseConfig
	Telegram       TelegramConfig
	GoogleCalendar GoogleCalendarConfig
}

// EnvironmentConfig names the deployment environment (development, production).
type EnvironmentConfig struct {
	Name string
}

// HTTPServerConfig is the HTTP listener configuration.
type HTTPServerConfig struct {
	Port int
	Mode string
}

// LoggerConfig is the zap logger configuration.
type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// RateLimitConfig bounds API requests per caller.
type RateLimitConfig struct {
	RequestsPerMin int
}

// ParserConfig controls one-shot extraction.
type ParserConfig struct {
	Timezone    string
	CategorySet string
	// Fallback is "degraded" or "rules"; it picks the draft returned when the model path fails.
	Fallback            string
	RulesFile           string
	AutoCreateThreshold float64
}

// DialogueConfig controls conversation sessions.
type DialogueConfig struct {
	SessionTTL  time.Duration
	MaxSessions int
	// MaxHistoryTurns caps the turns sent to the model; 0 sends the full history.
	MaxHistoryTurns int
}

// DatabaseConfig points at the sqlite task store.
type DatabaseConfig struct {
	Path string
}

// TelegramConfig enables the Telegram bot when Token is set.
type TelegramConfig struct {
	BotToken   string
	WebhookURL string
	// SecretToken is echoed by Telegram in X-Telegram-Bot-Api-Secret-Token on every webhook call.
	SecretToken string
	// NgrokAPI is the local ngrok agent, e.g. http://ngrok:4040. It is asked for a public
	// URL when WebhookURL is empty.
	NgrokAPI string
}

// GoogleCalendarConfig enables calendar events for created tasks.
type GoogleCalendarConfig struct {
	CredentialsPath string
	// TokenPath holds the OAuth token saved by `smarttodo gcal-auth`.
	TokenPath       string
	CalendarID      string
	ReminderMinutes int64
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
	RequestTimeout  string           `yaml:"request_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")
	cfg.RateLimit.RequestsPerMin = viper.GetInt("rate_limit.requests_per_min")

	// Parser & dialogue
	cfg.Parser.Timezone = viper.GetString("parser.timezone")
	cfg.Parser.CategorySet = viper.GetString("parser.category_set")
	cfg.Parser.Fallback = viper.GetString("parser.fallback")
	cfg.Parser.RulesFile = viper.GetString("parser.rules_file")
	cfg.Parser.AutoCreateThreshold = viper.GetFloat64("parser.auto_create_threshold")
	cfg.Dialogue.SessionTTL = viper.GetDuration("dialogue.session_ttl")
	cfg.Dialogue.MaxSessions = viper.GetInt("dialogue.max_sessions")
	cfg.Dialogue.MaxHistoryTurns = viper.GetInt("dialogue.max_history_turns")

	if cfg.Parser.Fallback != FallbackDegraded && cfg.Parser.Fallback != FallbackRules {
		return nil, fmt.Errorf("parser.fallback must be %q or %q, got %q", FallbackDegraded, FallbackRules, cfg.Parser.Fallback)
	}

	// Storage & integrations
	cfg.Database.Path = viper.GetString("database.path")

	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.SecretToken = viper.GetString("telegram.secret_token")
	cfg.Telegram.NgrokAPI = viper.GetString("telegram.ngrok_api")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.TokenPath = viper.GetString("google_calendar.token_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	cfg.GoogleCalendar.ReminderMinutes = viper.GetInt64("google_calendar.reminder_minutes")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")
	cfg.LLM.RequestTimeout = viper.GetString("llm.request_timeout")

	if viper.IsSet("llm.providers") {
		if providersList, ok := viper.Get("llm.providers").([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					})
				}
			}
		}
	}

	// An empty provider list is valid: the service then answers from the rule parser only.
	if len(cfg.LLM.Providers) > 0 {
		if err := validateLLMConfig(&cfg.LLM); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

const (
	FallbackDegraded = "degraded"
	FallbackRules    = "rules"
)

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "development")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("rate_limit.requests_per_min", 60)

	viper.SetDefault("parser.timezone", "Asia/Shanghai")
	viper.SetDefault("parser.category_set", "conversational")
	viper.SetDefault("parser.fallback", FallbackDegraded)
	viper.SetDefault("parser.auto_create_threshold", 0.7)

	viper.SetDefault("dialogue.session_ttl", "30m")
	viper.SetDefault("dialogue.max_sessions", 10000)
	viper.SetDefault("dialogue.max_history_turns", 0)

	viper.SetDefault("database.path", "smart-todo.db")
	viper.SetDefault("google_calendar.token_path", "token.json")
	viper.SetDefault("google_calendar.calendar_id", "primary")
	viper.SetDefault("google_calendar.reminder_minutes", 15)

	// One outbound call per request unless configured otherwise.
	viper.SetDefault("llm.fallback_enabled", false)
	viper.SetDefault("llm.retry_attempts", 1)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s")
	viper.SetDefault("llm.request_timeout", "20s")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") {
		return value
	}

	envVar := value[2 : len(value)-1]
	if envValue := viper.GetString(envVar); envValue != "" {
		return envValue
	}
	if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
		return envValue
	}
	return os.Getenv(envVar)
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if !provider.Enabled {
			continue
		}
		if provider.Priority <= 0 {
			return fmt.Errorf("provider %s: priority must be positive", provider.Name)
		}
		if priorityMap[provider.Priority] {
			return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
		}
		priorityMap[provider.Priority] = true
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		switch n := val.(type) {
		case int:
			return n
		case float64:
			return int(n)
		}
	}
	return 0
}

// Durations parses the LLM timing strings. Empty values yield zero.
func (c LLMConfig) Durations() (retryDelay, maxTotal, request time.Duration, err error) {
	parse := func(name, s string) (time.Duration, error) {
		if s == "" {
			return 0, nil
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("llm.%s: %w", name, err)
		}
		return d, nil
	}
	if retryDelay, err = parse("retry_delay", c.RetryDelay); err != nil {
		return
	}
	if maxTotal, err = parse("max_total_timeout", c.MaxTotalTimeout); err != nil {
		return
	}
	request, err = parse("request_timeout", c.RequestTimeout)
	return
}
