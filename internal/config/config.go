// ABOUTME: Configuration loading and validation for gabble
// ABOUTME: YAML with env var expansion plus flat env overrides for secrets

package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the complete gabble configuration.
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	History  HistoryConfig  `yaml:"history"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// TelegramConfig holds the transport settings.
type TelegramConfig struct {
	Token   string        `yaml:"token"`
	Webhook WebhookConfig `yaml:"webhook"`
}

// WebhookConfig selects webhook delivery instead of long polling.
type WebhookConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"` // e.g. ":8080"
	PublicURL  string `yaml:"public_url"`  // externally reachable base URL
	Secret     string `yaml:"secret"`      // optional shared secret token
}

// OpenAIConfig holds the generative backend settings.
type OpenAIConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	ChatModel  string `yaml:"chat_model"`
	ImageModel string `yaml:"image_model"`
}

// HistoryConfig controls the per-conversation trimming policy.
// MaxTurns of 0 keeps history unbounded for the process lifetime.
type HistoryConfig struct {
	MaxTurns int `yaml:"max_turns"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// envOverrides are flat environment variables applied after file parsing so
// secrets need not appear in the config file at all.
type envOverrides struct {
	TelegramToken string `env:"GABBLE_TELEGRAM_TOKEN"`
	OpenAIAPIKey  string `env:"GABBLE_OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"GABBLE_OPENAI_BASE_URL"`
}

// Load reads, expands, and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse builds a Config from raw YAML, applying env expansion, env
// overrides, and validation.
func Parse(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return nil, fmt.Errorf("reading env overrides: %w", err)
	}
	cfg.applyOverrides(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyOverrides(o envOverrides) {
	if o.TelegramToken != "" {
		c.Telegram.Token = o.TelegramToken
	}
	if o.OpenAIAPIKey != "" {
		c.OpenAI.APIKey = o.OpenAIAPIKey
	}
	if o.OpenAIBaseURL != "" {
		c.OpenAI.BaseURL = o.OpenAIBaseURL
	}
}

// expandEnvVars replaces ${VAR_NAME} patterns with environment values.
// Unset variables expand to the empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(re.FindStringSubmatch(match)[1])
	})
}

// Validate checks that all required fields are present and consistent.
// Returns an error describing the first failure encountered.
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is required (or set GABBLE_TELEGRAM_TOKEN)")
	}
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai.api_key is required (or set GABBLE_OPENAI_API_KEY)")
	}
	if c.Telegram.Webhook.Enabled {
		if c.Telegram.Webhook.ListenAddr == "" {
			return fmt.Errorf("telegram.webhook.listen_addr is required when webhook is enabled")
		}
		if c.Telegram.Webhook.PublicURL == "" {
			return fmt.Errorf("telegram.webhook.public_url is required when webhook is enabled")
		}
	}
	if c.History.MaxTurns < 0 {
		return fmt.Errorf("history.max_turns must not be negative")
	}
	return nil
}
