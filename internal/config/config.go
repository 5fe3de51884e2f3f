package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Credential for the Google translation endpoint. Required unless the
	// local provider is selected.
	GoogleAPIKey string `envconfig:"GOOGLE_API_KEY" default:""`

	TranslationProvider string `envconfig:"TRANSLATION_PROVIDER" default:"google"`
	TranslationEndpoint string `envconfig:"TRANSLATION_ENDPOINT" default:""`
	TranslationModel    string `envconfig:"TRANSLATION_MODEL" default:""`
	GatewayTimeoutSecs  int    `envconfig:"GATEWAY_TIMEOUT_SECONDS" default:"30"`

	HistoryFile     string `envconfig:"HISTORY_FILE" default:"history.json"`
	HistoryTTLHours int    `envconfig:"HISTORY_TTL_HOURS" default:"48"`
	CleanupInterval int    `envconfig:"CLEANUP_INTERVAL_MINUTES" default:"30"`

	FontPath string `envconfig:"FONT_PATH" default:"static/amiri-regular.ttf"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	provider := strings.ToLower(strings.TrimSpace(c.TranslationProvider))
	if provider == "" {
		return fmt.Errorf("TRANSLATION_PROVIDER is required")
	}
	if provider == "google" && strings.TrimSpace(c.GoogleAPIKey) == "" {
		return fmt.Errorf("GOOGLE_API_KEY is required when TRANSLATION_PROVIDER=google")
	}
	if strings.TrimSpace(c.HistoryFile) == "" {
		return fmt.Errorf("HISTORY_FILE is required")
	}
	if c.HistoryTTLHours < 1 {
		return fmt.Errorf("HISTORY_TTL_HOURS must be >= 1")
	}
	if c.CleanupInterval < 0 {
		return fmt.Errorf("CLEANUP_INTERVAL_MINUTES must be >= 0")
	}
	if c.GatewayTimeoutSecs < 1 {
		return fmt.Errorf("GATEWAY_TIMEOUT_SECONDS must be >= 1")
	}
	return nil
}
