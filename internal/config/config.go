package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Address          string        `mapstructure:"address"`
	Port             int           `mapstructure:"port"`
	Provider         string        `mapstructure:"provider"`
	OpenAIKey        string        `mapstructure:"openai_api_key"`
	OpenAIBaseURL    string        `mapstructure:"openai_base_url"`
	Model            string        `mapstructure:"model"`
	MaxTokens        int           `mapstructure:"max_tokens"`
	Temperature      float64       `mapstructure:"temperature"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
	MaxRetries       int           `mapstructure:"max_retries"`
	RetryDelay       time.Duration `mapstructure:"retry_delay"`
	TokenPrice       float64       `mapstructure:"token_price"`
	MaxMessageLength int           `mapstructure:"max_message_length"`
	DiagramSize      int           `mapstructure:"diagram_size"`
	TelemetryURL     string        `mapstructure:"telemetry_url"`
	LogLevel         string        `mapstructure:"log_level"`
}

var defaults = map[string]any{
	"address":            "",
	"port":               8000,
	"provider":           "openai",
	"openai_api_key":     "",
	"openai_base_url":    "",
	"model":              "gpt-3.5-turbo",
	"max_tokens":         650,
	"temperature":        0.4,
	"request_timeout":    "20s",
	"max_retries":        1,
	"retry_delay":        "500ms",
	"token_price":        0.0,
	"max_message_length": 2000,
	"diagram_size":       600,
	"telemetry_url":      "",
	"log_level":          "info",
}

// Load reads config.yaml from the working directory, ./config and any extra
// paths, then overlays GEOCHAT_* environment variables. OPENAI_API_KEY,
// OPENAI_BASE_URL and PORT are honoured as well.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	// allow environment variables like GEOCHAT_PORT
	v.SetEnvPrefix("GEOCHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindAliases(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		// don't fail if config file is missing, allow env-only config
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func bindAliases(v *viper.Viper) error {
	aliases := map[string][]string{
		"openai_api_key":  {"GEOCHAT_OPENAI_API_KEY", "OPENAI_API_KEY"},
		"openai_base_url": {"GEOCHAT_OPENAI_BASE_URL", "OPENAI_BASE_URL"},
		"port":            {"GEOCHAT_PORT", "PORT"},
	}
	for key, envs := range aliases {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("config: bind %s: %w", key, err)
		}
	}
	return nil
}

// Validate rejects values the service cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Address == "" && (c.Port <= 0 || c.Port > 65535):
		return fmt.Errorf("config: port %d out of range", c.Port)
	case c.MaxTokens <= 0:
		return fmt.Errorf("config: max_tokens must be positive, got %d", c.MaxTokens)
	case c.Temperature < 0 || c.Temperature > 2:
		return fmt.Errorf("config: temperature must be within [0, 2], got %g", c.Temperature)
	case c.RequestTimeout <= 0:
		return fmt.Errorf("config: request_timeout must be positive, got %s", c.RequestTimeout)
	case c.MaxRetries < 0:
		return fmt.Errorf("config: max_retries must not be negative, got %d", c.MaxRetries)
	}
	return nil
}

// ListenAddr is Address when set, otherwise ":<Port>".
func (c *Config) ListenAddr() string {
	if c.Address != "" {
		return c.Address
	}
	return fmt.Sprintf(":%d", c.Port)
}
