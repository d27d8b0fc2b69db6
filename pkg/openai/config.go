package openai

import (
	"github.com/caarlos0/env/v9"
)

// Config holds the OpenAI client settings, read from the environment.
// An empty APIKey disables the client; callers fall back to rule-based
// text generation.
type Config struct {
	APIKey     string `env:"OPENAI_API_KEY"`
	BaseURL    string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com"`
	Model      string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	TimeoutSec int    `env:"OPENAI_TIMEOUT_SEC" envDefault:"30"`
	MaxRetries int    `env:"OPENAI_MAX_RETRIES" envDefault:"3"`
}

// LoadConfig reads the client settings from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Enabled reports whether an API key is configured.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}
