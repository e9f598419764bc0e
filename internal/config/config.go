package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Config is read from the environment (and an optional .env file).
type Config struct {
	Port    string `mapstructure:"port"`
	GinMode string `mapstructure:"gin_mode"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	CompletionProvider string        `mapstructure:"completion_provider"`
	GeminiAPIKey       string        `mapstructure:"gemini_api_key"`
	GeminiModel        string        `mapstructure:"gemini_model"`
	OpenAIAPIKey       string        `mapstructure:"openai_api_key"`
	OpenAIModel        string        `mapstructure:"openai_model"`
	SearchEnabled      bool          `mapstructure:"search_enabled"`
	GenerationTimeout  time.Duration `mapstructure:"generation_timeout"`
	PromptLanguage     string        `mapstructure:"prompt_language"`
	DisplayLocale      string        `mapstructure:"display_locale"`

	SessionSecret  string        `mapstructure:"session_secret"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	SessionBackend string        `mapstructure:"session_backend"`
	RedisURL       string        `mapstructure:"redis_url"`

	PostgresURL string `mapstructure:"postgres_url"`

	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute"`
	RateLimitBurst     int `mapstructure:"rate_limit_burst"`
}

var defaults = map[string]any{
	"port":                  "8080",
	"gin_mode":              "release",
	"log_level":             "info",
	"log_format":            "json",
	"completion_provider":   ProviderGemini,
	"gemini_api_key":        "",
	"gemini_model":          "gemini-2.5-flash",
	"openai_api_key":        "",
	"openai_model":          "gpt-4o-mini-search-preview",
	"search_enabled":        true,
	"generation_timeout":    "0s",
	"prompt_language":       "id",
	"display_locale":        "id",
	"session_secret":        "",
	"session_ttl":           "24h",
	"session_backend":       SessionBackendMemory,
	"redis_url":             "",
	"postgres_url":          "",
	"rate_limit_per_minute": 6,
	"rate_limit_burst":      2,
}

// Load reads .env if present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the config from environment variables only.
func FromEnv() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg.normalize()

	// A per-process key only works while sessions live in this process.
	if cfg.SessionSecret == "" && cfg.SessionBackend != SessionBackendRedis {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.SessionSecret = secret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.CompletionProvider = strings.ToLower(strings.TrimSpace(c.CompletionProvider))
	c.SessionBackend = strings.ToLower(strings.TrimSpace(c.SessionBackend))
	c.PromptLanguage = strings.ToLower(strings.TrimSpace(c.PromptLanguage))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
}

func (c *Config) Validate() error {
	switch c.CompletionProvider {
	case ProviderGemini:
		if strings.TrimSpace(c.GeminiAPIKey) == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when using the gemini provider")
		}
	case ProviderOpenAI:
		if strings.TrimSpace(c.OpenAIAPIKey) == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when using the openai provider")
		}
	default:
		return fmt.Errorf("unsupported completion provider %q: use gemini or openai", c.CompletionProvider)
	}

	switch c.SessionBackend {
	case SessionBackendMemory:
	case SessionBackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when SESSION_BACKEND=redis")
		}
		if strings.TrimSpace(c.SessionSecret) == "" {
			return fmt.Errorf("SESSION_SECRET is required when SESSION_BACKEND=redis")
		}
	default:
		return fmt.Errorf("unsupported session backend %q: use memory or redis", c.SessionBackend)
	}

	switch c.PromptLanguage {
	case "id", "en":
	default:
		return fmt.Errorf("unsupported prompt language %q: use id or en", c.PromptLanguage)
	}

	if c.GenerationTimeout < 0 {
		return fmt.Errorf("GENERATION_TIMEOUT cannot be negative")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.RateLimitPerMinute < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("rate limits cannot be negative")
	}
	return nil
}

// CompletionAPIKey returns the key of the selected provider.
func (c *Config) CompletionAPIKey() string {
	if c.CompletionProvider == ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// CompletionModel returns the model of the selected provider.
func (c *Config) CompletionModel() string {
	if c.CompletionProvider == ProviderOpenAI {
		return c.OpenAIModel
	}
	return c.GeminiModel
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
