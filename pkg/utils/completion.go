package utils

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Completion is the raw reply of a text-generation call. Sources lists the
// web pages the provider grounded the answer on, when it reports them.
type Completion struct {
	Text    string
	Sources []string
}

// CompletionClientInterface sends one prompt and returns the raw text.
// Every failure is a *GenerationError.
type CompletionClientInterface interface {
	Complete(ctx context.Context, prompt string) (Completion, error)
	Provider() string
}

type CompletionConfig struct {
	Provider      string
	APIKey        string
	Model         string
	SearchEnabled bool
	Timeout       time.Duration
}

// NewCompletionClient Factory function to create either OpenAI or Gemini client based on config
func NewCompletionClient(ctx context.Context, cfg CompletionConfig) (CompletionClientInterface, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%s: API key is required", cfg.Provider)
	}

	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAICompletionClient(cfg), nil
	case "gemini":
		return NewGeminiCompletionClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported completion provider: %s. Use 'openai' or 'gemini'", cfg.Provider)
	}
}

// withOptionalTimeout bounds the call only when a timeout is configured.
func withOptionalTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
