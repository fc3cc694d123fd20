package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/trustmesh/newsverify/src/shared/httpx"
)

// Client is the narrow prompt-in/text-out oracle interface the pipeline
// depends on. Responses are expected to contain JSON but are never trusted;
// parsing stays with the caller.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// FactoryConfig constructs a client without leaking provider details.
type FactoryConfig struct {
	Provider  string // "gemini" (default) or "openai"
	GeminiKey string
	OpenAIKey string
	// Defaults
	Model   string
	Timeout time.Duration
	Retry   httpx.RetryPolicy
}

// NewClient returns a provider-agnostic oracle client.
func NewClient(ctx context.Context, cfg FactoryConfig) (Client, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.Retry.Attempts == 0 {
		cfg.Retry = httpx.DefaultRetry
	}
	switch cfg.Provider {
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return newOpenAIClient(cfg), nil
	case "", "gemini":
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return newGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

func valueOrDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
