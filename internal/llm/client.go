package llm

import (
	"context"
	"os"
	"strconv"
	"time"
)

// Message is one conversation turn in the completions wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is the completion service contract: full turn history in, single
// text reply out. Failures surface as a generic connectivity error; retries
// are the caller's responsibility.
type Client interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Config carries the transport settings for an OpenAI-compatible endpoint.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// ConfigFromEnv assembles transport settings from the environment. The
// Mistral platform speaks the OpenAI chat-completions dialect, so one client
// covers both.
func ConfigFromEnv() Config {
	cfg := Config{
		APIKey:  os.Getenv("MISTRAL_API_KEY"),
		BaseURL: os.Getenv("LLM_BASE_URL"),
		Model:   os.Getenv("LLM_MODEL"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.mistral.ai/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "mistral-large-latest"
	}
	if raw := os.Getenv("LLM_TIMEOUT_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}
	return cfg
}
