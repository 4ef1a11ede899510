package llm

import (
	"context"
	"fmt"
)

// NewBackend creates a Backend from configuration, wrapped with call
// logging (when a CallLog is given) and retry middleware.
func NewBackend(ctx context.Context, cfg Config, callLog CallLog) (Backend, error) {
	var base Backend
	var err error

	switch cfg.Backend {
	case "anthropic":
		base, err = NewAnthropicBackend(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIBackend(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiBackend(ctx, cfg.Gemini)
	case "groq":
		base, err = NewGroqBackend(cfg.Groq)
	case "openrouter":
		base, err = NewOpenRouterBackend(cfg.OpenRouter)
	case "claude-cli":
		base = NewClaudeCLIBackend(cfg.ClaudeCLI)
	case "mock":
		return NewMockBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s backend: %w", cfg.Backend, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	if callLog != nil {
		base = WithCallLog(base, cfg.Backend, callLog)
	}
	return WithRetry(base, cfg.Retry), nil
}

// Names lists the selectable backend names.
func Names() []string {
	return []string{"anthropic", "openai", "gemini", "groq", "openrouter", "claude-cli", "mock"}
}
