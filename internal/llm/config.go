package llm

import (
	"fmt"
	"os"
	"os/exec"
	"time"
)

// Config holds all backend configuration.
type Config struct {
	// Backend selects which judgment backend to use.
	// Values: "anthropic", "openai", "gemini", "groq", "openrouter",
	// "claude-cli", "mock"
	Backend string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	Groq       GroqConfig
	OpenRouter OpenRouterConfig
	ClaudeCLI  ClaudeCLIConfig
	Retry      RetryConfig
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey    string
	Model     string // Default: "claude-haiku"
	MaxTokens int
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey    string
	Model     string // Default: "gpt-4o-mini"
	BaseURL   string // Optional. Override for OpenAI-compatible APIs.
	MaxTokens int
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey    string
	Model     string // Default: "gemini-flash"
	MaxTokens int
}

// GroqConfig holds Groq-specific configuration. Groq exposes an
// OpenAI-compatible API, so this rides on the OpenAI backend.
type GroqConfig struct {
	APIKey string
	Model  string // Default: "qwen/qwen3-32b"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey string
	Model  string // Default: "google/gemini-2.0-flash-exp"
}

// ClaudeCLIConfig configures the subprocess backend that shells out to
// the claude CLI.
type ClaudeCLIConfig struct {
	Bin     string // Default: "claude"
	Model   string
	Timeout time.Duration // Per-call timeout. Default: 30s.
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

const (
	groqBaseURL       = "https://api.groq.com/openai/v1"
	openRouterBaseURL = "https://openrouter.ai/api/v1"

	defaultMaxTokens = 256
)

// DefaultConfig returns a Config with sensible defaults. The backend is
// left unselected; callers either set one explicitly or probe with
// DiscoverConfig.
func DefaultConfig() Config {
	return Config{
		Anthropic: AnthropicConfig{
			Model:     "claude-haiku",
			MaxTokens: defaultMaxTokens,
		},
		OpenAI: OpenAIConfig{
			Model:     "gpt-4o-mini",
			MaxTokens: defaultMaxTokens,
		},
		Gemini: GeminiConfig{
			Model:     "gemini-flash",
			MaxTokens: defaultMaxTokens,
		},
		Groq: GroqConfig{
			Model: "qwen/qwen3-32b",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		},
		ClaudeCLI: ClaudeCLIConfig{
			Bin:     "claude",
			Model:   "claude-haiku-4-5-20251001",
			Timeout: 30 * time.Second,
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	return ApplyEnv(DefaultConfig())
}

// ApplyEnv overlays WHENCE_* environment variables onto cfg.
func ApplyEnv(cfg Config) Config {
	if b := os.Getenv("WHENCE_BACKEND"); b != "" {
		cfg.Backend = b
	}

	if k := os.Getenv("WHENCE_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("WHENCE_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := os.Getenv("WHENCE_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("WHENCE_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("WHENCE_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("WHENCE_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("WHENCE_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if k := os.Getenv("WHENCE_GROQ_API_KEY"); k != "" {
		cfg.Groq.APIKey = k
	}
	if m := os.Getenv("WHENCE_GROQ_MODEL"); m != "" {
		cfg.Groq.Model = m
	}

	if k := os.Getenv("WHENCE_OPENROUTER_API_KEY"); k != "" {
		cfg.OpenRouter.APIKey = k
	}
	if m := os.Getenv("WHENCE_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}

	if m := os.Getenv("WHENCE_CLAUDE_MODEL"); m != "" {
		cfg.ClaudeCLI.Model = m
	}

	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order and
// returns a Config for the first backend whose key is found. Falls back to
// the claude CLI when the binary is on PATH. Returns (Config{}, false) if
// nothing is configured.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Backend = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Backend = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Backend = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GROQ_API_KEY"); k != "" {
		cfg.Backend = "groq"
		cfg.Groq.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Backend = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}
	if _, err := exec.LookPath(cfg.ClaudeCLI.Bin); err == nil {
		cfg.Backend = "claude-cli"
		return cfg, true
	}

	return Config{}, false
}

// SetModel overrides the model of the currently selected backend.
func (c *Config) SetModel(model string) {
	switch c.Backend {
	case "anthropic":
		c.Anthropic.Model = model
	case "openai":
		c.OpenAI.Model = model
	case "gemini":
		c.Gemini.Model = model
	case "groq":
		c.Groq.Model = model
	case "openrouter":
		c.OpenRouter.Model = model
	case "claude-cli":
		c.ClaudeCLI.Model = model
	}
}

// Validate checks that the selected backend has its required API key set.
func (c Config) Validate() error {
	switch c.Backend {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("WHENCE_ANTHROPIC_API_KEY is required for the anthropic backend")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("WHENCE_OPENAI_API_KEY is required for the openai backend")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("WHENCE_GEMINI_API_KEY is required for the gemini backend")
		}
	case "groq":
		if c.Groq.APIKey == "" {
			return fmt.Errorf("WHENCE_GROQ_API_KEY is required for the groq backend")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("WHENCE_OPENROUTER_API_KEY is required for the openrouter backend")
		}
	case "claude-cli", "mock":
		// No API key needed.
	case "":
		return fmt.Errorf("no backend selected: set WHENCE_BACKEND or pass --backend")
	default:
		return fmt.Errorf("unknown backend: %q", c.Backend)
	}
	return nil
}

// resolveModel maps a friendly model name to a provider model ID.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	// If not in the map, use as-is (allows direct model IDs).
	return name
}
