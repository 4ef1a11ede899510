// Package config loads the optional YAML configuration file. Precedence
// is defaults < file < environment < flags; the file only fills values
// nothing else set.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/whence/internal/llm"
)

// File mirrors ~/.config/whence/config.yaml.
type File struct {
	Backend string `yaml:"backend"`
	Model   string `yaml:"model"`

	AnthropicAPIKey  string `yaml:"anthropic_api_key"`
	OpenAIAPIKey     string `yaml:"openai_api_key"`
	GeminiAPIKey     string `yaml:"gemini_api_key"`
	GroqAPIKey       string `yaml:"groq_api_key"`
	OpenRouterAPIKey string `yaml:"openrouter_api_key"`

	Workers  int    `yaml:"workers"`
	MaxItems int    `yaml:"max_items"`
	DBPath   string `yaml:"db_path"`
}

// Path returns the config file location:
// $XDG_CONFIG_HOME/whence/config.yaml or ~/.config/whence/config.yaml.
func Path() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "whence", "config.yaml"), nil
}

// Load reads the config file. A missing file is not an error; it yields
// the zero File.
func Load() (File, error) {
	path, err := Path()
	if err != nil {
		return File{}, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config file at an explicit path.
func LoadFrom(path string) (File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return File{}, nil
	}
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

// Apply overlays the file's values onto an llm.Config.
func (f File) Apply(cfg llm.Config) llm.Config {
	if f.Backend != "" {
		cfg.Backend = f.Backend
	}
	if f.AnthropicAPIKey != "" {
		cfg.Anthropic.APIKey = f.AnthropicAPIKey
	}
	if f.OpenAIAPIKey != "" {
		cfg.OpenAI.APIKey = f.OpenAIAPIKey
	}
	if f.GeminiAPIKey != "" {
		cfg.Gemini.APIKey = f.GeminiAPIKey
	}
	if f.GroqAPIKey != "" {
		cfg.Groq.APIKey = f.GroqAPIKey
	}
	if f.OpenRouterAPIKey != "" {
		cfg.OpenRouter.APIKey = f.OpenRouterAPIKey
	}
	if f.Model != "" {
		cfg.SetModel(f.Model)
	}
	return cfg
}
