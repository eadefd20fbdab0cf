package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in QUIZBOX_LLM_PROVIDER.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Providers lists the supported provider names.
func Providers() []string {
	return []string{ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter, ProviderMock}
}

// Config selects and configures the hint provider.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one request including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 20 * time.Second,
	}
}

// envVars binds QUIZBOX_* variables to config fields.
func envVars(cfg *Config) []struct {
	name string
	dst  *string
} {
	return []struct {
		name string
		dst  *string
	}{
		{"QUIZBOX_LLM_PROVIDER", &cfg.Provider},
		{"QUIZBOX_ANTHROPIC_API_KEY", &cfg.Anthropic.APIKey},
		{"QUIZBOX_ANTHROPIC_MODEL", &cfg.Anthropic.Model},
		{"QUIZBOX_ANTHROPIC_BASE_URL", &cfg.Anthropic.BaseURL},
		{"QUIZBOX_OPENAI_API_KEY", &cfg.OpenAI.APIKey},
		{"QUIZBOX_OPENAI_MODEL", &cfg.OpenAI.Model},
		{"QUIZBOX_OPENAI_BASE_URL", &cfg.OpenAI.BaseURL},
		{"QUIZBOX_GEMINI_API_KEY", &cfg.Gemini.APIKey},
		{"QUIZBOX_GEMINI_MODEL", &cfg.Gemini.Model},
		{"QUIZBOX_OPENROUTER_API_KEY", &cfg.OpenRouter.APIKey},
		{"QUIZBOX_OPENROUTER_MODEL", &cfg.OpenRouter.Model},
	}
}

// ConfigFromEnv overlays QUIZBOX_* variables on the defaults. When no
// provider is named the first one with a QUIZBOX_ key wins, then
// DiscoverConfig. The returned Config
// has an empty Provider when nothing is configured.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for _, v := range envVars(&cfg) {
		if s := os.Getenv(v.name); s != "" {
			*v.dst = s
		}
	}
	if cfg.Provider != "" {
		return cfg
	}
	for _, name := range []string{ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter} {
		candidate := cfg
		candidate.Provider = name
		if candidate.Validate() == nil {
			return candidate
		}
	}
	if found, ok := DiscoverConfig(); ok {
		return found
	}
	return cfg
}

// DiscoverConfig checks the vendors' own key variables in order Gemini,
// OpenAI, Anthropic, OpenRouter and picks the first one set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	vendors := []struct {
		env      string
		provider string
		dst      *string
	}{
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter.APIKey},
	}
	for _, p := range vendors {
		if k := os.Getenv(p.env); k != "" {
			cfg.Provider = p.provider
			*p.dst = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks the selected provider has an API key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case "":
		return ErrNotConfigured
	case ProviderMock:
		return nil
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "QUIZBOX_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "QUIZBOX_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "QUIZBOX_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "QUIZBOX_OPENROUTER_API_KEY"
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}

// Model returns the configured model name of the selected provider.
func (c Config) Model() string {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic.Model
	case ProviderOpenAI:
		return c.OpenAI.Model
	case ProviderGemini:
		return c.Gemini.Model
	case ProviderOpenRouter:
		return c.OpenRouter.Model
	case ProviderMock:
		return "mock"
	}
	return ""
}
