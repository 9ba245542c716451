package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration. It is embedded under the
// llm key of the mockview config file; API keys normally come from the
// environment.
type Config struct {
	// Provider selects which LLM provider to use. Empty disables coaching.
	Provider string `yaml:"provider"`

	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Retry      RetryConfig      `yaml:"retry"`

	// Timeout bounds a single request including retries.
	Timeout time.Duration `yaml:"timeout"`
}

type AnthropicConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"` // any OpenAI-compatible endpoint
}

type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns a Config with no provider selected.
func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// Enabled reports whether a provider has been selected.
func (c Config) Enabled() bool {
	return c.Provider != ""
}

// ConfigFromEnv builds a Config from defaults and MOCKVIEW_* environment
// variables.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overrides fields with MOCKVIEW_* environment variables. When no
// provider is configured it falls back to DiscoverConfig. MOCKVIEW_LLM_MODEL
// applies to whichever provider ends up selected.
func (c *Config) ApplyEnv() {
	overrides := []struct {
		env string
		dst *string
	}{
		{"MOCKVIEW_LLM_PROVIDER", &c.Provider},
		{"MOCKVIEW_ANTHROPIC_API_KEY", &c.Anthropic.APIKey},
		{"MOCKVIEW_ANTHROPIC_MODEL", &c.Anthropic.Model},
		{"MOCKVIEW_OPENAI_API_KEY", &c.OpenAI.APIKey},
		{"MOCKVIEW_OPENAI_MODEL", &c.OpenAI.Model},
		{"MOCKVIEW_OPENAI_BASE_URL", &c.OpenAI.BaseURL},
		{"MOCKVIEW_GEMINI_API_KEY", &c.Gemini.APIKey},
		{"MOCKVIEW_GEMINI_MODEL", &c.Gemini.Model},
		{"MOCKVIEW_OPENROUTER_API_KEY", &c.OpenRouter.APIKey},
		{"MOCKVIEW_OPENROUTER_MODEL", &c.OpenRouter.Model},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
	if c.Provider == "" {
		if d, ok := DiscoverConfig(); ok {
			c.Provider = d.Provider
			c.Anthropic.APIKey = d.Anthropic.APIKey
			c.OpenAI.APIKey = d.OpenAI.APIKey
			c.Gemini.APIKey = d.Gemini.APIKey
			c.OpenRouter.APIKey = d.OpenRouter.APIKey
		}
	}
	if m := os.Getenv("MOCKVIEW_LLM_MODEL"); m != "" {
		c.setModel(m)
	}
}

// setModel sets the model of the selected provider.
func (c *Config) setModel(m string) {
	switch c.Provider {
	case ProviderAnthropic:
		c.Anthropic.Model = m
	case ProviderOpenAI:
		c.OpenAI.Model = m
	case ProviderGemini:
		c.Gemini.Model = m
	case ProviderOpenRouter:
		c.OpenRouter.Model = m
	}
}

// DiscoverConfig probes the vendors' standard API key variables in priority
// order (Gemini, OpenAI, Anthropic, OpenRouter) and returns a Config for
// the first one set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
// An empty provider is valid and means coaching is off.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case "", ProviderMock:
		return nil
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "MOCKVIEW_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "MOCKVIEW_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "MOCKVIEW_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "MOCKVIEW_OPENROUTER_API_KEY"
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
