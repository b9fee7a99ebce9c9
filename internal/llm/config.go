package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// Config selects and configures the report provider.
type Config struct {
	Provider string `yaml:"provider"`

	Anthropic  AnthropicConfig `yaml:"anthropic"`
	OpenAI     OpenAIConfig    `yaml:"openai"`
	Gemini     GeminiConfig    `yaml:"gemini"`
	OpenRouter OpenAIConfig    `yaml:"openrouter"`
	Retry      RetryConfig     `yaml:"retry"`

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration `yaml:"timeout"`
}

type AnthropicConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// OpenAIConfig also serves OpenRouter, which speaks the same API.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// RetryConfig controls exponential backoff between attempts.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig targets Gemini Flash.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenAIConfig{Model: "google/gemini-2.0-flash-001", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv returns DefaultConfig overlaid with VITALCHECK_* variables.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv(os.Getenv)
	return cfg
}

// ApplyEnv overlays every non-empty VITALCHECK_* variable onto c.
// Unparseable numbers and durations are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	set(&c.Provider, "VITALCHECK_LLM_PROVIDER")

	set(&c.Anthropic.APIKey, "VITALCHECK_ANTHROPIC_API_KEY")
	set(&c.Anthropic.Model, "VITALCHECK_ANTHROPIC_MODEL")

	set(&c.OpenAI.APIKey, "VITALCHECK_OPENAI_API_KEY")
	set(&c.OpenAI.Model, "VITALCHECK_OPENAI_MODEL")
	set(&c.OpenAI.BaseURL, "VITALCHECK_OPENAI_BASE_URL")

	set(&c.Gemini.APIKey, "VITALCHECK_GEMINI_API_KEY")
	set(&c.Gemini.Model, "VITALCHECK_GEMINI_MODEL")

	set(&c.OpenRouter.APIKey, "VITALCHECK_OPENROUTER_API_KEY")
	set(&c.OpenRouter.Model, "VITALCHECK_OPENROUTER_MODEL")

	if v := getenv("VITALCHECK_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
	if v := getenv("VITALCHECK_LLM_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Retry.MaxAttempts = n
		}
	}
}

// DiscoverConfig looks for the vendors' own key variables, in the order
// Gemini, OpenAI, Anthropic, OpenRouter, and selects the first one found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	switch {
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// HasKey reports whether the selected provider has credentials.
func (c Config) HasKey() bool {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic.APIKey != ""
	case ProviderOpenAI:
		return c.OpenAI.APIKey != ""
	case ProviderGemini:
		return c.Gemini.APIKey != ""
	case ProviderOpenRouter:
		return c.OpenRouter.APIKey != ""
	case ProviderMock:
		return true
	}
	return false
}

// Validate checks the provider name and its API key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter, ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if !c.HasKey() {
		return fmt.Errorf("VITALCHECK_%s_API_KEY is required for the %s provider",
			envName(c.Provider), c.Provider)
	}
	return nil
}

func envName(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI"
	case ProviderOpenRouter:
		return "OPENROUTER"
	case ProviderAnthropic:
		return "ANTHROPIC"
	}
	return "GEMINI"
}
