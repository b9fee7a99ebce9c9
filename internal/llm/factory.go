package llm

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// NewProvider builds the configured provider and wraps it as
// timeout → retry → logging → base. sink may be nil.
func NewProvider(ctx context.Context, cfg Config, sink EventSink, logger *log.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		router := cfg.OpenRouter
		if router.BaseURL == "" {
			router.BaseURL = defaultOpenRouterBaseURL
		}
		base, err = NewOpenAIProvider(router)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := WithLogging(base, cfg.Provider, sink, logger)
	p = WithRetry(p, cfg.Retry)
	return WithTimeout(p, cfg.Timeout), nil
}
