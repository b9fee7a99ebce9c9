package report

// Purpose tags report calls in LLM request events.
const Purpose = "health-report"

// Config holds report generation settings.
type Config struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.3,
	}
}
