package ai

import "fmt"

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds what's needed to construct an Oracle. It is resolved once
// at startup and not modified afterwards.
type Config struct {
	Provider string // "openai" (default) or "anthropic"
	Model    string
	APIKey   string
	BaseURL  string
}

// New creates the Oracle for cfg.Provider.
func New(cfg Config) (Oracle, error) {
	switch cfg.Provider {
	case "", ProviderOpenAI:
		return NewOpenAI(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	case ProviderAnthropic:
		return NewAnthropic(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
