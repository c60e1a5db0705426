package ai

import (
	"fmt"

	"github.com/osintlabs/threatlens/internal/ai/gemini"
	"github.com/osintlabs/threatlens/internal/ai/openai"
	"github.com/osintlabs/threatlens/internal/config"
	"github.com/osintlabs/threatlens/pkg/models"
)

// NewProvider constructs the appropriate engine provider based on config.
// Called once at startup and shared by every caller.
//
// Returns ErrNotConfigured when no provider is selected or the selected
// provider has no credential; the caller may run degraded with a nil
// provider in that case.
func NewProvider(cfg config.AIConfig) (models.Provider, error) {
	switch cfg.Provider {
	case "":
		return nil, ErrNotConfigured
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("%w: GEMINI_API_KEY is empty", ErrNotConfigured)
		}
		return gemini.NewClient(cfg.Gemini.BaseURL, cfg.Gemini.APIKey, cfg.Gemini.Model), nil
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY is empty", ErrNotConfigured)
		}
		return openai.NewProvider(cfg.OpenAI)
	default:
		return nil, fmt.Errorf("unknown AI provider %q: must be one of gemini, openai", cfg.Provider)
	}
}
