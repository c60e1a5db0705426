// Package openai implements models.Provider for OpenAI-compatible
// endpoints via langchaingo.
package openai

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	lcopenai "github.com/tmc/langchaingo/llms/openai"

	"github.com/osintlabs/threatlens/internal/config"
	"github.com/osintlabs/threatlens/pkg/models"
)

// Provider implements models.Provider using an OpenAI-compatible chat API.
type Provider struct {
	llm   *lcopenai.LLM
	model string
}

// NewProvider creates a Provider. BaseURL may be empty for api.openai.com,
// or point at any OpenAI-compatible endpoint.
func NewProvider(cfg config.OpenAIConfig) (*Provider, error) {
	opts := []lcopenai.Option{
		lcopenai.WithToken(cfg.APIKey),
		lcopenai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, lcopenai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := lcopenai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("init openai client: %w", err)
	}
	return &Provider{llm: llm, model: cfg.Model}, nil
}

func (p *Provider) Name() string { return "openai" }

func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	completion, err := llms.GenerateFromSinglePrompt(ctx, p.llm, prompt)
	if err != nil {
		return "", err
	}
	return completion, nil
}

// Compile-time check that Provider implements models.Provider.
var _ models.Provider = (*Provider)(nil)
