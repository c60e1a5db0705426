package models

import "context"

// Provider is the core interface that all AI engine integrations must
// implement. Never call a specific engine directly — always inject this
// interface. The prompt and parsing contracts live above it in internal/ai.
type Provider interface {
	// Generate sends a free-text instruction to the engine and returns its
	// raw text completion. Implementations must be safe for concurrent use
	// and must not retry internally.
	Generate(ctx context.Context, prompt string) (string, error)
	// Name returns the provider identifier (e.g., "gemini", "openai").
	Name() string
}
