// Package mock provides a canned models.Provider for tests.
package mock

import (
	"context"

	"github.com/osintlabs/threatlens/pkg/models"
)

// Provider satisfies models.Provider for testing.
type Provider struct {
	Name_        string
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	// Prompts records every prompt passed to Generate, in order.
	Prompts []string
}

func (m *Provider) Name() string {
	if m.Name_ == "" {
		return "mock"
	}
	return m.Name_
}

func (m *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return "", nil
}

// NewProvider returns a Provider that answers every prompt with the given text.
func NewProvider(response string) *Provider {
	return &Provider{
		GenerateFunc: func(_ context.Context, _ string) (string, error) {
			return response, nil
		},
	}
}

// NewFailingProvider returns a Provider that always returns the given error.
func NewFailingProvider(err error) *Provider {
	return &Provider{
		Name_: "mock-failing",
		GenerateFunc: func(_ context.Context, _ string) (string, error) {
			return "", err
		},
	}
}

// NewBlockingProvider returns a Provider that blocks until its context is
// cancelled. Useful for exercising the adapter's inference timeout.
func NewBlockingProvider() *Provider {
	return &Provider{
		Name_: "mock-blocking",
		GenerateFunc: func(ctx context.Context, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
}

// Compile-time check that Provider implements models.Provider.
var _ models.Provider = (*Provider)(nil)
