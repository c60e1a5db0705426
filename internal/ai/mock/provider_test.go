package mock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_CannedResponse(t *testing.T) {
	p := NewProvider("canned")

	got, err := p.Generate(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "canned", got)
	assert.Equal(t, "mock", p.Name())
}

func TestProvider_RecordsPrompts(t *testing.T) {
	p := NewProvider("x")

	_, _ = p.Generate(context.Background(), "first")
	_, _ = p.Generate(context.Background(), "second")

	assert.Equal(t, []string{"first", "second"}, p.Prompts)
}

func TestNewFailingProvider(t *testing.T) {
	wantErr := errors.New("boom")
	p := NewFailingProvider(wantErr)

	_, err := p.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, wantErr)
}

func TestNewBlockingProvider_ReleasesOnCancel(t *testing.T) {
	p := NewBlockingProvider()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := p.Generate(ctx, "prompt")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}
