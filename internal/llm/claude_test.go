package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsDefaults(t *testing.T) {
	g := NewClaudeGateway("haiku")
	p := g.params(Request{Prompt: "hello"})

	assert.Equal(t, claudeModels["haiku"], string(p.Model))
	assert.Equal(t, int64(defaultMaxTokens), p.MaxTokens)
	assert.Equal(t, defaultTemperature, p.Temperature.Value)
	assert.Empty(t, p.System)
	require.Len(t, p.Messages, 1)
}

func TestParamsOverrides(t *testing.T) {
	g := NewClaudeGateway("sonnet")
	p := g.params(Request{
		Prompt:      "hello",
		System:      "you are terse",
		MaxTokens:   8192,
		Temperature: 0.2,
	})

	assert.Equal(t, claudeModels["sonnet"], string(p.Model))
	assert.Equal(t, int64(8192), p.MaxTokens)
	assert.Equal(t, 0.2, p.Temperature.Value)
	require.Len(t, p.System, 1)
	assert.Equal(t, "you are terse", p.System[0].Text)
}

func TestParamsUnknownModelFallsBackToHaiku(t *testing.T) {
	g := NewClaudeGateway("opus-mega")
	p := g.params(Request{Prompt: "hello"})
	assert.Equal(t, claudeModels["haiku"], string(p.Model))
}

func TestWrapProviderErrClassifiesTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	err := wrapProviderErr(ctx, errors.New("connection reset"))
	assert.ErrorIs(t, err, ErrTimeout)

	err = wrapProviderErr(context.Background(), context.DeadlineExceeded)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestWrapProviderErrPassesThroughOtherErrors(t *testing.T) {
	cause := errors.New("overloaded")
	err := wrapProviderErr(context.Background(), cause)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, cause)
}
