package generator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	provider, model          string
	promptTokens, completion int
	errorType                string
}

type fakeObserver struct {
	calls []recordedCall
}

func (f *fakeObserver) ObserveLLMCall(provider, model string, promptTokens, completionTokens int, errorType string, _ time.Duration) {
	f.calls = append(f.calls, recordedCall{provider, model, promptTokens, completionTokens, errorType})
}

type llmFunc func(ctx context.Context, p Prompt) (string, error)

func (f llmFunc) Complete(ctx context.Context, p Prompt) (string, error) { return f(ctx, p) }

func TestInstrumentedLLMSuccess(t *testing.T) {
	obs := &fakeObserver{}
	inner := llmFunc(func(_ context.Context, _ Prompt) (string, error) { return "hello world", nil })
	llm := NewInstrumentedLLM(inner, "openai", 0, nil, obs, nil)

	out, err := llm.Complete(context.Background(), Prompt{System: "sys", User: "user", Model: "gpt-4"})
	require.NoError(t, err)
	assert.Equal(t, "hello world", out)

	require.Len(t, obs.calls, 1)
	c := obs.calls[0]
	assert.Equal(t, "openai", c.provider)
	assert.Equal(t, "gpt-4", c.model)
	assert.Equal(t, len("sys")+len("user"), c.promptTokens)
	assert.Equal(t, len("hello world"), c.completion)
	assert.Empty(t, c.errorType)
}

func TestInstrumentedLLMFailure(t *testing.T) {
	obs := &fakeObserver{}
	inner := llmFunc(func(_ context.Context, _ Prompt) (string, error) {
		return "", &LLMError{Type: ErrorTypeAuth, Message: "bad key"}
	})
	llm := NewInstrumentedLLM(inner, "anthropic", 0, nil, obs, nil)

	_, err := llm.Complete(context.Background(), Prompt{Model: "claude"})
	assert.Equal(t, ErrorTypeAuth, ErrorTypeOf(err))
	require.Len(t, obs.calls, 1)
	assert.Equal(t, "auth", obs.calls[0].errorType)
}

func TestInstrumentedLLMTimeout(t *testing.T) {
	inner := llmFunc(func(ctx context.Context, _ Prompt) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	obs := &fakeObserver{}
	llm := NewInstrumentedLLM(inner, "openai", 20*time.Millisecond, nil, obs, nil)

	_, err := llm.Complete(context.Background(), Prompt{})
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	require.Len(t, obs.calls, 1)
	assert.Equal(t, "network", obs.calls[0].errorType)
}

func TestInstrumentedLLMWithoutObserver(t *testing.T) {
	inner := llmFunc(func(_ context.Context, _ Prompt) (string, error) { return "ok", nil })
	out, err := NewInstrumentedLLM(inner, "mock", time.Second, nil, nil, nil).Complete(context.Background(), Prompt{})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestTokenCounterFallback(t *testing.T) {
	var tc *TokenCounter
	assert.Equal(t, 5, tc.Count("こんにちは"))
	assert.Equal(t, 0, tc.Count(""))
}

func TestTokenCounter(t *testing.T) {
	tc, err := NewTokenCounter()
	require.NoError(t, err)
	assert.Positive(t, tc.Count("hello world"))
	assert.Equal(t, 0, tc.Count(""))
}

func TestMockLLMHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := MockLLM{}.Complete(ctx, Prompt{})
	assert.ErrorIs(t, err, context.Canceled)
}
