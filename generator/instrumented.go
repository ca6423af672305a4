package generator

import (
	"context"
	"time"

	"step_blog_generator/logger"
)

// CallObserver receives one observation per collaborator call.
type CallObserver interface {
	ObserveLLMCall(provider, model string, promptTokens, completionTokens int, errorType string, duration time.Duration)
}

// InstrumentedLLM wraps an LLMClient with timeout, logging, token estimates and metrics.
type InstrumentedLLM struct {
	next     LLMClient
	provider string
	timeout  time.Duration
	tokens   *TokenCounter
	observer CallObserver
	log      *logger.Logger
}

// NewInstrumentedLLM wraps next. observer and tokens may be nil; timeout <= 0 disables the bound.
func NewInstrumentedLLM(next LLMClient, provider string, timeout time.Duration, tokens *TokenCounter, observer CallObserver, log *logger.Logger) *InstrumentedLLM {
	if log == nil {
		log = logger.Nop()
	}
	return &InstrumentedLLM{
		next:     next,
		provider: provider,
		timeout:  timeout,
		tokens:   tokens,
		observer: observer,
		log:      log.With("provider", provider),
	}
}

func (l *InstrumentedLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	promptTokens := l.tokens.Count(prompt.System) + l.tokens.Count(prompt.User)
	l.log.Debug("llm call", "model", prompt.Model, "max_tokens", prompt.MaxTokens, "prompt_tokens", promptTokens)

	start := time.Now()
	out, err := l.next.Complete(ctx, prompt)
	elapsed := time.Since(start)

	if err != nil {
		errType := ErrorTypeOf(classifyError(l.provider, err, 0)).String()
		l.log.Warn("llm call failed", "model", prompt.Model, "error_type", errType, "duration", elapsed, "error", err)
		if l.observer != nil {
			l.observer.ObserveLLMCall(l.provider, prompt.Model, promptTokens, 0, errType, elapsed)
		}
		return "", err
	}

	completionTokens := l.tokens.Count(out)
	l.log.Info("llm call done", "model", prompt.Model, "duration", elapsed, "prompt_tokens", promptTokens, "completion_tokens", completionTokens)
	if l.observer != nil {
		l.observer.ObserveLLMCall(l.provider, prompt.Model, promptTokens, completionTokens, "", elapsed)
	}
	return out, nil
}
