package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeKVs(t *testing.T) {
	l := Nop()
	out := l.sanitizeKVs([]interface{}{
		"api_key", "sk-live",
		"prompt_tokens", 42,
		"session_id", "abc",
		"keyword", "ダイエット",
		"dangling",
	})

	assert.Equal(t, "[REDACTED]", out[1])
	assert.Equal(t, 42, out[3])
	assert.Contains(t, out[5], "hash:")
	assert.Equal(t, "ダイエット", out[7])
	assert.Equal(t, "dangling", out[8])
}

func TestSanitizeKVs_Disabled(t *testing.T) {
	l := &Logger{SugaredLogger: zap.NewNop().Sugar(), redact: false}
	out := l.sanitizeKVs([]interface{}{"api_key", "sk-live"})
	assert.Equal(t, "sk-live", out[1])
}

func TestLoggerWritesRedactedFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar(), redact: true}

	l.With("provider", "openai").Info("llm call", "authorization", "Bearer x", "model", "gpt-4")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "openai", fields["provider"])
		assert.Equal(t, "[REDACTED]", fields["authorization"])
		assert.Equal(t, "gpt-4", fields["model"])
	}
}
