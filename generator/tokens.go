package generator

import (
	"fmt"
	"unicode/utf8"

	"github.com/tiktoken-go/tokenizer"
)

// TokenCounter estimates token usage for logging and metrics.
// Every provider is approximated with the GPT-4 encoding.
type TokenCounter struct {
	codec tokenizer.Codec
}

func NewTokenCounter() (*TokenCounter, error) {
	codec, err := tokenizer.ForModel(tokenizer.GPT4)
	if err != nil {
		return nil, fmt.Errorf("create tokenizer codec: %w", err)
	}
	return &TokenCounter{codec: codec}, nil
}

// Count falls back to a character estimate when no codec is available.
func (tc *TokenCounter) Count(text string) int {
	if tc == nil || tc.codec == nil {
		return estimateTokens(text)
	}
	n, err := tc.codec.Count(text)
	if err != nil {
		return estimateTokens(text)
	}
	return n
}

// Japanese text runs close to one token per character, so count runes rather
// than the usual bytes/4.
func estimateTokens(text string) int {
	return utf8.RuneCountInString(text)
}
