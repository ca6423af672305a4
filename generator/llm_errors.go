package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorType classifies collaborator failures.
type ErrorType int8

const (
	// ErrorTypeAuth represents 401/403 and bad API keys.
	ErrorTypeAuth ErrorType = iota
	// ErrorTypeRateLimit represents 429 and quota errors.
	ErrorTypeRateLimit
	// ErrorTypeNetwork represents timeouts, connection failures and 5xx.
	ErrorTypeNetwork
	// ErrorTypeUnknown is everything else, including empty responses.
	ErrorTypeUnknown
)

func (et ErrorType) String() string {
	switch et {
	case ErrorTypeAuth:
		return "auth"
	case ErrorTypeRateLimit:
		return "rate_limit"
	case ErrorTypeNetwork:
		return "network"
	case ErrorTypeUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// LLMError is a classified collaborator failure.
type LLMError struct {
	Err        error
	Message    string
	Provider   string
	Type       ErrorType
	StatusCode int
}

func (e *LLMError) Error() string {
	prefix := fmt.Sprintf("LLM error (%s)", e.Type)
	if e.Provider != "" {
		prefix = fmt.Sprintf("%s LLM error (%s)", e.Provider, e.Type)
	}
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", prefix, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	default:
		return fmt.Sprintf("%s: status %d", prefix, e.StatusCode)
	}
}

func (e *LLMError) Unwrap() error {
	return e.Err
}

// ErrorTypeOf returns the classification of err, or ErrorTypeUnknown.
func ErrorTypeOf(err error) ErrorType {
	var llmErr *LLMError
	if errors.As(err, &llmErr) {
		return llmErr.Type
	}
	return ErrorTypeUnknown
}

func newEmptyResponseError(provider string) *LLMError {
	return &LLMError{Provider: provider, Type: ErrorTypeUnknown, Message: "empty response"}
}

// classifyError maps an SDK error to an LLMError. statusCode is 0 when the SDK
// did not expose one; the message is then inspected instead.
func classifyError(provider string, err error, statusCode int) *LLMError {
	if err == nil {
		return nil
	}
	var already *LLMError
	if errors.As(err, &already) {
		return already
	}

	mk := func(t ErrorType, msg string) *LLMError {
		return &LLMError{Err: err, Message: msg, Provider: provider, Type: t, StatusCode: statusCode}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return mk(ErrorTypeNetwork, "request timeout")
	}
	if errors.Is(err, context.Canceled) {
		return mk(ErrorTypeNetwork, "request canceled")
	}

	switch {
	case statusCode == 401 || statusCode == 403:
		return mk(ErrorTypeAuth, "authentication failed - check API key")
	case statusCode == 429:
		return mk(ErrorTypeRateLimit, "rate limit exceeded")
	case statusCode >= 500:
		return mk(ErrorTypeNetwork, "server error")
	case statusCode != 0:
		return mk(ErrorTypeUnknown, "request rejected")
	}

	lower := strings.ToLower(err.Error())
	switch {
	case containsAny(lower, "unauthorized", "invalid api key", "incorrect api key", "authentication", "permission denied"):
		return mk(ErrorTypeAuth, "authentication error")
	case containsAny(lower, "rate limit", "rate_limit", "quota", "too many requests"):
		return mk(ErrorTypeRateLimit, "rate limiting detected")
	case containsAny(lower, "timeout", "connection", "network", "no such host", "eof", "reset", "temporary"):
		return mk(ErrorTypeNetwork, "network or connection error")
	default:
		return mk(ErrorTypeUnknown, "unclassified error")
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
