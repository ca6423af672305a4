package generator

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
)

const defaultOllamaHost = "http://localhost:11434"

// OllamaLLM talks to a local Ollama runtime; no credential is needed.
type OllamaLLM struct {
	client *api.Client
}

func NewOllamaLLMFromConfig(cfg *LLMSettings) (*OllamaLLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	host := cfg.BaseURL
	if host == "" {
		host = defaultOllamaHost
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, err
	}
	return &OllamaLLM{client: api.NewClient(u, http.DefaultClient)}, nil
}

func (o *OllamaLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	stream := false
	req := &api.ChatRequest{
		Model: prompt.Model,
		Messages: []api.Message{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		Stream: &stream,
		Options: map[string]any{
			"temperature": prompt.Temperature,
			"num_predict": prompt.MaxTokens,
		},
	}

	var response api.ChatResponse
	err := o.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		response = resp
		return nil
	})
	if err != nil {
		status := 0
		var statusErr api.StatusError
		if errors.As(err, &statusErr) {
			status = statusErr.StatusCode
		}
		return "", classifyError("ollama", err, status)
	}
	if response.Message.Content == "" {
		return "", newEmptyResponseError("ollama")
	}
	return response.Message.Content, nil
}
