package generator

import "context"

// LLMClient 抽象大模型客户端，便于替换/Mock。
// Implementations make exactly one request per call and never retry.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings 提供给具体实现的基础配置。
type LLMSettings struct {
	Provider string
	APIKey   string
	BaseURL  string
}

// ModelSettings pick model and budget per call site.
type ModelSettings struct {
	TitleModel       string
	ArticleModel     string
	TitleMaxTokens   int
	ArticleMaxTokens int
	Temperature      float64
}

func DefaultModelSettings() ModelSettings {
	return ModelSettings{
		TitleModel:       "gpt-4",
		ArticleModel:     "gpt-3.5-turbo",
		TitleMaxTokens:   1500,
		ArticleMaxTokens: 4000,
		Temperature:      0.7,
	}
}
