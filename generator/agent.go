package generator

import (
	"context"
	"errors"
	"strings"
)

// Agent 负责调用模型：生成标题候选（step 1）和正文（step 3）。
// It never touches session state.
type Agent struct {
	llm    LLMClient
	models ModelSettings
}

func NewAgent(llm LLMClient, models ModelSettings) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if models.TitleModel == "" || models.ArticleModel == "" {
		return nil, errors.New("title and article models are required")
	}
	return &Agent{llm: llm, models: models}, nil
}

// GenerateTitles makes one call and parses the candidates. Both collaborator
// failures and unusable JSON come back as a GenerationError.
func (a *Agent) GenerateTitles(ctx context.Context, keyword string) ([]TitleCandidate, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, &ValidationError{Field: "keyword", Msg: "キーワードを入力してください"}
	}
	raw, err := a.llm.Complete(ctx, BuildTitlePrompt(keyword, a.models))
	if err != nil {
		return nil, &GenerationError{Step: "title", Err: err}
	}
	candidates, err := ParseTitleCandidates(raw)
	if err != nil {
		return nil, &GenerationError{Step: "title", Err: err}
	}
	return candidates, nil
}

// GenerateArticle makes one call for the article markdown.
func (a *Agent) GenerateArticle(ctx context.Context, req ArticleRequest) (string, error) {
	raw, err := a.llm.Complete(ctx, BuildArticlePrompt(req, a.models))
	if err != nil {
		return "", &GenerationError{Step: "article", Err: err}
	}
	article, err := PostProcessArticle(raw)
	if err != nil {
		return "", &GenerationError{Step: "article", Err: err}
	}
	return article, nil
}
