package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
// Title prompts get a fenced JSON answer; article prompts get a fixed markdown outline
// built from the title and keyword lines of the prompt.
type MockLLM struct{}

func (m MockLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if prompt.System == titleSystemPrompt {
		return mockTitles(promptLine(prompt.User, "【メインキーワード】\n")), nil
	}
	return mockArticle(prompt.User), nil
}

func mockTitles(keyword string) string {
	if keyword == "" {
		keyword = "ブログ"
	}
	type item struct {
		Title       string   `json:"title"`
		SEOKeywords []string `json:"seo_keywords"`
	}
	patterns := []string{
		"%sの始め方：初心者向け完全ガイド",
		"%sで失敗しない5つのコツ",
		"今日からできる%s入門",
		"%sのよくある疑問まとめ",
		"プロが教える%sの基本",
	}
	items := make([]item, 0, len(patterns))
	for _, p := range patterns {
		items = append(items, item{
			Title:       fmt.Sprintf(p, keyword),
			SEOKeywords: []string{keyword, "初心者", "コツ"},
		})
	}
	body, _ := json.MarshalIndent(map[string]any{"titles": items}, "", "  ")
	return codeFence + "json\n" + string(body) + "\n" + codeFence
}

func mockArticle(user string) string {
	title := promptLine(user, "- タイトル: ")
	keyword := promptLine(user, "- メインキーワード: ")
	seo := promptLine(user, "- SEOキーワード: ")

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString("## はじめに\n")
	sb.WriteString(fmt.Sprintf("この記事では%sについて分かりやすく解説します。\n\n", keyword))
	for i := 1; i <= 3; i++ {
		sb.WriteString(fmt.Sprintf("## %sのポイント%d\n", keyword, i))
		sb.WriteString(fmt.Sprintf("### 基本\n%sを押さえることが大切です。\n\n", keyword))
	}
	sb.WriteString("## まとめ\n")
	sb.WriteString(fmt.Sprintf("%sは少しずつ続けることが成功への近道です。\n\n", keyword))
	sb.WriteString("---\n【この記事のキーワード】\n")
	sb.WriteString(fmt.Sprintf("- メインキーワード: %s\n", keyword))
	sb.WriteString(fmt.Sprintf("- SEOキーワード: %s\n", seo))
	return sb.String()
}

// promptLine returns the rest of the first line after prefix.
func promptLine(text, prefix string) string {
	_, after, ok := strings.Cut(text, prefix)
	if !ok {
		return ""
	}
	line, _, _ := strings.Cut(after, "\n")
	return strings.TrimSpace(line)
}
