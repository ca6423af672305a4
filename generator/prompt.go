package generator

import (
	"fmt"
	"strings"
)

// Prompt 表示发送给 LLM 的一次请求。
type Prompt struct {
	System      string
	User        string
	Model       string
	MaxTokens   int
	Temperature float64
}

const (
	titleCandidates = 5
	titleMaxChars   = 30

	titleSystemPrompt   = "あなたはSEO専門家です。JSON形式でのみ回答してください。"
	articleSystemPrompt = "あなたは優秀なSEOライターです。高品質で検索エンジンに評価される記事を作成してください。"
)

// BuildTitlePrompt asks for exactly one JSON object with five title candidates.
func BuildTitlePrompt(keyword string, models ModelSettings) Prompt {
	var sb strings.Builder
	sb.WriteString("あなたはSEO専門家です。以下のキーワードに基づいて、")
	sb.WriteString(fmt.Sprintf("SEOに強いブログタイトルを%dつ提案してください。\n\n", titleCandidates))
	sb.WriteString("【メインキーワード】\n")
	sb.WriteString(keyword)
	sb.WriteString("\n\n【要求事項】\n")
	sb.WriteString("1. SEOに効果的なタイトル（検索されやすい）\n")
	sb.WriteString("2. クリックしたくなる魅力的なタイトル\n")
	sb.WriteString(fmt.Sprintf("3. %d文字以内で収める\n", titleMaxChars))
	sb.WriteString("4. 各タイトルに最適なSEOキーワードも提案\n\n")
	sb.WriteString("【出力形式】\n以下のJSON形式のみを出力してください：\n")
	sb.WriteString(`{
  "titles": [
    {"title": "タイトル1", "seo_keywords": ["キーワード1", "キーワード2", "キーワード3"]},
    {"title": "タイトル2", "seo_keywords": ["キーワード1", "キーワード2", "キーワード3"]}
  ]
}
`)

	return Prompt{
		System:      titleSystemPrompt,
		User:        sb.String(),
		Model:       models.TitleModel,
		MaxTokens:   models.TitleMaxTokens,
		Temperature: models.Temperature,
	}
}

// BuildArticlePrompt embeds every request field and the fixed section template:
// introduction, three body headings, conclusion and a keyword footer.
func BuildArticlePrompt(req ArticleRequest, models ModelSettings) Prompt {
	seo := joinOrNone(req.SEOKeywords)
	additional := joinOrNone(req.AdditionalKeywords)

	var sb strings.Builder
	sb.WriteString("あなたは優秀なSEOライターです。以下の条件で高品質なブログ記事を作成してください。\n\n")
	sb.WriteString("【記事情報】\n")
	sb.WriteString(fmt.Sprintf("- タイトル: %s\n", req.Title))
	sb.WriteString(fmt.Sprintf("- メインキーワード: %s\n", req.MainKeyword))
	sb.WriteString(fmt.Sprintf("- SEOキーワード: %s\n", seo))
	sb.WriteString(fmt.Sprintf("- 追加キーワード: %s\n", additional))
	sb.WriteString(fmt.Sprintf("- 文字数: 約%d文字\n", int(req.WordCount)))
	sb.WriteString(fmt.Sprintf("- トーン: %s\n\n", req.Tone.Style()))

	sb.WriteString("【要求事項】\n")
	sb.WriteString("1. SEOキーワードと追加キーワードを自然に配置\n")
	sb.WriteString("2. 読者にとって有益で実用的な内容\n")
	sb.WriteString("3. 見出し構成を明確に\n")
	sb.WriteString("4. 導入→本文→まとめの構成\n")
	sb.WriteString("5. 専門性と信頼性を重視\n")
	sb.WriteString("6. 設定されたキーワードを記事内容に反映させる\n\n")

	sb.WriteString("【出力形式】\n")
	sb.WriteString(fmt.Sprintf("# %s\n\n", req.Title))
	sb.WriteString("## はじめに\n[読者の興味を引く導入文]\n\n")
	for i := 1; i <= 3; i++ {
		sb.WriteString(fmt.Sprintf("## [見出し2-%d]\n[内容%d]\n\n", i, i))
	}
	sb.WriteString("## まとめ\n[記事のまとめと読者へのメッセージ]\n\n")
	sb.WriteString("---\n【この記事のキーワード】\n")
	sb.WriteString(fmt.Sprintf("- メインキーワード: %s\n", req.MainKeyword))
	sb.WriteString(fmt.Sprintf("- SEOキーワード: %s\n", seo))
	if len(req.AdditionalKeywords) > 0 {
		sb.WriteString(fmt.Sprintf("- 追加キーワード: %s\n", additional))
	}

	return Prompt{
		System:      articleSystemPrompt,
		User:        sb.String(),
		Model:       models.ArticleModel,
		MaxTokens:   models.ArticleMaxTokens,
		Temperature: models.Temperature,
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "なし"
	}
	return strings.Join(items, ", ")
}
