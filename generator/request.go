package generator

import (
	"fmt"
	"strings"
)

// ArticleInput is the step-3 form as edited by the user.
type ArticleInput struct {
	MainKeyword        string `json:"main_keyword"`
	Title              string `json:"title"`
	SEOKeywords        string `json:"seo_keywords"`        // comma separated
	AdditionalKeywords string `json:"additional_keywords"` // one per line
	WordCount          int    `json:"word_count"`
	Tone               string `json:"tone"`
}

// BuildArticleRequest turns the form into a request. It is pure; zero word count
// and empty tone fall back to the selector defaults.
func BuildArticleRequest(in ArticleInput) (ArticleRequest, error) {
	mainKeyword := strings.TrimSpace(in.MainKeyword)
	if mainKeyword == "" {
		return ArticleRequest{}, &ValidationError{Field: "main_keyword", Msg: "メインキーワードは必須です"}
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return ArticleRequest{}, &ValidationError{Field: "title", Msg: "タイトルは必須です"}
	}

	wc := WordCount(in.WordCount)
	if in.WordCount == 0 {
		wc = DefaultWordCount
	}
	if !wc.Valid() {
		return ArticleRequest{}, &ValidationError{Field: "word_count", Msg: fmt.Sprintf("%d is not one of %v", in.WordCount, WordCounts)}
	}

	tone := Tone(strings.ToLower(strings.TrimSpace(in.Tone)))
	if tone == "" {
		tone = DefaultTone
	}
	if !tone.Valid() {
		return ArticleRequest{}, &ValidationError{Field: "tone", Msg: fmt.Sprintf("%q is not one of %v", in.Tone, Tones)}
	}

	return ArticleRequest{
		MainKeyword:        mainKeyword,
		Title:              title,
		SEOKeywords:        SplitCSV(in.SEOKeywords),
		AdditionalKeywords: SplitLines(in.AdditionalKeywords),
		WordCount:          wc,
		Tone:               tone,
	}, nil
}

// SplitCSV splits on commas, trims, drops empty segments and keeps order and duplicates.
func SplitCSV(s string) []string {
	return splitTrim(strings.Split(s, ","))
}

// SplitLines applies the same rule to line breaks.
func SplitLines(s string) []string {
	return splitTrim(strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '\r' }))
}

func splitTrim(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FormInput pre-fills the step-3 form from the current selection.
func FormInput(s StateSnapshot) ArticleInput {
	return ArticleInput{
		MainKeyword: s.Keyword,
		Title:       s.SelectedTitle,
		SEOKeywords: strings.Join(s.SelectedKeywords, ", "),
		WordCount:   int(DefaultWordCount),
		Tone:        string(DefaultTone),
	}
}
