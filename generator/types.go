package generator

import "slices"

// TitleCandidate is one title suggestion with its SEO keywords.
type TitleCandidate struct {
	Title       string   `json:"title"`
	SEOKeywords []string `json:"seo_keywords"`
}

func (c TitleCandidate) clone() TitleCandidate {
	return TitleCandidate{Title: c.Title, SEOKeywords: slices.Clone(c.SEOKeywords)}
}

// Tone is the writing style of the article.
type Tone string

const (
	ToneReadable Tone = "readable"
	ToneExpert   Tone = "expert"
	ToneCasual   Tone = "casual"

	DefaultTone = ToneReadable
)

var Tones = []Tone{ToneReadable, ToneExpert, ToneCasual}

func (t Tone) Valid() bool {
	return slices.Contains(Tones, t)
}

// Label is the selector text.
func (t Tone) Label() string {
	switch t {
	case ToneExpert:
		return "専門的"
	case ToneCasual:
		return "カジュアル"
	default:
		return "読みやすい"
	}
}

// Style is the instruction embedded in the article prompt.
func (t Tone) Style() string {
	switch t {
	case ToneExpert:
		return "専門的：正確な用語とデータを用い、根拠を示しながら信頼性の高い解説をする"
	case ToneCasual:
		return "カジュアル：話しかけるような親しみやすい口調で、体験談を交えて書く"
	default:
		return "読みやすい：短い文と平易な言葉で、初めての読者にもすっと伝わるように書く"
	}
}

// WordCount is the target article length in characters.
type WordCount int

const (
	WordCountShort    WordCount = 1500
	WordCountStandard WordCount = 2500
	WordCountDetailed WordCount = 3500

	// DefaultWordCount is the first selector option.
	DefaultWordCount = WordCountShort
)

var WordCounts = []WordCount{WordCountShort, WordCountStandard, WordCountDetailed}

func (w WordCount) Valid() bool {
	return slices.Contains(WordCounts, w)
}

func (w WordCount) Label() string {
	switch w {
	case WordCountShort:
		return "1500文字程度 (短め)"
	case WordCountStandard:
		return "2500文字程度 (標準)"
	case WordCountDetailed:
		return "3500文字程度 (詳細)"
	default:
		return ""
	}
}

// ArticleRequest is built fresh for every generation attempt.
type ArticleRequest struct {
	MainKeyword        string    `json:"main_keyword"`
	Title              string    `json:"title"`
	SEOKeywords        []string  `json:"seo_keywords"`
	AdditionalKeywords []string  `json:"additional_keywords"`
	WordCount          WordCount `json:"word_count"`
	Tone               Tone      `json:"tone"`
}

// AllKeywords is SEO keywords followed by additional keywords.
func (r ArticleRequest) AllKeywords() []string {
	out := make([]string, 0, len(r.SEOKeywords)+len(r.AdditionalKeywords))
	out = append(out, r.SEOKeywords...)
	return append(out, r.AdditionalKeywords...)
}

// ExampleKeywords pre-fill the keyword input; picking one changes nothing else.
var ExampleKeywords = []string{"プログラミング学習", "簡単料理レシピ", "読書感想", "副業体験談"}
