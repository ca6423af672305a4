package generator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildArticleRequest(t *testing.T) {
	req, err := BuildArticleRequest(ArticleInput{
		MainKeyword:        "  プログラミング学習 ",
		Title:              "独学で身につける方法",
		SEOKeywords:        "独学, 初心者,, おすすめ ",
		AdditionalKeywords: "Python\n\n  JavaScript  \r\n",
		WordCount:          2500,
		Tone:               "Expert",
	})
	require.NoError(t, err)

	assert.Equal(t, "プログラミング学習", req.MainKeyword)
	assert.Equal(t, "独学で身につける方法", req.Title)
	assert.Equal(t, []string{"独学", "初心者", "おすすめ"}, req.SEOKeywords)
	assert.Equal(t, []string{"Python", "JavaScript"}, req.AdditionalKeywords)
	assert.Equal(t, WordCountStandard, req.WordCount)
	assert.Equal(t, ToneExpert, req.Tone)
	assert.Equal(t, []string{"独学", "初心者", "おすすめ", "Python", "JavaScript"}, req.AllKeywords())
}

func TestBuildArticleRequestDefaults(t *testing.T) {
	req, err := BuildArticleRequest(ArticleInput{MainKeyword: "k", Title: "t"})
	require.NoError(t, err)
	assert.Equal(t, DefaultWordCount, req.WordCount)
	assert.Equal(t, DefaultTone, req.Tone)
	assert.Empty(t, req.SEOKeywords)
	assert.Empty(t, req.AdditionalKeywords)
}

func TestBuildArticleRequestValidation(t *testing.T) {
	tests := []struct {
		name  string
		in    ArticleInput
		field string
	}{
		{"blank main keyword", ArticleInput{MainKeyword: "  ", Title: "t"}, "main_keyword"},
		{"blank title", ArticleInput{MainKeyword: "k", Title: "\t"}, "title"},
		{"unknown word count", ArticleInput{MainKeyword: "k", Title: "t", WordCount: 1000}, "word_count"},
		{"negative word count", ArticleInput{MainKeyword: "k", Title: "t", WordCount: -1}, "word_count"},
		{"unknown tone", ArticleInput{MainKeyword: "k", Title: "t", Tone: "poetic"}, "tone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildArticleRequest(tt.in)
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "a"}, SplitCSV(" a ,b,, a"))
	assert.Empty(t, SplitCSV(""))
	assert.Empty(t, SplitCSV(" , ,"))
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"one", "two words"}, SplitLines("one\r\n\n two words \n"))
	assert.Empty(t, SplitLines("\n\n"))
}

func TestFormInput(t *testing.T) {
	in := FormInput(StateSnapshot{
		Keyword:          "k",
		SelectedTitle:    "t",
		SelectedKeywords: []string{"a", "b"},
	})
	assert.Equal(t, ArticleInput{
		MainKeyword: "k",
		Title:       "t",
		SEOKeywords: "a, b",
		WordCount:   int(DefaultWordCount),
		Tone:        string(DefaultTone),
	}, in)

	req, err := BuildArticleRequest(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, req.SEOKeywords)
}

func TestSelectorLabels(t *testing.T) {
	for _, wc := range WordCounts {
		assert.NotEmpty(t, wc.Label())
	}
	for _, tone := range Tones {
		assert.NotEmpty(t, tone.Label())
		assert.NotEmpty(t, tone.Style())
	}
	assert.False(t, WordCount(42).Valid())
	assert.False(t, Tone("loud").Valid())
}
