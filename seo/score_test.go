package seo

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bandPoints(t *testing.T, m Metrics, name string) int {
	t.Helper()
	for _, b := range m.Bands {
		if b.Name == name {
			return b.Points
		}
	}
	t.Fatalf("band %q missing", name)
	return 0
}

func TestScore_LengthBoundaries(t *testing.T) {
	tests := []struct {
		length int
		want   int
	}{
		{999, 10},
		{1000, 20},
		{1499, 20},
		{1500, 30},
		{3000, 30},
		{3001, 20},
		{4000, 20},
		{4001, 10},
		{0, 10},
	}
	for _, tt := range tests {
		m := Score(strings.Repeat("x", tt.length), "", nil)
		assert.Equal(t, tt.length, m.ArticleLength)
		assert.Equal(t, tt.want, bandPoints(t, m, "length"), "length %d", tt.length)
	}
}

func TestScore_ArticleLengthCountsCharactersNotBytes(t *testing.T) {
	m := Score("日本語の記事", "タイトル", nil)
	assert.Equal(t, 6, m.ArticleLength)
	assert.Equal(t, 4, m.TitleLength)
}

func TestScore_KeywordCountingIsCaseInsensitive(t *testing.T) {
	m := Score("SEO is great", "", []string{"seo"})
	assert.Equal(t, 1, m.KeywordCounts["seo"])
	assert.Equal(t, 1, m.TotalKeywordCount)
}

func TestScore_KeywordSubstringsAreCounted(t *testing.T) {
	m := Score("Thailand AI trip", "", []string{"ai"})
	assert.Equal(t, 2, m.KeywordCounts["ai"])
}

func TestScore_NonOverlappingCount(t *testing.T) {
	m := Score("aaaa", "", []string{"aa"})
	assert.Equal(t, 2, m.TotalKeywordCount)
}

func TestScore_DuplicateKeywordsAddUp(t *testing.T) {
	m := Score("go go go", "", []string{"go", "go"})
	assert.Equal(t, 3, m.KeywordCounts["go"])
	assert.Equal(t, 6, m.TotalKeywordCount)
	require.Len(t, m.Keywords, 2)
	assert.Equal(t, 7, bandPoints(t, m, "keyword_variety"))
}

func TestScore_HeadingCounts(t *testing.T) {
	article := "# T\n## A\n## B\n### C\n### D\n### E\ntext ## not a heading\n####  deep"
	m := Score(article, "", nil)
	assert.Equal(t, 2, m.H2Count)
	assert.Equal(t, 3, m.H3Count)
	assert.Equal(t, 15, bandPoints(t, m, "headings"))
}

func TestScore_HeadingBands(t *testing.T) {
	tests := []struct {
		name    string
		article string
		want    int
	}{
		{"none", "plain", 5},
		{"one h2", "## a", 10},
		{"two h2", "## a\n## b", 15},
		{"three h2 one h3", "## a\n## b\n## c\n### d", 15},
		{"three h2 two h3", "## a\n## b\n## c\n### d\n### e", 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bandPoints(t, Score(tt.article, "", nil), "headings"))
		})
	}
}

func TestScore_DensityBands(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{"zero", 0, 5},
		{"0.4%", 4, 5},
		{"0.5%", 5, 15},
		{"1%", 10, 25},
		{"3%", 30, 25},
		{"3.1%", 31, 15},
		{"5%", 50, 15},
		{"5.1%", 51, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			article := strings.Repeat("k", tt.count) + strings.Repeat("-", 1000-tt.count)
			m := Score(article, "", []string{"k"})
			require.Equal(t, 1000, m.ArticleLength)
			assert.Equal(t, tt.want, bandPoints(t, m, "keyword_density"))
		})
	}
}

func TestScore_TitleBands(t *testing.T) {
	tests := []struct {
		length int
		want   int
	}{
		{14, 5},
		{15, 10},
		{19, 10},
		{20, 15},
		{32, 15},
		{33, 10},
		{40, 10},
		{41, 5},
	}
	for _, tt := range tests {
		m := Score("", strings.Repeat("題", tt.length), nil)
		assert.Equal(t, tt.want, bandPoints(t, m, "title_length"), "title length %d", tt.length)
	}
}

func TestScore_VarietyBands(t *testing.T) {
	assert.Equal(t, 3, bandPoints(t, Score("", "", nil), "keyword_variety"))
	assert.Equal(t, 3, bandPoints(t, Score("", "", []string{"a"}), "keyword_variety"))
	assert.Equal(t, 7, bandPoints(t, Score("", "", []string{"a", "b"}), "keyword_variety"))
	assert.Equal(t, 10, bandPoints(t, Score("", "", []string{"a", "b", "c", "d"}), "keyword_variety"))
}

func TestScore_EmptyInputs(t *testing.T) {
	m := Score("", "", nil)
	assert.Equal(t, 0.0, m.KeywordDensity)
	assert.Equal(t, 10+5+5+5+3, m.Score)
	assert.Equal(t, "poor", m.Verdict)
	assert.NotNil(t, m.KeywordCounts)
}

func TestScore_RunningScenario(t *testing.T) {
	var b strings.Builder
	b.WriteString("## はじめに\n")
	b.WriteString("## 続けるコツ\n")
	b.WriteString("### 靴の選び方\n")
	b.WriteString("### 走る時間\n")
	b.WriteString(strings.Repeat("ランニング", 15))
	b.WriteString(strings.Repeat("初心者", 5))
	article := b.String()
	article += strings.Repeat("あ", 2000-utf8.RuneCountInString(article))
	title := strings.Repeat("走", 25)

	m := Score(article, title, []string{"ランニング", "初心者"})

	assert.Equal(t, 2000, m.ArticleLength)
	assert.Equal(t, 15, m.KeywordCounts["ランニング"])
	assert.Equal(t, 5, m.KeywordCounts["初心者"])
	assert.Equal(t, 20, m.TotalKeywordCount)
	assert.Equal(t, 2, m.H2Count)
	assert.Equal(t, 2, m.H3Count)
	assert.Equal(t, 25, m.TitleLength)
	assert.InDelta(t, 1.0, m.KeywordDensity, 1e-12)
	assert.Equal(t, 30, bandPoints(t, m, "length"))
	assert.Equal(t, 25, bandPoints(t, m, "keyword_density"))
	assert.Equal(t, 15, bandPoints(t, m, "headings"))
	assert.Equal(t, 15, bandPoints(t, m, "title_length"))
	assert.Equal(t, 7, bandPoints(t, m, "keyword_variety"))
	assert.Equal(t, 92, m.Score)
	assert.Equal(t, "good", m.Verdict)
}

func TestScore_Deterministic(t *testing.T) {
	article := "## a\n## b\n## c\n### d\n### e\n" + strings.Repeat("seo text ", 200)
	keywords := []string{"seo", "text", "a"}
	first := Score(article, "an example title of fine size", keywords)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Score(article, "an example title of fine size", keywords))
	}
}

func TestScore_BandsNeverExceedMaxima(t *testing.T) {
	inputs := []struct {
		article  string
		title    string
		keywords []string
	}{
		{"", "", nil},
		{strings.Repeat("k", 5000), strings.Repeat("t", 100), []string{"k", "k", "k"}},
		{"## a\n## b\n## c\n### d\n### e\n" + strings.Repeat("word ", 400), "twenty-five chars title!!", []string{"word", "a", "b"}},
		{strings.Repeat("## h\n### h\n", 300), "t", []string{"h"}},
	}
	for _, in := range inputs {
		m := Score(in.article, in.title, in.keywords)
		sum := 0
		for _, b := range m.Bands {
			assert.LessOrEqual(t, b.Points, b.Max, b.Name)
			assert.Positive(t, b.Points, b.Name)
			sum += b.Max
		}
		assert.Equal(t, MaxScore, sum)
		assert.GreaterOrEqual(t, m.Score, 0)
		assert.LessOrEqual(t, m.Score, MaxScore)
	}
}

func TestVerdict(t *testing.T) {
	assert.Equal(t, "poor", Verdict(49))
	assert.Equal(t, "fair", Verdict(50))
	assert.Equal(t, "fair", Verdict(79))
	assert.Equal(t, "good", Verdict(80))
}
