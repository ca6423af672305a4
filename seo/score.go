// Package seo scores a generated article against its title and SEO keywords.
package seo

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Band maxima. They add up to exactly 100.
const (
	MaxLengthPoints  = 30
	MaxDensityPoints = 25
	MaxHeadingPoints = 20
	MaxTitlePoints   = 15
	MaxVarietyPoints = 10
	MaxScore         = 100
	ReferenceScore   = 80
	poorScoreCeiling = 50
)

// Ideal ranges shown next to each metric.
const (
	IdealLengthHint   = "1500-3000文字"
	IdealDensityHint  = "1-3%"
	IdealHeadingsHint = "H2≥3, H3≥2"
	IdealTitleHint    = "20-32文字"
)

var (
	h2Re = regexp.MustCompile(`(?m)^## `)
	h3Re = regexp.MustCompile(`(?m)^### `)
)

// Band is one weighted component of the composite score.
type Band struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
	Max    int    `json:"max"`
	Ideal  string `json:"ideal,omitempty"`
}

// KeywordCount keeps keyword order for display; KeywordCounts in Metrics is keyed.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// Metrics is derived from the article on demand and never stored.
type Metrics struct {
	ArticleLength     int            `json:"article_length"`
	KeywordCounts     map[string]int `json:"keyword_counts"`
	Keywords          []KeywordCount `json:"keywords"`
	TotalKeywordCount int            `json:"total_keyword_count"`
	H2Count           int            `json:"h2_count"`
	H3Count           int            `json:"h3_count"`
	TitleLength       int            `json:"title_length"`
	KeywordDensity    float64        `json:"keyword_density"`
	Score             int            `json:"score"`
	Bands             []Band         `json:"bands"`
	Verdict           string         `json:"verdict"`
}

// Score computes the metrics. It is total: empty inputs only lower the score.
//
// Keyword occurrences are counted as plain case-insensitive substrings, so a
// keyword that is part of a longer word ("AI" in "Thailand") is counted too.
func Score(article, title string, keywords []string) Metrics {
	m := Metrics{
		ArticleLength: utf8.RuneCountInString(article),
		KeywordCounts: make(map[string]int, len(keywords)),
		Keywords:      make([]KeywordCount, 0, len(keywords)),
		TitleLength:   utf8.RuneCountInString(title),
	}

	lower := strings.ToLower(article)
	for _, kw := range keywords {
		n := strings.Count(lower, strings.ToLower(kw))
		m.KeywordCounts[kw] = n
		m.Keywords = append(m.Keywords, KeywordCount{Keyword: kw, Count: n})
		m.TotalKeywordCount += n
	}

	m.H2Count = len(h2Re.FindAllStringIndex(article, -1))
	m.H3Count = len(h3Re.FindAllStringIndex(article, -1))

	if m.ArticleLength > 0 {
		m.KeywordDensity = float64(m.TotalKeywordCount) / float64(m.ArticleLength) * 100
	}

	m.Bands = []Band{
		{Name: "length", Points: lengthPoints(m.ArticleLength), Max: MaxLengthPoints, Ideal: IdealLengthHint},
		{Name: "keyword_density", Points: densityPoints(m.KeywordDensity), Max: MaxDensityPoints, Ideal: IdealDensityHint},
		{Name: "headings", Points: headingPoints(m.H2Count, m.H3Count), Max: MaxHeadingPoints, Ideal: IdealHeadingsHint},
		{Name: "title_length", Points: titlePoints(m.TitleLength), Max: MaxTitlePoints, Ideal: IdealTitleHint},
		{Name: "keyword_variety", Points: varietyPoints(len(keywords)), Max: MaxVarietyPoints},
	}
	total := 0
	for _, b := range m.Bands {
		total += b.Points
	}
	m.Score = min(total, MaxScore)
	m.Verdict = Verdict(m.Score)
	return m
}

// Verdict buckets a score the way the gauge colours it.
func Verdict(score int) string {
	switch {
	case score >= ReferenceScore:
		return "good"
	case score >= poorScoreCeiling:
		return "fair"
	default:
		return "poor"
	}
}

func lengthPoints(n int) int {
	switch {
	case n >= 1500 && n <= 3000:
		return 30
	case (n >= 1000 && n < 1500) || (n > 3000 && n <= 4000):
		return 20
	default:
		return 10
	}
}

func densityPoints(d float64) int {
	switch {
	case d >= 1 && d <= 3:
		return 25
	case (d >= 0.5 && d < 1) || (d > 3 && d <= 5):
		return 15
	default:
		return 5
	}
}

func headingPoints(h2, h3 int) int {
	switch {
	case h2 >= 3 && h3 >= 2:
		return 20
	case h2 >= 2:
		return 15
	case h2 >= 1:
		return 10
	default:
		return 5
	}
}

func titlePoints(n int) int {
	switch {
	case n >= 20 && n <= 32:
		return 15
	case (n >= 15 && n < 20) || (n > 32 && n <= 40):
		return 10
	default:
		return 5
	}
}

func varietyPoints(n int) int {
	switch {
	case n >= 3:
		return 10
	case n >= 2:
		return 7
	default:
		return 3
	}
}
