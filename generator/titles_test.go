package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const titlesJSON = `{"titles":[{"title":"A","seo_keywords":["x","y"]},{"title":"B","seo_keywords":["z"]}]}`

func TestParseTitleCandidates(t *testing.T) {
	want := []TitleCandidate{
		{Title: "A", SEOKeywords: []string{"x", "y"}},
		{Title: "B", SEOKeywords: []string{"z"}},
	}

	tests := []struct {
		name string
		raw  string
	}{
		{"raw json", titlesJSON},
		{"surrounding whitespace", "\n  " + titlesJSON + "\n"},
		{"json fence", "```json\n" + titlesJSON + "\n```"},
		{"bare fence", "```\n" + titlesJSON + "\n```"},
		{"other language tag", "```javascript\n" + titlesJSON + "\n```"},
		{"prose around fence", "Here you go:\n```json\n" + titlesJSON + "\n```\nEnjoy!"},
		{"unterminated fence", "```json\n" + titlesJSON},
		{"single line fence", "```json " + titlesJSON + "```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTitleCandidates(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseTitleCandidatesErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", "   "},
		{"malformed", `{"titles": [`},
		{"malformed in fence", "```json\n{\"titles\": [\n```"},
		{"prose only", "Sorry, I cannot help with that."},
		{"empty titles", `{"titles": []}`},
		{"missing titles", `{"items": [{"title": "A"}]}`},
		{"blank title", `{"titles": [{"title": "  ", "seo_keywords": []}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTitleCandidates(tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestParseTitleCandidatesTrimsKeywords(t *testing.T) {
	got, err := ParseTitleCandidates(`{"titles":[{"title":" A ","seo_keywords":[" x ",""," y"]}]}`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Title)
	assert.Equal(t, []string{"x", "y"}, got[0].SEOKeywords)
}

func TestParseTitleCandidatesMissingKeywords(t *testing.T) {
	got, err := ParseTitleCandidates(`{"titles":[{"title":"A"}]}`)
	require.NoError(t, err)
	assert.Empty(t, got[0].SEOKeywords)
}

func TestPostProcessArticle(t *testing.T) {
	out, err := PostProcessArticle("\n\n# T\n\nbody\n  ")
	require.NoError(t, err)
	assert.Equal(t, "# T\n\nbody", out)

	out, err = PostProcessArticle("```markdown\n# T\n\nbody\n```")
	require.NoError(t, err)
	assert.Equal(t, "# T\n\nbody", out)

	inner := "# T\n\n```go\nfmt.Println()\n```\n\nend"
	out, err = PostProcessArticle(inner)
	require.NoError(t, err)
	assert.Equal(t, inner, out)

	_, err = PostProcessArticle(" \n ")
	assert.Error(t, err)
	assert.Equal(t, ErrorTypeUnknown, ErrorTypeOf(err))
}
