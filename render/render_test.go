package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `# 初心者のためのランニング入門

ランニングを始めたい人に向けたガイドです。

## はじめに
走る前に準備しましょう。

| 距離 | 時間 |
|---|---|
| 3km | 20分 |

<script>alert(1)</script>
`

func TestMarkdownToHTML(t *testing.T) {
	out, err := MarkdownToHTML(sample)
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>初心者のためのランニング入門</h1>")
	assert.Contains(t, out, "<h2>はじめに</h2>")
	assert.Contains(t, out, "<table>")
	assert.NotContains(t, out, "<script>")
}

func TestExtractTitle(t *testing.T) {
	assert.Equal(t, "初心者のためのランニング入門", ExtractTitle(sample))
	assert.Equal(t, "", ExtractTitle("## only h2"))
}

func TestDigest(t *testing.T) {
	assert.Equal(t, "ランニングを始めたい人に向けたガイドです。", Digest(sample, 120))
	assert.Equal(t, "ランニング…", Digest(sample, 5))
	assert.Equal(t, "", Digest("", 10))
	assert.Equal(t, "## a ---", Digest("## a\n---", 0))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "article.md", Filename("  "))
	assert.Equal(t, "a_b.md", Filename("a/b"))
	assert.True(t, strings.HasSuffix(Filename(strings.Repeat("長", 100)), "….md"))
}
