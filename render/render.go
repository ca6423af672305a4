// Package render turns generated markdown into what the display surface shows:
// an HTML preview, a plain copy text and a short digest.
package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		// html.WithUnsafe stays off: raw HTML in model output is not rendered.
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	titleRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)
)

// MarkdownToHTML renders the article preview.
func MarkdownToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ExtractTitle returns the first level-1 heading, or "".
func ExtractTitle(src string) string {
	m := titleRe.FindStringSubmatch(src)
	if len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// Digest 取首段（跳过标题行），为空时退回全文压缩后的前 limit 个字符。
func Digest(src string, limit int) string {
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || line == "---" {
			continue
		}
		return truncateRunes(line, limit)
	}
	return truncateRunes(strings.Join(strings.Fields(src), " "), limit)
}

// truncateRunes cuts on character boundaries; byte slicing would split Japanese text.
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "…"
}

// Filename builds a download name for the markdown export from the article title.
func Filename(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "article.md"
	}
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "\"", "", "\n", " ", "\r", "")
	return truncateRunes(replacer.Replace(title), 60) + ".md"
}
