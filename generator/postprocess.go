package generator

import (
	"strings"
)

// PostProcessArticle 校验模型输出的 Markdown 并去掉首尾空白。
// A fence wrapping the whole article is removed so the preview renders headings.
func PostProcessArticle(raw string) (string, error) {
	md := strings.TrimSpace(raw)
	if md == "" {
		return "", newEmptyResponseError("")
	}
	if strings.HasPrefix(md, codeFence) && strings.HasSuffix(md, codeFence) && strings.Count(md, codeFence) == 2 {
		if inner, ok := stripCodeFence(md); ok && inner != "" {
			md = inner
		}
	}
	return md, nil
}
