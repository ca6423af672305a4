package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const codeFence = "```"

type titleResponse struct {
	Titles []struct {
		Title       string   `json:"title"`
		SEOKeywords []string `json:"seo_keywords"`
	} `json:"titles"`
}

// ParseTitleCandidates parses the model output. It first tries the raw text,
// then the contents of a fenced code block, then gives up.
func ParseTitleCandidates(raw string) ([]TitleCandidate, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, errors.New("empty response")
	}

	candidates, err := decodeTitles(text)
	if err == nil {
		return candidates, nil
	}
	inner, ok := stripCodeFence(text)
	if !ok {
		return nil, fmt.Errorf("parse titles json: %w", err)
	}
	candidates, fenceErr := decodeTitles(inner)
	if fenceErr != nil {
		return nil, fmt.Errorf("parse fenced titles json: %w", fenceErr)
	}
	return candidates, nil
}

func decodeTitles(text string) ([]TitleCandidate, error) {
	var resp titleResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, err
	}
	if len(resp.Titles) == 0 {
		return nil, errors.New(`"titles" is missing or empty`)
	}
	out := make([]TitleCandidate, 0, len(resp.Titles))
	for i, t := range resp.Titles {
		title := strings.TrimSpace(t.Title)
		if title == "" {
			return nil, fmt.Errorf("titles[%d].title is empty", i)
		}
		kws := make([]string, 0, len(t.SEOKeywords))
		for _, kw := range t.SEOKeywords {
			if kw = strings.TrimSpace(kw); kw != "" {
				kws = append(kws, kw)
			}
		}
		out = append(out, TitleCandidate{Title: title, SEOKeywords: kws})
	}
	return out, nil
}

// stripCodeFence returns the body of the first fenced block. The opening fence
// may carry a language tag; a missing closing fence runs to the end.
func stripCodeFence(text string) (string, bool) {
	start := strings.Index(text, codeFence)
	if start < 0 {
		return "", false
	}
	body := text[start+len(codeFence):]
	if end := strings.Index(body, codeFence); end >= 0 {
		body = body[:end]
	}

	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		if !strings.ContainsAny(body[:nl], "{[") {
			body = body[nl+1:]
		}
	} else if i := strings.IndexAny(body, "{["); i > 0 {
		body = body[i:]
	}
	return strings.TrimSpace(body), true
}
