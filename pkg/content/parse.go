package content

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var (
	fenceOpenRe = regexp.MustCompile("```json\\s*")
	fenceRe     = regexp.MustCompile("```\\s*")
	arrayRe     = regexp.MustCompile(`\[[\s\S]*\]`)
)

// ParseNewsItems extracts the news array from a model response.
//
// Code fences are removed first. The cleaned text is parsed as a JSON array;
// if that fails, the outermost [...] span is parsed instead. An empty array is
// an error. The result is not padded; see NormalizeNews.
func ParseNewsItems(raw string) ([]NewsItem, error) {
	text := strings.TrimSpace(raw)
	text = fenceOpenRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(fenceRe.ReplaceAllString(text, ""))

	items, err := decodeNews(text)
	if err != nil {
		span := arrayRe.FindString(text)
		if span == "" {
			return nil, ErrNoJSONArray
		}
		if items, err = decodeNews(span); err != nil {
			return nil, err
		}
	}

	if len(items) == 0 {
		return nil, errors.Join(ErrMalformedNews, ErrEmptyResult)
	}
	return items, nil
}

func decodeNews(text string) ([]NewsItem, error) {
	var items []NewsItem
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, errors.Join(ErrMalformedNews, err)
	}
	return items, nil
}

// NormalizeNews pads items with the filler item up to NewsCount and
// truncates anything beyond it.
func NormalizeNews(items []NewsItem) []NewsItem {
	out := make([]NewsItem, 0, NewsCount)
	out = append(out, items[:min(len(items), NewsCount)]...)
	for len(out) < NewsCount {
		out = append(out, FillerNews())
	}
	return out
}
