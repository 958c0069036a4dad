// Package sanitizer turns untrusted upstream text into plain text.
package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once
)

func policy() *bluemonday.Policy {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// PlainText removes every HTML element, decodes entities and collapses
// runs of whitespace. Quote and LLM text goes through here before it
// reaches a template.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	// Decode first so that entity-encoded markup (&lt;b&gt;) is stripped too.
	stripped := policy().Sanitize(html.UnescapeString(s))
	return strings.Join(strings.Fields(html.UnescapeString(stripped)), " ")
}

// DecodeText decodes HTML entities and collapses whitespace but keeps any
// markup characters as text, so "&lt;ul&gt;" becomes "<ul>". Use it for
// sources that entity-encode plain text; templates must still escape it.
func DecodeText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}

// DecodeTextAll applies DecodeText to each element in place and returns the slice.
func DecodeTextAll(ss []string) []string {
	for i, s := range ss {
		ss[i] = DecodeText(s)
	}
	return ss
}

// PlainTextAll applies PlainText to each element in place and returns the slice.
func PlainTextAll(ss []string) []string {
	for i, s := range ss {
		ss[i] = PlainText(s)
	}
	return ss
}
