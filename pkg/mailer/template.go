package mailer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Template is a markdown body plus the YAML frontmatter above it.
type Template struct {
	Metadata map[string]any
	Body     string
}

var frontmatterDelim = []byte("---")

// ParseTemplate splits a template file into frontmatter and body. A file that
// does not start with "---" has no metadata.
//
//	---
//	Subject: "Hello {{.Name}}"
//	---
//	# Body in markdown
func ParseTemplate(raw []byte) (*Template, error) {
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))
	if !bytes.HasPrefix(raw, frontmatterDelim) {
		return &Template{Metadata: map[string]any{}, Body: string(raw)}, nil
	}

	rest := bytes.TrimLeft(raw[len(frontmatterDelim):], "\r\n")
	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: nothing after opening delimiter", ErrInvalidFrontmatter)
	}

	end := bytes.Index(rest, frontmatterDelim)
	if end < 0 {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	meta := map[string]any{}
	if front := bytes.TrimSpace(rest[:end]); len(front) > 0 {
		if err := yaml.Unmarshal(front, &meta); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	body := rest[end+len(frontmatterDelim):]
	switch {
	case bytes.HasPrefix(body, []byte("\r\n")):
		body = body[2:]
	case bytes.HasPrefix(body, []byte("\n")):
		body = body[1:]
	}

	return &Template{Metadata: meta, Body: string(body)}, nil
}
