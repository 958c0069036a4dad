package mailer

import (
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	fs := fstest.MapFS{
		"layouts/default.html": &fstest.MapFile{
			Data: []byte(`<title>{{.Metadata.Subject}}</title><h1>{{.Data.Title}}</h1>{{.Content}}`),
		},
		"issue.md": &fstest.MapFile{Data: []byte(`---
Subject: Daily
---
> *"{{md .Quote}}"*

Q: {{md .Question}} [!answer|{{md .Answer}}]

[!button|Unsubscribe]({{.URL}})
`)},
	}

	r := NewRendererWithConfig(fs, RendererConfig{Funcs: map[string]any{"upper": strings.ToUpper}})
	require.NoError(t, r.Preload("default.html", "issue.md"))

	res, err := r.Render("default.html", "issue.md", map[string]string{
		"Title":    "<Vibes>",
		"Quote":    "Be *bold* & <b>brave</b>",
		"Question": "What is [this]?",
		"Answer":   "A ]bracket[",
		"URL":      "https://example.com/unsubscribe.html?token=abc",
	})
	require.NoError(t, err)

	require.Contains(t, res.HTML, "<title>Daily</title>")
	require.Contains(t, res.HTML, "<h1>&lt;Vibes&gt;</h1>")
	require.Contains(t, res.HTML, "<em>&quot;Be *bold* &amp; &lt;b&gt;brave&lt;/b&gt;&quot;</em>")
	require.Contains(t, res.HTML, "Q: What is [this]?")
	require.Contains(t, res.HTML, `<details class="answer"><summary>Show Answer</summary>✓ <strong>A ]bracket[</strong></details>`)
	require.Contains(t, res.HTML, `<a href="https://example.com/unsubscribe.html?token=abc" class="btn">Unsubscribe</a>`)
	require.NotContains(t, res.HTML, "<b>brave</b>")
	require.Equal(t, "Daily", res.Metadata["Subject"])
}

func TestRenderer_Errors(t *testing.T) {
	t.Parallel()

	fs := fstest.MapFS{
		"layouts/ok.html":  &fstest.MapFile{Data: []byte(`{{.Content}}`)},
		"layouts/bad.html": &fstest.MapFile{Data: []byte(`{{.Content`)},
		"ok.md":            &fstest.MapFile{Data: []byte(`hi`)},
		"bad.md":           &fstest.MapFile{Data: []byte(`{{if}}`)},
		"front.md":         &fstest.MapFile{Data: []byte("---\nSubject: x\n")},
	}
	r := NewRenderer(fs)

	require.ErrorIs(t, r.Preload("missing.html", "ok.md"), ErrLayoutNotFound)
	require.ErrorIs(t, r.Preload("ok.html", "missing.md"), ErrTemplateNotFound)
	require.ErrorIs(t, r.Preload("bad.html", "ok.md"), ErrRenderFailed)
	require.ErrorIs(t, r.Preload("ok.html", "bad.md"), ErrRenderFailed)
	require.ErrorIs(t, r.Preload("ok.html", "front.md"), ErrInvalidFrontmatter)
	require.NoError(t, r.Preload("ok.html", "ok.md"))
}

func TestRenderer_ConcurrentRender(t *testing.T) {
	t.Parallel()

	fs := fstest.MapFS{
		"layouts/l.html": &fstest.MapFile{Data: []byte(`{{.Content}}`)},
		"t.md":           &fstest.MapFile{Data: []byte(`n={{.}}`)},
	}
	r := NewRenderer(fs)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			res, err := r.Render("l.html", "t.md", i)
			require.NoError(t, err)
			require.Contains(t, res.HTML, "n=")
		})
	}
	wg.Wait()
}

func TestEscapeMarkdown(t *testing.T) {
	t.Parallel()

	require.Equal(t, "plain text, ok.", EscapeMarkdown("plain text, ok."))
	require.Equal(t, `\*a\_b\* \[c\](d) \<e\> \!f \\ \&g`, EscapeMarkdown(`*a_b* [c](d) <e> !f \ &g`))
}
