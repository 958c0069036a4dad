package mailer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
)

func renderMarkdown(t *testing.T, src string) string {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(NewDirectiveExtension()))
	var buf bytes.Buffer
	require.NoError(t, md.Convert([]byte(src), &buf))
	return buf.String()
}

func TestDirectiveExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "button",
			src:  "[!button|Unsubscribe](https://example.com/u?token=1)",
			want: "<p><a href=\"https://example.com/u?token=1\" class=\"btn\">Unsubscribe</a></p>\n",
		},
		{
			name: "button label is escaped",
			src:  "[!button|<b>Go</b>](https://example.com)",
			want: "<p><a href=\"https://example.com\" class=\"btn\">&lt;b&gt;Go&lt;/b&gt;</a></p>\n",
		},
		{
			name: "answer",
			src:  "[!answer|Paris]",
			want: "<p><details class=\"answer\"><summary>Show Answer</summary>✓ <strong>Paris</strong></details></p>\n",
		},
		{
			name: "answer with escaped brackets",
			src:  `[!answer|Array\[0\] \\ done]`,
			want: "<p><details class=\"answer\"><summary>Show Answer</summary>✓ <strong>Array[0] \\ done</strong></details></p>\n",
		},
		{
			name: "answer inside text",
			src:  "Pick one. [!answer|B] Next.",
			want: "<p>Pick one. <details class=\"answer\"><summary>Show Answer</summary>✓ <strong>B</strong></details> Next.</p>\n",
		},
		{
			name: "regular link untouched",
			src:  "[site](https://example.com)",
			want: "<p><a href=\"https://example.com\">site</a></p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, renderMarkdown(t, tt.src))
		})
	}
}

func TestDirectiveExtension_Malformed(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"[!answer|unterminated",
		"[!button|No URL]",
		"[!button|Open](https://example.com",
	} {
		out := renderMarkdown(t, src)
		require.NotContains(t, out, "<details", src)
		require.NotContains(t, out, `class="btn"`, src)
	}
}
