package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/goodvibes/pkg/sanitizer"
)

func TestPlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain text untouched", in: "Hello world", want: "Hello world"},
		{name: "strips tags", in: "<p>Hello <b>world</b></p>", want: "Hello world"},
		{name: "drops scripts", in: `ok<script>alert("x")</script>`, want: "ok"},
		{name: "decodes quotes", in: "What is &quot;HTML&quot;?", want: `What is "HTML"?`},
		{name: "decodes apostrophe", in: "Don&#039;t panic", want: "Don't panic"},
		{name: "decodes ampersand", in: "R&amp;D", want: "R&D"},
		{name: "strips encoded markup", in: "&lt;b&gt;bold&lt;/b&gt;", want: "bold"},
		{name: "collapses whitespace", in: "  a \n\t b  ", want: "a b"},
		{name: "keeps unicode", in: "Café ☀️", want: "Café ☀️"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, sanitizer.PlainText(tt.in))
		})
	}
}

func TestPlainTextAll(t *testing.T) {
	t.Parallel()

	in := []string{"<i>Paris</i>", "S&atilde;o Paulo"}
	out := sanitizer.PlainTextAll(in)
	require.Equal(t, []string{"Paris", "São Paulo"}, out)
}

func TestDecodeText(t *testing.T) {
	t.Parallel()

	require.Equal(t, "<ul>", sanitizer.DecodeText("&lt;ul&gt;"))
	require.Equal(t, `Who directed "Jaws"?`, sanitizer.DecodeText("Who directed &quot;Jaws&quot;?"))
	require.Equal(t, "a b", sanitizer.DecodeText("  a \n b "))
	require.Equal(t, []string{"<b>", "R&D"}, sanitizer.DecodeTextAll([]string{"&lt;b&gt;", "R&amp;D"}))
}
