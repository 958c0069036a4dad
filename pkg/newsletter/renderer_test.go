package newsletter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/goodvibes/pkg/content"
	"github.com/dmitrymomot/goodvibes/pkg/mailer"
)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	html, err := r.Render(fallbackContent(), "https://vibes.example/unsubscribe.html?token=abc")
	require.NoError(t, err)

	for _, want := range []string{
		"☀️ Daily Good Vibes",
		"Mon Oct 19 2026",
		"💡 Quote of the Day",
		"The only way to do great work is to love what you do.",
		"Steve Jobs",
		"🧠 Today's Trivia Challenge",
		"<strong>Question 1</strong>",
		"What is the capital of France?",
		"A. London",
		"C. Paris",
		`<details class="answer"><summary>Show Answer</summary>✓ <strong>Paris</strong></details>`,
		"🤖 Top 5 AI News",
		"<h3>1. AI Models Achieve New Benchmarks in Reasoning Tasks</h3>",
		"<strong>Why it matters:</strong>",
		"You're receiving this because you subscribed to Daily Good Vibes",
		`<a href="https://vibes.example/unsubscribe.html?token=abc" class="btn">Unsubscribe</a>`,
	} {
		require.Contains(t, html, want)
	}
	require.Equal(t, 5, strings.Count(html, "<h3>"))
}

func TestRenderer_WebVersionHasNoUnsubscribeLink(t *testing.T) {
	t.Parallel()

	html, err := newTestRenderer(t).Render(fallbackContent(), "")
	require.NoError(t, err)
	require.NotContains(t, html, `class="btn"`)
}

func TestRenderer_UntrustedTextIsEscaped(t *testing.T) {
	t.Parallel()

	c := fallbackContent()
	c.Quote = content.Quote{Text: `<script>alert(1)</script> **bold** [!answer|leak]`, Author: "[x](javascript:alert(1))"}

	html, err := newTestRenderer(t).Render(c, "")
	require.NoError(t, err)
	require.NotContains(t, html, "<script>")
	require.NotContains(t, html, "<strong>bold</strong>")
	require.NotContains(t, html, `href="javascript`)
	require.Contains(t, html, "&lt;script&gt;")
	// Only the real trivia answer becomes a details block.
	require.Equal(t, 1, strings.Count(html, "<details"))
}

func TestRenderer_MarkupAnswersRenderAsText(t *testing.T) {
	t.Parallel()

	c := fallbackContent()
	c.Trivia = []content.TriviaQuestion{{
		Number:        1,
		Question:      "Which tag makes text bold in HTML?",
		Category:      "Science: Computers",
		Difficulty:    "easy",
		Options:       []string{"<ul>", "<b>", "<ol>", "<i>"},
		CorrectAnswer: "<b>",
	}}

	html, err := newTestRenderer(t).Render(c, "")
	require.NoError(t, err)
	require.Contains(t, html, "A. &lt;ul&gt;")
	require.Contains(t, html, "B. &lt;b&gt;")
	require.Contains(t, html, "✓ <strong>&lt;b&gt;</strong>")
	require.NotContains(t, html, "<ul>")
}

func TestRenderer_Subject(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	templates, err := Templates()
	require.NoError(t, err)

	m := mailer.New(mailer.NewLogSender(nil), templates, mailer.Config{FallbackSubject: "unused"})
	email, err := m.Render(mailer.SendParams{
		To:       "reader@example.com",
		Template: TemplateName,
		Layout:   LayoutName,
		Data:     r.Issue(fallbackContent(), "https://vibes.example/unsubscribe.html?token=abc"),
	})
	require.NoError(t, err)
	require.Equal(t, "☀️ Your Daily Good Vibes - 10/19/2026", email.Subject)
	require.Contains(t, email.Text, "What is the capital of France?")
	require.Contains(t, email.Text, "Unsubscribe: https://vibes.example/unsubscribe.html?token=abc")
	require.NotContains(t, email.Text, "[!answer")
	require.NotContains(t, email.Text, `\`)
	require.NotContains(t, email.Text, "✓")
}

func TestRenderer_DateKey(t *testing.T) {
	t.Parallel()
	require.Equal(t, "2026-10-19", newTestRenderer(t).DateKey())
}
