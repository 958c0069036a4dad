package smtp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"github.com/dmitrymomot/goodvibes/pkg/mailer"
)

func TestSender_message(t *testing.T) {
	t.Parallel()

	s, err := New(Config{Host: "localhost", Port: 2525, From: "Daily Good Vibes <hi@example.com>", TLS: "none"})
	require.NoError(t, err)

	msg, err := s.message(&mailer.Email{
		To:      []string{"reader@example.com"},
		Subject: "Daily",
		HTML:    "<p>Hello</p>",
		Text:    "Hello",
		Headers: map[string]string{"List-Unsubscribe": "<https://example.com/u>"},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	require.Contains(t, raw, "Subject: Daily")
	require.Contains(t, raw, "<reader@example.com>")
	require.Contains(t, raw, `"Daily Good Vibes" <hi@example.com>`)
	require.Contains(t, raw, "List-Unsubscribe: <https://example.com/u>")
	require.Contains(t, raw, "<p>Hello</p>")
}

func TestSender_message_InvalidAddress(t *testing.T) {
	t.Parallel()

	s, err := New(Config{Host: "localhost", From: "hi@example.com"})
	require.NoError(t, err)

	_, err = s.message(&mailer.Email{To: []string{"not an address"}, Subject: "s", HTML: "h"})
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestTLSPolicy(t *testing.T) {
	t.Parallel()

	require.Equal(t, mail.NoTLS, tlsPolicy("none"))
	require.Equal(t, mail.TLSOpportunistic, tlsPolicy("opportunistic"))
	require.Equal(t, mail.TLSMandatory, tlsPolicy(""))
}
