package mailer

import (
	"context"
	"log/slog"
	"strings"
)

// Sender delivers a prepared Email. Implementations live in subpackages
// (resend, smtp); LogSender is built in for local runs.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, email *Email) error

func (f SenderFunc) Send(ctx context.Context, email *Email) error { return f(ctx, email) }

// LogSender writes messages to the logger instead of delivering them.
type LogSender struct {
	log *slog.Logger
}

// NewLogSender creates a LogSender. A nil logger uses slog.Default.
func NewLogSender(log *slog.Logger) *LogSender {
	if log == nil {
		log = slog.Default()
	}
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, email *Email) error {
	s.log.InfoContext(ctx, "email not sent (log provider)",
		slog.String("to", strings.Join(email.To, ", ")),
		slog.String("subject", email.Subject),
		slog.Int("html_bytes", len(email.HTML)),
		slog.String("text", email.Text),
	)
	return nil
}
