package logger

import (
	"io"
	"log/slog"
	"os"
)

// New creates a logger writing to stdout with optional context extractors.
// When cfg.Sentry.DSN is set, records at or above cfg.Sentry.MinLevel are
// also forwarded to Sentry.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg, extractors...)
}

// NewWithWriter is New with a custom destination.
func NewWithWriter(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(withExtractors(newHandler(w, cfg), extractors...))
}

// newHandler builds the stdout handler and, if configured, fans out to Sentry.
func newHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var out slog.Handler
	if cfg.Format == "text" {
		out = slog.NewTextHandler(w, opts)
	} else {
		out = slog.NewJSONHandler(w, opts)
	}

	if cfg.Sentry.DSN == "" {
		return out
	}

	sentryHandler, err := newSentryHandler(cfg.Sentry)
	if err != nil {
		slog.New(out).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return out
	}

	return fanout{out, sentryHandler}
}

// NewNope creates a no-op logger that discards all output.
// Use this as a default when logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
