// Package logger builds the service's structured logger on top of log/slog.
//
// Records go to stdout as JSON (or text with LOG_FORMAT=text). Context
// extractors add request-scoped attributes such as the request ID on every
// call:
//
//	log := logger.New(cfg.Logger, middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "subscriber added", slog.String("email", email))
//
// When SENTRY_DSN is set, warnings and errors are also forwarded to Sentry;
// errors become issues. Initialization failures fall back to stdout only.
package logger
