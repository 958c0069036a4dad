package middlewares

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/goodvibes/internal/app"
	"github.com/dmitrymomot/goodvibes/pkg/logger"
)

// RequestIDExtractor adds chi's request ID to every log record written with
// a request context. Pass it to logger.New.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := middleware.GetReqID(ctx); id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}

// RequestLog logs one line per request after the handler returns.
// Health probes are logged at DEBUG.
func RequestLog(quietPaths ...string) app.Middleware {
	quiet := make(map[string]bool, len(quietPaths))
	for _, p := range quietPaths {
		quiet[p] = true
	}

	return func(next app.HandlerFunc) app.HandlerFunc {
		return func(c app.Context) error {
			start := time.Now()
			err := next(c)

			req := c.Request()
			status := c.ResponseWriter().Status()
			if err != nil {
				if httpErr := app.AsHTTPError(err); httpErr != nil {
					status = httpErr.Code
				} else {
					status = 500
				}
			}

			level := slog.LevelInfo
			switch {
			case quiet[req.URL.Path]:
				level = slog.LevelDebug
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			c.Logger().LogAttrs(req.Context(), level, "http request",
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", status),
				slog.Int64("bytes", c.ResponseWriter().Size()),
				slog.Duration("duration", time.Since(start)),
				slog.String("remote_addr", req.RemoteAddr),
			)
			return err
		}
	}
}
