package app

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/goodvibes/pkg/health"
)

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger available through Context.Logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithHandlers registers route handlers.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithMiddleware adds global middleware, outermost first.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHTTPMiddleware adds standard net/http middleware such as chi's
// middleware.RequestID. They run before any Middleware.
func WithHTTPMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(a *App) {
		a.httpMiddlewares = append(a.httpMiddlewares, mw...)
	}
}

// WithErrorHandler replaces DefaultErrorHandler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		if h != nil {
			a.errorHandler = h
		}
	}
}

// WithNotFoundHandler sets the handler for unmatched routes.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithHealthChecks enables /health/live and /health/ready. Readiness runs
// the given checks.
func WithHealthChecks(checks health.Checks) Option {
	return func(a *App) {
		a.healthEnabled = true
		if a.healthChecks == nil {
			a.healthChecks = make(health.Checks, len(checks))
		}
		for name, fn := range checks {
			a.healthChecks[name] = fn
		}
	}
}
