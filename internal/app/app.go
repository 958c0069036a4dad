package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/goodvibes/pkg/health"
)

// Server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 90 * time.Second // issue preview may wait on the language model
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
)

// Health endpoint paths.
const (
	LivenessPath  = "/health/live"
	ReadinessPath = "/health/ready"
)

// App is the HTTP application: routes, middleware and error handling.
// It is immutable after New.
type App struct {
	router          chi.Router
	errorHandler    ErrorHandler
	notFoundHandler HandlerFunc
	logger          *slog.Logger
	httpMiddlewares []func(http.Handler) http.Handler
	middlewares     []Middleware
	handlers        []Handler
	healthChecks    health.Checks
	healthEnabled   bool
}

// New creates an App.
//
//	a := app.New(
//	    app.WithLogger(log),
//	    app.WithHTTPMiddleware(middleware.RequestID, middleware.RealIP),
//	    app.WithMiddleware(middlewares.Recover(), middlewares.RequestLog()),
//	    app.WithHealthChecks(health.Checks{"postgres": db.Healthcheck(pool)}),
//	    app.WithHandlers(handlers.NewSubscribe(form)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:       chi.NewRouter(),
		logger:       slog.New(slog.DiscardHandler),
		errorHandler: DefaultErrorHandler,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.setupRoutes()
	return a
}

// Router returns the root handler.
func (a *App) Router() chi.Router {
	return a.router
}

func (a *App) setupRoutes() {
	for _, mw := range a.httpMiddlewares {
		a.router.Use(mw)
	}
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	if a.notFoundHandler != nil {
		a.router.NotFound(a.wrapHandler(a.notFoundHandler))
	}

	if a.healthEnabled {
		a.router.Get(LivenessPath, health.LivenessHandler())
		a.router.Get(ReadinessPath, health.ReadinessHandler(a.healthChecks, health.WithLogger(a.logger)))
	}

	r := &routerAdapter{mux: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a.logger)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

func (a *App) handleError(c Context, err error) {
	if c.Written() {
		c.LogError("error after response was written", "error", err.Error())
		return
	}
	if herr := a.errorHandler(c, err); herr != nil {
		c.LogError("error handler failed", "error", herr.Error())
	}
}
