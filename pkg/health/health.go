// Package health serves liveness and readiness probes for the server.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"postgres": db.Healthcheck(pool),
//		"jobs":     job.Healthcheck(jobs),
//	}, health.WithLogger(log)))
//
// Both respond with JSON; readiness returns 503 when any check fails.
package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc matches the Healthcheck closures of db, redis and job.
type CheckFunc func(ctx context.Context) error

// Checks maps a check name to its probe.
type Checks map[string]CheckFunc

// Report is the probe response body.
type Report struct {
	Status string           `json:"status"`
	Checks map[string]Check `json:"checks,omitempty"`
}

// Check is one probe's outcome.
type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Option configures ReadinessHandler.
type Option func(*options)

type options struct {
	timeout time.Duration
	logger  *slog.Logger
}

// WithTimeout bounds the whole readiness run (default 5s).
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger logs failing checks at WARN.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// LivenessHandler always answers 200.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, Report{Status: StatusHealthy})
	}
}

// ReadinessHandler runs every check concurrently on each request.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	o := &options{timeout: 5 * time.Second, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(o)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		report := Run(r.Context(), checks, o.timeout, o.logger)
		status := http.StatusOK
		if report.Status != StatusHealthy {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, report)
	}
}

// Run executes checks in parallel under a shared timeout.
func Run(ctx context.Context, checks Checks, timeout time.Duration, logger *slog.Logger) Report {
	report := Report{Status: StatusHealthy}
	if len(checks) == 0 {
		return report
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	report.Checks = make(map[string]Check, len(checks))
	for name, check := range checks {
		wg.Go(func() {
			res := Check{Status: StatusHealthy}
			if err := check(ctx); err != nil {
				res = Check{Status: StatusUnhealthy, Error: err.Error()}
				logger.WarnContext(ctx, "health check failed", slog.String("check", name), slog.String("error", err.Error()))
			}

			mu.Lock()
			defer mu.Unlock()
			report.Checks[name] = res
			if res.Status != StatusHealthy {
				report.Status = StatusUnhealthy
			}
		})
	}
	wg.Wait()
	return report
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
