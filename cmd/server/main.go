// Command server hosts the signup page, the web version of today's issue
// and the scheduler that sends the daily newsletter.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/goodvibes/internal/app"
	"github.com/dmitrymomot/goodvibes/internal/bootstrap"
	"github.com/dmitrymomot/goodvibes/internal/config"
	"github.com/dmitrymomot/goodvibes/internal/handlers"
	"github.com/dmitrymomot/goodvibes/internal/tasks"
	"github.com/dmitrymomot/goodvibes/middlewares"
	"github.com/dmitrymomot/goodvibes/pkg/job"
	"github.com/dmitrymomot/goodvibes/pkg/logger"
	"github.com/dmitrymomot/goodvibes/pkg/signup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New(cfg.Logger, middlewares.RequestIDExtractor()).With(slog.String("env", cfg.Env))
	defer logger.Flush(2 * time.Second)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", slog.String("error", err.Error()))
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx := context.Background()

	deps, err := bootstrap.Build(ctx, cfg, log)
	if err != nil {
		return err
	}

	if err := job.Migrate(ctx, deps.Pool); err != nil {
		return errors.Join(err, deps.Close(ctx))
	}
	jobs, err := job.NewManager(deps.Pool,
		job.WithScheduledTask(tasks.NewSendNewsletter(deps.Pipeline, cfg.NewsletterSchedule, log)),
		job.WithMaxWorkers(cfg.JobWorkers),
		job.WithLogger(log),
	)
	if err != nil {
		return errors.Join(err, deps.Close(ctx))
	}

	checks := deps.HealthChecks()
	checks["jobs"] = job.Healthcheck(jobs)

	form := signup.NewForm(deps.Subscribers, signup.WithLogger(log))

	a := app.New(
		app.WithLogger(log),
		app.WithHTTPMiddleware(middleware.RequestID, middleware.RealIP),
		app.WithMiddleware(
			middlewares.Recover(),
			middlewares.RequestLog(app.LivenessPath, app.ReadinessPath),
			middlewares.Timeout(60*time.Second),
		),
		app.WithHealthChecks(checks),
		app.WithHandlers(
			handlers.NewSubscribe(form),
			handlers.NewIssue(deps.Pipeline),
		),
	)

	return a.Run(
		app.Address(cfg.HTTPAddr),
		app.Logger(log),
		app.StartupHook(jobs.StartFunc()),
		app.ShutdownHook(jobs.Shutdown()),
		app.ShutdownHook(deps.Close),
	)
}
