// Command newsletter sends today's Daily Good Vibes issue once and exits.
//
//	newsletter          send to every active subscriber
//	newsletter --test   send only to the first subscriber
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/goodvibes/internal/bootstrap"
	"github.com/dmitrymomot/goodvibes/internal/config"
	"github.com/dmitrymomot/goodvibes/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	testMode := flag.Bool("test", false, "send only to the first active subscriber")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}
	if *testMode {
		cfg.Newsletter.TestMode = true
	}

	log := logger.New(cfg.Logger).With(slog.String("env", cfg.Env), slog.String("component", "newsletter"))
	defer logger.Flush(2 * time.Second)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.InfoContext(ctx, "starting daily newsletter", slog.Bool("test_mode", cfg.Newsletter.TestMode))

	deps, err := bootstrap.Build(ctx, cfg, log)
	if err != nil {
		log.ErrorContext(ctx, "failed to initialize", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := deps.Close(context.Background()); err != nil {
			log.Error("failed to close resources", slog.String("error", err.Error()))
		}
	}()

	report, err := deps.Pipeline.Run(ctx)
	if err != nil {
		log.ErrorContext(ctx, "newsletter run failed", slog.String("error", err.Error()))
		return 1
	}

	log.InfoContext(ctx, "newsletter run complete",
		slog.Int("success", report.Success),
		slog.Int("errors", report.Errors),
	)
	return 0
}
