package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// Run serves the app until SIGINT, SIGTERM or cancellation of the base
// context, then shuts down gracefully.
func (a *App) Run(opts ...RunOption) error {
	return runServer(a.router, buildRunConfig(opts...))
}

func runServer(handler http.Handler, cfg *runConfig) error {
	logger := cfg.logger

	ctx, cancel := signal.NotifyContext(cfg.baseCtx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	server := &http.Server{
		Addr:              cfg.address,
		Handler:           handler,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	for _, hook := range cfg.startupHooks {
		if err := hook(ctx); err != nil {
			logger.Error("startup hook failed", slog.Any("error", err))
			return errors.Join(err, runHooks(context.Background(), cfg, logger))
		}
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return errors.Join(err, runHooks(context.Background(), cfg, logger))
	}
	if cfg.ready != nil {
		cfg.ready(ln.Addr().String())
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case serveErr = <-errCh:
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer shutdownCancel()

	errs := []error{serveErr}
	if err := server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, runHooks(shutdownCtx, cfg, logger))

	if err := errors.Join(errs...); err != nil {
		logger.Error("shutdown completed with errors", slog.Any("error", err))
		return err
	}
	logger.Info("shutdown completed")
	return nil
}

func runHooks(ctx context.Context, cfg *runConfig, logger *slog.Logger) error {
	var errs []error
	for _, hook := range cfg.shutdownHooks {
		if err := hook(ctx); err != nil {
			logger.Error("shutdown hook failed", slog.Any("error", err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
