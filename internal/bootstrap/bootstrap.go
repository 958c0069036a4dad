// Package bootstrap wires the newsletter components from configuration.
// Both the CLI and the server build their dependencies here.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/goodvibes/internal/config"
	"github.com/dmitrymomot/goodvibes/internal/db/migrations"
	"github.com/dmitrymomot/goodvibes/pkg/cache"
	"github.com/dmitrymomot/goodvibes/pkg/content"
	"github.com/dmitrymomot/goodvibes/pkg/db"
	"github.com/dmitrymomot/goodvibes/pkg/health"
	"github.com/dmitrymomot/goodvibes/pkg/llm"
	"github.com/dmitrymomot/goodvibes/pkg/mailer"
	"github.com/dmitrymomot/goodvibes/pkg/mailer/resend"
	"github.com/dmitrymomot/goodvibes/pkg/mailer/smtp"
	"github.com/dmitrymomot/goodvibes/pkg/newsletter"
	"github.com/dmitrymomot/goodvibes/pkg/redis"
	"github.com/dmitrymomot/goodvibes/pkg/storage"
	"github.com/dmitrymomot/goodvibes/pkg/subscriber"
)

// redisKeyPrefix namespaces cache keys, e.g. "goodvibes:content:2026-10-19".
const redisKeyPrefix = "goodvibes"

// Deps are the long-lived components shared by the binaries.
type Deps struct {
	Pool        *pgxpool.Pool
	Redis       goredis.UniversalClient // nil without REDIS_URL
	Subscribers *subscriber.Store
	Pipeline    *newsletter.Pipeline

	closers []func(context.Context) error
}

// Build connects to PostgreSQL, applies migrations and assembles the
// newsletter pipeline. Optional backends (Redis, S3, the language model)
// are skipped with a warning when not configured.
func Build(ctx context.Context, cfg config.Config, log *slog.Logger) (*Deps, error) {
	d := &Deps{}

	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	d.Pool = pool
	d.closers = append(d.closers, db.Shutdown(pool))

	if err := db.Migrate(ctx, pool, migrations.FS, cfg.DB.MigrationsTable, log); err != nil {
		return nil, d.fail(ctx, err)
	}
	d.Subscribers = subscriber.NewStore(pool)

	contentCache, err := d.contentCache(ctx, cfg, log)
	if err != nil {
		return nil, d.fail(ctx, err)
	}

	sender, err := NewSender(cfg, log)
	if err != nil {
		return nil, d.fail(ctx, err)
	}

	templates, err := newsletter.Templates()
	if err != nil {
		return nil, d.fail(ctx, err)
	}
	renderer := newsletter.NewRenderer(templates, cfg.Newsletter.Location())
	batch := newsletter.NewBatchSender(mailer.New(sender, templates, cfg.Mailer), renderer, cfg.Newsletter, log)

	opts := []newsletter.Option{
		newsletter.WithLogger(log),
		newsletter.WithCache(contentCache),
	}
	if cfg.Storage.Enabled() {
		s3, err := storage.New(cfg.Storage)
		if err != nil {
			return nil, d.fail(ctx, err)
		}
		opts = append(opts, newsletter.WithArchive(s3))
	}

	d.Pipeline = newsletter.NewPipeline(cfg.Newsletter, NewAggregator(cfg, log), d.Subscribers, batch, opts...)
	return d, nil
}

// HealthChecks are the readiness probes of the built backends.
func (d *Deps) HealthChecks() health.Checks {
	checks := health.Checks{"postgres": db.Healthcheck(d.Pool)}
	if d.Redis != nil {
		checks["redis"] = redis.Healthcheck(d.Redis)
	}
	return checks
}

// Close releases every backend in reverse order of creation.
func (d *Deps) Close(ctx context.Context) error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i](ctx))
	}
	d.closers = nil
	return errors.Join(errs...)
}

func (d *Deps) fail(ctx context.Context, err error) error {
	return errors.Join(err, d.Close(ctx))
}

func (d *Deps) contentCache(ctx context.Context, cfg config.Config, log *slog.Logger) (cache.Cache[content.Content], error) {
	if !cfg.Redis.Enabled() {
		log.InfoContext(ctx, "REDIS_URL not set, caching issue content in memory")
		c := cache.NewMemory[content.Content](cfg.Newsletter.CacheTTL, time.Hour)
		d.closers = append(d.closers, func(context.Context) error { return c.Close() })
		return c, nil
	}

	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	d.Redis = client
	d.closers = append(d.closers, redis.Shutdown(client))
	return cache.NewRedis[content.Content](client, redisKeyPrefix, cfg.Newsletter.CacheTTL), nil
}

// NewAggregator builds the content aggregator. Without an API key the news
// section always uses the fallback stories.
func NewAggregator(cfg config.Config, log *slog.Logger) *content.Aggregator {
	opts := []content.Option{content.WithLogger(log)}

	client, err := llm.New(cfg.LLM)
	if err != nil {
		log.Warn("language model disabled, news will use fallback stories", slog.String("error", err.Error()))
	} else {
		opts = append(opts, content.WithCompleter(client))
	}
	return content.NewAggregator(opts...)
}

// NewSender picks the mail provider named by MAILER_PROVIDER.
func NewSender(cfg config.Config, log *slog.Logger) (mailer.Sender, error) {
	switch cfg.Mailer.Provider {
	case "resend":
		if cfg.Resend.APIKey == "" {
			return nil, fmt.Errorf("%w: RESEND_API_KEY is required for the resend provider", mailer.ErrUnknownProvider)
		}
		return resend.New(cfg.Resend), nil
	case "smtp":
		return smtp.New(cfg.SMTP)
	case "log":
		return mailer.NewLogSender(log), nil
	default:
		return nil, fmt.Errorf("%w: %q", mailer.ErrUnknownProvider, cfg.Mailer.Provider)
	}
}
