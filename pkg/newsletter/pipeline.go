package newsletter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/goodvibes/pkg/cache"
	"github.com/dmitrymomot/goodvibes/pkg/content"
	"github.com/dmitrymomot/goodvibes/pkg/subscriber"
)

// ContentSource builds the day's content. It never fails.
type ContentSource interface {
	Collect(ctx context.Context) content.Content
}

// SubscriberSource lists active subscribers, oldest first.
type SubscriberSource interface {
	FetchActive(ctx context.Context, limit int) ([]subscriber.Subscriber, error)
}

// Archiver stores the web version of each issue.
type Archiver interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithCache reuses one day's content across runs and the web version.
func WithCache(c cache.Cache[content.Content]) Option {
	return func(p *Pipeline) { p.cache = c }
}

// WithArchive uploads the web version of every issue.
func WithArchive(a Archiver) Option {
	return func(p *Pipeline) { p.archive = a }
}

// WithLogger sets the pipeline logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// Pipeline runs one newsletter issue end to end:
// content, archive, subscribers, delivery.
type Pipeline struct {
	cfg      Config
	content  ContentSource
	subs     SubscriberSource
	sender   *BatchSender
	renderer *Renderer
	cache    cache.Cache[content.Content]
	archive  Archiver
	log      *slog.Logger
}

// NewPipeline wires the pipeline stages.
func NewPipeline(cfg Config, src ContentSource, subs SubscriberSource, sender *BatchSender, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:      cfg,
		content:  src,
		subs:     subs,
		sender:   sender,
		renderer: sender.renderer,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.cfg.Limit <= 0 {
		p.cfg.Limit = subscriber.DefaultLimit
	}
	return p
}

// Today returns the content of today's issue, generating it on first use.
// Content with fallback sections is never cached, so a later run retries
// the upstream sources. Cached generation ignores the caller's cancellation.
func (p *Pipeline) Today(ctx context.Context) (content.Content, error) {
	if p.cache == nil {
		return p.content.Collect(ctx), nil
	}
	c, err := cache.GetOrSet(ctx, p.cache, "content:"+p.renderer.DateKey(),
		func(ctx context.Context) (content.Content, time.Duration, error) {
			c := p.content.Collect(context.WithoutCancel(ctx))
			if c.Degraded() {
				p.log.WarnContext(ctx, "issue content is degraded, not caching it",
					slog.Any("fallbacks", c.Fallbacks),
				)
				return c, cache.NoStore, nil
			}
			return c, p.cfg.CacheTTL, nil
		})
	if err != nil {
		return content.Content{}, fmt.Errorf("%w: %w", ErrContentUnavailable, err)
	}
	return c, nil
}

// WebVersion renders today's issue without an unsubscribe link.
func (p *Pipeline) WebVersion(ctx context.Context) (string, error) {
	c, err := p.Today(ctx)
	if err != nil {
		return "", err
	}
	return p.renderer.Render(c, "")
}

// Run generates today's issue and sends it. Only a subscriber fetch (or
// cache) failure is returned as an error; per-recipient failures are
// counted in the report. No subscribers is a successful empty run.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	p.log.InfoContext(ctx, "starting newsletter generation", slog.Bool("test_mode", p.sender.testMode))

	c, err := p.Today(ctx)
	if err != nil {
		return Report{}, err
	}
	p.log.InfoContext(ctx, "content generated",
		slog.String("quote", preview(c.Quote.Text, 50)),
		slog.Int("trivia", len(c.Trivia)),
		slog.Int("news", len(c.News)),
		slog.Any("fallbacks", c.Fallbacks),
	)

	p.archiveIssue(ctx, c)

	subs, err := p.subs.FetchActive(ctx, p.cfg.Limit)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrFetchSubscribers, err)
	}
	if len(subs) == 0 {
		p.log.WarnContext(ctx, "no active subscribers found")
		return Report{}, nil
	}
	p.log.InfoContext(ctx, "found active subscribers", slog.Int("count", len(subs)))

	report := p.sender.Send(ctx, c, subs)
	p.log.InfoContext(ctx, "newsletter batch finished",
		slog.Int("success", report.Success),
		slog.Int("errors", report.Errors),
	)
	return report, nil
}

// archiveIssue is best effort: a failed upload never blocks delivery.
func (p *Pipeline) archiveIssue(ctx context.Context, c content.Content) {
	if p.archive == nil {
		return
	}
	html, err := p.renderer.Render(c, "")
	if err != nil {
		p.log.WarnContext(ctx, "failed to render web version", slog.String("error", err.Error()))
		return
	}
	key := p.cfg.ArchivePrefix + p.renderer.DateKey() + ".html"
	if err := p.archive.Put(ctx, key, "text/html; charset=utf-8", []byte(html)); err != nil {
		p.log.WarnContext(ctx, "failed to archive issue", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	p.log.InfoContext(ctx, "issue archived", slog.String("key", key))
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
