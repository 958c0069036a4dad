package newsletter

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/goodvibes/pkg/content"
	"github.com/dmitrymomot/goodvibes/pkg/mailer"
	"github.com/dmitrymomot/goodvibes/pkg/subscriber"
)

// Mailer renders and delivers one templated message.
type Mailer interface {
	Send(ctx context.Context, params mailer.SendParams) error
}

// Report counts delivery outcomes of one batch.
type Report struct {
	Success int `json:"success"`
	Errors  int `json:"errors"`
}

// BatchSender delivers one issue to subscribers one at a time.
type BatchSender struct {
	mailer     Mailer
	renderer   *Renderer
	websiteURL string
	interval   time.Duration
	testMode   bool
	log        *slog.Logger
}

// NewBatchSender creates a BatchSender. A nil logger discards output.
func NewBatchSender(m Mailer, r *Renderer, cfg Config, log *slog.Logger) *BatchSender {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &BatchSender{
		mailer:     m,
		renderer:   r,
		websiteURL: strings.TrimRight(cfg.WebsiteURL, "/"),
		interval:   cfg.SendInterval,
		testMode:   cfg.TestMode,
		log:        log,
	}
}

// UnsubscribeURL is the per-recipient opt-out link.
func (b *BatchSender) UnsubscribeURL(token string) string {
	return b.websiteURL + "/unsubscribe.html?token=" + url.QueryEscape(token)
}

// Send delivers c to subs in order. A failed recipient is logged and
// counted; the batch continues. In test mode only the first subscriber
// receives the issue. Cancelling ctx stops the batch early.
func (b *BatchSender) Send(ctx context.Context, c content.Content, subs []subscriber.Subscriber) Report {
	if b.testMode && len(subs) > 1 {
		b.log.InfoContext(ctx, "test mode: sending to first subscriber only")
		subs = subs[:1]
	}

	var report Report
	for _, sub := range subs {
		if ctx.Err() != nil {
			b.log.WarnContext(ctx, "batch interrupted", slog.Int("remaining", len(subs)-report.Success-report.Errors))
			break
		}

		err := b.mailer.Send(ctx, mailer.SendParams{
			To:       sub.Email,
			Template: TemplateName,
			Layout:   LayoutName,
			Data:     b.renderer.Issue(c, b.UnsubscribeURL(sub.UnsubscribeToken)),
			Tags:     mailer.SimpleTags("daily"),
		})
		if err != nil {
			report.Errors++
			b.log.ErrorContext(ctx, "failed to send newsletter",
				slog.String("email", sub.Email),
				slog.String("error", err.Error()),
			)
			continue
		}

		report.Success++
		b.log.InfoContext(ctx, "newsletter sent", slog.String("email", sub.Email))
		sleep(ctx, b.interval)
	}
	return report
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
