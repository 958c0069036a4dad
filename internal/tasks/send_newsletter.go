// Package tasks holds the scheduled jobs run by the server.
package tasks

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/goodvibes/pkg/newsletter"
)

// SendNewsletterName identifies the daily send in the job queue.
const SendNewsletterName = "send_daily_newsletter"

// Runner runs one newsletter issue.
type Runner interface {
	Run(ctx context.Context) (newsletter.Report, error)
}

// SendNewsletter sends the daily issue on a cron schedule.
type SendNewsletter struct {
	runner   Runner
	schedule string
	log      *slog.Logger
}

// NewSendNewsletter creates the task. schedule is a five-field cron
// expression in UTC.
func NewSendNewsletter(runner Runner, schedule string, log *slog.Logger) *SendNewsletter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &SendNewsletter{runner: runner, schedule: schedule, log: log}
}

func (t *SendNewsletter) Name() string     { return SendNewsletterName }
func (t *SendNewsletter) Schedule() string { return t.schedule }

// Handle fails only when the pipeline fails; undelivered recipients are
// reported in the log.
func (t *SendNewsletter) Handle(ctx context.Context) error {
	report, err := t.runner.Run(ctx)
	if err != nil {
		return err
	}
	t.log.InfoContext(ctx, "daily newsletter finished",
		slog.Int("success", report.Success),
		slog.Int("errors", report.Errors),
	)
	return nil
}
