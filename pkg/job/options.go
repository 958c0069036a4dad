package job

import (
	"context"
	"log/slog"
)

type scheduledTask struct {
	name     string
	schedule string
	handle   func(context.Context) error
}

type config struct {
	tasks      []scheduledTask
	logger     *slog.Logger
	maxWorkers int
}

// Option configures a Manager.
type Option func(*config)

// WithScheduledTask registers a periodic task. Schedule returns a standard
// five-field cron expression evaluated in UTC.
//
//	func (t *SendNewsletter) Name() string     { return "send_daily_newsletter" }
//	func (t *SendNewsletter) Schedule() string { return "0 11 * * *" }
//	func (t *SendNewsletter) Handle(ctx context.Context) error { ... }
func WithScheduledTask[T interface {
	Name() string
	Schedule() string
	Handle(context.Context) error
}](task T) Option {
	return func(c *config) {
		c.tasks = append(c.tasks, scheduledTask{
			name:     task.Name(),
			schedule: task.Schedule(),
			handle:   task.Handle,
		})
	}
}

// WithLogger sets the logger passed to River and used for task logs.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxWorkers caps concurrent jobs on the default queue (default 2).
func WithMaxWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}
