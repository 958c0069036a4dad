// Package job runs the service's cron-style tasks on River, backed by the
// same PostgreSQL database as the subscribers table.
//
//	if err := job.Migrate(ctx, pool); err != nil {
//		return err
//	}
//	m, err := job.NewManager(pool,
//		job.WithScheduledTask(tasks.NewSendNewsletter(pipeline, cfg.Schedule)),
//		job.WithLogger(log),
//	)
//
// Scheduled jobs are inserted with MaxAttempts 1: a failed daily send is
// reported, never repeated.
package job
