package job

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/robfig/cron/v3"
)

// Manager runs scheduled tasks on River. River's leader election makes sure a
// periodic job is enqueued once per tick even with several server replicas.
type Manager struct {
	pool   *pgxpool.Pool
	client *river.Client[pgx.Tx]
	tasks  map[string]scheduledTask
	logger *slog.Logger

	mu      sync.Mutex
	started bool
}

// NewManager validates every schedule and builds the River client.
// Jobs are not processed until Start.
func NewManager(pool *pgxpool.Pool, opts ...Option) (*Manager, error) {
	if pool == nil {
		return nil, ErrPoolRequired
	}

	cfg := &config{logger: slog.New(slog.DiscardHandler), maxWorkers: 2}
	for _, opt := range opts {
		opt(cfg)
	}

	tasks := make(map[string]scheduledTask, len(cfg.tasks))
	periodic := make([]*river.PeriodicJob, 0, len(cfg.tasks))
	for _, t := range cfg.tasks {
		if _, dup := tasks[t.name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTask, t.name)
		}
		sched, err := parseCronSchedule(t.schedule)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q: %v", ErrInvalidSchedule, t.name, t.schedule, err)
		}
		tasks[t.name] = t
		periodic = append(periodic, river.NewPeriodicJob(sched, periodicArgs(t.name), &river.PeriodicJobOpts{}))
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, &taskWorker{tasks: tasks, logger: cfg.logger})

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues:       map[string]river.QueueConfig{river.QueueDefault: {MaxWorkers: cfg.maxWorkers}},
		Workers:      workers,
		PeriodicJobs: periodic,
		Logger:       cfg.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("job: create client: %w", err)
	}

	return &Manager{pool: pool, client: client, tasks: tasks, logger: cfg.logger}, nil
}

// Start begins fetching and running jobs.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}
	if err := m.client.Start(ctx); err != nil {
		return fmt.Errorf("job: start client: %w", err)
	}
	m.started = true
	m.logger.Info("job manager started", slog.Int("scheduled_tasks", len(m.tasks)))
	return nil
}

// Stop waits for running jobs to finish or ctx to expire.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return ErrNotStarted
	}
	if err := m.client.Stop(ctx); err != nil {
		return fmt.Errorf("job: stop client: %w", err)
	}
	m.started = false
	m.logger.Info("job manager stopped")
	return nil
}

// Trigger enqueues a registered task immediately, outside its schedule.
func (m *Manager) Trigger(ctx context.Context, name string) error {
	if _, ok := m.tasks[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}
	args, opts := periodicArgs(name)()
	if _, err := m.client.Insert(ctx, args, opts); err != nil {
		return fmt.Errorf("job: enqueue %s: %w", name, err)
	}
	return nil
}

// StartFunc adapts Start to a startup hook.
func (m *Manager) StartFunc() func(context.Context) error { return m.Start }

// Shutdown adapts Stop to a shutdown hook.
func (m *Manager) Shutdown() func(context.Context) error { return m.Stop }

// Healthcheck reports whether the manager is running and its pool answers.
func Healthcheck(m *Manager) func(context.Context) error {
	return func(ctx context.Context) error {
		if m == nil {
			return ErrHealthcheckFailed
		}
		m.mu.Lock()
		started := m.started
		m.mu.Unlock()
		if !started {
			return fmt.Errorf("%w: %w", ErrHealthcheckFailed, ErrNotStarted)
		}
		if err := m.pool.Ping(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Migrate creates or upgrades River's tables.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMigrationFailed, err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrMigrationFailed, err)
	}
	return nil
}

// taskArgs identifies which scheduled task a River job runs.
type taskArgs struct {
	Task string `json:"task"`
}

func (taskArgs) Kind() string { return "goodvibes:scheduled_task" }

// periodicArgs builds job args for a task. Scheduled runs are not retried.
func periodicArgs(name string) func() (river.JobArgs, *river.InsertOpts) {
	return func() (river.JobArgs, *river.InsertOpts) {
		return taskArgs{Task: name}, &river.InsertOpts{MaxAttempts: 1}
	}
}

type taskWorker struct {
	river.WorkerDefaults[taskArgs]
	tasks  map[string]scheduledTask
	logger *slog.Logger
}

// Timeout lets long sends run past River's default one-minute job timeout.
func (w *taskWorker) Timeout(*river.Job[taskArgs]) time.Duration { return 30 * time.Minute }

func (w *taskWorker) Work(ctx context.Context, job *river.Job[taskArgs]) error {
	task, ok := w.tasks[job.Args.Task]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTask, job.Args.Task)
	}

	start := time.Now()
	log := w.logger.With(slog.String("task", task.name), slog.Int64("job_id", job.ID))
	log.InfoContext(ctx, "running scheduled task")

	if err := task.handle(ctx); err != nil {
		log.ErrorContext(ctx, "scheduled task failed", slog.Any("error", err), slog.Duration("took", time.Since(start)))
		return err
	}
	log.InfoContext(ctx, "scheduled task completed", slog.Duration("took", time.Since(start)))
	return nil
}

type cronSchedule struct {
	cron.Schedule
}

func (s cronSchedule) Next(t time.Time) time.Time { return s.Schedule.Next(t.UTC()) }

func parseCronSchedule(expr string) (river.PeriodicSchedule, error) {
	sched, err := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow).Parse(expr)
	if err != nil {
		return nil, err
	}
	return cronSchedule{sched}, nil
}
