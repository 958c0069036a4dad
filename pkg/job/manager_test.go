package job

import (
	"context"
	"testing"
	"time"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/require"
)

type fakeTask struct {
	name     string
	schedule string
	calls    int
	err      error
}

func (t *fakeTask) Name() string     { return t.name }
func (t *fakeTask) Schedule() string { return t.schedule }
func (t *fakeTask) Handle(context.Context) error {
	t.calls++
	return t.err
}

func TestNewManager_RequiresPool(t *testing.T) {
	t.Parallel()
	_, err := NewManager(nil)
	require.ErrorIs(t, err, ErrPoolRequired)
}

func TestParseCronSchedule(t *testing.T) {
	t.Parallel()

	sched, err := parseCronSchedule("0 11 * * *")
	require.NoError(t, err)

	from := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC), sched.Next(from))

	// Times in other zones are evaluated in UTC.
	est := time.FixedZone("EST", -5*3600)
	require.Equal(t, time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC), sched.Next(time.Date(2025, 6, 1, 7, 30, 0, 0, est)))

	for _, bad := range []string{"", "every day", "0 11 * *", "61 * * * *"} {
		_, err := parseCronSchedule(bad)
		require.Error(t, err, bad)
	}
}

func TestWithScheduledTask(t *testing.T) {
	t.Parallel()

	task := &fakeTask{name: "send_daily_newsletter", schedule: "0 11 * * *"}
	cfg := &config{}
	WithScheduledTask(task)(cfg)
	WithMaxWorkers(0)(cfg)
	WithMaxWorkers(4)(cfg)
	WithLogger(nil)(cfg)

	require.Len(t, cfg.tasks, 1)
	require.Equal(t, "send_daily_newsletter", cfg.tasks[0].name)
	require.Equal(t, "0 11 * * *", cfg.tasks[0].schedule)
	require.Equal(t, 4, cfg.maxWorkers)
	require.Nil(t, cfg.logger)

	require.NoError(t, cfg.tasks[0].handle(context.Background()))
	require.Equal(t, 1, task.calls)
}

func TestPeriodicArgs(t *testing.T) {
	t.Parallel()

	args, opts := periodicArgs("send_daily_newsletter")()
	require.Equal(t, taskArgs{Task: "send_daily_newsletter"}, args)
	require.Equal(t, "goodvibes:scheduled_task", args.Kind())
	require.Equal(t, 1, opts.MaxAttempts)
}

func TestTaskWorker_Work(t *testing.T) {
	t.Parallel()

	task := &fakeTask{name: "t"}
	w := &taskWorker{
		tasks:  map[string]scheduledTask{"t": {name: "t", handle: task.Handle}},
		logger: nopLogger(),
	}

	job := &river.Job[taskArgs]{JobRow: &rivertype.JobRow{ID: 1}, Args: taskArgs{Task: "t"}}
	require.NoError(t, w.Work(context.Background(), job))
	require.Equal(t, 1, task.calls)

	job.Args.Task = "missing"
	require.ErrorIs(t, w.Work(context.Background(), job), ErrUnknownTask)

	require.Equal(t, 30*time.Minute, w.Timeout(job))
}

func TestHealthcheck_NilManager(t *testing.T) {
	t.Parallel()
	require.ErrorIs(t, Healthcheck(nil)(context.Background()), ErrHealthcheckFailed)
}
