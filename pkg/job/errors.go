package job

import "errors"

var (
	ErrPoolRequired      = errors.New("job: pool is required")
	ErrInvalidSchedule   = errors.New("job: invalid cron schedule")
	ErrDuplicateTask     = errors.New("job: duplicate task name")
	ErrUnknownTask       = errors.New("job: unknown task")
	ErrAlreadyStarted    = errors.New("job: already started")
	ErrNotStarted        = errors.New("job: not started")
	ErrMigrationFailed   = errors.New("job: failed to migrate river schema")
	ErrHealthcheckFailed = errors.New("job: healthcheck failed")
)
