// Package config loads the process configuration from the environment.
package config

import (
	"errors"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/goodvibes/pkg/db"
	"github.com/dmitrymomot/goodvibes/pkg/llm"
	"github.com/dmitrymomot/goodvibes/pkg/logger"
	"github.com/dmitrymomot/goodvibes/pkg/mailer"
	"github.com/dmitrymomot/goodvibes/pkg/mailer/resend"
	"github.com/dmitrymomot/goodvibes/pkg/mailer/smtp"
	"github.com/dmitrymomot/goodvibes/pkg/newsletter"
	"github.com/dmitrymomot/goodvibes/pkg/redis"
	"github.com/dmitrymomot/goodvibes/pkg/storage"
)

// ErrLoad wraps every configuration failure.
var ErrLoad = errors.New("config: failed to load configuration")

// Config is the full process configuration.
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	// NewsletterSchedule is the cron expression (UTC) of the daily send.
	// 11:00 UTC is 7 AM Eastern during daylight saving time.
	NewsletterSchedule string `env:"NEWSLETTER_SCHEDULE" envDefault:"0 11 * * *"`
	JobWorkers         int    `env:"JOB_WORKERS" envDefault:"2"`

	Logger     logger.Config
	DB         db.Config
	Redis      redis.Config
	Storage    storage.Config
	LLM        llm.Config
	Mailer     mailer.Config
	Resend     resend.Config
	SMTP       smtp.Config
	Newsletter newsletter.Config
}

// Load reads an optional .env file, then parses the environment.
// Variables already set in the environment win over .env values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, errors.Join(ErrLoad, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, errors.Join(ErrLoad, err)
	}
	return cfg, nil
}
