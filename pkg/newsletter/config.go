package newsletter

import (
	"time"
	_ "time/tzdata" // issue dates are computed in Config.Timezone on hosts without zoneinfo
)

// Config holds newsletter settings.
type Config struct {
	// WebsiteURL is the public site that serves unsubscribe.html.
	WebsiteURL   string        `env:"WEBSITE_URL" envDefault:"http://localhost:8080"`
	Limit        int           `env:"NEWSLETTER_LIMIT" envDefault:"100"`
	SendInterval time.Duration `env:"NEWSLETTER_SEND_INTERVAL" envDefault:"100ms"`
	TestMode     bool          `env:"NEWSLETTER_TEST_MODE" envDefault:"false"`
	Timezone     string        `env:"NEWSLETTER_TIMEZONE" envDefault:"America/New_York"`
	// CacheTTL bounds how long one day's content is reused.
	CacheTTL      time.Duration `env:"NEWSLETTER_CACHE_TTL" envDefault:"24h"`
	ArchivePrefix string        `env:"NEWSLETTER_ARCHIVE_PREFIX" envDefault:"issues/"`
}

// Location resolves Timezone, falling back to UTC.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
