package mailer

// Config holds mailer configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	// Provider selects the Sender: resend, smtp or log.
	Provider        string `env:"MAILER_PROVIDER" envDefault:"resend"`
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"Daily Good Vibes"`
	DefaultLayout   string `env:"MAILER_DEFAULT_LAYOUT" envDefault:"newsletter.html"`
}
