package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/goodvibes/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_CONN_URL", "postgres://localhost/goodvibes")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "0 11 * * *", cfg.NewsletterSchedule)
	require.Equal(t, slog.LevelInfo, cfg.Logger.Level)
	require.Equal(t, "resend", cfg.Mailer.Provider)
	require.Equal(t, "onboarding@resend.dev", cfg.Resend.SenderEmail)
	require.Equal(t, "Daily Good Vibes", cfg.Resend.SenderName)
	require.Equal(t, "claude-sonnet-4-20250514", cfg.LLM.Model)
	require.Equal(t, 2500, cfg.LLM.MaxTokens)
	require.Equal(t, 100, cfg.Newsletter.Limit)
	require.Equal(t, 100*time.Millisecond, cfg.Newsletter.SendInterval)
	require.Equal(t, "America/New_York", cfg.Newsletter.Timezone)
	require.False(t, cfg.Redis.Enabled())
	require.False(t, cfg.Storage.Enabled())
}

func TestLoad_DotEnv(t *testing.T) {
	t.Setenv("DATABASE_CONN_URL", "postgres://from-env/goodvibes")
	// godotenv writes to the process env; t.Setenv restores it afterwards.
	for _, key := range []string{"WEBSITE_URL", "NEWSLETTER_SEND_INTERVAL", "LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"DATABASE_CONN_URL=postgres://from-file/goodvibes\n"+
			"WEBSITE_URL=https://vibes.example\n"+
			"NEWSLETTER_SEND_INTERVAL=250ms\n"+
			"LOG_LEVEL=DEBUG\n",
	), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "postgres://from-env/goodvibes", cfg.DB.ConnectionString)
	require.Equal(t, "https://vibes.example", cfg.Newsletter.WebsiteURL)
	require.Equal(t, 250*time.Millisecond, cfg.Newsletter.SendInterval)
	require.Equal(t, slog.LevelDebug, cfg.Logger.Level)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_CONN_URL", "")
	require.NoError(t, os.Unsetenv("DATABASE_CONN_URL"))

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.ErrorIs(t, err, config.ErrLoad)
}
