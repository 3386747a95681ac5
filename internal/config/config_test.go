package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(`
[database]
driver = "sqlite3"
path = "booking.db"
`)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 30, cfg.Booking.SlotGranularityMinutes)
	assert.Equal(t, "0 18 * * *", cfg.Reminders.Schedule)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Contains(t, cfg.Database.DSN(), "file:booking.db")
	assert.Equal(t, "UTC", cfg.Location().String())
	assert.Equal(t, 600, cfg.RateLimit.IdleTimeout)
	assert.Empty(t, cfg.RateLimit.TrustedProxies, "forwarded headers are ignored unless proxies are listed")
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "unknown driver", data: "[database]\ndriver = \"mysql\""},
		{name: "postgres without host", data: "[database]\ndriver = \"postgres\"\ndbname = \"x\""},
		{name: "bad granularity", data: "[database]\ndriver = \"sqlite3\"\npath = \"x.db\"\n[booking]\nslot_granularity_minutes = 1"},
		{name: "bad timezone", data: "[database]\ndriver = \"sqlite3\"\npath = \"x.db\"\n[booking]\ntimezone = \"Mars/Base\""},
		{name: "redis without address", data: "[database]\ndriver = \"sqlite3\"\npath = \"x.db\"\n[redis]\nenabled = true"},
		{name: "kafka without brokers", data: "[database]\ndriver = \"sqlite3\"\npath = \"x.db\"\n[kafka]\nenabled = true"},
		{name: "negative limiter idle timeout", data: "[database]\ndriver = \"sqlite3\"\npath = \"x.db\"\n[rate_limit]\nidle_timeout = -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("BOOKING_DB_PASSWORD", "s3cret")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[database]
driver = "postgres"
host = "localhost"
port = 5432
user = "booking"
password = "${BOOKING_DB_PASSWORD}"
dbname = "booking"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
}
