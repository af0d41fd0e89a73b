package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
dbname = "cleaning"

[redis]
addr = "redis:6379"

[kafka]
brokers = ["kafka:9092"]

[availability]
scan_start = "09:00"
scan_step_minutes = 15
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port, "default kept")
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 30*time.Second, cfg.Redis.SlotLockTTL())
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, "booking.confirmed", cfg.Kafka.ConfirmedTopic)
	assert.Equal(t, "09:00", cfg.Availability.ScanStart)
	assert.Equal(t, "18:30", cfg.Availability.ScanEnd)
	assert.Equal(t, 15*time.Minute, cfg.Availability.ScanStep())
	assert.Equal(t, "GBP", cfg.Booking.Currency)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db"
dbname = "cleaning"
`)
	t.Setenv("CLEANING_DATABASE_HOST", "env-db")
	t.Setenv("CLEANING_SERVER_HTTP_PORT", "7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-db", cfg.Database.Host)
	assert.Equal(t, 7070, cfg.Server.HTTPPort)
	assert.Equal(t, "host=env-db port=5432 user=postgres password= dbname=cleaning sslmode=disable", cfg.Database.DSN())
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, `
[booking]
currency = "pounds"
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
