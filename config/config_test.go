package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "-07:00", cfg.Schedule.UTCOffset)
	assert.Equal(t, 10*time.Second, cfg.Schedule.LockTTL)
	assert.Equal(t, time.Minute, cfg.Schedule.RateWindow)
	assert.False(t, cfg.Feature.MultipleEvents)

	_, off := time.Date(2099, 1, 1, 0, 0, 0, 0, cfg.Schedule.Location()).Zone()
	assert.Equal(t, -7*3600, off)
}

func TestLoad_WithEnvOverride(t *testing.T) {
	t.Setenv("SCHED_SERVER_PORT", "9090")
	t.Setenv("SCHED_SCHEDULE_UTC_OFFSET", "+08:00")
	t.Setenv("SCHED_SCHEDULE_LOCK_TTL", "3s")
	t.Setenv("SCHED_FEATURE_MULTIPLE_EVENTS", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "+08:00", cfg.Schedule.UTCOffset)
	assert.Equal(t, 3*time.Second, cfg.Schedule.LockTTL)
	assert.True(t, cfg.Feature.MultipleEvents)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("server:\n  port: 7070\ndb:\n  name: conf_test\nschedule:\n  utc_offset: \"+00:00\"\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "conf_test", cfg.Database.Name)
	assert.Contains(t, cfg.Database.DSN(), "dbname=conf_test")
}

func TestLoad_InvalidOffset(t *testing.T) {
	t.Setenv("SCHED_SCHEDULE_UTC_OFFSET", "PST")

	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: 8080},
		Schedule: ScheduleConfig{UTCOffset: "-07:00", LockTTL: time.Second},
	}
	assert.NoError(t, cfg.Validate())

	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg.Server.Port = 8080
	cfg.Schedule.LockTTL = 0
	assert.Error(t, cfg.Validate())

	cfg.Schedule.LockTTL = time.Second
	cfg.Schedule.RateLimit = -1
	assert.Error(t, cfg.Validate())
}
