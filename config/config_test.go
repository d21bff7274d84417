package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"MATCH_RUN_TIMEOUT", "MATCH_MAX_PAGE_SIZE", "MATCH_SCHEDULE"} {
		t.Setenv(k, "")
	}
	for _, k := range []string{"PRESENCE_KEY", "PRESENCE_CHANNEL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, 30*time.Second, cfg.MatchRunTimeout)
	assert.Equal(t, 100, cfg.MatchMaxPageSize)
	assert.Empty(t, cfg.MatchSchedule)
	assert.Equal(t, "presence:online", cfg.PresenceKey)
	assert.Equal(t, "presence-events", cfg.PresenceChannel)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("MATCH_RUN_TIMEOUT", "45")
	t.Setenv("MATCH_WORKERS", "6")
	t.Setenv("LOG_JSON", "false")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, 45*time.Second, cfg.MatchRunTimeout)
	assert.Equal(t, 6, cfg.MatchWorkers)
	assert.False(t, cfg.LogJSON)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadConfig_UnknownDriverFallsBack(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("X_DUR", "1m30s")
	assert.Equal(t, 90*time.Second, getEnvDuration("X_DUR", time.Second))
	t.Setenv("X_DUR", "garbage")
	assert.Equal(t, time.Second, getEnvDuration("X_DUR", time.Second))
}
