package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"GOVDESK_ADDR", "SUBMISSION_STORE", "SUBMISSION_DB_FILE", "NOTIFICATION_DB_FILE",
		"NOTIFICATION_STORE", "REDIS_URL", "DATABASE_URL", "KAFKA_BROKERS", "PUBLIC_BASE_URL",
		"LOG_LEVEL", "LOG_FORMAT", "ENVIRONMENT", "REQUEST_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, "data/submissions.json", cfg.Store.SubmissionFile)
	assert.Equal(t, "data/notifications.json", cfg.Store.NotificationFile)
	assert.True(t, cfg.Store.ReadThrough)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "govdesk.notifications", cfg.Kafka.Topic)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.False(t, cfg.Server.IsProduction())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("GOVDESK_ADDR", ":9090")
	t.Setenv("SUBMISSION_STORE", "Redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("REDIS_POOL_SIZE", "25")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,,")
	t.Setenv("PUBLIC_BASE_URL", "https://desk.example.gov/")
	t.Setenv("REQUEST_TIMEOUT", "2s")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, 25, cfg.Redis.PoolSize)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "https://desk.example.gov", cfg.Server.PublicBaseURL)
	assert.Equal(t, 2*time.Second, cfg.Server.RequestTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"file is always valid", func(c *Config) {}, ""},
		{"redis without url", func(c *Config) { c.Store.Backend = BackendRedis }, "REDIS_URL"},
		{"postgres without url", func(c *Config) { c.Store.Backend = BackendPostgres }, "DATABASE_URL"},
		{"unknown backend", func(c *Config) { c.Store.Backend = "sqlite" }, "unknown SUBMISSION_STORE"},
		{"redis notifications without url", func(c *Config) { c.Store.NotificationBackend = BackendRedis }, "NOTIFICATION_STORE"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{Store: StoreConfig{Backend: BackendFile, NotificationBackend: BackendFile}}
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
