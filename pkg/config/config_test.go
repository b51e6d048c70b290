package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, time.Second, cfg.Batch.Delay)
	assert.Equal(t, 2, cfg.Batch.MaxAttempts)
	assert.Equal(t, 100, cfg.Batch.Limit)
	assert.Equal(t, 1.5, cfg.Batch.BackoffMultiplier)
	assert.Equal(t, "csv", cfg.Export.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
batch:
  delay: 2s
  max_attempts: 3
  limit: 50
export:
  format: json
logging:
  level: debug
`), 0o600))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, 2*time.Second, cfg.Batch.Delay)
	assert.Equal(t, 3, cfg.Batch.MaxAttempts)
	assert.Equal(t, 50, cfg.Batch.Limit)
	assert.Equal(t, "json", cfg.Export.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// untouched sections keep defaults
	assert.Equal(t, 60, cfg.RateLimit.RequestsPerMinute)
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadFromFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batch: ["), 0o600))

	err := DefaultConfig().LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("IGCOLLECTOR_DELAY", "3s")
	t.Setenv("IGCOLLECTOR_MAX_ATTEMPTS", "4")
	t.Setenv("IGCOLLECTOR_LOG_LEVEL", "warn")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, 3*time.Second, cfg.Batch.Delay)
	assert.Equal(t, 4, cfg.Batch.MaxAttempts)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadFromEnvInvalidDelay(t *testing.T) {
	t.Setenv("IGCOLLECTOR_DELAY", "soon")

	err := DefaultConfig().LoadFromEnv()
	require.Error(t, err)
}

func TestMergeFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeFlags(map[string]interface{}{
		"delay":  500 * time.Millisecond,
		"limit":  10,
		"output": "/tmp/out",
		"format": "json",
	})

	assert.Equal(t, 500*time.Millisecond, cfg.Batch.Delay)
	assert.Equal(t, 10, cfg.Batch.Limit)
	assert.Equal(t, "/tmp/out", cfg.Export.Directory)
	assert.Equal(t, "json", cfg.Export.Format)
}

func TestMergeFlagsNil(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeFlags(nil)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "delay too long",
			mutate:  func(c *Config) { c.Batch.Delay = 6 * time.Second },
			wantErr: "delay must be between 0 and 5 seconds",
		},
		{
			name:    "negative delay",
			mutate:  func(c *Config) { c.Batch.Delay = -time.Second },
			wantErr: "delay must be between 0 and 5 seconds",
		},
		{
			name:    "zero attempts",
			mutate:  func(c *Config) { c.Batch.MaxAttempts = 0 },
			wantErr: "max attempts must be between 1 and 5",
		},
		{
			name:    "excessive attempts",
			mutate:  func(c *Config) { c.Batch.MaxAttempts = 10 },
			wantErr: "max attempts must be between 1 and 5",
		},
		{
			name:    "limit too high",
			mutate:  func(c *Config) { c.Batch.Limit = 5000 },
			wantErr: "limit must be between 1 and 2000",
		},
		{
			name:    "shrinking backoff",
			mutate:  func(c *Config) { c.Batch.BackoffMultiplier = 0.5 },
			wantErr: "backoff multiplier must be at least 1",
		},
		{
			name:    "crawl timeout too long",
			mutate:  func(c *Config) { c.Crawl.Timeout = 30 * time.Second },
			wantErr: "crawl timeout must be between 1 and 15 seconds",
		},
		{
			name:    "unknown export format",
			mutate:  func(c *Config) { c.Export.Format = "xlsx" },
			wantErr: "export format must be csv or json",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid log level",
		},
		{
			name:    "zero rate limit",
			mutate:  func(c *Config) { c.RateLimit.RequestsPerMinute = 0 },
			wantErr: "requests per minute must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Batch.Delay = 2 * time.Second
	require.NoError(t, cfg.Save(path))

	loaded := DefaultConfig()
	require.NoError(t, loaded.LoadFromFile(path))
	assert.Equal(t, cfg, loaded)
}
