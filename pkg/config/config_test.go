package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const fullConfig = `
app:
  name: neuroscan
  log_level: debug
mysql:
  dsn: "user:pass@tcp(db:3306)/brain_tumor_db"
redis:
  addr: "redis:6379"
lmstfy:
  host: lmstfy
  namespace: neuroscan
workers:
  - name: thumbnail-worker
    subscriber:
      threads: 2
      rate: 100ms
    processor:
      threads: 4
`

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, fullConfig))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, int64(16), cfg.Server.MaxUploadMB)
	assert.Equal(t, "uploads", cfg.Storage.UploadDir)
	assert.Equal(t, uint(192), cfg.Thumbnail.Size)
	assert.Equal(t, ":9102", cfg.Thumbnail.MetricsAddr)
	assert.Equal(t, 7777, cfg.Lmstfy.Port)
	assert.Equal(t, "thumbnail_render", cfg.Lmstfy.ThumbnailQueue)
	assert.Equal(t, int64(16<<20), cfg.MaxUploadBytes())

	require.Len(t, cfg.Workers, 1)
	w := cfg.Workers[0]
	assert.Equal(t, "thumbnail_render", w.QueueName)
	assert.Equal(t, 2, w.Subscriber.Threads)
	assert.Equal(t, 100*time.Millisecond, w.Subscriber.Rate)
	assert.Equal(t, 3*time.Second, w.Subscriber.Timeout)
	assert.Equal(t, 30*time.Second, w.Subscriber.TTR)
	assert.Equal(t, 4, w.Processor.Threads)
	assert.Equal(t, 4, w.Processor.BufferSize)

	assert.NoError(t, cfg.Validate())
	assert.NoError(t, cfg.ValidateWorker())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("NEUROSCAN_SERVER_PORT", "9090")
	t.Setenv("NEUROSCAN_REDIS_ADDR", "cache:6380")

	cfg, err := Load(writeConfig(t, fullConfig))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"missing dsn", func(c *Config) { c.MySQL.DSN = "" }, "mysql.dsn"},
		{"missing redis", func(c *Config) { c.Redis.Addr = "" }, "redis.addr"},
		{"missing lmstfy host", func(c *Config) { c.Lmstfy.Host = "" }, "lmstfy.host"},
		{"non positive upload limit", func(c *Config) { c.Server.MaxUploadMB = 0 }, "max_upload_mb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, fullConfig))
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateWorker_RequiresWorkers(t *testing.T) {
	cfg, err := Load(writeConfig(t, fullConfig))
	require.NoError(t, err)
	cfg.Workers = nil

	assert.Error(t, cfg.ValidateWorker())
	assert.NoError(t, cfg.Validate())
}
