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
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := writeConfig(t, `
upstream:
  base_url: http://learning.local/api
storage:
  type: local
  local_path: `+filepath.Join(t.TempDir(), "reports")+`
thresholds:
  quantitative_subjects: [algèbre, géométrie]
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, uint32(3), cfg.Upstream.Breaker.MaxFailures)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, "intermediate", cfg.Thresholds.DefaultTier)
	assert.Equal(t, []string{"algèbre", "géométrie"}, cfg.Thresholds.QuantitativeSubjects)
	assert.DirExists(t, cfg.Storage.LocalPath)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, `
upstream:
  base_url: http://learning.local/api
database:
  driver: mysql
storage:
  type: minio
`)
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing upstream", "storage:\n  type: minio\n"},
		{"short secret in release", "server:\n  mode: release\njwt:\n  secret: short\nupstream:\n  base_url: http://x\nstorage:\n  type: minio\n"},
		{"unknown driver", "database:\n  driver: postgres\nupstream:\n  base_url: http://x\nstorage:\n  type: minio\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}
