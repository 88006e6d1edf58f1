package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "APP_PORT", "DATABASE_URL", "ENVIRONMENT", "BUNDEBUG", "AUTO_MIGRATE",
		"PUBLIC_BASE_URL", "UPLOAD_BACKEND", "UPLOAD_DIR", "MAX_UPLOAD_MB",
		"S3_BUCKET", "S3_ENDPOINT", "S3_REGION", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY",
		"READ_TIMEOUT", "WRITE_TIMEOUT", "ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "3333", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "http://localhost:3333", cfg.PublicBaseURL)
	assert.Equal(t, UploadBackendDisk, cfg.UploadBackend)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, 5, cfg.MaxUploadMB)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxUploadBytes())
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.True(t, cfg.AutoMigrate)
	assert.False(t, cfg.BunDebug)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:19006"}, cfg.AllowedOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9000")
	t.Setenv("PUBLIC_BASE_URL", "https://cdn.example.org/")
	t.Setenv("BUNDEBUG", "true")
	t.Setenv("MAX_UPLOAD_MB", "12")
	t.Setenv("WRITE_TIMEOUT", "30s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "https://cdn.example.org", cfg.PublicBaseURL, "trailing slash is trimmed")
	assert.True(t, cfg.BunDebug)
	assert.Equal(t, 12, cfg.MaxUploadMB)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("BUNDEBUG", "sometimes")
	t.Setenv("MAX_UPLOAD_MB", "lots")
	t.Setenv("READ_TIMEOUT", "soon")

	cfg := Load()

	assert.False(t, cfg.BunDebug)
	assert.Equal(t, 5, cfg.MaxUploadMB)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "ecoleta.yaml")
	content := []byte("app_port: \"4000\"\npublic_base_url: http://files.local\nmax_upload_mb: 8\nauto_migrate: false\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg := Load()
	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "http://files.local", cfg.PublicBaseURL)
	assert.Equal(t, 8, cfg.MaxUploadMB)
	assert.False(t, cfg.AutoMigrate)

	t.Setenv("APP_PORT", "5000")
	cfg = Load()
	assert.Equal(t, "5000", cfg.Port, "environment takes precedence over the file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.Port = "http" }, "APP_PORT"},
		{"empty base url", func(c *Config) { c.PublicBaseURL = "" }, "PUBLIC_BASE_URL"},
		{"unknown backend", func(c *Config) { c.UploadBackend = "ftp" }, "UPLOAD_BACKEND"},
		{"s3 without bucket", func(c *Config) {
			c.UploadBackend = UploadBackendS3
			c.S3Endpoint = "http://minio:9000"
			c.S3AccessKeyID = "id"
			c.S3SecretAccessKey = "secret"
		}, "S3_BUCKET"},
		{"zero upload size", func(c *Config) { c.MaxUploadMB = 0 }, "MAX_UPLOAD_MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			cfg := Load()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
