package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:     AppConfig{Environment: "development"},
		Logger:  LoggerConfig{Level: "info"},
		Catalog: CatalogConfig{DataPath: "/data/fragrancesV2.json"},
		Images:  ImagesConfig{PublicPrefix: "/fragrances/images"},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logger.Level = "WARN"
	assert.NoError(t, cfg.Validate())

	cfg.Logger.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidate_RequiresCatalogPath(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.DataPath = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_PublicPrefix(t *testing.T) {
	cfg := validConfig()
	cfg.Images.PublicPrefix = "fragrances/images"
	assert.Error(t, cfg.Validate())
}

func TestValidate_RateLimit(t *testing.T) {
	cfg := validConfig()
	cfg.Server.RateLimit = -1
	assert.Error(t, cfg.Validate())

	cfg.Server.RateLimit = 5
	cfg.Server.RateBurst = 0
	assert.Error(t, cfg.Validate())

	cfg.Server.RateBurst = 10
	assert.NoError(t, cfg.Validate())
}

func TestLoad_RateLimit(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	cfg, err := Load([]string{"-env-file", missing})
	require.NoError(t, err)
	assert.InDelta(t, 20.0, cfg.Server.RateLimit, 1e-9)
	assert.Equal(t, 40, cfg.Server.RateBurst)

	cfg, err = Load([]string{"-rate-limit", "0", "-env-file", missing})
	require.NoError(t, err)
	assert.Zero(t, cfg.Server.RateLimit)

	_, err = Load([]string{"-rate-limit", "fast", "-env-file", missing})
	assert.Error(t, err)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CATALOG_PATH", "/env/catalog.json")

	cfg, err := Load([]string{"-port", "9100", "-env-file", filepath.Join(t.TempDir(), "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, "/env/catalog.json", cfg.Catalog.DataPath)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.True(t, cfg.Catalog.Watch)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("CATALOG_WATCH=false\nCORS_ORIGINS=http://a.test, http://b.test\n"), 0o600))

	// godotenv never overrides real environment; make sure these are unset.
	os.Unsetenv("CATALOG_WATCH")
	os.Unsetenv("CORS_ORIGINS")
	t.Cleanup(func() {
		os.Unsetenv("CATALOG_WATCH")
		os.Unsetenv("CORS_ORIGINS")
	})

	cfg, err := Load([]string{"-env-file", envPath})
	require.NoError(t, err)

	assert.False(t, cfg.Catalog.Watch)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
}

func TestLoad_InvalidDuration(t *testing.T) {
	_, err := Load([]string{"-read-timeout", "soon", "-env-file", filepath.Join(t.TempDir(), "missing.env")})
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/scentdex/data.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "scentdex", "data.json"), got)

	got, err = expandPath("")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = expandPath("relative/file.json")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}
