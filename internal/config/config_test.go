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
		App:        AppConfig{Environment: "development"},
		Logger:     LoggerConfig{Level: "info"},
		Storage:    StorageConfig{DataPath: "/some/path", Persistence: PersistenceBadger},
		Metadata:   MetadataConfig{RequestsPerSecond: 20},
		Projection: ProjectionConfig{Concurrency: 4},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown environment", func(c *Config) { c.App.Environment = "test" }},
		{"case sensitive environment", func(c *Config) { c.App.Environment = "DEVELOPMENT" }},
		{"bad log level", func(c *Config) { c.Logger.Level = "verbose" }},
		{"unknown persistence", func(c *Config) { c.Storage.Persistence = "postgres" }},
		{"empty data path", func(c *Config) { c.Storage.DataPath = "" }},
		{"zero concurrency", func(c *Config) { c.Projection.Concurrency = 0 }},
		{"zero provider rate", func(c *Config) { c.Metadata.RequestsPerSecond = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_MemoryNeedsNoDataPath(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Persistence = PersistenceMemory
	cfg.Storage.DataPath = ""
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"# comment\nSERVER_PORT=9000\nLOG_LEVEL=\"debug\"\nPERSISTENCE=sqlite\n",
	), 0o600))

	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("PERSISTENCE", "")
	t.Setenv("RESOLVE_CONCURRENCY", "3")
	t.Setenv("TMDB_TIMEOUT", "5s")

	cfg, err := LoadConfig([]string{
		"-env-file", envFile,
		"-data-path", dir,
		"-port", "7777",
	})
	require.NoError(t, err)

	assert.Equal(t, "7777", cfg.Server.Port, "flag beats .env")
	assert.Equal(t, "debug", cfg.Logger.Level, ".env fills unset env")
	assert.Equal(t, PersistenceSQLite, cfg.Storage.Persistence)
	assert.Equal(t, 3, cfg.Projection.Concurrency)
	assert.Equal(t, 5*time.Second, cfg.Metadata.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Metadata.CacheTTL)
	assert.Equal(t, dir, cfg.Storage.DataPath)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_DURATION", "forever")

	_, err := LoadConfig([]string{"-env-file", filepath.Join(t.TempDir(), "missing.env"), "-data-path", t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACCESS_TOKEN_DURATION")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/cinelist", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "cinelist"), got)

	got, err = expandPath("", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/default", got)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, splitList(" http://a, ,http://b "))
	assert.Nil(t, splitList(""))
}
