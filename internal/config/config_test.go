package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CONFIG_FILE", "PORT", "LOG_LEVEL", "LOG_FORMAT", "DATABASE_URL",
	"MAP_PATH", "TICK_RATE", "SEED", "MAX_SPECTATORS",
}

// clearEnv blanks every variable Load reads; getEnv treats empty as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, defaults(), cfg)
}

func TestLoad_Env(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(t *testing.T, cfg *Config)
	}{
		{"port", "PORT", "9090", func(t *testing.T, cfg *Config) { assert.Equal(t, 9090, cfg.Port) }},
		{"bad port keeps default", "PORT", "http", func(t *testing.T, cfg *Config) { assert.Equal(t, 8080, cfg.Port) }},
		{"log level", "LOG_LEVEL", "debug", func(t *testing.T, cfg *Config) { assert.Equal(t, "debug", cfg.LogLevel) }},
		{"seed", "SEED", "18446744073709551615", func(t *testing.T, cfg *Config) { assert.Equal(t, uint64(18446744073709551615), cfg.Seed) }},
		{"negative seed ignored", "SEED", "-1", func(t *testing.T, cfg *Config) { assert.Zero(t, cfg.Seed) }},
		{"zero tick rate", "TICK_RATE", "0", func(t *testing.T, cfg *Config) { assert.Equal(t, 60, cfg.TickRate) }},
		{"tick rate", "TICK_RATE", "30", func(t *testing.T, cfg *Config) { assert.Equal(t, 30, cfg.TickRate) }},
		{"map path", "MAP_PATH", "/maps/x.yaml", func(t *testing.T, cfg *Config) { assert.Equal(t, "/maps/x.yaml", cfg.MapPath) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
port = 7000
log_format = "json"
tick_rate = 120
seed = 42
max_spectators = 2
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7100, cfg.Port, "environment wins over the file")
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel, "keys missing from the file keep defaults")
	assert.Equal(t, 120, cfg.TickRate)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 2, cfg.MaxSpectators)
}

func TestLoad_FileErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantMsg string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") }, "read config"},
		{"bad toml", func(t *testing.T) string { return writeConfig(t, "port = [") }, "parse config"},
		{"wrong type", func(t *testing.T) string { return writeConfig(t, `port = "high"`) }, "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("CONFIG_FILE", tt.path(t))

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
