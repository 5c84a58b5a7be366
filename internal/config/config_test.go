package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_MissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.General.Backend)
	assert.Equal(t, 5, cfg.Serve.PollIntervalSec)
}

func TestSaveFileThenLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally", "config.toml")

	want := DefaultConfig()
	want.General.Backend = "json"
	want.General.DataDir = "/tmp/budgets"
	want.General.Currency = "€"
	want.Appearance.Theme = "paper"

	require.NoError(t, SaveFile(path, want))
	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[general]\ncurrency = \"$\"\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "$", cfg.General.Currency)
	assert.Equal(t, "sqlite", cfg.General.Backend, "unset keys keep their defaults")
}

func TestLoadFile_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[general\n"), 0o600))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDataDir, "/data/tally")
	t.Setenv(EnvBackend, "json")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvAddr, "127.0.0.1:9000")

	cfg := DefaultConfig()
	ApplyEnv(&cfg)

	assert.Equal(t, "/data/tally", cfg.DataDir())
	assert.Equal(t, "json", cfg.General.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:9000", cfg.Serve.Addr)
}

func TestDefaultDataDir_XDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	assert.Equal(t, filepath.Join("/xdg/data", "tally"), DefaultConfig().DataDir())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		errorString string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{
			name:        "unknown backend",
			mutate:      func(c *Config) { c.General.Backend = "csv" },
			errorString: "invalid backend 'csv'",
		},
		{
			name:        "unknown frequency",
			mutate:      func(c *Config) { c.Defaults.Frequency = "Daily" },
			errorString: "invalid default frequency 'Daily'",
		},
		{
			name:        "address without port",
			mutate:      func(c *Config) { c.Serve.Addr = "localhost" },
			errorString: "invalid serve address 'localhost'",
		},
		{
			name:        "port out of range",
			mutate:      func(c *Config) { c.Serve.Addr = "localhost:70000" },
			errorString: "invalid serve port '70000'",
		},
		{
			name:        "zero poll interval",
			mutate:      func(c *Config) { c.Serve.PollIntervalSec = 0 },
			errorString: "invalid poll interval 0",
		},
		{
			name:        "bad log level",
			mutate:      func(c *Config) { c.Log.Level = "loud" },
			errorString: "invalid log level 'loud'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errorString == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}
