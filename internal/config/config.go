package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all tally configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Defaults   DefaultsConfig   `toml:"defaults"`
	Appearance AppearanceConfig `toml:"appearance"`
	Serve      ServeConfig      `toml:"serve"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds storage and display preferences.
type GeneralConfig struct {
	DataDir  string `toml:"data_dir,omitempty"`
	Backend  string `toml:"backend"`
	Currency string `toml:"currency"`
}

// DefaultsConfig seeds income metadata before any month is saved.
type DefaultsConfig struct {
	IncomeType string `toml:"income_type"`
	Frequency  string `toml:"frequency"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServeConfig holds settings for the local read-only API.
type ServeConfig struct {
	Addr            string `toml:"addr"`
	PollIntervalSec int    `toml:"poll_interval_sec"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Environment variables that override the config file.
const (
	EnvDataDir  = "TALLY_DATA_DIR"
	EnvBackend  = "TALLY_BACKEND"
	EnvLogLevel = "TALLY_LOG_LEVEL"
	EnvAddr     = "TALLY_ADDR"
)

var (
	validBackends = []string{"sqlite", "json"}
	validLevels   = []string{"debug", "info", "warn", "error"}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Backend:  "sqlite",
			Currency: "₵",
		},
		Defaults: DefaultsConfig{
			IncomeType: "Allowance",
			Frequency:  "Monthly",
		},
		Appearance: AppearanceConfig{
			Theme: "ledger",
		},
		Serve: ServeConfig{
			Addr:            "127.0.0.1:7420",
			PollIntervalSec: 5,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tally")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tally")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultDataDir returns the XDG-compliant data directory.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "tally")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "tally")
}

// DataDir returns the configured data directory, or the default.
func (c Config) DataDir() string {
	if c.General.DataDir != "" {
		return c.General.DataDir
	}
	return DefaultDataDir()
}

// Load reads the config file, returning defaults if it doesn't exist.
// A .env file in the working directory and TALLY_* variables override it.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg, err := LoadFile(ConfigPath())
	if err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg)
	return cfg, nil
}

// LoadFile reads one config file on top of the defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path comes from ConfigPath or the caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides cfg with any TALLY_* variables that are set.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.General.DataDir = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		cfg.General.Backend = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Serve.Addr = v
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveFile(ConfigPath(), cfg)
}

// SaveFile writes the config to path.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // path comes from ConfigPath or the caller
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	if !slices.Contains(validBackends, c.General.Backend) {
		problems = append(problems, fmt.Sprintf("invalid backend '%s': must be one of %v", c.General.Backend, validBackends))
	}

	switch c.Defaults.IncomeType {
	case "Allowance", "Salary", "Job", "Other":
	default:
		problems = append(problems, fmt.Sprintf("invalid default income type '%s'", c.Defaults.IncomeType))
	}
	switch c.Defaults.Frequency {
	case "Weekly", "Monthly", "Yearly":
	default:
		problems = append(problems, fmt.Sprintf("invalid default frequency '%s'", c.Defaults.Frequency))
	}

	if c.Serve.Addr != "" {
		if _, port, err := net.SplitHostPort(c.Serve.Addr); err != nil {
			problems = append(problems, fmt.Sprintf("invalid serve address '%s': want host:port", c.Serve.Addr))
		} else if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
			problems = append(problems, fmt.Sprintf("invalid serve port '%s': must be between 0 and 65535", port))
		}
	}
	if c.Serve.PollIntervalSec < 1 {
		problems = append(problems, fmt.Sprintf("invalid poll interval %d: must be at least 1 second", c.Serve.PollIntervalSec))
	}

	if !slices.Contains(validLevels, strings.ToLower(c.Log.Level)) {
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of %v", c.Log.Level, validLevels))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
