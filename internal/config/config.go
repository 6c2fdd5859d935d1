// Package config loads labelboard settings. Later layers win: built-in
// defaults, the YAML file, a .env file in the working directory, then
// LABELBOARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultStoreURL     = "http://localhost:5000"
	DefaultTimeout      = 10 * time.Second
	DefaultPollInterval = 5 * time.Second
	DefaultLogLevel     = "info"
	DefaultChartSize    = 512
)

// Environment variable names
const (
	EnvStoreURL     = "LABELBOARD_STORE_URL"
	EnvTimeout      = "LABELBOARD_TIMEOUT"
	EnvPollInterval = "LABELBOARD_POLL_INTERVAL"
	EnvLogLevel     = "LABELBOARD_LOG_LEVEL"
	EnvLogFile      = "LABELBOARD_LOG_FILE"
	EnvSnapshot     = "LABELBOARD_SNAPSHOT"
)

// Config holds every setting the binaries read
type Config struct {
	StoreURL     string        `yaml:"store_url"`
	Timeout      time.Duration `yaml:"timeout"`
	PollInterval time.Duration `yaml:"poll_interval"`
	LogLevel     string        `yaml:"log_level"`
	LogFile      string        `yaml:"log_file"`

	// SnapshotPath is the sqlite file for offline stats. Empty means a
	// per-store file under the XDG data directory.
	SnapshotPath string `yaml:"snapshot_path"`

	Chart ChartConfig `yaml:"chart"`
}

// ChartConfig sizes exported charts
type ChartConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		StoreURL:     DefaultStoreURL,
		Timeout:      DefaultTimeout,
		PollInterval: DefaultPollInterval,
		LogLevel:     DefaultLogLevel,
		LogFile:      DefaultLogFile(),
		Chart:        ChartConfig{Width: DefaultChartSize, Height: DefaultChartSize},
	}
}

// Load builds the configuration. An empty path reads the default config file
// if it exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(expandHome(path))
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvStoreURL); v != "" {
		c.StoreURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv(EnvSnapshot); v != "" {
		c.SnapshotPath = v
	}
	for name, dst := range map[string]*time.Duration{
		EnvTimeout:      &c.Timeout,
		EnvPollInterval: &c.PollInterval,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = d
	}
	return nil
}

// parseDuration accepts Go durations or a bare number of seconds
func parseDuration(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}

// Validate rejects settings the binaries cannot run with
func (c *Config) Validate() error {
	if c.StoreURL == "" {
		return errors.New("store_url must not be empty")
	}
	if c.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	if c.PollInterval <= 0 {
		return errors.New("poll_interval must be positive")
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/labelboard/config.yaml
func DefaultPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "labelboard", "config.yaml")
}

// DefaultLogFile returns $XDG_STATE_HOME/labelboard/labelboard.log
func DefaultLogFile() string {
	return filepath.Join(xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state")), "labelboard", "labelboard.log")
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, fallback)
}

func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
