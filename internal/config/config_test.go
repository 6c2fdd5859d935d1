package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points XDG dirs and the working directory at a temp dir and clears
// LABELBOARD_* variables
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	for _, name := range []string{EnvStoreURL, EnvTimeout, EnvPollInterval, EnvLogLevel, EnvLogFile, EnvSnapshot} {
		t.Setenv(name, "")
	}
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StoreURL != DefaultStoreURL || cfg.Timeout != DefaultTimeout || cfg.PollInterval != DefaultPollInterval {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Chart.Width != 512 || cfg.Chart.Height != 512 {
		t.Errorf("unexpected chart defaults: %+v", cfg.Chart)
	}
	if want := filepath.Join(dir, "state", "labelboard", "labelboard.log"); cfg.LogFile != want {
		t.Errorf("expected log file %s, got %s", want, cfg.LogFile)
	}
}

func TestLoad_YAML(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config", "labelboard", "config.yaml"), `
store_url: http://tickets.internal:8080
timeout: 3s
poll_interval: 1m
log_level: debug
chart:
  width: 800
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StoreURL != "http://tickets.internal:8080" || cfg.Timeout != 3*time.Second || cfg.PollInterval != time.Minute {
		t.Errorf("yaml not applied: %+v", cfg)
	}
	if cfg.Chart.Width != 800 || cfg.Chart.Height != 512 {
		t.Errorf("expected partial chart override, got %+v", cfg.Chart)
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoad_EnvWins(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "store_url: http://from-yaml\ntimeout: 3s\n")
	t.Setenv(EnvStoreURL, "http://from-env")
	t.Setenv(EnvTimeout, "7")
	t.Setenv(EnvPollInterval, "250ms")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StoreURL != "http://from-env" {
		t.Errorf("expected env store url, got %s", cfg.StoreURL)
	}
	if cfg.Timeout != 7*time.Second || cfg.PollInterval != 250*time.Millisecond {
		t.Errorf("unexpected durations: %v %v", cfg.Timeout, cfg.PollInterval)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	os.Unsetenv(EnvSnapshot)
	t.Cleanup(func() { os.Unsetenv(EnvSnapshot) })
	writeFile(t, filepath.Join(dir, ".env"), EnvSnapshot+"=/tmp/snap.db\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SnapshotPath != "/tmp/snap.db" {
		t.Errorf("expected snapshot path from .env, got %q", cfg.SnapshotPath)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		env    map[string]string
		errMsg string
	}{
		{name: "bad yaml", yaml: "store_url: [", errMsg: "failed to parse"},
		{name: "zero poll", yaml: "poll_interval: 0s", errMsg: "poll_interval"},
		{name: "bad env duration", env: map[string]string{EnvTimeout: "soon"}, errMsg: EnvTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "c.yaml")
			writeFile(t, path, tt.yaml)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
			}
		})
	}
}
