package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nexus/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("file must be reported missing")
	}
	if len(cfg.Pipeline.Situations) != 8 || cfg.Pipeline.Situations[0] != "Novo contato" {
		t.Fatalf("default situations = %#v", cfg.Pipeline.Situations)
	}
	if cfg.PollInterval() != 10 {
		t.Fatalf("poll interval = %d", cfg.PollInterval())
	}
	if !cfg.Watch.MonitorArchived {
		t.Fatal("archived monitoring should default on")
	}
}

func TestLoadParsesAndExpandsPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
root_dir = "` + filepath.ToSlash(dir) + `/registros"

[watch]
poll_interval_seconds = 3
monitor_archived = false

[pipeline]
situations = ["Primeiro contato", "  ", "Fechamento"]

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}
	if !filepath.IsAbs(cfg.Paths.RootDir) {
		t.Fatalf("root dir not expanded: %q", cfg.Paths.RootDir)
	}
	if cfg.Watch.PollIntervalSeconds != 3 || cfg.Watch.MonitorArchived {
		t.Fatalf("watch = %#v", cfg.Watch)
	}
	if len(cfg.Pipeline.Situations) != 2 || cfg.Pipeline.Situations[1] != "Fechamento" {
		t.Fatalf("situations = %#v", cfg.Pipeline.Situations)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging = %#v", cfg.Logging)
	}
}

func TestLoadRejectsBadLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[logging]
format = "xml"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[paths]") {
		t.Fatal("sample content missing [paths]")
	}

	// The sample must itself parse.
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample does not load: %v", err)
	}

	if err := config.WriteSample(path); err == nil {
		t.Fatal("expected refusal to overwrite")
	}
}

func TestPollIntervalDefaultsWhenZero(t *testing.T) {
	cfg := config.Default()
	cfg.Watch.PollIntervalSeconds = 0
	if cfg.PollInterval() != 10 {
		t.Fatalf("poll interval = %d", cfg.PollInterval())
	}
}
