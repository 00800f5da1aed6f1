// Package testsupport provides shared helpers for package tests: per-test
// configurations backed by unique temp directories and store builders with
// registered cleanup.
package testsupport

import (
	"path/filepath"
	"testing"

	"nexus/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.RootDir = filepath.Join(base, "registros")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Database.Path = filepath.Join(base, "pendencias.db")
	cfgVal.Notifications.NtfyTopic = ""
	cfgVal.Watch.PollIntervalSeconds = 1

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithSituations overrides the commercial pipeline on the test config.
func WithSituations(situations ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Pipeline.Situations = situations
	}
}

// WithUsersCSV points the directory service at a login sheet.
func WithUsersCSV(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.UsersCSV = path
	}
}

// WithMonitorArchived toggles watching the archived folder.
func WithMonitorArchived(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Watch.MonitorArchived = enabled
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.RootDir)
}
