package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"maku/internal/config"
	"maku/internal/registry"
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
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.SeriesFile = filepath.Join(base, "series.json")
	cfgVal.Paths.CharactersFile = filepath.Join(base, "characters.json")
	cfgVal.Analysis.PacingMinMs = 0
	cfgVal.Analysis.PacingMaxMs = 0

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

// WithNtfyTopic sets the notification topic on the test config.
func WithNtfyTopic(topic string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = topic
	}
}

// WithStaffThreshold overrides the staff detection threshold.
func WithStaffThreshold(threshold int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Analysis.StaffThreshold = threshold
	}
}

// WithSeries writes a series catalog file containing the given entries and
// points the config at it.
func WithSeries(entries ...registry.Series) ConfigOption {
	return func(b *configBuilder) {
		data, err := json.Marshal(entries)
		if err != nil {
			b.t.Fatalf("marshal series catalog: %v", err)
		}
		if err := os.WriteFile(b.cfg.Paths.SeriesFile, data, 0o644); err != nil {
			b.t.Fatalf("write series catalog: %v", err)
		}
	}
}

// WriteCharacters writes a character registry file and points the config at
// it. The body must be a JSON object mapping names to nickname arrays.
func WriteCharacters(t testing.TB, cfg *config.Config, jsonBody string) {
	t.Helper()
	if err := os.WriteFile(cfg.Paths.CharactersFile, []byte(jsonBody), 0o644); err != nil {
		t.Fatalf("write character registry: %v", err)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
