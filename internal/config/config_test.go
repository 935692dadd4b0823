package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if exists {
		t.Error("Load() reported a nonexistent file as existing")
	}
	if resolved != path {
		t.Errorf("resolved = %q, want %q", resolved, path)
	}
	if cfg.Missevan.BaseURL != defaultMissevanBaseURL {
		t.Errorf("base_url = %q", cfg.Missevan.BaseURL)
	}
	if cfg.Analysis.StaffThreshold != defaultStaffThreshold {
		t.Errorf("staff_threshold = %d", cfg.Analysis.StaffThreshold)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	doc := `
[paths]
data_dir = "` + filepath.Join(dir, "data") + `"

[missevan]
base_url = "https://example.test/"
retry_attempts = 3

[analysis]
staff_threshold = 8
exact_match = true
pacing_min_ms = 0
pacing_max_ms = 0

[logging]
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !exists {
		t.Fatal("Load() did not find written config")
	}
	if cfg.Missevan.BaseURL != "https://example.test" {
		t.Errorf("base_url = %q, trailing slash not trimmed", cfg.Missevan.BaseURL)
	}
	if cfg.Missevan.RetryAttempts != 3 {
		t.Errorf("retry_attempts = %d", cfg.Missevan.RetryAttempts)
	}
	if cfg.Analysis.StaffThreshold != 8 || !cfg.Analysis.ExactMatch {
		t.Errorf("analysis = %+v", cfg.Analysis)
	}
	if cfg.Analysis.PacingMinMs != 0 || cfg.Analysis.PacingMaxMs != 0 {
		t.Errorf("pacing = %d..%d, want 0..0", cfg.Analysis.PacingMinMs, cfg.Analysis.PacingMaxMs)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, not lowercased", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "bad base url",
			doc:  "[missevan]\nbase_url = \"not a url\"\n",
			want: "base_url",
		},
		{
			name: "bad log format",
			doc:  "[logging]\nformat = \"xml\"\n",
			want: "logging.format",
		},
		{
			name: "bad log level",
			doc:  "[logging]\nlevel = \"verbose\"\n",
			want: "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.doc), 0o644); err != nil {
				t.Fatal(err)
			}
			_, _, _, err := Load(path)
			if err == nil {
				t.Fatal("Load() expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestNormalizeSwappedPacingBounds(t *testing.T) {
	cfg := Default()
	cfg.Analysis.PacingMinMs = 3000
	cfg.Analysis.PacingMaxMs = 1000
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize() error = %v", err)
	}
	if cfg.Analysis.PacingMaxMs < cfg.Analysis.PacingMinMs {
		t.Errorf("pacing bounds not repaired: %d..%d", cfg.Analysis.PacingMinMs, cfg.Analysis.PacingMaxMs)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample() error = %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load(sample) error = %v", err)
	}
	if !exists {
		t.Fatal("sample config not found after CreateSample")
	}
	if cfg.Missevan.BaseURL != defaultMissevanBaseURL {
		t.Errorf("sample base_url = %q", cfg.Missevan.BaseURL)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Paths.DataDir = filepath.Join(dir, "data")
	cfg.Paths.OutputDir = filepath.Join(dir, "out")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories() error = %v", err)
	}
	for _, p := range []string{cfg.Paths.DataDir, cfg.Paths.OutputDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(p); err != nil || !info.IsDir() {
			t.Errorf("directory %q missing after EnsureDirectories", p)
		}
	}
}
