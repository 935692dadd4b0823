package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"maku/internal/config"
	"maku/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	cfg := testsupport.NewConfig(t, opts...)
	configPath := filepath.Join(homeDir, ".config", "maku", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()

	body := fmt.Sprintf(`[paths]
data_dir = %q
output_dir = %q
log_dir = %q
series_file = %q
characters_file = %q

[missevan]
base_url = %q
request_timeout = %d
retry_attempts = %d
retry_base_delay = %d
episode_list_max_age_hours = %d

[analysis]
staff_threshold = %d
pacing_min_ms = %d
pacing_max_ms = %d

[notifications]
ntfy_topic = %q

[logging]
format = "json"
level = "error"
`,
		cfg.Paths.DataDir,
		cfg.Paths.OutputDir,
		cfg.Paths.LogDir,
		cfg.Paths.SeriesFile,
		cfg.Paths.CharactersFile,
		cfg.Missevan.BaseURL,
		cfg.Missevan.RequestTimeout,
		cfg.Missevan.RetryAttempts,
		cfg.Missevan.RetryBaseDelay,
		cfg.Missevan.EpisodeListMaxAge,
		cfg.Analysis.StaffThreshold,
		cfg.Analysis.PacingMinMs,
		cfg.Analysis.PacingMaxMs,
		cfg.Notifications.NtfyTopic,
	)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	if configPath != "" {
		args = append(args, "--config", configPath)
	}
	cmd.SetArgs(args)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}
