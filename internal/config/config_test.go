package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.Verify.GitTool != "git" {
		t.Errorf("Verify.GitTool = %q, want %q", cfg.Verify.GitTool, "git")
	}
	if !cfg.History.Persist {
		t.Error("History.Persist should be true by default")
	}
	if !cfg.Output.Color {
		t.Error("Output.Color should be true by default")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
log_level: debug
log_format: json
verify:
  parallel: 8
  git_tool: /usr/local/bin/git
history:
  persist: false
  max_entries: 50
watch:
  interval: 500ms
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "json")
	}
	if cfg.Verify.Parallel != 8 {
		t.Errorf("Verify.Parallel = %d, want %d", cfg.Verify.Parallel, 8)
	}
	if cfg.Verify.GitTool != "/usr/local/bin/git" {
		t.Errorf("Verify.GitTool = %q, want %q", cfg.Verify.GitTool, "/usr/local/bin/git")
	}
	if cfg.History.Persist {
		t.Error("History.Persist should be false")
	}
	if cfg.History.MaxEntries != 50 {
		t.Errorf("History.MaxEntries = %d, want %d", cfg.History.MaxEntries, 50)
	}
	if cfg.Watch.Interval != "500ms" {
		t.Errorf("Watch.Interval = %q, want %q", cfg.Watch.Interval, "500ms")
	}
	// Keys absent from the file keep their defaults.
	if cfg.History.Path != ".dyadt/history.db" {
		t.Errorf("History.Path = %q, want default %q", cfg.History.Path, ".dyadt/history.db")
	}
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default %q", cfg.LogLevel, "info")
	}
}

func TestLoadConfigInterpolation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	t.Setenv("DYADT_TEST_DB", "/var/lib/dyadt/history.db")

	yaml := `
history:
  path: "${DYADT_TEST_DB}"
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.History.Path != "/var/lib/dyadt/history.db" {
		t.Errorf("History.Path = %q, want %q", cfg.History.Path, "/var/lib/dyadt/history.db")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("log_level: [not a scalar"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestInterpolateEnvVars(t *testing.T) {
	t.Setenv("FOO", "bar")
	t.Setenv("NUM_123", "456")

	tests := []struct {
		input string
		want  string
	}{
		{"${FOO}", "bar"},
		{"prefix-${FOO}-suffix", "prefix-bar-suffix"},
		{"${UNSET_VAR}", "${UNSET_VAR}"}, // unresolved stays
		{"${FOO} and ${NUM_123}", "bar and 456"},
		{"no vars here", "no vars here"},
	}

	for _, tt := range tests {
		got := interpolateEnvVars(tt.input)
		if got != tt.want {
			t.Errorf("interpolateEnvVars(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
