package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where LoadConfig looks when no --config flag is given.
const DefaultPath = ".dyadt/config.yaml"

// Config represents the runtime configuration from .dyadt/config.yaml.
type Config struct {
	LogLevel  string        `yaml:"log_level"`
	LogFormat string        `yaml:"log_format"`
	Verify    VerifyConfig  `yaml:"verify"`
	History   HistoryConfig `yaml:"history"`
	Watch     WatchConfig   `yaml:"watch"`
	Output    OutputConfig  `yaml:"output"`
}

// VerifyConfig defines evidence-checking defaults.
type VerifyConfig struct {
	Parallel int    `yaml:"parallel"` // concurrent evidence checks per claim; <=1 means sequential
	GitTool  string `yaml:"git_tool"` // executable used for git evidence
}

// HistoryConfig defines report persistence settings.
type HistoryConfig struct {
	Path       string `yaml:"path"`
	Persist    bool   `yaml:"persist"`
	MaxEntries int    `yaml:"max_entries"` // 0 means unlimited
}

// WatchConfig defines watch-mode settings.
type WatchConfig struct {
	Interval string `yaml:"interval"` // Go duration string, e.g. "2s"
}

// OutputConfig defines rendering defaults for the CLI.
type OutputConfig struct {
	Color bool `yaml:"color"`
	JSON  bool `yaml:"json"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Verify: VerifyConfig{
			Parallel: 1,
			GitTool:  "git",
		},
		History: HistoryConfig{
			Path:       ".dyadt/history.db",
			Persist:    true,
			MaxEntries: 10000,
		},
		Watch: WatchConfig{
			Interval: "2s",
		},
		Output: OutputConfig{
			Color: true,
		},
	}
}

// LoadConfig reads and parses a runtime config YAML file.
// Returns default config if the file doesn't exist. Environment variables
// referenced as ${VAR_NAME} are interpolated before parsing.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	interpolated := interpolateEnvVars(string(data))

	if err := yaml.Unmarshal([]byte(interpolated), &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// envVarPattern matches ${VAR_NAME} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// interpolateEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func interpolateEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimPrefix(strings.TrimSuffix(match, "}"), "${")
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match // Leave unresolved if not set.
	})
}
