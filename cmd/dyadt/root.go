package main

import (
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hyperpolymath/did-you-actually-do-that/internal/config"
	"github.com/hyperpolymath/did-you-actually-do-that/internal/logging"
	"github.com/hyperpolymath/did-you-actually-do-that/pkg/verify"
)

var (
	configPath string
	jsonOutput bool
	noColor    bool
	verbose    bool
	quiet      bool
)

// cfg is loaded once per invocation by the root PersistentPreRunE.
var cfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "dyadt",
	Short: "Did You Actually Do That? - verify claimed actions against reality",
	Long: `dyadt checks claims about completed work against the actual state of the
machine: files, hashes, command outcomes, git repositories, and environment
variables. Each evidence item yields a verdict (Confirmed, Refuted,
Inconclusive, Unverifiable) and a claim is only trustworthy when every item
is confirmed.

Exit codes:
  0 - all claims verified (Confirmed)
  1 - one or more claims refuted
  2 - inconclusive or unverifiable
  3 - error (invalid input, etc.)`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Machine-readable JSON output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup loads configuration and installs the global logger. Flags override
// config file values.
func setup() error {
	loaded, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	if cfg.Output.JSON {
		jsonOutput = true
	}
	if !cfg.Output.Color {
		noColor = true
	}
	if noColor {
		color.NoColor = true
	}

	level := parseLevel(cfg.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}
	logging.Init(level, cfg.LogFormat)

	return nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newVerifier builds a Verifier from config defaults plus any extra options.
func newVerifier(extra ...verify.Option) *verify.Verifier {
	opts := []verify.Option{}
	if cfg.Verify.GitTool != "" {
		opts = append(opts, verify.WithGitTool(cfg.Verify.GitTool))
	}
	if cfg.Verify.Parallel > 1 {
		opts = append(opts, verify.WithParallel(cfg.Verify.Parallel))
	}
	opts = append(opts, extra...)
	return verify.New(opts...)
}
