package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	initOutput string
	initForce  bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a starter claim file and config",
	Long:  "Write an example claim file to edit, plus a default .dyadt/config.yaml if none exists.",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().StringVar(&initOutput, "output", "claim.json", "Path for the starter claim file")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing claim file")
}

const starterClaim = `{
  "description": "Created the configuration file",
  "evidence": [
    { "type": "FileExists", "spec": { "path": "/etc/myapp/config.toml" } },
    { "type": "FileContains", "spec": { "path": "/etc/myapp/config.toml", "substring": "version = " } }
  ],
  "source": "setup-agent"
}
`

const starterConfig = `# dyadt configuration
log_level: info      # debug, info, warn, error
log_format: text     # text, json

verify:
  parallel: 1        # concurrent evidence checks per claim
  git_tool: git

history:
  path: .dyadt/history.db
  persist: true
  max_entries: 10000

watch:
  interval: 2s

output:
  color: true
  json: false
`

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if _, err := os.Stat(initOutput); err == nil && !initForce {
		return fmt.Errorf("file %q already exists (use --force to overwrite)", initOutput)
	}

	if dir := filepath.Dir(initOutput); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if err := os.WriteFile(initOutput, []byte(starterClaim), 0644); err != nil {
		return fmt.Errorf("write claim file: %w", err)
	}
	fmt.Fprintf(out, "Created %s\n", initOutput)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		if err := os.WriteFile(configPath, []byte(starterConfig), 0644); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n", configPath)
	}

	fmt.Fprintln(out, "Edit the claim file to describe what should have happened, then run:")
	fmt.Fprintf(out, "  dyadt check %s\n", initOutput)

	return nil
}
