package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .cascade.yaml config file",
	Long:  `Create a .cascade.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# cascade configuration
verbose: false

log:
  level: none              # none | normal | debug

# Ordered broadest to narrowest. The first entry is the base breakpoint and
# sets no width; every other entry sets max-width or min-width.
breakpoints:
  - id: base
    label: Desktop
  - id: tablet
    label: Tablet
    max-width: 991
  - id: mobile-landscape
    label: Mobile landscape
    max-width: 767
  - id: mobile
    label: Mobile portrait
    max-width: 478

# Auto-generated class names: button-1, button-2, ...
naming:
  separator: "-"
  padding: 0
  start-index: 1
  none-first: false

import:
  source: web/styles
  include:
    - "**/*.css"

compile:
  output: dist/styles.css

validate:
  paths:
    - "web/**/*.css"
  output-format: issues    # issues | summary | full | json
  report-raw: false
  max-issues-per-linter: 0 # 0 = unlimited
  max-same-issues: 0       # 0 = unlimited
  print-lines: true
  print-linter-name: true

store:
  path: .cascade/cascade.db
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
