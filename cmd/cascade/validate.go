package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/cascade"
)

var validateCmd = &cobra.Command{
	Use:     "validate",
	Aliases: []string{"lint"},
	Short:   "Check stylesheets for problems the importer would hit",
	Long: `Run the import pass over CSS files without building a document and
report syntax errors, dropped declarations, and (with --report-raw) rules that
would be kept as raw overrides.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringSlice("paths", []string{"**/*.css"}, "File patterns to validate")
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.Bool("report-raw", false, "Report rules kept as raw overrides")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Int("max-issues-per-linter", 0, "Max issues to show per linter (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (csssyntax) suffix on issues")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	log, err := commandLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	config, err := buildValidateConfig(log)
	if err != nil {
		return err
	}

	result, err := cascade.Validate(config)
	if err != nil {
		return fmt.Errorf("validate failed: %w", err)
	}

	q := quiet()
	format := cascade.DetermineOutputFormat(getStringWithFallback("output-format", "validate.output-format", ""), q)
	if !q {
		if err := cascade.WriteOutput(cmd.OutOrStdout(), result, format, config); err != nil {
			return err
		}
	}

	// Soft gate: only errors fail unless strict.
	if getBoolWithFallback("strict", "validate.strict", false) {
		if len(result.Issues) > 0 {
			return errFailed
		}
	} else if result.ErrorCount() > 0 {
		return errFailed
	}
	return nil
}
