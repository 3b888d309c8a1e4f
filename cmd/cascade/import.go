package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/cascade"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import stylesheets into a document",
	Long: `Parse CSS files into classes and declarations. Rules that cannot be
modeled as a single class with a known breakpoint and state are kept as raw
overrides and re-emitted on compile.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runImport,
}

func init() {
	f := importCmd.Flags()
	f.String("source", ".", "Source CSS directory")
	f.StringSlice("include", nil, "Glob patterns for CSS files to include")
	f.String("output-format", "", "Issue output format: issues|summary|full|json")
	addDocumentFlags(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	log, err := commandLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	config, err := buildImportConfig(log)
	if err != nil {
		return err
	}

	doc, stats, err := cascade.ImportFiles(config)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	saved, err := saveDocument(cmd.Context(), log, doc)
	if err != nil {
		return err
	}

	if quiet() {
		return nil
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Imported %s\n", config.SourceDir)
	fmt.Fprintf(out, "  Files scanned: %d\n", stats.FilesScanned)
	fmt.Fprintf(out, "  Classes created: %d\n", stats.Sources)
	fmt.Fprintf(out, "  Declarations: %d\n", stats.Declarations)
	fmt.Fprintf(out, "  Raw rules: %d\n", stats.RawRules)
	for _, w := range stats.Warnings {
		fmt.Fprintf(out, "  Warning: %s\n", w)
	}
	if !saved {
		fmt.Fprintln(out, "  Nothing written (pass --snapshot or --doc to keep the result)")
	}

	if len(stats.Issues) > 0 {
		vc, err := buildValidateConfig(log)
		if err != nil {
			return err
		}
		result := &cascade.ValidateResult{
			Issues:       stats.Issues,
			FilesScanned: stats.FilesScanned,
			Classes:      stats.Sources,
			Declarations: stats.Declarations,
			RawRules:     stats.RawRules,
		}
		format := cascade.DetermineOutputFormat(getStringWithFallback("output-format", "validate.output-format", ""), false)
		fmt.Fprintln(out)
		return cascade.WriteOutput(out, result, format, vc)
	}
	return nil
}
