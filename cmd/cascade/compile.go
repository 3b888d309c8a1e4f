package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/cascade"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile a document to a stylesheet",
	Long: `Emit one rule per class, breakpoint and state in cascade order, followed
by the document's raw overrides. Use --output - to write to stdout.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCompile,
}

func init() {
	f := compileCmd.Flags()
	f.StringP("output", "o", "", "Output file or directory (- for stdout)")
	f.Bool("no-raw", false, "Drop raw overrides from the output")
	addDocumentFlags(compileCmd)
}

func runCompile(cmd *cobra.Command, _ []string) error {
	log, err := commandLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	doc, err := loadDocument(cmd.Context(), log)
	if err != nil {
		return err
	}
	if k.Bool("no-raw") {
		doc.ClearRawRules()
	}

	output := getStringWithFallback("output", "compile.output", "-")
	if output == "-" {
		return doc.WriteStylesheet(cmd.OutOrStdout())
	}

	output, err = outputPath(output)
	if err != nil {
		return err
	}
	if err := cascade.WriteStylesheetFile(output, doc); err != nil {
		return err
	}
	log.Debug("Stylesheet written",
		zap.String("path", output),
		zap.Int("sources", len(doc.Sources())),
		zap.Int("raw", len(doc.RawRules())))
	if !quiet() {
		fmt.Fprintf(cmd.OutOrStdout(), "Compiled %d classes to %s\n", len(doc.Sources()), output)
	}
	return nil
}

// outputPath turns a directory target into a file named after the document.
func outputPath(output string) (string, error) {
	info, err := os.Stat(output)
	if err != nil || !info.IsDir() {
		return output, nil
	}
	name := "styles"
	if title := k.String("doc"); title != "" {
		name = slug.Make(title)
	} else if snap := k.String("snapshot"); snap != "" {
		base := filepath.Base(snap)
		name = slug.Make(base[:len(base)-len(filepath.Ext(base))])
	}
	if name == "" {
		return "", fmt.Errorf("cannot derive a file name for output directory %s", output)
	}
	return filepath.Join(output, name+".css"), nil
}
