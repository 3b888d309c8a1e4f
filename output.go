package cascade

import (
	"fmt"
	"io"

	engine "github.com/yacobolo/cascade/internal/cascade"
)

// OutputFormat selects how a validation result is rendered.
type OutputFormat string

// Output formats
const (
	OutputIssues  OutputFormat = "issues"  // golangci-lint style issues + summary
	OutputSummary OutputFormat = "summary" // statistics only
	OutputFull    OutputFormat = "full"    // issues + statistics
	OutputJSON    OutputFormat = "json"    // machine-readable
)

// DetermineOutputFormat selects the output format from flags
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Explicit -quiet flag wins (exit code only)
	if quiet {
		return OutputIssues
	}

	switch OutputFormat(formatFlag) {
	case OutputIssues, OutputSummary, OutputFull, OutputJSON:
		return OutputFormat(formatFlag)
	}
	return DetermineDefaultOutputFormat()
}

// DetermineDefaultOutputFormat follows golangci-lint's UX: issues only.
func DetermineDefaultOutputFormat() OutputFormat {
	return OutputIssues
}

// WriteOutput writes the validation result in the specified format
func WriteOutput(w io.Writer, result *ValidateResult, format OutputFormat, config ValidateConfig) error {
	reportConfig := engine.ReportConfig{
		UseColors:        config.UseColors,
		PrintIssuedLines: config.PrintIssuedLines,
		PrintLinterName:  config.PrintLinterName,
	}

	switch format {
	case OutputIssues:
		reporter := engine.NewReporter(w, reportConfig)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)

	case OutputSummary:
		verbose := engine.NewVerboseReporter(w, engine.ShouldUseColors(config.UseColors))
		verbose.PrintStatistics(*result)
		verbose.PrintRoundTrip(*result)
		verbose.PrintWarnings(*result)

	case OutputFull:
		reporter := engine.NewReporter(w, reportConfig)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)

		verbose := engine.NewVerboseReporter(w, reporter.UseColors())
		verbose.PrintStatistics(*result)
		verbose.PrintRoundTrip(*result)
		verbose.PrintWarnings(*result)

	case OutputJSON:
		return WriteJSON(w, result)

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}
