package cascade

import (
	"fmt"
	"io"
)

// VerboseReporter prints statistics about a validation run.
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter.
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{w: w, useColors: useColors}
}

// PrintStatistics prints what the import pass recovered.
func (r *VerboseReporter) PrintStatistics(result ValidateResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Stylesheet Statistics", r.useColors))
	fmt.Fprintln(r.w, "---------------------")

	fmt.Fprintf(r.w, "Files Scanned:   %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "Classes:         %d\n", result.Classes)
	fmt.Fprintf(r.w, "Declarations:    %d\n", result.Declarations)
	fmt.Fprintf(r.w, "Raw Overrides:   %d\n", result.RawRules)
	fmt.Fprintf(r.w, "Errors:          %d\n", result.ErrorCount())
}

// PrintRoundTrip shows how much of the input the engine can model.
func (r *VerboseReporter) PrintRoundTrip(result ValidateResult) {
	total := result.Declarations + result.RawRules
	if total == 0 {
		return
	}
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Round-trip Coverage", r.useColors))
	fmt.Fprintln(r.w, "-------------------")
	printProgressBar(r.w, float64(result.Declarations)*100/float64(total))
}

// PrintWarnings prints non-issue warnings such as unreadable files.
func (r *VerboseReporter) PrintWarnings(result ValidateResult) {
	if len(result.Warnings) == 0 {
		return
	}
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "--------")
	for _, w := range result.Warnings {
		fmt.Fprintf(r.w, "• %s\n", w)
	}
}

func printProgressBar(w io.Writer, percentage float64) {
	const width = 20
	filled := int(percentage / 100 * width)
	filled = max(0, min(width, filled))
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	fmt.Fprintf(w, "[%s] %.1f%%\n", bar, percentage)
}
