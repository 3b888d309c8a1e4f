package cascade

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ValidateResult is the outcome of validating one or more stylesheets.
type ValidateResult struct {
	Issues         []Issue
	FilesScanned   int
	Classes        int
	Declarations   int
	RawRules       int
	TruncatedCount int
	Warnings       []string
}

// ErrorCount returns the number of error-severity issues.
func (r ValidateResult) ErrorCount() int {
	n := 0
	for _, is := range r.Issues {
		if is.Severity == SeverityError {
			n++
		}
	}
	return n
}

// ReportConfig controls issue rendering.
type ReportConfig struct {
	UseColors        bool
	PrintIssuedLines bool
	PrintLinterName  bool
}

// Reporter prints issues in golangci-lint format.
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer, config ReportConfig) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       ShouldUseColors(config.UseColors),
		printLines:      config.PrintIssuedLines,
		printLinterName: config.PrintLinterName,
	}
}

// ShouldUseColors honours an explicit request, FORCE_COLOR, GitHub Actions,
// and finally whether stdout is a terminal.
func ShouldUseColors(explicit bool) bool {
	if explicit {
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" || os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	if fi, err := os.Stdout.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		return true
	}
	return false
}

// UseColors reports whether colors are enabled.
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintIssues prints every issue sorted by position.
func (r *Reporter) PrintIssues(issues []Issue) {
	SortIssues(issues)
	for _, is := range issues {
		r.printIssue(is)
	}
}

// printIssue writes "file:line:col: message (linter)".
func (r *Reporter) printIssue(is Issue) {
	location := fmt.Sprintf("%s:%d:%d:", is.Pos.Filename, is.Pos.Line, is.Pos.Column)

	linterSuffix := ""
	if r.printLinterName {
		linterSuffix = fmt.Sprintf(" (%s)", is.FromLinter)
	}

	text := is.Text
	switch is.Severity {
	case SeverityError:
		text = RenderStyle(StyleRed, "error: ", r.useColors) + text
	case SeverityWarning:
		text = RenderStyle(StyleYellow, "warning: ", r.useColors) + text
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		text,
		RenderStyle(StyleGray, linterSuffix, r.useColors))

	if r.printLines && len(is.SourceLines) > 0 {
		for _, line := range is.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}
		caret := r.buildCaretIndicator(is.SourceLines[0], is.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator aligns "^" under column, copying tabs from the source
// line so the caret lines up in any tab width.
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}
	prefixLen := min(column-1, len(sourceLine))

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}
	return padding.String() + "^"
}

// PrintSummary prints issue counts by severity and linter.
func (r *Reporter) PrintSummary(result ValidateResult) {
	total := len(result.Issues)
	var errors, warnings int
	linterCounts := make(map[string]int)
	for _, is := range result.Issues {
		switch is.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
		linterCounts[is.FromLinter]++
	}

	fmt.Fprintln(r.w, "")
	if total == 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, "0 issues.", r.useColors))
		return
	}

	header := pluralizeCount(total, "issue", "issues")
	details := make([]string, 0, 2)
	if errors > 0 {
		details = append(details, pluralizeCount(errors, "error", "errors"))
	}
	if warnings > 0 {
		details = append(details, pluralizeCount(warnings, "warning", "warnings"))
	}
	if len(details) > 0 {
		header += " (" + strings.Join(details, ", ")
		if result.TruncatedCount > 0 {
			header += "; " + pluralizeCount(result.TruncatedCount, "issue", "issues") + " truncated"
		}
		header += ")"
	}
	fmt.Fprintf(r.w, "%s:\n", header)

	linters := make([]string, 0, len(linterCounts))
	for l := range linterCounts {
		linters = append(linters, l)
	}
	sort.Strings(linters)
	for _, l := range linters {
		fmt.Fprintf(r.w, "* %s: %d\n", l, linterCounts[l])
	}
}

func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
