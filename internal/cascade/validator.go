package cascade

import (
	"fmt"
	"sort"
	"strings"
)

// ValidateCSS runs the non-fatal validation pass over one stylesheet: brace
// imbalance and unterminated blocks are errors, malformed or empty
// declarations are warnings, and rules that will be kept as raw overrides are
// reported at info level when reportRaw is set.
func ValidateCSS(filename, data string, breakpoints Breakpoints, reportRaw bool) []Issue {
	return ValidationIssues(ImportFile(filename, data, breakpoints), data, reportRaw)
}

// ValidationIssues derives the findings of an import already run over data.
func ValidationIssues(res *ImportResult, data string, reportRaw bool) []Issue {
	issues := append([]Issue(nil), res.Issues...)
	if reportRaw {
		lines := strings.Split(data, "\n")
		for _, r := range res.RawRules {
			is := Issue{
				FromLinter: LinterRaw,
				Text:       fmt.Sprintf(IssueRawRule, r.Reason),
				Severity:   SeverityInfo,
				Pos:        r.Pos,
			}
			if r.Pos.Line >= 1 && r.Pos.Line <= len(lines) {
				is.SourceLines = []string{strings.TrimRight(lines[r.Pos.Line-1], "\r")}
			}
			issues = append(issues, is)
		}
	}
	SortIssues(issues)
	return issues
}

// SortIssues orders issues by file, line and column.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i].Pos, issues[j].Pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}
