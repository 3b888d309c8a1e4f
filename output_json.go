package cascade

import (
	"encoding/json"
	"io"
	"time"

	engine "github.com/yacobolo/cascade/internal/cascade"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Stats     JSONStats   `json:"stats"`
	Issues    []JSONIssue `json:"issues"`
	Warnings  []string    `json:"warnings,omitempty"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	FilesScanned int `json:"files_scanned"`
	Truncated    int `json:"truncated,omitempty"`
}

// JSONStats describes what the import pass recovered
type JSONStats struct {
	Classes           int     `json:"classes"`
	Declarations      int     `json:"declarations"`
	RawRules          int     `json:"raw_rules"`
	RoundTripCoverage float64 `json:"round_trip_coverage"`
}

// JSONIssue represents a single finding
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"` // Optional source line
}

// WriteJSON writes the validation result as JSON
func WriteJSON(w io.Writer, result *ValidateResult) error {
	output := buildJSONOutput(result, time.Now())
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func buildJSONOutput(result *ValidateResult, now time.Time) JSONOutput {
	var errors, warnings int
	for _, issue := range result.Issues {
		switch issue.Severity {
		case engine.SeverityError:
			errors++
		case engine.SeverityWarning:
			warnings++
		}
	}

	jsonIssues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		jsonIssues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		}
	}

	coverage := 100.0
	if total := result.Declarations + result.RawRules; total > 0 {
		coverage = float64(result.Declarations) * 100 / float64(total)
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: now.Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			Errors:       errors,
			Warnings:     warnings,
			FilesScanned: result.FilesScanned,
			Truncated:    result.TruncatedCount,
		},
		Stats: JSONStats{
			Classes:           result.Classes,
			Declarations:      result.Declarations,
			RawRules:          result.RawRules,
			RoundTripCoverage: coverage,
		},
		Issues:   jsonIssues,
		Warnings: result.Warnings,
	}
}
