package cascade

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *ValidateResult {
	return &ValidateResult{
		Issues: []Issue{
			{
				FromLinter:  "csssyntax",
				Text:        "unexpected '}' without matching '{'",
				Severity:    "error",
				SourceLines: []string{"}"},
				Pos:         IssuePos{Filename: "a.css", Line: 3, Column: 1},
			},
			{
				FromLinter: "cssraw",
				Text:       "unsupported selector; kept as raw override",
				Pos:        IssuePos{Filename: "a.css", Line: 1, Column: 1},
			},
		},
		FilesScanned: 1,
		Classes:      2,
		Declarations: 3,
		RawRules:     1,
	}
}

func TestDetermineOutputFormat(t *testing.T) {
	tests := []struct {
		flag  string
		quiet bool
		want  OutputFormat
	}{
		{"", false, OutputIssues},
		{"summary", false, OutputSummary},
		{"full", false, OutputFull},
		{"json", false, OutputJSON},
		{"json", true, OutputIssues},
		{"markdown", false, OutputIssues},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineOutputFormat(tt.flag, tt.quiet))
		})
	}
}

func TestWriteOutputIssues(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	err := WriteOutput(&buf, sampleResult(), OutputIssues, ValidateConfig{PrintLinterName: true})
	require.NoError(t, err)

	want := "a.css:1:1: unsupported selector; kept as raw override (cssraw)\n" +
		"a.css:3:1: error: unexpected '}' without matching '{' (csssyntax)\n" +
		"\n2 issues (1 error):\n* cssraw: 1\n* csssyntax: 1\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteOutputSummary(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleResult(), OutputSummary, ValidateConfig{}))
	assert.Contains(t, buf.String(), "Declarations:    3\n")
	assert.NotContains(t, buf.String(), "a.css:3:1")

	require.Error(t, WriteOutput(&buf, sampleResult(), OutputFormat("xml"), ValidateConfig{}))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, JSONSummary{TotalIssues: 2, Errors: 1, FilesScanned: 1}, out.Summary)
	assert.Equal(t, 75.0, out.Stats.RoundTripCoverage)
	require.Len(t, out.Issues, 2)
	assert.Equal(t, "}", out.Issues[0].Source)
	assert.Equal(t, "csssyntax", out.Issues[0].Linter)
}

func TestBuildJSONOutputEmpty(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	out := buildJSONOutput(&ValidateResult{}, now)
	assert.Equal(t, "2026-03-01T12:00:00Z", out.Timestamp)
	assert.Equal(t, 100.0, out.Stats.RoundTripCoverage)
	assert.Empty(t, out.Issues)
}
