package cascade

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	engine "github.com/yacobolo/cascade/internal/cascade"
)

// ValidateConfig holds validation configuration
type ValidateConfig struct {
	Paths       []string    // Glob patterns of stylesheets (e.g., "web/**/*.css")
	Root        string      // Directory holding .gitignore (default ".")
	Breakpoints Breakpoints // Breakpoints media queries are matched against
	ReportRaw   bool        // Report rules kept as raw overrides at info level

	// golangci-style output configuration
	MaxIssuesPerLinter int  // 0 = unlimited (default)
	MaxSameIssues      int  // 0 = unlimited (default)
	PrintIssuedLines   bool // Show source lines with issues (default: true)
	PrintLinterName    bool // Show (csssyntax) suffix (default: true)
	UseColors          bool // Force color output (default: auto-detect)

	Logger *zap.Logger
}

// Validate runs the non-fatal validation pass over every matched stylesheet.
// Unreadable files become warnings; an error is returned only when the
// patterns are invalid or no matched file could be read.
func Validate(config ValidateConfig) (*ValidateResult, error) {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("validate")
	bps := config.Breakpoints
	if len(bps) == 0 {
		bps = engine.DefaultBreakpoints()
	}
	root := config.Root
	if root == "" {
		root = "."
	}

	files, stats, err := expandGlobPatterns(config.Paths, newFileFilter(root))
	if err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}
	log.Debug("Files discovered",
		zap.Int("discovered", stats.FilesDiscovered),
		zap.Int("skipped", stats.FilesSkipped))

	result := &ValidateResult{}
	classes := make(map[string]bool)
	var readErr error
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			readErr = multierr.Append(readErr, fmt.Errorf("read %s: %w", file, err))
			continue
		}
		res := engine.ImportFile(file, string(data), bps)
		result.Issues = append(result.Issues, engine.ValidationIssues(res, string(data), config.ReportRaw)...)
		result.FilesScanned++
		result.Declarations += len(res.Declarations)
		result.RawRules += len(res.RawRules)
		for _, c := range res.Classes() {
			classes[c] = true
		}
		log.Debug("File validated",
			zap.String("file", file),
			zap.Int("declarations", len(res.Declarations)),
			zap.Int("issues", len(res.Issues)))
	}
	result.Classes = len(classes)
	for _, e := range multierr.Errors(readErr) {
		result.Warnings = append(result.Warnings, e.Error())
	}
	if readErr != nil && result.FilesScanned == 0 {
		return nil, readErr
	}

	engine.SortIssues(result.Issues)
	if config.MaxIssuesPerLinter > 0 || config.MaxSameIssues > 0 {
		result.Issues, result.TruncatedCount = limitIssues(result.Issues, config)
	}
	return result, nil
}

// limitIssues applies max-issues-per-linter and max-same-issues constraints
func limitIssues(issues []Issue, config ValidateConfig) ([]Issue, int) {
	originalCount := len(issues)

	if config.MaxIssuesPerLinter > 0 {
		perLinter := make(map[string]int)
		var kept []Issue
		for _, is := range issues {
			if perLinter[is.FromLinter] < config.MaxIssuesPerLinter {
				kept = append(kept, is)
				perLinter[is.FromLinter]++
			}
		}
		issues = kept
	}

	if config.MaxSameIssues > 0 {
		issues = deduplicateSameIssues(issues, config.MaxSameIssues)
	}

	return issues, originalCount - len(issues)
}

// deduplicateSameIssues limits how many times the same message appears
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		if messageCounts[issue.Text] < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}
