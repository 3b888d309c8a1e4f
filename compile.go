package cascade

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	engine "github.com/yacobolo/cascade/internal/cascade"
)

// ImportConfig configures ImportFiles.
type ImportConfig struct {
	SourceDir   string   // Directory the include patterns are relative to
	Includes    []string // Glob patterns (default "**/*.css")
	Root        string   // Directory holding .gitignore (default ".")
	Breakpoints Breakpoints
	Naming      *NamerConfig // DefaultNamerConfig when nil
	Logger      *zap.Logger
}

// ImportStats summarizes an ImportFiles run.
type ImportStats struct {
	FilesScanned int
	Sources      int
	Declarations int
	RawRules     int
	Issues       []Issue
	Warnings     []string
}

// ImportFiles reads every matched stylesheet, in discovery order, into a new
// document. Later files override earlier ones for the same class and scope.
func ImportFiles(config ImportConfig) (*Document, *ImportStats, error) {
	includes := config.Includes
	if len(includes) == 0 {
		includes = []string{"**/*.css"}
	}
	root := config.Root
	if root == "" {
		root = "."
	}

	doc, err := engine.New(engine.Options{
		Breakpoints: config.Breakpoints,
		Naming:      config.Naming,
		Logger:      config.Logger,
	})
	if err != nil {
		return nil, nil, err
	}

	patterns := make([]string, len(includes))
	for i, p := range includes {
		patterns[i] = filepath.Join(config.SourceDir, p)
	}
	files, _, err := expandGlobPatterns(patterns, newFileFilter(root))
	if err != nil {
		return nil, nil, fmt.Errorf("scan failed: %w", err)
	}

	stats := &ImportStats{}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			stats.Warnings = append(stats.Warnings, fmt.Sprintf("Failed to read %s: %v", file, err))
			continue
		}
		res := engine.ImportFile(file, string(data), doc.Breakpoints())
		applied, err := doc.ApplyImport(res)
		if err != nil {
			return nil, nil, fmt.Errorf("import %s: %w", file, err)
		}
		stats.FilesScanned++
		stats.Sources += applied.SourcesCreated
		stats.Declarations += applied.Declarations
		stats.RawRules += applied.RawRules
		stats.Issues = append(stats.Issues, res.Issues...)
	}
	engine.SortIssues(stats.Issues)
	return doc, stats, nil
}

// WriteStylesheetFile compiles doc to path, creating parent directories.
func WriteStylesheetFile(path string, doc *Document) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	var b strings.Builder
	if err := doc.WriteStylesheet(&b); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write stylesheet: %w", err)
	}
	return nil
}
