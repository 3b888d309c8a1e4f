package cascade

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ScanStats tracks file discovery statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files kept after filtering
	FilesSkipped    int // Minified or gitignored files
}

// fileFilter decides which discovered stylesheets are worth reading.
type fileFilter struct {
	gitignore *ignore.GitIgnore
}

// newFileFilter loads root/.gitignore when it exists. A missing file is fine.
func newFileFilter(root string) *fileFilter {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return &fileFilter{}
	}
	return &fileFilter{gitignore: gi}
}

// isMinified reports build output such as app.min.css.
func isMinified(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".min.css")
}

// skip reports whether path should be left out. Gitignore rules only apply
// to relative paths; absolute paths (e.g. under /tmp) are outside the project.
func (f *fileFilter) skip(path string) bool {
	if isMinified(path) {
		return true
	}
	if !filepath.IsAbs(path) && f.gitignore != nil && f.gitignore.MatchesPath(path) {
		return true
	}
	return false
}

// expandGlobPatterns expands ** patterns to de-duplicated regular files.
func expandGlobPatterns(patterns []string, filter *fileFilter) ([]string, ScanStats, error) {
	var files []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++
			if filter.skip(match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	return files, stats, nil
}

// GetRelativePath returns a path relative to the working directory when possible.
func GetRelativePath(absPath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil {
		return absPath
	}

	return rel
}
