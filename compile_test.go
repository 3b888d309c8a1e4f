package cascade

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"base.css":       ".btn { color: red; padding: 4px }\n",
		"theme/over.css": ".btn { color: blue }\n@media (max-width: 991px) { .card { margin: 0 } }\nh1 { margin: 0 }\n",
	})

	doc, stats, err := ImportFiles(ImportConfig{SourceDir: dir})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.FilesScanned)
	assert.Equal(t, 2, stats.Sources)
	assert.Equal(t, 4, stats.Declarations)
	assert.Equal(t, 1, stats.RawRules)
	assert.Empty(t, stats.Issues)

	got, err := doc.ComputedStyles([]string{"btn"}, "base", StateDefault)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"color": "blue", "padding": "4px"}, got)

	out := filepath.Join(t.TempDir(), "dist", "site.css")
	require.NoError(t, WriteStylesheetFile(out, doc))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, doc.Compile(), string(data))
	assert.Contains(t, string(data), "h1 { margin: 0 }")
}

func TestSnapshotFiles(t *testing.T) {
	doc, err := New(Options{})
	require.NoError(t, err)
	src, err := doc.CreateClass("HeadingPrimitive")
	require.NoError(t, err)
	require.NoError(t, doc.SetStyle(src.ID, "mobile", StateDefault, "fontSize", "20px"))

	for _, name := range []string{"doc.json", "doc.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, SaveSnapshotFile(path, doc))

			loaded, err := LoadSnapshotFile(path, Options{})
			require.NoError(t, err)
			assert.Equal(t, doc.Declarations(), loaded.Declarations())
			assert.Equal(t, doc.Compile(), loaded.Compile())
		})
	}

	_, err = LoadSnapshotFile(filepath.Join(t.TempDir(), "missing.json"), Options{})
	require.Error(t, err)
}
