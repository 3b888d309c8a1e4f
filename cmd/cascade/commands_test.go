package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags clears flag values left behind by an earlier Execute. Slice
// flags append on Set, so commands under test avoid them.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if strings.HasSuffix(f.Value.Type(), "Slice") {
			return
		}
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes the root command. Without --config it points at a missing
// file so only the given flags and the environment apply.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetKoanf()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	if !slices.Contains(args, "--config") {
		args = append(args, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	}
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeCSS(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestImportCompileResolve(t *testing.T) {
	dir := writeCSS(t, map[string]string{
		"card.css": ".card { color: red; padding: 4px }\n.card:hover { color: blue }\nh1 { margin: 0 }\n",
	})
	snap := filepath.Join(t.TempDir(), "site.json")

	out, err := runCLI(t, "import", "--source", dir, "--snapshot", snap)
	require.NoError(t, err)
	assert.Contains(t, out, "Files scanned: 1")
	assert.Contains(t, out, "Classes created: 1")
	assert.Contains(t, out, "Declarations: 3")
	assert.Contains(t, out, "Raw rules: 1")

	out, err = runCLI(t, "compile", "--snapshot", snap, "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, out, ".card {\n  color: red;\n  padding: 4px;\n}")
	assert.Contains(t, out, ".card:hover {\n  color: blue;\n}")
	assert.Contains(t, out, "h1 { margin: 0 }")

	out, err = runCLI(t, "compile", "--snapshot", snap, "-o", "-", "--no-raw")
	require.NoError(t, err)
	assert.NotContains(t, out, "h1")

	out, err = runCLI(t, "resolve", "card", "--snapshot", snap, "--state", "hover", "-f", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"color": "blue", "padding": "4px"}`, out)

	out, err = runCLI(t, "resolve", ".card", "--snapshot", snap)
	require.NoError(t, err)
	assert.Contains(t, out, "Visual")
	assert.Contains(t, out, "(2 properties)")

	out, err = runCLI(t, "sources", "--snapshot", snap)
	require.NoError(t, err)
	assert.Contains(t, out, "card")
	assert.Contains(t, out, "(1 classes, 1 raw rules)")

	_, err = runCLI(t, "resolve", "nope", "--snapshot", snap)
	require.Error(t, err)
}

func TestCompileToDirectory(t *testing.T) {
	dir := writeCSS(t, map[string]string{"a.css": ".a { color: red }\n"})
	snap := filepath.Join(t.TempDir(), "Landing Page.yaml")
	_, err := runCLI(t, "import", "--source", dir, "--snapshot", snap)
	require.NoError(t, err)

	outDir := t.TempDir()
	out, err := runCLI(t, "compile", "--snapshot", snap, "-o", outDir)
	require.NoError(t, err)
	target := filepath.Join(outDir, "landing-page.css")
	assert.Contains(t, out, target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, ".a {\n  color: red;\n}\n", string(data))
}

func TestCompileWithoutDocument(t *testing.T) {
	_, err := runCLI(t, "compile")
	require.ErrorIs(t, err, errNoDocument)
}

func TestNameAndStoreCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "store", "cascade.db")

	out, err := runCLI(t, "name", "ButtonPrimitive", "-n", "3")
	require.NoError(t, err)
	assert.Equal(t, "button-1\nbutton-2\nbutton-3\n", out)

	out, err = runCLI(t, "name", "ButtonPrimitive", "--separator", "_")
	require.NoError(t, err)
	assert.Equal(t, "button_1\n", out)

	// Counters survive a round trip through the store.
	for i := 1; i <= 2; i++ {
		out, err = runCLI(t, "name", "ButtonPrimitive", "--doc", "Marketing Site", "--db", db)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("button-%d\n", i), out)
	}

	out, err = runCLI(t, "store", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "marketing-site")
	assert.Contains(t, out, "Marketing Site")

	out, err = runCLI(t, "store", "history", "marketing-site", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Revision")

	out, err = runCLI(t, "sources", "--doc", "Marketing Site", "--revision", "1", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "button-1")
	assert.NotContains(t, out, "button-2")

	out, err = runCLI(t, "store", "prune", "marketing-site", "--keep", "1", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "Removed 1 revisions\n", out)

	out, err = runCLI(t, "store", "delete", "marketing-site", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "Deleted marketing-site\n", out)

	out, err = runCLI(t, "store", "list", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "(no documents)\n", out)
}

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name    string
		css     string
		strict  bool
		wantErr bool
		want    string
	}{
		{name: "clean", css: ".a { color: red }\n", want: "0 issues."},
		{name: "syntax error", css: ".a { color: red\n", wantErr: true, want: "csssyntax"},
		{name: "warning passes", css: ".a { color: }\n", want: "cssdecl"},
		{name: "warning fails strict", css: ".a { color: }\n", strict: true, wantErr: true, want: "cssdecl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeCSS(t, map[string]string{"site.css": tt.css})
			config := filepath.Join(dir, "cascade.yaml")
			require.NoError(t, os.WriteFile(config, []byte(fmt.Sprintf("validate:\n  paths:\n    - %q\n", filepath.Join(dir, "*.css"))), 0o644))

			args := []string{"validate", "--print-lines=false", "--config", config}
			if tt.strict {
				args = append(args, "--strict")
			}
			out, err := runCLI(t, args...)
			if tt.wantErr {
				require.ErrorIs(t, err, errFailed)
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, out, tt.want)
		})
	}
}
