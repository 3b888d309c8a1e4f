package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/cascade"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".cascade.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	path := writeConfig(t, `
verbose: true

log:
  level: normal

validate:
  strict: true
  report-raw: true
  paths:
    - "site/**/*.css"

store:
  path: data/site.db
`)
	require.NoError(t, loadConfigFromPath(path))

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, "normal", k.String("log.level"))
	assert.True(t, k.Bool("validate.strict"))
	assert.True(t, k.Bool("validate.report-raw"))
	assert.Equal(t, []string{"site/**/*.css"}, k.Strings("validate.paths"))
	assert.Equal(t, "data/site.db", storePath())
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent config, should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.cascade.yaml"))

	bps, err := buildBreakpoints()
	require.NoError(t, err)
	assert.Equal(t, cascade.DefaultBreakpoints(), bps)

	naming, err := buildNamerConfig()
	require.NoError(t, err)
	assert.Equal(t, cascade.DefaultNamerConfig(), naming)

	assert.Equal(t, ".cascade/cascade.db", storePath())
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	path := writeConfig(t, `
store:
  path: from-file.db
validate:
  strict: false
`)

	// Set env vars that should override config file
	t.Setenv("CASCADE_STORE_PATH", "from-env.db")
	t.Setenv("CASCADE_VALIDATE_STRICT", "true")

	require.NoError(t, loadConfigFromPath(path))

	assert.Equal(t, "from-env.db", storePath())
	assert.True(t, k.Bool("validate.strict"))
}

func TestBuildBreakpoints(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		want    cascade.Breakpoints
		wantErr bool
	}{
		{
			name: "custom set",
			config: `
breakpoints:
  - id: base
    label: Desktop
  - id: phone
    label: Phone
    max-width: 600
`,
			want: cascade.Breakpoints{
				{ID: "base", Label: "Desktop"},
				{ID: "phone", Label: "Phone", MaxWidth: 600},
			},
		},
		{
			name: "mobile first",
			config: `
breakpoints:
  - id: base
  - id: wide
    min-width: 1200
`,
			want: cascade.Breakpoints{
				{ID: "base"},
				{ID: "wide", MinWidth: 1200},
			},
		},
		{
			name: "duplicate ids",
			config: `
breakpoints:
  - id: base
  - id: base
    max-width: 600
`,
			wantErr: true,
		},
		{
			name: "both widths",
			config: `
breakpoints:
  - id: base
  - id: odd
    max-width: 600
    min-width: 300
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetKoanf()
			require.NoError(t, loadConfigFromPath(writeConfig(t, tt.config)))

			got, err := buildBreakpoints()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildNamerConfig_OverlaysDefaults(t *testing.T) {
	resetKoanf()

	require.NoError(t, loadConfigFromPath(writeConfig(t, `
naming:
  separator: "_"
  padding: 2
`)))

	cfg, err := buildNamerConfig()
	require.NoError(t, err)
	assert.Equal(t, "_", cfg.Separator)
	assert.Equal(t, 2, cfg.Padding)
	assert.Equal(t, cascade.DefaultNamerConfig().StartIndex, cfg.StartIndex)
}

func TestBuildValidateConfig_Defaults(t *testing.T) {
	resetKoanf()

	config, err := buildValidateConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"**/*.css"}, config.Paths)
	assert.False(t, config.ReportRaw)
	assert.Equal(t, 0, config.MaxIssuesPerLinter)
	assert.Equal(t, 0, config.MaxSameIssues)
	assert.True(t, config.PrintIssuedLines)
	assert.True(t, config.PrintLinterName)
	assert.Equal(t, cascade.DefaultBreakpoints(), config.Breakpoints)
}

func TestBuildValidateConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	require.NoError(t, loadConfigFromPath(writeConfig(t, `
validate:
  report-raw: true
  paths:
    - "src/**/*.css"
  max-issues-per-linter: 10
  print-lines: false
`)))

	config, err := buildValidateConfig(nil)
	require.NoError(t, err)
	assert.True(t, config.ReportRaw)
	assert.Equal(t, []string{"src/**/*.css"}, config.Paths)
	assert.Equal(t, 10, config.MaxIssuesPerLinter)
	assert.False(t, config.PrintIssuedLines)
}

func TestBuildImportConfig(t *testing.T) {
	resetKoanf()

	config, err := buildImportConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, ".", config.SourceDir)
	assert.Equal(t, []string{"**/*.css"}, config.Includes)

	resetKoanf()
	require.NoError(t, loadConfigFromPath(writeConfig(t, `
import:
  source: web/styles
  include:
    - "components/*.css"
`)))
	config, err = buildImportConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "web/styles", config.SourceDir)
	assert.Equal(t, []string{"components/*.css"}, config.Includes)
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	// The generated file must load cleanly
	data, err := os.ReadFile(".cascade.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "breakpoints:")
	assert.Contains(t, string(data), "naming:")
	assert.Contains(t, string(data), "validate:")

	resetKoanf()
	require.NoError(t, loadConfigFromPath(".cascade.yaml"))
	bps, err := buildBreakpoints()
	require.NoError(t, err)
	assert.Equal(t, cascade.DefaultBreakpoints(), bps)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	// Create existing file
	require.NoError(t, os.WriteFile(".cascade.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	require.NoError(t, os.WriteFile(".cascade.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".cascade.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "store:")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	t.Cleanup(func() { cmd.SetOut(nil) })
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "cascade dev\n", out.String())
}

func TestGetStringWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.False(t, getBoolWithFallback("flag-key", "config.key", false))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))
}

func TestGetIntWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, 42, getIntWithFallback("flag-key", "config.key", 42))
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level   string
		wantLog bool
		wantErr bool
	}{
		{level: "", wantLog: false},
		{level: "none", wantLog: false},
		{level: "normal", wantLog: true},
		{level: "debug", wantLog: true},
		{level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := newLogger(tt.level, &buf, false)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			log.Info("hello")
			_ = log.Sync()
			if tt.wantLog {
				assert.Contains(t, buf.String(), "INFO")
				assert.Contains(t, buf.String(), "hello")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}
