package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/yacobolo/cascade"
)

const defaultConfigPath = ".cascade.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// CLI flags (highest precedence, only flags that were explicitly set)
	fs := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(fs, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// CASCADE_VALIDATE_OUTPUT-FORMAT -> validate.output-format
	// CASCADE_STORE_PATH -> store.path
	if err := k.Load(env.Provider("CASCADE_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CASCADE_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildBreakpoints reads the breakpoints list, falling back to the
// desktop-first defaults.
func buildBreakpoints() (cascade.Breakpoints, error) {
	if !k.Exists("breakpoints") {
		return cascade.DefaultBreakpoints(), nil
	}
	var bps cascade.Breakpoints
	if err := k.Unmarshal("breakpoints", &bps); err != nil {
		return nil, fmt.Errorf("reading breakpoints: %w", err)
	}
	if len(bps) == 0 {
		return cascade.DefaultBreakpoints(), nil
	}
	if err := bps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid breakpoints: %w", err)
	}
	return bps, nil
}

// buildNamerConfig overlays the naming section on the defaults.
func buildNamerConfig() (cascade.NamerConfig, error) {
	cfg := cascade.DefaultNamerConfig()
	if k.Exists("naming") {
		if err := k.Unmarshal("naming", &cfg); err != nil {
			return cfg, fmt.Errorf("reading naming config: %w", err)
		}
	}
	if v := k.String("separator"); v != "" {
		cfg.Separator = v
	}
	return cfg, nil
}

// buildOptions assembles document options from configuration.
func buildOptions(log *zap.Logger) (cascade.Options, error) {
	bps, err := buildBreakpoints()
	if err != nil {
		return cascade.Options{}, err
	}
	naming, err := buildNamerConfig()
	if err != nil {
		return cascade.Options{}, err
	}
	return cascade.Options{
		Breakpoints: bps,
		Naming:      &naming,
		Logger:      log,
	}, nil
}

// buildValidateConfig constructs the library's ValidateConfig from koanf state.
func buildValidateConfig(log *zap.Logger) (cascade.ValidateConfig, error) {
	bps, err := buildBreakpoints()
	if err != nil {
		return cascade.ValidateConfig{}, err
	}

	var paths []string
	if p := k.Strings("paths"); len(p) > 0 {
		paths = p
	} else if p := k.Strings("validate.paths"); len(p) > 0 {
		paths = p
	} else {
		paths = []string{"**/*.css"}
	}

	return cascade.ValidateConfig{
		Paths:              paths,
		Breakpoints:        bps,
		ReportRaw:          getBoolWithFallback("report-raw", "validate.report-raw", false),
		MaxIssuesPerLinter: getIntWithFallback("max-issues-per-linter", "validate.max-issues-per-linter", 0),
		MaxSameIssues:      getIntWithFallback("max-same-issues", "validate.max-same-issues", 0),
		PrintIssuedLines:   getBoolWithFallback("print-lines", "validate.print-lines", true),
		PrintLinterName:    getBoolWithFallback("print-linter-name", "validate.print-linter-name", true),
		UseColors:          getBoolWithFallback("color", "color", false),
		Logger:             log,
	}, nil
}

// buildImportConfig constructs the library's ImportConfig from koanf state.
func buildImportConfig(log *zap.Logger) (cascade.ImportConfig, error) {
	opts, err := buildOptions(log)
	if err != nil {
		return cascade.ImportConfig{}, err
	}
	config := cascade.ImportConfig{
		SourceDir:   getStringWithFallback("source", "import.source", "."),
		Breakpoints: opts.Breakpoints,
		Naming:      opts.Naming,
		Logger:      log,
	}
	if includes := k.Strings("include"); len(includes) > 0 {
		config.Includes = includes
	} else if includes := k.Strings("import.include"); len(includes) > 0 {
		config.Includes = includes
	} else {
		config.Includes = []string{"**/*.css"}
	}
	return config, nil
}

// storePath is where the SQLite document store lives.
func storePath() string {
	return getStringWithFallback("db", "store.path", ".cascade/cascade.db")
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
