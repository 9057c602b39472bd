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
	"github.com/yacobolo/classlint"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".classlint.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// CLI flags (highest precedence — only flags that were explicitly set)
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment
// variables. Separated from loadConfig to allow testing without a cobra
// command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CLASSLINT_* prefix)
	if err := k.Load(env.Provider("CLASSLINT_", ".", func(s string) string {
		// CLASSLINT_LINT_STRICT -> lint.strict
		// CLASSLINT_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CLASSLINT_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildConvention constructs the convention from koanf state. Custom
// prefixes fully replace the defaults when configured.
func buildConvention() *classlint.Convention {
	conv := classlint.DefaultConvention()

	if prefixes := k.StringMap("convention.container-prefixes"); len(prefixes) > 0 {
		conv.ContainerPrefixes = make(map[string]classlint.ContainerKind, len(prefixes))
		for prefix, kind := range prefixes {
			conv.ContainerPrefixes[prefix] = classlint.ContainerKind(kind)
		}
	}
	if mods := k.Strings("convention.modifier-prefixes"); len(mods) > 0 {
		conv.ModifierPrefixes = mods
	}
	if p := k.String("convention.private-prefix"); p != "" {
		conv.PrivatePrefix = p
	}
	if disabled := k.Strings("convention.disabled-rules"); len(disabled) > 0 {
		conv.DisabledRules = disabled
	}

	return conv
}

// buildLintConfig constructs the library's LintConfig from koanf state.
func buildLintConfig() classlint.LintConfig {
	var paths []string
	if p := k.Strings("paths"); len(p) > 0 {
		paths = p
	} else if p := k.Strings("lint.paths"); len(p) > 0 {
		paths = p
	} else {
		paths = []string{
			"**/*.css",
			"**/*.scss",
			"**/*.html",
			"**/*.templ",
		}
	}

	return classlint.LintConfig{
		Paths:            paths,
		Convention:       buildConvention(),
		Workers:          getIntWithFallback("workers", "lint.workers", 0),
		Verbose:          getBoolWithFallback("verbose", "verbose", false),
		Strict:           getBoolWithFallback("strict", "lint.strict", false),
		MaxIssues:        getIntWithFallback("max-issues", "lint.max-issues", 0),
		PrintIssuedLines: getBoolWithFallback("print-lines", "lint.print-lines", true),
		PrintLinterName:  getBoolWithFallback("print-linter-name", "lint.print-linter-name", true),
		UseColors:        getBoolWithFallback("color", "color", false),
	}
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
