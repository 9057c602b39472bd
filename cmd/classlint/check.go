package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/classlint"
)

// defaultMarkupPatterns selects everything the markup front-end reads.
var defaultMarkupPatterns = []string{
	"**/*.html",
	"**/*.htm",
	"**/*.templ",
}

var checkCmd = &cobra.Command{
	Use:   "check [patterns...]",
	Short: "Check markup files (HTML/templ) against the naming convention",
	Long: `Check class attributes in HTML and templ files against the convention.
Markup has no selector ancestry, so only the same-element rules apply:
modifier and private classes must share their element with a container
class. Stylesheets matched by the patterns are ignored; use lint to
check both surfaces together.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.Bool("strict", false, "Exit 1 on any issue, warnings included (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Int("workers", 0, "Worker pool size (0 = number of CPUs)")
	f.Int("max-issues", 0, "Max issues to show (0=unlimited)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	config := buildCheckConfig(args)
	logger := newLogger(config.Verbose)

	exitCode, err := lintOnce(cmd.Context(), config, logger)
	if err != nil {
		return err
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}

// buildCheckConfig narrows the lint configuration to the markup surface.
// Positional patterns override configured paths; without them the default
// markup globs apply rather than the configured stylesheet paths.
func buildCheckConfig(args []string) classlint.LintConfig {
	config := buildLintConfig()
	config.MarkupOnly = true
	if len(args) > 0 {
		config.Paths = args
	} else {
		config.Paths = defaultMarkupPatterns
	}
	return config
}
