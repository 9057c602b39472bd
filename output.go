package classlint

import (
	"fmt"
	"io"
)

// OutputFormat represents the linter output format.
type OutputFormat string

const (
	// OutputIssues shows only violations in golangci-lint format (CI-friendly).
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows counts only (quick health check).
	OutputSummary OutputFormat = "summary"
	// OutputFull shows issues plus counts (interactive development).
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data in JSON format (tooling integration).
	OutputJSON OutputFormat = "json"
)

// DetermineOutputFormat selects the output format from the flag value.
// Unknown values fall back to the default, following golangci-lint's UX:
// issues only, clean and consistent everywhere.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	if quiet {
		return OutputIssues // suppressed by the caller, exit code only
	}
	switch formatFlag {
	case "issues":
		return OutputIssues
	case "summary":
		return OutputSummary
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	}
	return OutputIssues
}

// WriteOutput writes the lint result in the specified format.
func WriteOutput(w io.Writer, result *LintResult, format OutputFormat, config LintConfig) error {
	switch format {
	case OutputIssues:
		reporter := NewReporter(w, config)
		reporter.PrintViolations(result.Violations)
		reporter.PrintFailures(result.Failures)

	case OutputSummary:
		reporter := NewReporter(w, config)
		reporter.PrintFailures(result.Failures)
		reporter.PrintSummary(result)

	case OutputFull:
		reporter := NewReporter(w, config)
		reporter.PrintViolations(result.Violations)
		reporter.PrintFailures(result.Failures)
		reporter.PrintSummary(result)
		fmt.Fprintf(w, "\nfiles scanned: %d (skipped %d)\n",
			result.Stats.FilesScanned, result.Stats.FilesSkipped)

	case OutputJSON:
		return WriteJSON(w, result)
	}
	return nil
}
