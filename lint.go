package classlint

import (
	"context"
	"log/slog"
)

// LintConfig holds one run's orchestration settings. The convention itself
// lives in Convention; this is the surrounding plumbing.
type LintConfig struct {
	Paths      []string    // Patterns to scan (e.g., "web/styles/**/*.scss")
	Convention *Convention // nil means DefaultConvention
	Workers    int         // Worker pool size (0 = GOMAXPROCS)
	Verbose    bool
	Strict     bool // Gate on any issue, warnings and failures included
	MarkupOnly bool // Restrict the run to markup files (HTML/templ)

	// Output configuration
	MaxIssues        int  // 0 = unlimited
	PrintIssuedLines bool // Show source lines with issues (default: true)
	PrintLinterName  bool // Show (classlint) suffix (default: true)
	UseColors        bool // Force color output (default: auto-detect)
}

// LintResult is a Result extended with scan-level bookkeeping for the
// output layer.
type LintResult struct {
	Result
	Stats        ScanStats
	FilesScanned int
	Truncated    int // Violations removed due to MaxIssues
}

// Failed reports whether the run should gate a build. Errors always fail;
// under strict, warnings and unanalyzable inputs fail too.
func (r *LintResult) Failed(strict bool) bool {
	if r.HasErrors() {
		return true
	}
	if strict {
		return r.Summary.WarningCount > 0 || r.Summary.FailureCount > 0
	}
	return false
}

// Lint discovers, parses and analyzes all files matched by the config's
// patterns. This is the whole pipeline behind the CLI; library users who
// already hold parsed inputs call Run directly.
func Lint(ctx context.Context, config LintConfig, logger *slog.Logger) (*LintResult, error) {
	conv := config.Convention
	if conv == nil {
		conv = DefaultConvention()
	}

	files, stats, err := DiscoverFiles(config.Paths, logger)
	if err != nil {
		return nil, err
	}

	if config.MarkupOnly {
		kept := files[:0]
		for _, f := range files {
			if IsMarkupPath(f) {
				kept = append(kept, f)
			}
		}
		files = kept
		stats.FilesScanned = len(files)
	}

	inputs, err := LoadInputs(files, conv, logger)
	if err != nil {
		return nil, err
	}

	result, err := Run(ctx, inputs, conv, RunOptions{Workers: config.Workers})
	if err != nil {
		return nil, err
	}

	lr := &LintResult{
		Result:       *result,
		Stats:        stats,
		FilesScanned: stats.FilesScanned,
	}
	if config.MaxIssues > 0 && len(lr.Violations) > config.MaxIssues {
		lr.Truncated = len(lr.Violations) - config.MaxIssues
		lr.Violations = lr.Violations[:config.MaxIssues]
	}
	return lr, nil
}
