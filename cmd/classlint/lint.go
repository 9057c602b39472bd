package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yacobolo/classlint"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check stylesheets and markup against the naming convention",
	Long: `Check that class names in CSS/SCSS and HTML/templ files follow the
container/modifier/private convention. Reports each violation with its
location and the offending classes.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runLint,
}

func init() {
	f := lintCmd.Flags()
	f.StringSlice("paths", []string{
		"**/*.css",
		"**/*.scss",
		"**/*.html",
		"**/*.templ",
	}, "File patterns to scan")
	f.Bool("strict", false, "Exit 1 on any issue, warnings included (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Int("workers", 0, "Worker pool size (0 = number of CPUs)")
	f.Int("max-issues", 0, "Max issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (classlint/rule) suffix on issues")
	f.Bool("watch", false, "Re-run on file changes")
}

func runLint(cmd *cobra.Command, _ []string) error {
	config := buildLintConfig()
	logger := newLogger(config.Verbose)

	watch, _ := cmd.Flags().GetBool("watch")
	if watch {
		return watchLoop(cmd.Context(), config, logger)
	}

	exitCode, err := lintOnce(cmd.Context(), config, logger)
	if err != nil {
		return err
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}

// lintOnce runs the full pipeline and returns the process exit code under
// the soft-gate policy: errors always gate, warnings only in strict mode.
func lintOnce(ctx context.Context, config classlint.LintConfig, logger *slog.Logger) (int, error) {
	result, err := classlint.Lint(ctx, config, logger)
	if err != nil {
		return 0, fmt.Errorf("lint failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	outputFormat := getStringWithFallback("output-format", "lint.output-format", "")
	format := classlint.DetermineOutputFormat(outputFormat, quiet)

	if !quiet {
		if err := classlint.WriteOutput(os.Stdout, result, format, config); err != nil {
			return 0, err
		}
	}

	if result.Failed(config.Strict) {
		return 1, nil
	}
	return 0, nil
}

// watchLoop re-runs lint whenever a watched directory changes, debounced
// so editor save bursts trigger a single run.
func watchLoop(ctx context.Context, config classlint.LintConfig, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	files, _, err := classlint.DiscoverFiles(config.Paths, logger)
	if err != nil {
		return err
	}
	dirs := make(map[string]bool)
	for _, f := range files {
		dirs[filepath.Dir(f)] = true
	}
	if len(dirs) == 0 {
		dirs["."] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			logger.Warn("cannot watch directory", "dir", dir, "error", err)
		}
	}

	if _, err := lintOnce(ctx, config, logger); err != nil {
		return err
	}

	var debounce *time.Timer
	runs := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(250*time.Millisecond, func() {
				select {
				case runs <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-runs:
			fmt.Println()
			if _, err := lintOnce(ctx, config, logger); err != nil {
				return err
			}
		}
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
