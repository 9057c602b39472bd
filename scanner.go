package classlint

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ScanStats tracks file discovery statistics.
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files kept after filtering
	FilesSkipped    int // Files dropped by .gitignore
}

var (
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// loadGitIgnore loads the .gitignore file once (thread-safe).
// Gracefully degrades if .gitignore doesn't exist.
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// DiscoverFiles resolves doublestar glob patterns to a deduplicated,
// sorted file list, dropping anything matched by .gitignore.
func DiscoverFiles(patterns []string, logger *slog.Logger) ([]string, ScanStats, error) {
	var stats ScanStats
	gi := loadGitIgnore()
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}
		stats.FilesDiscovered += len(matches)

		for _, match := range matches {
			if seen[match] {
				stats.FilesDiscovered--
				continue
			}
			seen[match] = true

			if gi != nil && gi.MatchesPath(match) {
				stats.FilesSkipped++
				if logger != nil {
					logger.Debug("skipping ignored file", "path", match)
				}
				continue
			}
			files = append(files, match)
		}
	}

	sort.Strings(files)
	stats.FilesScanned = len(files)
	if logger != nil {
		logger.Debug("file discovery complete",
			"discovered", stats.FilesDiscovered,
			"scanned", stats.FilesScanned,
			"skipped", stats.FilesSkipped)
	}
	return files, stats, nil
}

// IsStylesheetPath reports whether a path goes through the stylesheet
// front-end.
func IsStylesheetPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".css", ".scss":
		return true
	}
	return false
}

// IsMarkupPath reports whether a path goes through the markup front-end.
func IsMarkupPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".templ":
		return true
	}
	return false
}

// LoadInputs reads the discovered files and parses each through the
// front-end its extension selects: .css/.scss as stylesheets,
// .html/.htm/.templ as markup. Unknown extensions are skipped.
func LoadInputs(files []string, conv *Convention, logger *slog.Logger) ([]Input, error) {
	var inputs []Input

	for _, path := range files {
		// #nosec G304 - path comes from trusted configuration
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}

		switch {
		case IsStylesheetPath(path):
			inputs = append(inputs, ParseStylesheet(string(content), path, conv)...)
		case IsMarkupPath(path):
			inputs = append(inputs, ScanMarkup(content, path)...)
		default:
			if logger != nil {
				logger.Debug("skipping file with unknown extension", "path", path)
			}
		}
	}

	SortInputs(inputs)
	return inputs, nil
}

// GetRelativePath shortens an absolute path under the working directory
// for display. Paths outside the working directory stay absolute rather
// than growing ../ chains.
func GetRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
