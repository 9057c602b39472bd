package classlint

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema.
type JSONOutput struct {
	Version    string          `json:"version"`
	Timestamp  string          `json:"timestamp"`
	Summary    JSONSummary     `json:"summary"`
	Violations []JSONViolation `json:"violations"`
	Failures   []Diagnostic    `json:"failures,omitempty"`
}

// JSONSummary contains high-level counts.
type JSONSummary struct {
	TotalIssues  int            `json:"total_issues"`
	Errors       int            `json:"errors"`
	Warnings     int            `json:"warnings"`
	Failures     int            `json:"failures"`
	PerRule      map[string]int `json:"per_rule"`
	FilesScanned int            `json:"files_scanned"`
}

// JSONViolation is one violation with its formatted message alongside the
// raw parameters, so tooling can use either.
type JSONViolation struct {
	Rule     string   `json:"rule"`
	Severity string   `json:"severity"`
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Message  string   `json:"message"`
	Tokens   []string `json:"tokens"`
	Ancestor string   `json:"ancestor,omitempty"`
	Source   string   `json:"source,omitempty"`
}

// WriteJSON writes the lint result as JSON.
func WriteJSON(w io.Writer, result *LintResult) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts a LintResult to the export schema.
func buildJSONOutput(result *LintResult) JSONOutput {
	s := result.Summary

	violations := make([]JSONViolation, len(result.Violations))
	for i, v := range result.Violations {
		violations[i] = JSONViolation{
			Rule:     v.Rule,
			Severity: v.Severity,
			File:     v.Location.File,
			Line:     v.Location.Line,
			Column:   v.Location.Column,
			Message:  FormatMessage(v),
			Tokens:   v.Tokens,
			Ancestor: v.Ancestor,
			Source:   v.Location.Source,
		}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  s.ErrorCount + s.WarningCount,
			Errors:       s.ErrorCount,
			Warnings:     s.WarningCount,
			Failures:     s.FailureCount,
			PerRule:      s.PerRule,
			FilesScanned: result.FilesScanned,
		},
		Violations: violations,
		Failures:   result.Failures,
	}
}
