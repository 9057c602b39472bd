package classlint

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineOutputFormat(t *testing.T) {
	tests := []struct {
		name  string
		flag  string
		quiet bool
		want  OutputFormat
	}{
		{name: "issues", flag: "issues", want: OutputIssues},
		{name: "summary", flag: "summary", want: OutputSummary},
		{name: "full", flag: "full", want: OutputFull},
		{name: "json", flag: "json", want: OutputJSON},
		{name: "unknown falls back", flag: "xml", want: OutputIssues},
		{name: "empty falls back", flag: "", want: OutputIssues},
		{name: "quiet wins", flag: "json", quiet: true, want: OutputIssues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineOutputFormat(tt.flag, tt.quiet))
		})
	}
}

func sampleLintResult() *LintResult {
	return &LintResult{
		Result: Result{
			Violations: []Violation{
				{
					Rule:     RuleModifierWithoutContainer,
					Severity: SeverityError,
					Location: Location{File: "a.css", Line: 5, Column: 3, Source: "  .is-open {"},
					Tokens:   []string{"is-open"},
				},
				{
					Rule:     RulePrivateReuse,
					Severity: SeverityWarning,
					Location: Location{File: "b.css", Line: 2, Column: 1},
					Tokens:   []string{"_body", "c-card", "c-modal"},
					Ancestor: "c-card",
				},
			},
			Failures: []Diagnostic{
				{
					Kind:     DiagUnanalyzableInput,
					Location: Location{File: "c.css", Line: 1, Column: 1},
					Detail:   "empty selector",
				},
			},
			Summary: Summary{
				ErrorCount:   1,
				WarningCount: 1,
				FailureCount: 1,
				PerRule: map[string]int{
					RuleModifierWithoutContainer: 1,
					RulePrivateReuse:             1,
				},
			},
		},
		FilesScanned: 3,
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleLintResult()))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "1.0", out.Version)
	assert.NotEmpty(t, out.Timestamp)
	assert.Equal(t, 2, out.Summary.TotalIssues)
	assert.Equal(t, 1, out.Summary.Errors)
	assert.Equal(t, 1, out.Summary.Warnings)
	assert.Equal(t, 1, out.Summary.Failures)
	assert.Equal(t, 3, out.Summary.FilesScanned)

	require.Len(t, out.Violations, 2)
	v := out.Violations[0]
	assert.Equal(t, RuleModifierWithoutContainer, v.Rule)
	assert.Equal(t, SeverityError, v.Severity)
	assert.Equal(t, "a.css", v.File)
	assert.Equal(t, 5, v.Line)
	assert.Equal(t, 3, v.Column)
	assert.Equal(t, []string{"is-open"}, v.Tokens)
	assert.Contains(t, v.Message, "is-open")

	assert.Equal(t, "c-card", out.Violations[1].Ancestor)

	require.Len(t, out.Failures, 1)
	assert.Equal(t, DiagUnanalyzableInput, out.Failures[0].Kind)
}

func TestWriteOutputFormats(t *testing.T) {
	result := sampleLintResult()
	config := LintConfig{PrintIssuedLines: true, PrintLinterName: true}

	t.Run("issues shows violations and failures only", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteOutput(&buf, result, OutputIssues, config))
		assert.Contains(t, buf.String(), "a.css:5:3:")
		assert.Contains(t, buf.String(), "unanalyzable-input")
		assert.NotContains(t, buf.String(), "2 issues (1 error, 1 warning)")
	})

	t.Run("summary omits violations", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteOutput(&buf, result, OutputSummary, config))
		assert.NotContains(t, buf.String(), "a.css:5:3:")
		assert.Contains(t, buf.String(), "2 issues (1 error, 1 warning)")
	})

	t.Run("full adds scan stats", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteOutput(&buf, result, OutputFull, config))
		assert.Contains(t, buf.String(), "a.css:5:3:")
		assert.Contains(t, buf.String(), "files scanned:")
	})

	t.Run("json is machine readable", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteOutput(&buf, result, OutputJSON, config))
		var out JSONOutput
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		assert.Equal(t, 2, out.Summary.TotalIssues)
	})
}
