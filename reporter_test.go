package classlint

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainReporter(buf *bytes.Buffer) *Reporter {
	return &Reporter{w: buf, printLines: true, printLinterName: true}
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		v    Violation
		want string
	}{
		{
			name: "modifier without container",
			v: Violation{
				Rule:   RuleModifierWithoutContainer,
				Tokens: []string{"is-open"},
			},
			want: `modifier class "is-open" used without a container class on the same element`,
		},
		{
			name: "private without container",
			v: Violation{
				Rule:   RulePrivateWithoutContainer,
				Tokens: []string{"_content"},
			},
			want: `private class "_content" used without a container class`,
		},
		{
			name: "private not descendant",
			v: Violation{
				Rule:   RulePrivateNotDescendant,
				Tokens: []string{"_content"},
			},
			want: `private class "_content" is not scoped under any container class`,
		},
		{
			name: "container inside container",
			v: Violation{
				Rule:     RuleContainerInsideContainer,
				Tokens:   []string{"c-image"},
				Ancestor: "c-card",
			},
			want: `container class "c-image" styled inside container "c-card"; use a modifier class instead`,
		},
		{
			name: "multiple containers",
			v: Violation{
				Rule:   RuleMultipleContainers,
				Tokens: []string{"c-card", "c-image"},
			},
			want: `multiple container classes on one element: "c-card", "c-image"`,
		},
		{
			name: "private reuse",
			v: Violation{
				Rule:   RulePrivateReuse,
				Tokens: []string{"_body", "c-card", "c-modal"},
			},
			want: `private class "_body" has different declarations under containers "c-card" and "c-modal"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMessage(tt.v))
		})
	}
}

func TestEveryRuleHasAMessageTemplate(t *testing.T) {
	for _, rule := range AllRules {
		assert.Contains(t, ruleMessages, rule)
	}
}

func TestPrintViolationsOrderAndFormat(t *testing.T) {
	var buf bytes.Buffer
	r := plainReporter(&buf)

	r.PrintViolations([]Violation{
		{
			Rule:     RulePrivateWithoutContainer,
			Severity: SeverityError,
			Location: Location{File: "b.css", Line: 2, Column: 1, Source: "._content {"},
			Tokens:   []string{"_content"},
		},
		{
			Rule:     RuleModifierWithoutContainer,
			Severity: SeverityError,
			Location: Location{File: "a.css", Line: 5, Column: 3, Source: "  .is-open {"},
			Tokens:   []string{"is-open"},
		},
	})

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6) // two violations, each with source and caret lines

	assert.Contains(t, lines[0], "a.css:5:3:")
	assert.Contains(t, lines[0], "(classlint/modifier-without-container)")
	assert.Equal(t, "\t  .is-open {", lines[1])
	assert.Equal(t, "\t  ^", lines[2])
	assert.Contains(t, lines[3], "b.css:2:1:")
}

func TestPrintViolationsShortensPathsUnderCwd(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	var buf bytes.Buffer
	r := &Reporter{w: &buf}

	r.PrintViolations([]Violation{{
		Rule:     RuleModifierWithoutContainer,
		Severity: SeverityError,
		Location: Location{File: filepath.Join(cwd, "styles", "card.css"), Line: 1, Column: 1},
		Tokens:   []string{"is-open"},
	}})

	assert.Contains(t, buf.String(), filepath.Join("styles", "card.css")+":1:1:")
	assert.NotContains(t, buf.String(), cwd)
}

func TestPrintViolationsWarningPrefix(t *testing.T) {
	var buf bytes.Buffer
	r := &Reporter{w: &buf}

	r.PrintViolations([]Violation{{
		Rule:     RulePrivateReuse,
		Severity: SeverityWarning,
		Location: Location{File: "a.css", Line: 1, Column: 1},
		Tokens:   []string{"_body", "c-card", "c-modal"},
	}})

	assert.Contains(t, buf.String(), "warning: ")
}

func TestPrintFailures(t *testing.T) {
	var buf bytes.Buffer
	r := &Reporter{w: &buf}

	r.PrintFailures([]Diagnostic{{
		Kind:     DiagUnanalyzableInput,
		Location: Location{File: "a.css", Line: 9, Column: 1},
		Detail:   `selector ".broken" has no declaration block`,
	}})

	out := buf.String()
	assert.Contains(t, out, "a.css:9:1:")
	assert.Contains(t, out, "unanalyzable-input")
	assert.Contains(t, out, "no declaration block")
}

func TestBuildCaretIndicator(t *testing.T) {
	tests := []struct {
		name   string
		source string
		column int
		want   string
	}{
		{
			name:   "start of line",
			source: ".is-open {",
			column: 1,
			want:   "^",
		},
		{
			name:   "spaces preserved as spaces",
			source: "  .is-open {",
			column: 3,
			want:   "  ^",
		},
		{
			name:   "tabs preserved as tabs",
			source: "\t\t.is-open {",
			column: 3,
			want:   "\t\t^",
		},
		{
			name:   "column beyond line length",
			source: "abc",
			column: 99,
			want:   "   ^",
		},
		{
			name:   "zero column",
			source: "abc",
			column: 0,
			want:   "^",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildCaretIndicator(tt.source, tt.column))
		})
	}
}

func TestPrintSummary(t *testing.T) {
	t.Run("clean run", func(t *testing.T) {
		var buf bytes.Buffer
		r := &Reporter{w: &buf}
		r.PrintSummary(&LintResult{})
		assert.Contains(t, buf.String(), "no convention violations found")
	})

	t.Run("counts and per-rule breakdown", func(t *testing.T) {
		var buf bytes.Buffer
		r := &Reporter{w: &buf}
		r.PrintSummary(&LintResult{Result: Result{Summary: Summary{
			ErrorCount:   2,
			WarningCount: 1,
			PerRule: map[string]int{
				RuleModifierWithoutContainer: 2,
				RulePrivateReuse:             1,
			},
		}}})

		out := buf.String()
		assert.Contains(t, out, "3 issues (2 errors, 1 warning)")
		assert.Contains(t, out, "* modifier-without-container: 2")
		assert.Contains(t, out, "* private-reused-across-containers: 1")
	})

	t.Run("failures are reported", func(t *testing.T) {
		var buf bytes.Buffer
		r := &Reporter{w: &buf}
		r.PrintSummary(&LintResult{Result: Result{Summary: Summary{FailureCount: 2}}})
		assert.Contains(t, buf.String(), "2 inputs could not be analyzed")
	})

	t.Run("truncation is mentioned", func(t *testing.T) {
		var buf bytes.Buffer
		r := &Reporter{w: &buf}
		r.PrintSummary(&LintResult{
			Result:    Result{Summary: Summary{ErrorCount: 5}},
			Truncated: 3,
		})
		assert.Contains(t, buf.String(), "3 issues truncated")
	})
}

func TestPluralizeCount(t *testing.T) {
	assert.Equal(t, "1 error", pluralizeCount(1, "error", "errors"))
	assert.Equal(t, "0 errors", pluralizeCount(0, "error", "errors"))
	assert.Equal(t, "2 warnings", pluralizeCount(2, "warning", "warnings"))
}
