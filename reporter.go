package classlint

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Message templates keyed by rule id. The core never formats messages;
// violations carry their parameters and this table turns them into text.
var ruleMessages = map[string]string{
	RuleModifierWithoutContainer: "modifier class %s used without a container class on the same element",
	RulePrivateWithoutContainer:  "private class %s used without a container class",
	RulePrivateNotDescendant:     "private class %s is not scoped under any container class",
	RuleContainerInsideContainer: "container class %s styled inside container %q; use a modifier class instead",
	RuleMultipleContainers:       "multiple container classes on one element: %s",
	RulePrivateReuse:             "private class %s has different declarations under containers %q and %q",
}

// FormatMessage renders one violation's human-readable message from its
// parameters.
func FormatMessage(v Violation) string {
	switch v.Rule {
	case RuleContainerInsideContainer:
		return fmt.Sprintf(ruleMessages[v.Rule], quoteList(v.Tokens), v.Ancestor)
	case RulePrivateReuse:
		if len(v.Tokens) == 3 {
			return fmt.Sprintf(ruleMessages[v.Rule], quote(v.Tokens[0]), v.Tokens[1], v.Tokens[2])
		}
	case RuleModifierWithoutContainer, RulePrivateWithoutContainer,
		RulePrivateNotDescendant, RuleMultipleContainers:
		return fmt.Sprintf(ruleMessages[v.Rule], quoteList(v.Tokens))
	}
	return fmt.Sprintf("%s: %s", v.Rule, strings.Join(v.Tokens, ", "))
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}

func quoteList(tokens []string) string {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = quote(t)
	}
	return strings.Join(quoted, ", ")
}

// Reporter handles formatting and outputting lint results.
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

// NewReporter creates a new reporter with the given configuration.
func NewReporter(w io.Writer, config LintConfig) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       shouldUseColors(config),
		printLines:      config.PrintIssuedLines,
		printLinterName: config.PrintLinterName,
	}
}

// shouldUseColors determines if colors should be enabled.
func shouldUseColors(config LintConfig) bool {
	// Explicit flag wins
	if config.UseColors {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, _ := os.Stdout.Stat(); fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintViolations outputs violations in golangci-lint format, ordered by
// file, then line, then column.
func (r *Reporter) PrintViolations(violations []Violation) {
	sorted := make([]Violation, len(violations))
	copy(sorted, violations)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Location, sorted[j].Location
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})

	for _, v := range sorted {
		r.printViolation(v)
	}
}

// printViolation formats a single violation in golangci-lint style.
func (r *Reporter) printViolation(v Violation) {
	// Format: file:line:col: message (classlint/rule-id)
	location := fmt.Sprintf("%s:%d:%d:", GetRelativePath(v.Location.File), v.Location.Line, v.Location.Column)

	linterSuffix := ""
	if r.printLinterName {
		linterSuffix = fmt.Sprintf(" (classlint/%s)", v.Rule)
	}

	severity := ""
	if v.Severity == SeverityWarning {
		severity = RenderStyle(StyleYellow, "warning: ", r.useColors)
	}

	fmt.Fprintf(r.w, "%s %s%s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		severity,
		FormatMessage(v),
		RenderStyle(StyleGray, linterSuffix, r.useColors))

	if r.printLines && v.Location.Source != "" {
		fmt.Fprintf(r.w, "\t%s\n", v.Location.Source)
		caret := buildCaretIndicator(v.Location.Source, v.Location.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// PrintFailures outputs the diagnostics for inputs that could not be
// analyzed. They are never folded into the violation list.
func (r *Reporter) PrintFailures(failures []Diagnostic) {
	for _, d := range failures {
		location := fmt.Sprintf("%s:%d:%d:", GetRelativePath(d.Location.File), d.Location.Line, d.Location.Column)
		fmt.Fprintf(r.w, "%s %s: %s\n",
			RenderStyle(StyleCyan, location, r.useColors),
			RenderStyle(StyleRed, string(d.Kind), r.useColors),
			d.Detail)
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column.
// Tabs in the prefix are preserved so the caret lines up in terminals.
func buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}
	prefix := sourceLine[:prefixLen]

	var padding strings.Builder
	for _, ch := range prefix {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}
	return padding.String() + "^"
}

// PrintSummary outputs the run's counts: severity breakdown, per-rule
// counts, and the failure count alongside.
func (r *Reporter) PrintSummary(result *LintResult) {
	s := result.Summary
	total := s.ErrorCount + s.WarningCount

	fmt.Fprintln(r.w, "")

	switch {
	case total == 0 && s.FailureCount == 0:
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, "no convention violations found", r.useColors))
	case result.Truncated > 0:
		fmt.Fprintf(r.w, "%s (%s, %s; %s truncated):\n",
			pluralizeCount(total, "issue", "issues"),
			pluralizeCount(s.ErrorCount, "error", "errors"),
			pluralizeCount(s.WarningCount, "warning", "warnings"),
			pluralizeCount(result.Truncated, "issue", "issues"))
	default:
		fmt.Fprintf(r.w, "%s (%s, %s):\n",
			pluralizeCount(total, "issue", "issues"),
			pluralizeCount(s.ErrorCount, "error", "errors"),
			pluralizeCount(s.WarningCount, "warning", "warnings"))
	}

	for _, rule := range AllRules {
		if count := s.PerRule[rule]; count > 0 {
			fmt.Fprintf(r.w, "* %s: %d\n", rule, count)
		}
	}

	if s.FailureCount > 0 {
		fmt.Fprintf(r.w, "%s\n", RenderStyle(StyleRed,
			fmt.Sprintf("%s could not be analyzed", pluralizeCount(s.FailureCount, "input", "inputs")),
			r.useColors))
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form.
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
