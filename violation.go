package classlint

// Rule ids, stable across versions. Reporters key message templates on
// these; never renumber or rename.
const (
	RuleModifierWithoutContainer = "modifier-without-container"
	RulePrivateWithoutContainer  = "private-without-container"
	RulePrivateNotDescendant     = "private-not-descendant"
	RuleContainerInsideContainer = "container-inside-container"
	RuleMultipleContainers       = "multiple-containers-same-compound"
	RulePrivateReuse             = "private-reused-across-containers"
)

// AllRules lists every rule id in severity-then-id order.
var AllRules = []string{
	RuleModifierWithoutContainer,
	RulePrivateWithoutContainer,
	RulePrivateNotDescendant,
	RuleContainerInsideContainer,
	RuleMultipleContainers,
	RulePrivateReuse,
}

// Severity of a violation.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Location points at the source unit a violation or diagnostic refers to.
// The rule engine carries it through untouched; only reporters interpret it.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	// Source is the full source line, kept for caret rendering.
	Source string `json:"source,omitempty"`
	// Selector is the raw selector or element text the unit came from.
	Selector string `json:"selector,omitempty"`
}

// Violation is one convention breach. It carries the offending tokens as
// message parameters, never a formatted string; formatting belongs to the
// output layer.
type Violation struct {
	Rule     string   `json:"rule"`
	Severity string   `json:"severity"`
	Location Location `json:"location"`
	// Tokens are the offending class names.
	Tokens []string `json:"tokens"`
	// Ancestor is the related ancestor or sibling class for relational
	// rules, empty otherwise.
	Ancestor string `json:"ancestor,omitempty"`
}

// DiagnosticKind separates tool-internal failures from convention
// violations.
type DiagnosticKind string

// Diagnostic kinds.
const (
	// DiagUnanalyzableInput marks input the upstream parser could not
	// deliver in analyzable form. The unit is skipped, counted, and never
	// reported as clean.
	DiagUnanalyzableInput DiagnosticKind = "unanalyzable-input"
	// DiagConfigurationError marks an invalid convention configuration,
	// such as overlapping prefixes.
	DiagConfigurationError DiagnosticKind = "configuration-error"
)

// Diagnostic is a tool-internal failure tied to an input or to the
// configuration. Distinct from Violation so a failed unit can never be
// mistaken for a clean one.
type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind"`
	Location Location       `json:"location"`
	Detail   string         `json:"detail"`
}
