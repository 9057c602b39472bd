package classlint

import (
	"errors"
	"strings"
)

// Combinator relates a compound selector to the one before it.
type Combinator int

// Combinators. Descendant and Child are both "nested inside" for rule
// purposes; the distinction is kept for reporters only.
const (
	// CombinatorNone marks the first compound of a path.
	CombinatorNone Combinator = iota
	CombinatorDescendant
	CombinatorChild
	// CombinatorNesting marks a raw compound that is the & parent
	// reference of a nested rule. It is resolved away by Analyze and never
	// appears in a SelectorPath.
	CombinatorNesting
)

func (c Combinator) String() string {
	switch c {
	case CombinatorDescendant:
		return " "
	case CombinatorChild:
		return " > "
	case CombinatorNesting:
		return "&"
	}
	return ""
}

// RawCompound is one compound of an unresolved selector as delivered by a
// stylesheet front-end: the class names applying to one element, plus the
// combinator linking it to the previous compound.
type RawCompound struct {
	Combinator Combinator
	Classes    []string
	// Parent marks the & reference. Its Classes, if any, are the classes
	// attached directly to the & (as in &.is-open).
	Parent bool
}

// RawSelector is one parsed selector before nesting resolution.
type RawSelector struct {
	Compounds []RawCompound
	Location  Location
}

// Compound is a resolved compound selector: the classified tokens applying
// to one element. A compound with no class tokens (a bare element selector)
// still occupies its position in the path.
type Compound struct {
	Tokens []ClassToken
}

// Containers returns the container tokens of the compound.
func (c Compound) Containers() []ClassToken {
	var out []ClassToken
	for _, t := range c.Tokens {
		if t.Kind == KindContainer {
			out = append(out, t)
		}
	}
	return out
}

// HasKind reports whether any token of the compound has the given kind.
func (c Compound) HasKind(k Kind) bool {
	for _, t := range c.Tokens {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// PathStep is one (combinator, compound) pair of a resolved path.
type PathStep struct {
	Combinator Combinator
	Compound   Compound
}

// SelectorPath is the fully resolved ancestor chain of one selector:
// nesting flattened, at-rule boundaries reduced to markers. A valid path
// has at least one step and starts with CombinatorNone.
type SelectorPath struct {
	Steps []PathStep
	// AtRules records the at-rule preludes (media/container queries) the
	// rule sits inside. Markers only: they never affect scoping.
	AtRules  []string
	Location Location
}

// Last returns the styled (final) compound of the path.
func (p SelectorPath) Last() Compound {
	return p.Steps[len(p.Steps)-1].Compound
}

// String reconstructs a selector-like rendering of the path for messages.
func (p SelectorPath) String() string {
	var b strings.Builder
	for i, step := range p.Steps {
		if i > 0 {
			sep := step.Combinator.String()
			if sep == "" {
				sep = " "
			}
			b.WriteString(sep)
		}
		if len(step.Compound.Tokens) == 0 {
			b.WriteString("*")
			continue
		}
		for _, t := range step.Compound.Tokens {
			b.WriteString("." + t.Name)
		}
	}
	return b.String()
}

// NestingContext carries the lexical surroundings of a nested rule into
// Analyze: the resolved path of the enclosing rule, if any, and the
// at-rule preludes crossed on the way down.
type NestingContext struct {
	Parent  *SelectorPath
	AtRules []string
}

// Analysis errors. These are invariant breaks in the input, surfaced by
// the runner as unanalyzable-input diagnostics.
var (
	errEmptySelector   = errors.New("selector has no compounds")
	errOrphanNesting   = errors.New("nesting reference without an enclosing rule")
	errMisplacedParent = errors.New("nesting reference after the first compound of a resolved path")
)

// Analyze resolves one raw selector against its nesting context into a
// flat SelectorPath, matching standard CSS nesting resolution: & splices
// the parent's compound list at its point of occurrence, and a selector
// without & is an implicit descendant of the parent.
func Analyze(raw RawSelector, ctx NestingContext, conv *Convention) (SelectorPath, error) {
	if len(raw.Compounds) == 0 {
		return SelectorPath{}, errEmptySelector
	}

	path := SelectorPath{Location: raw.Location}
	if ctx.Parent != nil {
		path.AtRules = append(path.AtRules, ctx.Parent.AtRules...)
	}
	for _, ar := range ctx.AtRules {
		if !containsString(path.AtRules, ar) {
			path.AtRules = append(path.AtRules, ar)
		}
	}

	spliced := false
	for i, rc := range raw.Compounds {
		if rc.Parent {
			if ctx.Parent == nil {
				return SelectorPath{}, errOrphanNesting
			}
			if spliced || len(path.Steps) > 0 && i > 0 {
				// Multiple or trailing & forms (.foo &) expand to paths
				// this flat model cannot represent.
				return SelectorPath{}, errMisplacedParent
			}
			path.Steps = append(path.Steps, ctx.Parent.Steps...)
			// Classes written directly on the & belong to the parent's
			// final compound: &.is-open on .c-card is .c-card.is-open.
			if len(rc.Classes) > 0 {
				last := &path.Steps[len(path.Steps)-1]
				merged := make([]ClassToken, len(last.Compound.Tokens))
				copy(merged, last.Compound.Tokens)
				for _, name := range rc.Classes {
					merged = appendToken(merged, Classify(name, conv))
				}
				last.Compound = Compound{Tokens: merged}
			}
			spliced = true
			continue
		}

		comb := rc.Combinator
		if len(path.Steps) == 0 {
			// First compound of a nested rule without & is an implicit
			// descendant of the enclosing selector.
			if ctx.Parent != nil {
				path.Steps = append(path.Steps, ctx.Parent.Steps...)
				comb = CombinatorDescendant
			} else {
				comb = CombinatorNone
			}
		} else if comb == CombinatorNone {
			comb = CombinatorDescendant
		}

		tokens := make([]ClassToken, 0, len(rc.Classes))
		for _, name := range rc.Classes {
			tokens = appendToken(tokens, Classify(name, conv))
		}
		path.Steps = append(path.Steps, PathStep{
			Combinator: comb,
			Compound:   Compound{Tokens: tokens},
		})
	}

	if len(path.Steps) == 0 {
		return SelectorPath{}, errEmptySelector
	}
	path.Steps[0].Combinator = CombinatorNone
	return path, nil
}

// appendToken adds a token unless the same class name is already present.
// Repeated classes in one compound (.c-card.c-card) select the same
// element and carry no extra meaning.
func appendToken(tokens []ClassToken, tok ClassToken) []ClassToken {
	for _, t := range tokens {
		if t.Name == tok.Name {
			return tokens
		}
	}
	return append(tokens, tok)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
