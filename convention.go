package classlint

import (
	"fmt"
	"sort"
	"strings"
)

// Convention holds the prefix taxonomy and rule switches for one analysis
// run. It is constructed once, validated, and treated as read-only by every
// analysis function.
type Convention struct {
	// ContainerPrefixes maps a class-name prefix to the container kind it
	// introduces, e.g. "c-" -> component.
	ContainerPrefixes map[string]ContainerKind

	// ModifierPrefixes marks modifier classes, e.g. "has-", "is-".
	ModifierPrefixes []string

	// PrivatePrefix marks private classes. Default "_".
	PrivatePrefix string

	// DisabledRules lists rule ids that should not fire.
	DisabledRules []string
}

// DefaultConvention returns the standard prefix taxonomy:
// c- (component), g- (global), l- (layout), m- (module) containers,
// has-/is- modifiers, and _ privates. All rules enabled.
func DefaultConvention() *Convention {
	return &Convention{
		ContainerPrefixes: map[string]ContainerKind{
			"c-": ContainerComponent,
			"g-": ContainerGlobal,
			"l-": ContainerLayout,
			"m-": ContainerModule,
		},
		ModifierPrefixes: []string{"has-", "is-"},
		PrivatePrefix:    "_",
	}
}

// Validate checks the prefix sets for overlaps. Overlapping prefixes make
// classification ambiguous, so they are rejected up front as configuration
// errors rather than resolved silently during analysis.
func (c *Convention) Validate() []Diagnostic {
	var diags []Diagnostic

	report := func(detail string) {
		diags = append(diags, Diagnostic{
			Kind:   DiagConfigurationError,
			Detail: detail,
		})
	}

	type entry struct {
		prefix string
		set    string
	}

	var entries []entry
	for p := range c.ContainerPrefixes {
		entries = append(entries, entry{p, "container"})
	}
	for _, p := range c.ModifierPrefixes {
		entries = append(entries, entry{p, "modifier"})
	}
	if c.PrivatePrefix != "" {
		entries = append(entries, entry{c.PrivatePrefix, "private"})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].prefix != entries[j].prefix {
			return entries[i].prefix < entries[j].prefix
		}
		return entries[i].set < entries[j].set
	})

	for i, e := range entries {
		if e.prefix == "" {
			report(fmt.Sprintf("empty prefix configured in %s set", e.set))
			continue
		}
		for _, other := range entries[i+1:] {
			if e.prefix == other.prefix && e.set == other.set {
				continue // map keys are unique; duplicate modifiers caught below
			}
			if e.prefix == other.prefix {
				report(fmt.Sprintf("prefix %q configured in both %s and %s sets",
					e.prefix, e.set, other.set))
				continue
			}
			// Cross-set shadowing: one prefix extending another makes the
			// longest-match order dependent on which set wins.
			if e.set != other.set && strings.HasPrefix(other.prefix, e.prefix) {
				report(fmt.Sprintf("prefix %q (%s) shadows prefix %q (%s)",
					e.prefix, e.set, other.prefix, other.set))
			}
		}
	}

	seen := make(map[string]bool)
	for _, p := range c.ModifierPrefixes {
		if seen[p] {
			report(fmt.Sprintf("duplicate modifier prefix %q", p))
		}
		seen[p] = true
	}

	return diags
}

// RuleEnabled reports whether a rule id is active under this convention.
func (c *Convention) RuleEnabled(id string) bool {
	for _, d := range c.DisabledRules {
		if d == id {
			return false
		}
	}
	return true
}

// ConfigError is returned by Run when the convention fails validation.
// The individual problems are carried as configuration-error diagnostics.
type ConfigError struct {
	Diagnostics []Diagnostic
}

func (e *ConfigError) Error() string {
	details := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		details[i] = d.Detail
	}
	return "invalid convention configuration: " + strings.Join(details, "; ")
}
