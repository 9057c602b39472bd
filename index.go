package classlint

import (
	"sort"
	"strings"
)

// PrivateUsage records one occurrence of a private class under a container:
// which private class, which container identity scopes it, and a coarse
// fingerprint of the rule's declarations.
type PrivateUsage struct {
	Class       string
	Container   string
	Fingerprint string
	Location    Location
	InputIndex  int
}

// PrivateUsageIndex collects private-class usages during the first pass.
// Workers each build their own and the runner merges them at the barrier;
// the merged index is read-only for the reuse pass.
type PrivateUsageIndex struct {
	byClass map[string][]PrivateUsage
}

// NewPrivateUsageIndex returns an empty index.
func NewPrivateUsageIndex() *PrivateUsageIndex {
	return &PrivateUsageIndex{byClass: make(map[string][]PrivateUsage)}
}

// Add records one usage.
func (x *PrivateUsageIndex) Add(u PrivateUsage) {
	x.byClass[u.Class] = append(x.byClass[u.Class], u)
}

// Merge absorbs another index.
func (x *PrivateUsageIndex) Merge(other *PrivateUsageIndex) {
	for class, usages := range other.byClass {
		x.byClass[class] = append(x.byClass[class], usages...)
	}
}

// CollectPrivateUsages extracts the indexable usages from one analyzed
// selector: privates in the styled compound that are scoped under a
// container ancestor. Unscoped privates are already flagged by the
// per-selector rules and carry no reusable meaning.
func CollectPrivateUsages(path SelectorPath, decls map[string]string, inputIndex int, x *PrivateUsageIndex) {
	last := path.Last()
	privates := tokensOfKind(last, KindPrivate)
	if len(privates) == 0 {
		return
	}

	container := ""
	if containers := last.Containers(); len(containers) > 0 {
		container = containers[0].Name
	} else if anc, ok := nearestContainerAncestor(path, len(path.Steps)-1); ok {
		container = anc.Name
	}
	if container == "" {
		return
	}

	fp := DeclarationFingerprint(decls)
	for _, class := range privates {
		x.Add(PrivateUsage{
			Class:       class,
			Container:   container,
			Fingerprint: fp,
			Location:    path.Location,
			InputIndex:  inputIndex,
		})
	}
}

// DeclarationFingerprint reduces a declaration block to the sorted list of
// its property names. Deliberately coarse: the reuse rule compares meaning,
// not values, and value-level diffing would drown it in noise.
func DeclarationFingerprint(decls map[string]string) string {
	if len(decls) == 0 {
		return ""
	}
	names := make([]string, 0, len(decls))
	for name := range decls {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ";")
}

// Violations runs the cross-selector reuse rule over the merged index: a
// private class appearing under two different container identities with
// different declared property sets gets one warning. Always a warning —
// the fingerprint comparison is too coarse to gate a build on.
func (x *PrivateUsageIndex) Violations(conv *Convention) []Violation {
	if !conv.RuleEnabled(RulePrivateReuse) {
		return nil
	}

	classes := make([]string, 0, len(x.byClass))
	for class := range x.byClass {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	var out []Violation
	for _, class := range classes {
		usages := x.byClass[class]

		// One representative fingerprint per container, first usage wins
		// in input order.
		sort.SliceStable(usages, func(i, j int) bool {
			return usages[i].InputIndex < usages[j].InputIndex
		})
		firstByContainer := make(map[string]PrivateUsage)
		var containers []string
		for _, u := range usages {
			if _, seen := firstByContainer[u.Container]; !seen {
				firstByContainer[u.Container] = u
				containers = append(containers, u.Container)
			}
		}
		if len(containers) < 2 {
			continue
		}
		sort.Strings(containers)

		// Report the lexicographically first conflicting pair.
		conflict := false
		var a, b PrivateUsage
	scan:
		for i := 0; i < len(containers); i++ {
			for j := i + 1; j < len(containers); j++ {
				ua := firstByContainer[containers[i]]
				ub := firstByContainer[containers[j]]
				if ua.Fingerprint != ub.Fingerprint {
					a, b = ua, ub
					conflict = true
					break scan
				}
			}
		}
		if !conflict {
			continue
		}

		out = append(out, Violation{
			Rule:     RulePrivateReuse,
			Severity: SeverityWarning,
			Location: b.Location,
			Tokens:   []string{class, a.Container, b.Container},
			Ancestor: a.Container,
		})
	}
	return out
}
