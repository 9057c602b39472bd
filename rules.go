package classlint

// The rule engine. Each rule is a pure function from one analyzed unit to
// zero or more violations; rules never retain state and never fail. The
// severity policy is fixed: every rule here is an error, the cross-selector
// reuse rule in index.go is the only warning.

// RunRules evaluates the per-selector rules against one resolved path,
// honoring the convention's disabled-rule set.
func RunRules(path SelectorPath, conv *Convention) []Violation {
	var out []Violation

	for i, step := range path.Steps {
		out = append(out, checkCompound(step.Compound, i, path, conv)...)
	}
	if conv.RuleEnabled(RuleContainerInsideContainer) {
		out = append(out, checkContainerNesting(path)...)
	}

	return out
}

// checkCompound applies the same-compound rules to one step of the path.
func checkCompound(c Compound, index int, path SelectorPath, conv *Convention) []Violation {
	var out []Violation

	hasContainer := c.HasKind(KindContainer)

	if conv.RuleEnabled(RuleMultipleContainers) {
		if containers := c.Containers(); len(containers) > 1 {
			out = append(out, Violation{
				Rule:     RuleMultipleContainers,
				Severity: SeverityError,
				Location: path.Location,
				Tokens:   tokenNames(containers),
			})
		}
	}

	if !hasContainer {
		if conv.RuleEnabled(RuleModifierWithoutContainer) {
			if mods := tokensOfKind(c, KindModifier); len(mods) > 0 {
				out = append(out, Violation{
					Rule:     RuleModifierWithoutContainer,
					Severity: SeverityError,
					Location: path.Location,
					Tokens:   mods,
				})
			}
		}

		if privates := tokensOfKind(c, KindPrivate); len(privates) > 0 {
			// A private class with no container on its own element is fine
			// when a container ancestor scopes it. Without one it is either
			// standalone or scoped under non-container elements only.
			if _, scoped := nearestContainerAncestor(path, index); !scoped {
				switch {
				case index == 0 && conv.RuleEnabled(RulePrivateWithoutContainer):
					out = append(out, Violation{
						Rule:     RulePrivateWithoutContainer,
						Severity: SeverityError,
						Location: path.Location,
						Tokens:   privates,
					})
				case index > 0 && conv.RuleEnabled(RulePrivateNotDescendant):
					out = append(out, Violation{
						Rule:     RulePrivateNotDescendant,
						Severity: SeverityError,
						Location: path.Location,
						Tokens:   privates,
					})
				}
			}
		}
	}

	return out
}

// checkContainerNesting flags a container styled inside a different
// container. The sanctioned pattern is a container+modifier pair, so a
// styled compound already carrying a modifier is exempt regardless of
// ancestors.
func checkContainerNesting(path SelectorPath) []Violation {
	if len(path.Steps) < 2 {
		return nil
	}

	last := path.Last()
	containers := last.Containers()
	if len(containers) == 0 || last.HasKind(KindModifier) {
		return nil
	}

	for i := len(path.Steps) - 2; i >= 0; i-- {
		for _, anc := range path.Steps[i].Compound.Containers() {
			if anc.Name != containers[0].Name {
				return []Violation{{
					Rule:     RuleContainerInsideContainer,
					Severity: SeverityError,
					Location: path.Location,
					Tokens:   tokenNames(containers),
					Ancestor: anc.Name,
				}}
			}
		}
	}
	return nil
}

// CheckElement applies the element-level rules to one markup class list.
// Markup has no combinators, so only the same-element rules apply: a
// modifier or private class must co-occur with a container class.
func CheckElement(classes []string, loc Location, conv *Convention) []Violation {
	var tokens []ClassToken
	for _, name := range classes {
		tokens = appendToken(tokens, Classify(name, conv))
	}
	c := Compound{Tokens: tokens}

	var out []Violation
	if c.HasKind(KindContainer) {
		if conv.RuleEnabled(RuleMultipleContainers) {
			if containers := c.Containers(); len(containers) > 1 {
				out = append(out, Violation{
					Rule:     RuleMultipleContainers,
					Severity: SeverityError,
					Location: loc,
					Tokens:   tokenNames(containers),
				})
			}
		}
		return out
	}

	if conv.RuleEnabled(RuleModifierWithoutContainer) {
		if mods := tokensOfKind(c, KindModifier); len(mods) > 0 {
			out = append(out, Violation{
				Rule:     RuleModifierWithoutContainer,
				Severity: SeverityError,
				Location: loc,
				Tokens:   mods,
			})
		}
	}
	if conv.RuleEnabled(RulePrivateWithoutContainer) {
		if privates := tokensOfKind(c, KindPrivate); len(privates) > 0 {
			out = append(out, Violation{
				Rule:     RulePrivateWithoutContainer,
				Severity: SeverityError,
				Location: loc,
				Tokens:   privates,
			})
		}
	}
	return out
}

// nearestContainerAncestor walks from the compound at index toward the
// root and returns the first container token found.
func nearestContainerAncestor(path SelectorPath, index int) (ClassToken, bool) {
	for i := index - 1; i >= 0; i-- {
		if containers := path.Steps[i].Compound.Containers(); len(containers) > 0 {
			return containers[0], true
		}
	}
	return ClassToken{}, false
}

func tokensOfKind(c Compound, k Kind) []string {
	var out []string
	for _, t := range c.Tokens {
		if t.Kind == k {
			out = append(out, t.Name)
		}
	}
	return out
}

func tokenNames(tokens []ClassToken) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Name
	}
	return out
}
