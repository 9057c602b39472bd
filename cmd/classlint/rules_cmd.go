package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/classlint"
)

var ruleDescriptions = map[string]string{
	classlint.RuleModifierWithoutContainer: "a modifier class (has-, is-) must share its element with a container class",
	classlint.RulePrivateWithoutContainer:  "a private class (_) is never valid standalone",
	classlint.RulePrivateNotDescendant:     "a private class must be scoped under some container ancestor",
	classlint.RuleContainerInsideContainer: "styling one container inside another is forbidden; use a modifier class",
	classlint.RuleMultipleContainers:       "an element has exactly one structural role",
	classlint.RulePrivateReuse:             "a private class should mean one thing per container (warning)",
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the convention rules and their ids",
	Long: `Print every rule id with a short description. Rule ids are stable and
can be disabled via convention.disabled-rules in .classlint.yaml.`,
	Run: func(_ *cobra.Command, _ []string) {
		for _, id := range classlint.AllRules {
			fmt.Printf("%-36s %s\n", id, ruleDescriptions[id])
		}
	},
}
