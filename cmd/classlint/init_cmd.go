package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .classlint.yaml config file",
	Long:  `Create a .classlint.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".classlint.yaml"); err == nil && !force {
			return fmt.Errorf(".classlint.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".classlint.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created .classlint.yaml")
		return nil
	},
}

const defaultConfig = `# classlint configuration
# Docs: https://github.com/yacobolo/classlint

# Shared settings
verbose: false

# Convention settings
convention:
  container-prefixes:
    c-: component
    g-: global
    l-: layout
    m-: module
  modifier-prefixes:
    - "has-"
    - "is-"
  private-prefix: "_"
  disabled-rules: []       # rule ids, see 'classlint rules'

# Linting settings
lint:
  paths:
    - "web/styles/**/*.scss"
    - "web/styles/**/*.css"
    - "web/templates/**/*.html"
    - "internal/web/**/*.templ"
  strict: false
  workers: 0               # 0 = number of CPUs
  output-format: issues    # issues | summary | full | json
  max-issues: 0            # 0 = unlimited
  print-lines: true
  print-linter-name: true
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
