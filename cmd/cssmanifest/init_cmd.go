package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .cssmanifest.yaml config file",
	Long:  `Create a .cssmanifest.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# cssmanifest configuration
# Docs: https://github.com/yacobolo/cssmanifest

verbose: false

# Prefix root for image references. Root-relative references (/img/a.png)
# resolve to base-dir + reference; others resolve against the stylesheet's
# directory joined with base-dir.
base-dir: ""

# Extensions recorded in the manifest. An empty list records every extension.
extensions-allowed:
  - png
  - jpg
  - jpeg
  - gif
  - svg

build:
  source: ""
  include:
    - "**/*.css"
  dest: ""                 # empty = write manifest.json next to the stylesheets
  log-format: pretty       # pretty | json
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
