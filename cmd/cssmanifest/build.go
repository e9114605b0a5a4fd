package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/cssmanifest"
	"github.com/yacobolo/cssmanifest/internal/manifest"
)

var buildCmd = &cobra.Command{
	Use:   "build [patterns...]",
	Short: "Generate manifest.json from stylesheets",
	Long: `Scan stylesheets matching the include patterns for url(...) references,
resolve local images and write manifest.json sorted by size, largest first.
Positional patterns replace the configured include patterns.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.String("source", "", "Directory include patterns are relative to")
	f.StringSlice("include", nil, "Glob patterns for stylesheets to scan")
	f.String("dest", "", "Copy stylesheets and write the manifest into this directory")
	f.String("base-dir", "", "Base directory for resolving image references")
	f.StringSlice("extensions-allowed", manifest.DefaultExtensions, "Image extensions to record (empty = all)")
	f.String("log-format", "pretty", "Verbose log format: pretty|json")
}

func runBuild(cmd *cobra.Command, args []string) error {
	config, err := buildBuildConfig()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		config.Includes = args
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	reporter := manifest.NewReporter(cmd.OutOrStdout(), getBoolWithFallback("color", "color", false))

	config.LogOutput = cmd.ErrOrStderr()
	config.NoColor = !reporter.UseColors()

	result, err := cssmanifest.Build(config)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if !quiet {
		if result.ManifestPath != "" {
			reporter.PrintManifest(result.ManifestPath, result.Manifest)
		}
		reporter.PrintErrors(result.Errors)
	}

	if len(result.Errors) > 0 {
		if quiet {
			os.Exit(1)
		}
		return fmt.Errorf("%d stylesheet(s) could not be processed", len(result.Errors))
	}
	return nil
}
