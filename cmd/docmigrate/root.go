package main

import (
	"github.com/spf13/cobra"

	"github.com/swiftgg/docmigrate/internal/output"
	"github.com/swiftgg/docmigrate/internal/svcctx"
	"github.com/swiftgg/docmigrate/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "docmigrate",
	Short: "Tools for moving the book from Sphinx HTML to the new doc system",
	Long: `docmigrate supports migrating the book's online documentation from the
Sphinx-generated HTML site to the new documentation compiler output.

It provides:
  - Redirect table generation: maps legacy stable anchor IDs to new anchors
  - Anchor listing for a local build or the published site
  - Page fetching and caching for offline runs
  - In-place CDN rewriting across a tree of HTML files
  - HEAD request command generation for every chapter`,
	Version:       version.GitRelease,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.docmigrate/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "docmigrate home directory (default: ~/.docmigrate)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "summary output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	// Set output format and load services before any command runs
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		output.SetFormat(outputFormat)
		if cmd.Annotations[annotationNoServices] == "true" {
			return nil
		}
		svc, err := newServices(cmd)
		if err != nil {
			return err
		}
		cmd.SetContext(svcctx.WithServices(cmd.Context(), svc))
		return nil
	}

	rootCmd.AddCommand(versionCmd)
}
