package main

import (
	"github.com/spf13/cobra"

	"github.com/swiftgg/docmigrate/internal/output"
	"github.com/swiftgg/docmigrate/internal/rewrite"
	"github.com/swiftgg/docmigrate/internal/svcctx"
)

var (
	cdnDryRun     bool
	cdnExtensions []string
)

var cdnCmd = &cobra.Command{
	Use:   "cdn [dir]",
	Short: "Rewrite CDN references across a tree of HTML files",
	Long: `Walks dir (default: the current directory) and applies the configured
replacements to every file with a matching extension, writing changed files
back in place. The default replacements move the ace editor scripts from
cdnjs.cloudflare.com to cdn.bootcss.com.

Examples:
  docmigrate cdn _book
  docmigrate cdn --dry-run -o json
  docmigrate cdn site --ext .html --ext .htm`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := svcctx.ConfigFrom(cmd.Context())

		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		exts := cfg.Rewrite.Extensions
		if len(cdnExtensions) > 0 {
			exts = cdnExtensions
		}

		rw := &rewrite.Rewriter{
			Extensions:   exts,
			Replacements: cfg.Replacements(),
			DryRun:       cdnDryRun,
			Logger:       svcctx.LoggerFrom(cmd.Context()),
		}
		report, err := rw.Run(cmd.Context(), root)
		if err != nil {
			return err
		}
		return output.Fprint(cmd.OutOrStdout(), report)
	},
}

func init() {
	cdnCmd.Flags().BoolVar(&cdnDryRun, "dry-run", false, "report changes without writing files")
	cdnCmd.Flags().StringSliceVar(&cdnExtensions, "ext", nil, "file extensions to rewrite (default from config)")

	rootCmd.AddCommand(cdnCmd)
}
