package main

import (
	"github.com/spf13/cobra"

	"github.com/swiftgg/docmigrate/internal/output"
	"github.com/swiftgg/docmigrate/internal/pages"
	"github.com/swiftgg/docmigrate/internal/svcctx"
)

var (
	fetchChapters string
	fetchFormat   string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download chapter pages into the local page cache",
	Long: `Downloads every listed chapter from the published site and stores the
raw pages under <home>/pages/<run-id>/. The cache directory can then be
passed to other commands with --pages.

Examples:
  docmigrate fetch --chapters chapters
  docmigrate fetch --chapters chapters --format html`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := svcctx.ServicesFrom(cmd.Context())
		cfg, logger := svc.Config, svc.Logger

		format := cfg.PageFormat()
		if fetchFormat != "" {
			var err error
			if format, err = pages.ParseFormat(fetchFormat); err != nil {
				return err
			}
		}
		chapters, err := readChapters(fetchChapters)
		if err != nil {
			return err
		}

		fetched, err := newFetcher(cfg, format, logger).FetchAll(cmd.Context(), chapters)
		if err != nil {
			return err
		}

		runID := newRunID()
		dir := svc.Home.RunPagesDir(runID)
		if err := pages.SavePages(nil, dir, fetched); err != nil {
			return err
		}
		logger.Info("saved pages", "dir", dir, "count", len(fetched))

		return output.Fprint(cmd.OutOrStdout(), output.NewFetchReport(runID, dir, fetched))
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchChapters, "chapters", "", "chapter list file")
	fetchCmd.Flags().StringVar(&fetchFormat, "format", "", "page format: json or html (default from config)")
	_ = fetchCmd.MarkFlagRequired("chapters")

	rootCmd.AddCommand(fetchCmd)
}
