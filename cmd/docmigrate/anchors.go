package main

import (
	"github.com/spf13/cobra"

	"github.com/swiftgg/docmigrate/internal/output"
	"github.com/swiftgg/docmigrate/internal/svcctx"
)

var anchorsPages pageFlags

var anchorsCmd = &cobra.Command{
	Use:   "anchors",
	Short: "List the anchors of the new build",
	Long: `Lists every (page, anchor) pair found in the new build, either from a
local build directory or fetched from the site for each listed chapter.

Examples:
  docmigrate anchors --pages build/data/documentation/tspl
  docmigrate anchors --chapters chapters -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := svcctx.ServicesFrom(cmd.Context())
		src, err := anchorsPages.source(svc)
		if err != nil {
			return err
		}
		records, err := src.Anchors(cmd.Context())
		if err != nil {
			return err
		}
		return output.Fprint(cmd.OutOrStdout(), records)
	},
}

func init() {
	anchorsPages.register(anchorsCmd)
	rootCmd.AddCommand(anchorsCmd)
}
