package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/swiftgg/docmigrate/internal/anchors"
	"github.com/swiftgg/docmigrate/internal/output"
	"github.com/swiftgg/docmigrate/internal/svcctx"
)

var (
	redirectsTable  string
	redirectsOut    string
	redirectsExport bool
	redirectsReport bool
	redirectsPages  pageFlags
)

var redirectsCmd = &cobra.Command{
	Use:   "redirects",
	Short: "Map legacy stable anchor IDs to the new build's anchors",
	Long: `Reads the legacy anchor table (tab-separated: stable ID, legacy name,
new name, with a header line) and fills in the new name of every row whose
legacy name can be matched against the anchors of the new build.

Legacy names look like "chapter-section". A name matches an anchor when the
section equals the anchor and the chapter equals the page, ignoring case and
'-' characters. Names containing '/' span chapters and are left untouched.

Overwritten new names, ambiguous matches and skipped names are logged to
stderr. The table is written only if the whole run succeeds.

Examples:
  docmigrate redirects --table ids.tsv --pages build/data/documentation/tspl
  docmigrate redirects --table ids.tsv --chapters chapters --save --out redirects.tsv
  docmigrate redirects --table ids.tsv --pages site --format html --report -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc := svcctx.ServicesFrom(ctx)
		cfg, h, logger := svc.Config, svc.Home, svc.Logger

		table, err := readTable(redirectsTable)
		if err != nil {
			return err
		}

		src, err := redirectsPages.source(svc)
		if err != nil {
			return err
		}
		records, err := src.Anchors(ctx)
		if err != nil {
			return err
		}

		res := anchors.Reconcile(table, records, cfg.ReconcileOptions())
		anchors.LogEvents(logger, res.Events)

		var buf bytes.Buffer
		if err := anchors.WriteTable(&buf, res.Header, res.Rows); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		dest := "stdout"
		if redirectsOut != "" && redirectsOut != "-" {
			dest = redirectsOut
			if err := os.WriteFile(redirectsOut, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", redirectsOut, err)
			}
		} else if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
			return err
		}

		report := output.NewRedirectsReport(redirectsTable, dest, len(records), res)
		if redirectsExport {
			if err := h.EnsureExists(); err != nil {
				return err
			}
			path := filepath.Join(h.ExportsDir(), "redirects-"+newRunID()+".tsv")
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to export table: %w", err)
			}
			logger.Info("exported table", "path", path)
			report.Export = path
		}

		logger.Info("reconciled anchors",
			"rows", res.Stats.Rows,
			"matched", res.Stats.Matched,
			"unmatched", res.Stats.Unmatched,
			"skipped", res.Stats.Skipped,
			"overwritten", res.Stats.Overwritten,
			"ambiguous", res.Stats.Ambiguous,
		)

		if redirectsReport {
			return output.Fprint(cmd.ErrOrStderr(), report)
		}
		return nil
	},
}

// readTable opens and parses the legacy anchor table.
func readTable(path string) (*anchors.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open legacy table: %w", err)
	}
	defer f.Close()

	table, err := anchors.ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

func init() {
	redirectsCmd.Flags().StringVar(&redirectsTable, "table", "", "legacy anchor table (TSV)")
	redirectsCmd.Flags().StringVar(&redirectsOut, "out", "", "write the reconciled table to this file instead of stdout")
	redirectsCmd.Flags().BoolVar(&redirectsExport, "export", false, "also save a copy under the home exports directory")
	redirectsCmd.Flags().BoolVar(&redirectsReport, "report", false, "print stats and events to stderr in the --output format")
	redirectsPages.register(redirectsCmd)
	_ = redirectsCmd.MarkFlagRequired("table")

	rootCmd.AddCommand(redirectsCmd)
}
