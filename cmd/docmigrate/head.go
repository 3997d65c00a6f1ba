package main

import (
	"github.com/spf13/cobra"

	"github.com/swiftgg/docmigrate/internal/emit"
	"github.com/swiftgg/docmigrate/internal/svcctx"
)

var (
	headChapters string
	headBaseURL  string
	headTemplate string
)

var headCmd = &cobra.Command{
	Use:   "head",
	Short: "Print a HEAD request command for every chapter",
	Long: `Prints one shell command per chapter without running it. The default
command is a curl HEAD request against the chapter's page on the site; use
--template to print something else. Template fields: {{.Chapter}}, {{.URL}};
the shellquote function quotes a value for the shell.

Examples:
  docmigrate head --chapters chapters | sh
  docmigrate head --chapters chapters --template 'wget -q {{.URL}}'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := svcctx.ConfigFrom(cmd.Context())
		chapters, err := readChapters(headChapters)
		if err != nil {
			return err
		}

		base := cfg.Site.BaseURL
		if headBaseURL != "" {
			base = headBaseURL
		}
		tmpl := cfg.Emit.Template
		if headTemplate != "" {
			tmpl = headTemplate
		}

		e, err := emit.New(tmpl, base)
		if err != nil {
			return err
		}
		return e.Emit(cmd.OutOrStdout(), chapters)
	},
}

func init() {
	headCmd.Flags().StringVar(&headChapters, "chapters", "", "chapter list file")
	headCmd.Flags().StringVar(&headBaseURL, "base-url", "", "site base URL (default from config)")
	headCmd.Flags().StringVar(&headTemplate, "template", "", "command template (default from config)")
	_ = headCmd.MarkFlagRequired("chapters")

	rootCmd.AddCommand(headCmd)
}
