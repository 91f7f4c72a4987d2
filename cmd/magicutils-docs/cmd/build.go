package cmd

import (
	"github.com/spf13/cobra"

	"github.com/theroer/magicutils-docs/internal/service/build"
)

// newBuildCmd returns the command that renders the documentation tree.
func newBuildCmd() *cobra.Command {
	opts := new(build.Options)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render documentation pages with the template variables.",
		Long: `Render every template page of the docs directory into the site directory.

Files with a template extension are executed as Go templates with the
namespace shown by "vars". Other files are copied unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.ConfigPath = configPath

			return build.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.DocsDir, "docs-dir", "", "documentation source directory (overrides config)")
	cmd.Flags().StringVar(&opts.SiteDir, "site-dir", "", "output directory (overrides config)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail on undefined template variables")

	return cmd
}
