package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/theroer/magicutils-docs/internal/service/vars"
)

// newVarsCmd returns the command that prints the template namespace.
func newVarsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "vars",
		Short: "Print the variables available to page templates.",
		Long: `Build the template namespace exactly as "build" does and print it.

Static variables come from the "extra" section of the configuration file.
The magicutils_version variable is resolved from the environment and always
overrides a static value with the same name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return vars.Run(cmd.Context(), &vars.Options{
				ConfigPath: configPath,
				Format:     format,
				Output:     cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", vars.FormatYAML,
		"output format ("+strings.Join(vars.Formats(), ", ")+")")

	return cmd
}
