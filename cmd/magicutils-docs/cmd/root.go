package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/theroer/magicutils-docs/internal/config"
	"github.com/theroer/magicutils-docs/internal/logger"
	"github.com/theroer/magicutils-docs/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// logLevel stores the requested minimum log level.
	logLevel string

	// rootCmd represents the base command for documentation builds.
	rootCmd = &cobra.Command{
		Use:   "magicutils-docs",
		Short: "Publish the MagicUtils version to documentation templates.",
		Long: `Resolve the documentation version and expose it to page templates.

The version comes from MIKE_VERSION, or from GITHUB_REF_NAME when MIKE_VERSION
is empty. A single leading "v" is removed, and "dev" is used when neither
variable is set. Pages reference it as {{ .magicutils_version }}.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, ok := logger.ParseLogLevel(logLevel)
			if !ok {
				return fmt.Errorf("unknown log level %q", logLevel)
			}

			logger.SetLevel(level)

			return nil
		},
	}
)

// Execute runs the magicutils-docs CLI and exits with non-zero status on error.
func Execute() {
	// Setup graceful shutdown handling.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.ErrorKV(ctx, "Command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "minimum log level (debug, info, warn, error)")

	rootCmd.AddCommand(newVarsCmd(), newBuildCmd())
	version.AttachCobraVersionCommand(rootCmd)
}
