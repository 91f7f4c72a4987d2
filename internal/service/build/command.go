package build

import (
	"context"
	"fmt"
	"time"

	"github.com/theroer/magicutils-docs/internal/config"
	"github.com/theroer/magicutils-docs/internal/logger"
	"github.com/theroer/magicutils-docs/internal/macros"
	"github.com/theroer/magicutils-docs/internal/render"
)

// Options controls a documentation build.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// DocsDir overrides the configured source tree.
	DocsDir string
	// SiteDir overrides the configured output tree.
	SiteDir string
	// Strict forces strict rendering regardless of configuration.
	Strict bool
	// Getenv looks up version sources. Defaults to os.Getenv.
	Getenv func(string) string
}

// Run renders the documentation tree with the resolved template namespace.
// Command line overrides take precedence over the configuration file.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "build")

	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if err = applyOverrides(cfg, opts); err != nil {
		return fmt.Errorf("apply overrides: %w", err)
	}

	ctx = logger.WithKV(ctx, "docs_dir", cfg.DocsDir, "site_dir", cfg.SiteDir)

	variables := macros.Build(cfg.Extra, opts.Getenv)

	docsVersion, _ := variables[macros.VersionVariable].(string)
	if docsVersion == macros.DevVersion {
		logger.WarnKV(ctx, "No version in environment, publishing fallback",
			"sources", []string{macros.EnvMikeVersion, macros.EnvRefName},
			"version", docsVersion)
	} else {
		logger.InfoKV(ctx, "Resolved documentation version",
			"version", docsVersion,
			"release", macros.IsRelease(docsVersion))
	}

	renderer := render.New(
		render.WithExtensions(cfg.TemplateExtensions...),
		render.WithStrict(cfg.Strict),
		render.WithWorkers(cfg.Workers),
	)

	started := time.Now()

	report, err := renderer.RenderTree(ctx, cfg.DocsDir, cfg.SiteDir, variables)
	if err != nil {
		return fmt.Errorf("render %s: %w", cfg.DocsDir, err)
	}

	logger.InfoKV(ctx, "Documentation built",
		"rendered", report.Rendered,
		"copied", report.Copied,
		"elapsed", time.Since(started).String())

	return nil
}

// applyOverrides copies non-empty CLI values into cfg and validates the result.
func applyOverrides(cfg *config.Config, opts *Options) error {
	if opts.DocsDir != "" {
		cfg.DocsDir = opts.DocsDir
	}

	if opts.SiteDir != "" {
		cfg.SiteDir = opts.SiteDir
	}

	if opts.Strict {
		cfg.Strict = true
	}

	return config.Validate(cfg)
}
