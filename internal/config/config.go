package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the documentation build settings.
type Config struct {
	// DocsDir is the source tree with documentation pages.
	DocsDir string `yaml:"docs_dir"`
	// SiteDir is the output tree written by a build.
	SiteDir string `yaml:"site_dir"`
	// TemplateExtensions lists file extensions rendered as templates.
	// Other files are copied unchanged.
	TemplateExtensions []string `yaml:"template_extensions"`
	// Strict fails the build when a page references an undefined variable.
	Strict bool `yaml:"strict"`
	// Workers limits how many pages are rendered concurrently.
	Workers int `yaml:"workers"`
	// Extra holds static template variables.
	Extra map[string]any `yaml:"extra,omitempty"`
}

const (
	// DefaultConfigFilename is the default filename for build settings.
	DefaultConfigFilename = "magicutils-docs.yaml"

	// DefaultDocsDir is the default documentation source tree.
	DefaultDocsDir = "docs"

	// DefaultSiteDir is the default output tree.
	DefaultSiteDir = "site"

	// DefaultWorkers is the default number of concurrent page renders.
	DefaultWorkers = 4

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// ErrSameDirs is returned when the docs and site directories are the same.
	ErrSameDirs = errors.New("docs_dir and site_dir must differ")
	// ErrSiteInsideDocs is returned when site_dir is nested inside docs_dir.
	ErrSiteInsideDocs = errors.New("site_dir must not be inside docs_dir")
	// ErrDocsInsideSite is returned when docs_dir is nested inside site_dir.
	ErrDocsInsideSite = errors.New("docs_dir must not be inside site_dir")
	// ErrNegativeWorkers is returned for a negative workers value.
	ErrNegativeWorkers = errors.New("workers must not be negative")
	// ErrBadExtension is returned for an extension without a leading dot.
	ErrBadExtension = errors.New("template extension must start with a dot")
)

// DefaultTemplateExtensions returns the extensions rendered when none are configured.
func DefaultTemplateExtensions() []string {
	return []string{".md"}
}

// Default returns validated settings with every default applied.
func Default() *Config {
	cfg := new(Config)

	// Defaults alone always validate.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault behaves like Load, but returns Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults and checks the provided settings for consistency.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.DocsDir == "" {
		settings.DocsDir = DefaultDocsDir
	}

	if settings.SiteDir == "" {
		settings.SiteDir = DefaultSiteDir
	}

	if len(settings.TemplateExtensions) == 0 {
		settings.TemplateExtensions = DefaultTemplateExtensions()
	}

	if settings.Workers < 0 {
		return ErrNegativeWorkers
	}

	if settings.Workers == 0 {
		settings.Workers = DefaultWorkers
	}

	for _, ext := range settings.TemplateExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: %q", ErrBadExtension, ext)
		}
	}

	return validateDirs(settings.DocsDir, settings.SiteDir)
}

// validateDirs rejects output trees that would overwrite or be read back as sources.
func validateDirs(docsDir, siteDir string) error {
	docs, err := filepath.Abs(docsDir)
	if err != nil {
		return fmt.Errorf("resolve docs_dir: %w", err)
	}

	site, err := filepath.Abs(siteDir)
	if err != nil {
		return fmt.Errorf("resolve site_dir: %w", err)
	}

	if docs == site {
		return ErrSameDirs
	}

	if isNested(docs, site) {
		return ErrSiteInsideDocs
	}

	if isNested(site, docs) {
		return ErrDocsInsideSite
	}

	return nil
}

// isNested reports whether the absolute path inner lies under outer.
func isNested(outer, inner string) bool {
	rel, err := filepath.Rel(outer, inner)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
