package render

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"golang.org/x/sync/errgroup"

	"github.com/theroer/magicutils-docs/internal/logger"
	"github.com/theroer/magicutils-docs/internal/macros"
)

const (
	// defaultWorkers is used when no positive worker count is configured.
	defaultWorkers = 4

	// dirPermissions is applied to directories created in the output tree.
	dirPermissions = 0o755
	// pagePermissions is applied to files written to the output tree.
	pagePermissions = 0o644
)

// ErrSourceNotFound is returned when the source tree does not exist or is not a directory.
var ErrSourceNotFound = errors.New("source directory not found")

// Renderer renders documentation pages with a variable namespace.
type Renderer struct {
	// extensions holds lowercase file extensions treated as templates.
	extensions map[string]struct{}
	// strict makes undefined variables an execution error.
	strict bool
	// workers limits concurrent page processing.
	workers int
}

// Report summarises a RenderTree run.
type Report struct {
	// Rendered is the number of pages executed as templates.
	Rendered int
	// Copied is the number of files copied unchanged.
	Copied int
}

// Option configures renderer behaviour.
type Option func(*Renderer)

// WithExtensions sets the file extensions rendered as templates.
// Matching is case-insensitive. An empty list keeps the current set.
func WithExtensions(extensions ...string) Option {
	return func(r *Renderer) {
		if len(extensions) == 0 {
			return
		}

		r.extensions = make(map[string]struct{}, len(extensions))
		for _, ext := range extensions {
			r.extensions[strings.ToLower(ext)] = struct{}{}
		}
	}
}

// WithStrict makes references to undefined variables fail rendering.
func WithStrict(strict bool) Option {
	return func(r *Renderer) {
		r.strict = strict
	}
}

// WithWorkers sets the maximum number of pages processed concurrently.
func WithWorkers(workers int) Option {
	return func(r *Renderer) {
		if workers > 0 {
			r.workers = workers
		}
	}
}

// New creates a renderer. By default only ".md" files are templates.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		extensions: map[string]struct{}{".md": {}},
		workers:    defaultWorkers,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RenderString executes text as a template with a private copy of vars as its data.
// Sprig text functions are available to the template. Functions such as
// set or unset only change the copy, so vars stays the same for every page.
func (r *Renderer) RenderString(name, text string, vars macros.Variables) (string, error) {
	missingKey := "missingkey=default"
	if r.strict {
		missingKey = "missingkey=error"
	}

	tmpl, err := template.New(name).
		Funcs(sprig.TxtFuncMap()).
		Option(missingKey).
		Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}

	var sb strings.Builder
	if err = tmpl.Execute(&sb, vars.Clone()); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}

	return sb.String(), nil
}

// RenderTree renders every template file under src into dst and copies the
// remaining files, keeping relative paths. The first failure stops the run.
func (r *Renderer) RenderTree(ctx context.Context, src, dst string, vars macros.Variables) (*Report, error) {
	src = filepath.Clean(src)
	dst = filepath.Clean(dst)

	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, src)
		}

		return nil, fmt.Errorf("stat source: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrSourceNotFound, src)
	}

	pages, err := collectFiles(src)
	if err != nil {
		return nil, err
	}

	var (
		rendered, copied atomic.Int64
		group, groupCtx  = errgroup.WithContext(ctx)
	)

	group.SetLimit(r.workers)

	for _, rel := range pages {
		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			isTemplate, err := r.processFile(src, dst, rel, vars)
			if err != nil {
				return err
			}

			if isTemplate {
				rendered.Add(1)
				logger.DebugKV(groupCtx, "Rendered page", "page", rel)
			} else {
				copied.Add(1)
				logger.DebugKV(groupCtx, "Copied file", "file", rel)
			}

			return nil
		})
	}

	if err = group.Wait(); err != nil {
		return nil, err
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	return &Report{
		Rendered: int(rendered.Load()),
		Copied:   int(copied.Load()),
	}, nil
}

// isTemplate reports whether rel has one of the template extensions.
func (r *Renderer) isTemplate(rel string) bool {
	_, ok := r.extensions[strings.ToLower(filepath.Ext(rel))]

	return ok
}

// processFile renders or copies one file from src to dst.
func (r *Renderer) processFile(src, dst, rel string, vars macros.Variables) (bool, error) {
	contents, err := os.ReadFile(filepath.Join(src, rel))
	if err != nil {
		return false, fmt.Errorf("read %s: %w", rel, err)
	}

	isTemplate := r.isTemplate(rel)
	if isTemplate {
		page, err := r.RenderString(filepath.ToSlash(rel), string(contents), vars)
		if err != nil {
			return false, err
		}

		contents = []byte(page)
	}

	out := filepath.Join(dst, rel)
	if err = os.MkdirAll(filepath.Dir(out), dirPermissions); err != nil {
		return false, fmt.Errorf("create directory for %s: %w", rel, err)
	}

	if err = os.WriteFile(out, contents, pagePermissions); err != nil {
		return false, fmt.Errorf("write %s: %w", rel, err)
	}

	return isTemplate, nil
}

// collectFiles lists regular files under root as paths relative to root.
func collectFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		files = append(files, rel)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return files, nil
}
