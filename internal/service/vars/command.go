package vars

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/theroer/magicutils-docs/internal/config"
	"github.com/theroer/magicutils-docs/internal/logger"
	"github.com/theroer/magicutils-docs/internal/macros"
)

const (
	// FormatYAML prints the namespace as a YAML mapping.
	FormatYAML = "yaml"
	// FormatJSON prints the namespace as an indented JSON object.
	FormatJSON = "json"
	// FormatTable prints the namespace as a human-readable table.
	FormatTable = "table"
)

// Options controls how the template namespace is printed.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Format selects the output encoding: yaml, json or table.
	Format string
	// Output receives the encoded namespace. Defaults to stdout.
	Output io.Writer
	// Getenv looks up version sources. Defaults to os.Getenv.
	Getenv func(string) string
}

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the supported output formats.
func Formats() []string {
	return []string{FormatYAML, FormatJSON, FormatTable}
}

// Run builds the template namespace and writes it to opts.Output.
func Run(ctx context.Context, opts *Options) error {
	ctx = quietContext(logger.WithName(ctx, "vars"), logger.Level())

	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	variables := macros.Build(cfg.Extra, opts.Getenv)

	logger.DebugKV(ctx, "Resolved documentation version", "version", variables[macros.VersionVariable])

	return Write(out, opts.Format, variables)
}

// quietContext raises the context logger to warn level so informational logs
// stay out of the way of piped output. A stricter current level is kept.
func quietContext(ctx context.Context, current zapcore.Level) context.Context {
	if current >= zapcore.WarnLevel {
		return ctx
	}

	return logger.ToContext(ctx, logger.FromContext(ctx).WithOptions(logger.WithLevel(zapcore.WarnLevel)))
}

// Write encodes variables to w in the requested format. An empty format means yaml.
func Write(w io.Writer, format string, variables macros.Variables) error {
	switch format {
	case FormatYAML, "":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		if err := encoder.Encode(map[string]any(variables)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		if err := encoder.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(stringKeys(map[string]any(variables))); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatTable:
		writeTable(w, variables)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return nil
}

// writeTable renders variables as a two-column table sorted by name.
func writeTable(w io.Writer, variables macros.Variables) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Variable", "Value"})

	for _, key := range variables.Keys() {
		t.AppendRow(table.Row{key, fmt.Sprint(variables[key])})
	}

	t.Render()
}

// stringKeys converts YAML mappings with non-string keys, such as {1: old},
// into map[string]any so they can be encoded as JSON objects.
func stringKeys(value any) any {
	switch v := value.(type) {
	case map[string]any:
		converted := make(map[string]any, len(v))
		for key, item := range v {
			converted[key] = stringKeys(item)
		}

		return converted
	case map[any]any:
		converted := make(map[string]any, len(v))
		for key, item := range v {
			converted[fmt.Sprint(key)] = stringKeys(item)
		}

		return converted
	case []any:
		converted := make([]any, len(v))
		for i, item := range v {
			converted[i] = stringKeys(item)
		}

		return converted
	default:
		return value
	}
}
