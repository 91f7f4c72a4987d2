package vars

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/theroer/magicutils-docs/internal/config"
	"github.com/theroer/magicutils-docs/internal/logger"
	"github.com/theroer/magicutils-docs/internal/macros"
)

// refTagEnv simulates a GitHub Actions tag build without mike.
func refTagEnv(key string) string {
	if key == macros.EnvRefName {
		return "v2.0.0"
	}

	return ""
}

// writeConfig stores a config with extra variables and returns its path.
func writeConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultConfigFilename)

	require.NoError(t, config.Save(path, &config.Config{
		DocsDir: filepath.Join(dir, "docs"),
		SiteDir: filepath.Join(dir, "site"),
		Extra: map[string]any{
			"site_name": "MagicUtils",
		},
	}))

	return path
}

// TestRun_YAML prints configured extras plus the resolved version.
func TestRun_YAML(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		ConfigPath: writeConfig(t),
		Output:     &out,
		Getenv:     refTagEnv,
	})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	require.Equal(t, map[string]any{
		macros.VersionVariable: "2.0.0",
		"site_name":            "MagicUtils",
	}, got)
}

// TestRun_MissingConfigUsesDefaults falls back to defaults without a config file.
func TestRun_MissingConfigUsesDefaults(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
		Format:     FormatJSON,
		Output:     &out,
		Getenv:     func(string) string { return "" },
	})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Equal(t, map[string]any{macros.VersionVariable: macros.DevVersion}, got)
}

// TestRun_BrokenConfig surfaces configuration errors.
func TestRun_BrokenConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: -3\n"), config.DefaultFilePermissions))

	err := Run(context.Background(), &Options{ConfigPath: path, Output: new(bytes.Buffer)})
	require.ErrorIs(t, err, config.ErrNegativeWorkers)
}

// TestWrite_Table renders a sorted table with every variable.
func TestWrite_Table(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	require.NoError(t, Write(&out, FormatTable, macros.Variables{
		"site_name":            "MagicUtils",
		macros.VersionVariable: "1.2.3",
	}))

	text := out.String()
	require.Contains(t, text, "VARIABLE")
	require.Contains(t, text, "magicutils_version")
	require.Contains(t, text, "1.2.3")
	require.Less(t, bytes.Index(out.Bytes(), []byte("magicutils_version")), bytes.Index(out.Bytes(), []byte("site_name")))
}

// TestWrite_UnknownFormat rejects unsupported formats.
func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := Write(new(bytes.Buffer), "toml", macros.Variables{})
	require.ErrorIs(t, err, ErrUnknownFormat)
}

// TestRun_JSONWithNonStringKeys encodes extra mappings whose YAML keys are numbers.
func TestRun_JSONWithNonStringKeys(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte(
		"docs_dir: "+filepath.Join(dir, "docs")+"\n"+
			"site_dir: "+filepath.Join(dir, "site")+"\n"+
			"extra:\n  versions:\n    1: old\n    2: [legacy, {3: oldest}]\n"),
		config.DefaultFilePermissions))

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		ConfigPath: path,
		Format:     FormatJSON,
		Output:     &out,
		Getenv:     refTagEnv,
	})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Equal(t, map[string]any{
		"1": "old",
		"2": []any{"legacy", map[string]any{"3": "oldest"}},
	}, got["versions"])
}

// TestQuietContext raises verbose levels to warn and keeps stricter ones.
func TestQuietContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := logger.ToContext(context.Background(), logger.NewWithSink(zapcore.AddSync(&buf), zapcore.ErrorLevel))

	// Error level stays untouched, so warnings remain hidden.
	quiet := quietContext(ctx, zapcore.ErrorLevel)
	require.Same(t, logger.FromContext(ctx), logger.FromContext(quiet))

	logger.WarnKV(quiet, "hidden warning")
	require.NotContains(t, buf.String(), "hidden warning")

	// Info level is raised to warn.
	quiet = quietContext(ctx, zapcore.InfoLevel)
	logger.InfoKV(quiet, "hidden info")
	logger.WarnKV(quiet, "shown warning")

	require.NotContains(t, buf.String(), "hidden info")
	require.Contains(t, buf.String(), "shown warning")
}
