package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/theroer/magicutils-docs/internal/macros"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())

	return stdout.String(), err
}

// TestVarsCmd resolves the version from the process environment.
func TestVarsCmd(t *testing.T) {
	t.Setenv(macros.EnvMikeVersion, "")
	t.Setenv(macros.EnvRefName, "v2.0.0-rc1")

	out, err := execute(t, "vars", "--format", "json", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, "2.0.0-rc1", got[macros.VersionVariable])
}

// TestRootCmd_UnknownLogLevel fails before running the subcommand.
func TestRootCmd_UnknownLogLevel(t *testing.T) {
	_, err := execute(t, "vars", "--log-level", "verbose", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "unknown log level")

	// Restore the default for other tests.
	_, err = execute(t, "version", "--log-level", "info")
	require.NoError(t, err)
}

// TestBuildCmd renders a tree using the directory flags, then fails with --strict.
func TestBuildCmd(t *testing.T) {
	t.Setenv(macros.EnvMikeVersion, "v1.2.3")
	t.Setenv(macros.EnvRefName, "main")

	var (
		dir     = t.TempDir()
		docsDir = filepath.Join(dir, "src")
		siteDir = filepath.Join(dir, "out")
		cfgPath = filepath.Join(dir, "missing.yaml")
	)

	require.NoError(t, os.MkdirAll(docsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "index.md"), []byte("MagicUtils {{ .magicutils_version }}"), 0o600))

	_, err := execute(t, "build", "--config", cfgPath, "--docs-dir", docsDir, "--site-dir", siteDir)
	require.NoError(t, err)

	page, err := os.ReadFile(filepath.Join(siteDir, "index.md"))
	require.NoError(t, err)
	require.Equal(t, "MagicUtils 1.2.3", string(page))

	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "undefined.md"), []byte("{{ .site_name }}"), 0o600))

	_, err = execute(t, "build", "--config", cfgPath, "--docs-dir", docsDir, "--site-dir", siteDir, "--strict")
	require.ErrorContains(t, err, "undefined.md")
}
