package macros

import (
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const (
	// EnvMikeVersion is set by mike when it deploys a documentation version.
	EnvMikeVersion = "MIKE_VERSION"
	// EnvRefName is the branch or tag name provided by GitHub Actions.
	EnvRefName = "GITHUB_REF_NAME"

	// VersionVariable is the template variable holding the documentation version.
	VersionVariable = "magicutils_version"
	// DevVersion is published when no version source is available.
	DevVersion = "dev"

	// versionPrefix is stripped once from the front of a tag name.
	versionPrefix = "v"
)

// ResolveVersion picks the documentation version from the mike version and
// the git ref name. The mike version wins unless it is empty.
// A single leading "v" is removed, and an empty result becomes DevVersion.
func ResolveVersion(mikeVersion, refName string) string {
	version := mikeVersion
	if version == "" {
		version = refName
	}

	version = strings.TrimPrefix(version, versionPrefix)
	if version == "" {
		return DevVersion
	}

	return version
}

// DefineEnv resolves the documentation version using getenv and publishes it
// into vars under VersionVariable. A nil getenv reads the process environment.
// No other key of vars is touched.
func DefineEnv(vars Variables, getenv func(string) string) {
	if vars == nil {
		return
	}

	if getenv == nil {
		getenv = os.Getenv
	}

	vars[VersionVariable] = ResolveVersion(getenv(EnvMikeVersion), getenv(EnvRefName))
}

// IsRelease reports whether version is a semantic version such as "1.2.3"
// or "2.0.0-rc1". Branch names and DevVersion are not releases.
func IsRelease(version string) bool {
	_, err := semver.StrictNewVersion(version)

	return err == nil
}
