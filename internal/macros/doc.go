// Package macros defines the template variables published to documentation pages.
//
// DefineEnv is the build hook: it resolves the documentation version from
// MIKE_VERSION or GITHUB_REF_NAME and stores it in a Variables namespace
// under the magicutils_version key. ResolveVersion is the pure core of that
// hook and takes both sources as plain strings.
package macros
