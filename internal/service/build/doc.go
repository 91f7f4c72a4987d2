// Package build implements the "build" command: it resolves the template
// namespace once and renders the documentation source tree into the site tree.
package build
