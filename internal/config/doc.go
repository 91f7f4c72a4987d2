// Package config defines the documentation build settings and provides
// helpers to load, validate and save them in YAML format.
//
// The Config type holds the source and output trees, the template file
// extensions, rendering options and static extra variables.
package config
