// Package vars implements the "vars" command: it builds the template
// namespace for a documentation build and prints it as YAML, JSON or a table.
package vars
