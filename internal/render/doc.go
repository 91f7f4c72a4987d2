// Package render executes documentation pages as Go text templates.
//
// A Renderer walks a source tree, renders files with template extensions
// using a macros.Variables namespace as template data, and copies every
// other file unchanged. Pages are processed concurrently.
package render
