package macros

import (
	"maps"
	"slices"

	"github.com/mitchellh/copystructure"
)

// Variables is the namespace exposed to page templates during a build.
type Variables map[string]any

// NewVariables returns a namespace seeded with a copy of extra.
func NewVariables(extra map[string]any) Variables {
	vars := make(Variables, len(extra)+1)
	maps.Copy(vars, extra)

	return vars
}

// Build returns the namespace for one documentation build:
// the static extra variables plus the resolved documentation version.
func Build(extra map[string]any, getenv func(string) string) Variables {
	vars := NewVariables(extra)
	DefineEnv(vars, getenv)

	return vars
}

// Clone returns a deep copy of the namespace, including nested maps and slices.
// Templates may modify the copy without affecting v.
func (v Variables) Clone() Variables {
	if v == nil {
		return nil
	}

	copied, err := copystructure.Copy(map[string]any(v))
	if err != nil {
		// Values copystructure cannot walk are shared, but the top level is still private.
		return maps.Clone(v)
	}

	vars, ok := copied.(map[string]any)
	if !ok {
		return maps.Clone(v)
	}

	return vars
}

// Keys returns the variable names in sorted order.
func (v Variables) Keys() []string {
	return slices.Sorted(maps.Keys(v))
}
