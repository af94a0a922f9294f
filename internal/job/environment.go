package job

import (
	"slices"
	"strings"
)

// Environment collects overrides applied on top of the inherited process
// environment: a variable is either set to a value or explicitly unset.
// The zero value is an empty set of overrides.
type Environment struct {
	vars map[string]*string
}

// Set overrides (or adds) a variable for the process.
func (e *Environment) Set(name, value string) {
	if e.vars == nil {
		e.vars = make(map[string]*string)
	}
	e.vars[name] = &value
}

// Unset removes a variable from the inherited environment.
func (e *Environment) Unset(name string) {
	if e.vars == nil {
		e.vars = make(map[string]*string)
	}
	e.vars[name] = nil
}

// IsEmpty reports whether there are no overrides at all.
func (e *Environment) IsEmpty() bool {
	return len(e.vars) == 0
}

// apply merges the overrides into base (entries in "NAME=value" form) and
// returns the effective environment for the process.
func (e *Environment) apply(base []string) []string {
	if e.IsEmpty() {
		return base
	}

	merged := make([]string, 0, len(base)+len(e.vars))
	for _, kv := range base {
		name, _, _ := strings.Cut(kv, "=")
		if _, overridden := e.vars[name]; overridden {
			continue
		}
		merged = append(merged, kv)
	}

	for name, value := range e.vars {
		if value != nil {
			merged = append(merged, name+"="+*value)
		}
	}

	return merged
}

// A FileSpec designates the input or output files appended to the command
// line: none, a single name, or an ordered list. The zero value designates
// no files.
type FileSpec struct {
	names []string
}

// NoFile returns the empty designator.
func NoFile() FileSpec {
	return FileSpec{}
}

// File designates a single file name.
func File(name string) FileSpec {
	return FileSpec{names: []string{name}}
}

// Files designates an ordered list of file names.
func Files(names ...string) FileSpec {
	return FileSpec{names: slices.Clone(names)}
}

// IsSet reports whether the designator names any files.
func (f FileSpec) IsSet() bool {
	return len(f.names) > 0
}

// Names returns the designated file names in order.
func (f FileSpec) Names() []string {
	return slices.Clone(f.names)
}

func (f FileSpec) appendTo(argv []string) []string {
	return append(argv, f.names...)
}
