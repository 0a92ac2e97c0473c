// Package registry classifies exported TypeScript classes into the view and
// model registries and renders their import and tuple lines.
//
// View classes are keyed by their identifier. Model classes are keyed by
// their path below src/model with "/" replaced by "." and the extension
// removed ("user/Profile.ts" → "user.Profile"), and imported under an alias
// with "/" replaced by "_" ("user_Profile") so equal class names in
// different directories do not collide.
package registry

import "fmt"

// Role is the registry a class belongs to.
type Role string

const (
	// RoleView marks classes declared under src/view.
	RoleView Role = "view"
	// RoleModel marks classes declared under src/model.
	RoleModel Role = "model"
)

// Entry is one registered class.
type Entry struct {
	Role   Role   `json:"role" yaml:"role"`
	Name   string `json:"name" yaml:"name"`     // exported class identifier
	Key    string `json:"key" yaml:"key"`       // registry lookup key
	Alias  string `json:"alias" yaml:"alias"`   // local binding in the generated module
	Module string `json:"module" yaml:"module"` // "@/"-rooted import specifier
	Path   string `json:"path" yaml:"path"`     // source path relative to the project, slash separated
}

// ImportLine returns the import statement binding the class.
func (e Entry) ImportLine() string {
	if e.Role == RoleModel {
		return fmt.Sprintf("import { %s as %s } from %q;", e.Name, e.Alias, e.Module)
	}
	return fmt.Sprintf("import { %s } from %q;", e.Name, e.Module)
}

// TupleLine returns the [key, alias] registry tuple.
func (e Entry) TupleLine() string {
	return fmt.Sprintf("[%q, %s]", e.Key, e.Alias)
}

// Registry holds entries in scan order.
type Registry struct {
	entries []Entry

	// byKey maps registry keys to entry indexes.
	// Note: on duplicate keys the last registered entry wins, mirroring the
	// runtime lookup of the generated array.
	byKey map[string]int

	// byName maps class identifiers to entry indexes (last registered wins).
	byName map[string]int
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byKey:  make(map[string]int),
		byName: make(map[string]int),
	}
}

// Register appends an entry. Duplicate keys are kept in the entry list.
func (r *Registry) Register(e Entry) {
	r.entries = append(r.entries, e)
	idx := len(r.entries) - 1
	r.byKey[e.Key] = idx
	r.byName[e.Name] = idx
}

// Lookup returns the entry a runtime lookup of key would find.
func (r *Registry) Lookup(key string) (Entry, bool) {
	idx, ok := r.byKey[key]
	if !ok {
		return Entry{}, false
	}
	return r.entries[idx], true
}

// Resolve finds an entry by registry key, falling back to the class name.
func (r *Registry) Resolve(ref string) (Entry, bool) {
	if e, ok := r.Lookup(ref); ok {
		return e, true
	}
	idx, ok := r.byName[ref]
	if !ok {
		return Entry{}, false
	}
	return r.entries[idx], true
}

// Entries returns all entries in scan order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Count returns the number of entries, duplicates included.
func (r *Registry) Count() int {
	return len(r.entries)
}

// CountByRole returns the number of entries with the given role.
func (r *Registry) CountByRole(role Role) int {
	n := 0
	for _, e := range r.entries {
		if e.Role == role {
			n++
		}
	}
	return n
}

// Imports returns one import line per entry, in scan order.
func (r *Registry) Imports() []string {
	lines := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		lines = append(lines, e.ImportLine())
	}
	return lines
}

// Tuples returns one [key, alias] line per entry, in scan order.
func (r *Registry) Tuples() []string {
	lines := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		lines = append(lines, e.TupleLine())
	}
	return lines
}

// Collisions returns the keys registered more than once.
func (r *Registry) Collisions() []string {
	seen := make(map[string]int, len(r.entries))
	var dup []string
	for _, e := range r.entries {
		seen[e.Key]++
		if seen[e.Key] == 2 {
			dup = append(dup, e.Key)
		}
	}
	return dup
}
