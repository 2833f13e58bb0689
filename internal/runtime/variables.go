package runtime

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/aretw0/marionette/pkg/domain"
)

// Variables is the named integer store of a Script.
type Variables struct {
	values map[string]int
}

// NewVariables creates an empty store.
func NewVariables() *Variables {
	return &Variables{values: make(map[string]int)}
}

// Set assigns value to name.
func (v *Variables) Set(name string, value int) {
	v.values[name] = value
}

// Remove deletes name. Removing an absent name is a no-op.
func (v *Variables) Remove(name string) {
	delete(v.values, name)
}

// Get returns the value of name or ErrNotFound.
func (v *Variables) Get(name string) (int, error) {
	value, ok := v.values[name]
	if !ok {
		return 0, fmt.Errorf("variable %q: %w", name, domain.ErrNotFound)
	}
	return value, nil
}

// Contains reports whether name is set.
func (v *Variables) Contains(name string) bool {
	_, ok := v.values[name]
	return ok
}

// Value resolves a token: integer literals are returned as-is, anything else is
// looked up as a variable name.
func (v *Variables) Value(token string) (int, error) {
	if n, err := strconv.Atoi(token); err == nil {
		return n, nil
	}
	return v.Get(token)
}

// Names returns the sorted variable names.
func (v *Variables) Names() []string {
	return slices.Sorted(maps.Keys(v.values))
}

// Snapshot returns a copy of the store.
func (v *Variables) Snapshot() map[string]int {
	return maps.Clone(v.values)
}
