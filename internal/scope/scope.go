// Package scope implements the ordered (name, Value) binding stack described
// in spec.md §3: an inner block pushes entries and pops on exit; lookup scans
// from the most recently pushed binding backwards, so an inner `let x`
// shadows an outer one without disturbing it.
package scope

import "github.com/cwbudde/minilang/internal/value"

type binding struct {
	name string
	val  value.Value
}

// Scope is an ordered stack of bindings, exclusively owned by one
// evaluation (spec.md §5).
type Scope struct {
	bindings []binding
}

// New creates an empty Scope.
func New() *Scope { return &Scope{} }

// Len returns the current number of live bindings.
func (s *Scope) Len() int { return len(s.bindings) }

// Truncate pops bindings until Len() == n. Used by Block to restore the
// pre-block scope length on exit (spec.md §4.4, "pop until length is back
// to L").
func (s *Scope) Truncate(n int) {
	s.bindings = s.bindings[:n]
}

// Push adds a new binding on top of the stack.
func (s *Scope) Push(name string, v value.Value) {
	s.bindings = append(s.bindings, binding{name, v})
}

// Get scans from the innermost (most recently pushed) binding backwards and
// returns the first match.
func (s *Scope) Get(name string) (value.Value, bool) {
	for i := len(s.bindings) - 1; i >= 0; i-- {
		if s.bindings[i].name == name {
			return s.bindings[i].val, true
		}
	}
	return value.Value{}, false
}

// Set overwrites the innermost existing binding named name. Returns false if
// no such binding exists.
func (s *Scope) Set(name string, v value.Value) bool {
	for i := len(s.bindings) - 1; i >= 0; i-- {
		if s.bindings[i].name == name {
			s.bindings[i].val = v
			return true
		}
	}
	return false
}
