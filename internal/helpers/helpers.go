// Package helpers tracks which runtime helper bindings (spec.md §3
// "HelperSet") one translation demands, so the top-level assembler can
// declare exactly the `var __<name> = __opal.<name>` bindings the
// emitted body actually calls. This is a one-shot-per-Parse bitset,
// not the teacher pack's process-wide, mutex-guarded extension
// registry (internal/evaluator/ext_registry.go) — this module's
// translator is single-threaded and non-reentrant (spec.md §5), so a
// plain map suffices; the teacher's registration/lookup naming is kept
// because it is the idiom this pack uses for "a set of demanded names".
package helpers

import "github.com/ivylang/ivyc/internal/config"

// Set records the helper names one Parse call has required.
type Set struct {
	required map[string]bool
}

// NewSet seeds a helper set with the bindings every translation always
// needs (spec.md §4.1: "seeds the HelperSet with {breaker, slice}").
func NewSet() *Set {
	return &Set{required: map[string]bool{"breaker": true, "slice": true}}
}

// Require marks name as demanded by the emitted code so far.
func (s *Set) Require(name string) {
	s.required[name] = true
}

// Has reports whether name has been required.
func (s *Set) Has(name string) bool {
	return s.required[name]
}

// Ordered returns the required helper names in the fixed declaration
// order spec.md §9 specifies: breaker, slice first, then the rest of
// config.HelperOrder in order, skipping any never required.
func (s *Set) Ordered() []string {
	out := make([]string, 0, len(s.required))
	for _, name := range config.HelperOrder {
		if s.required[name] {
			out = append(out, name)
		}
	}
	return out
}
