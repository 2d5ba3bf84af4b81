package scope

import (
	"sort"
	"strconv"
)

// NewTemp acquires a synthetic identifier: the first pooled temp if
// any is free, else a freshly minted "TMP_N" (spec.md §4.2). Pool
// reuse keeps the `var` declaration at the head of a scope's emitted
// block body small across sibling subtrees.
func (s *Scope) NewTemp() string {
	if len(s.tempsPool) > 0 {
		name := s.tempsPool[0]
		s.tempsPool = s.tempsPool[1:]
		s.tempsLive[name] = true
		return name
	}
	*s.uniqueSeq++
	name := "TMP_" + strconv.Itoa(*s.uniqueSeq)
	s.tempsLive[name] = true
	return name
}

// NewUniqueName mints a globally unique synthetic identifier built
// from prefix, drawing on the same shared counter NewTemp uses, but
// without registering it in this scope's temp pool — for bindings
// like a super-capture variable that must survive past the subtree
// that minted them (spec.md §4.7 step 7), unlike an ordinary temp.
func (s *Scope) NewUniqueName(prefix string) string {
	*s.uniqueSeq++
	return prefix + strconv.Itoa(*s.uniqueSeq)
}

// QueueTemp returns a temp to this scope's pool for reuse by a later
// sibling acquisition.
func (s *Scope) QueueTemp(name string) {
	delete(s.tempsLive, name)
	s.tempsPool = append(s.tempsPool, name)
}

// WithTemp acquires a temp, runs fn with it, and queues it again on
// every exit path — the scoped combinator spec.md §9 requires so an
// acquisition is never leaked past the subtree that needed it.
func (s *Scope) WithTemp(fn func(name string)) {
	t := s.NewTemp()
	defer s.QueueTemp(t)
	fn(t)
}

// LiveTemps returns the names of the temps still checked out of the pool.
// Used by the "temp pool balance" property (spec.md §8): after Parse
// returns, every scope's live temp set must be empty.
func (s *Scope) LiveTemps() []string {
	out := make([]string, 0, len(s.tempsLive))
	for name := range s.tempsLive {
		out = append(out, name)
	}
	return out
}

// AllTemps returns every temp this scope has ever minted — live or
// pooled — in a stable order, for the single `var` declaration a
// top/class/module/sclass/def/iter scope's block body opens with.
func (s *Scope) AllTemps() []string {
	seen := make(map[string]bool, len(s.tempsLive)+len(s.tempsPool))
	out := make([]string, 0, len(s.tempsLive)+len(s.tempsPool))
	for _, name := range s.tempsPool {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	live := make([]string, 0, len(s.tempsLive))
	for name := range s.tempsLive {
		if !seen[name] {
			seen[name] = true
			live = append(live, name)
		}
	}
	sort.Strings(live)
	return append(out, live...)
}

// Identity lazily assigns and returns the stable TMP_N used to refer
// to this iter/def's own emitted function from within its own body
// (spec.md §3, "identity").
func (s *Scope) Identity() string {
	if s.identity == "" {
		s.identity = s.NewTemp()
	}
	return s.identity
}

// DeclareLocal records name as a local of this scope.
func (s *Scope) DeclareLocal(name string) {
	s.Locals[name] = true
}

// HasLocal reports whether name is a local of this scope (not walking
// parents — each emitter decides for itself whether to search outward).
func (s *Scope) HasLocal(name string) bool {
	return s.Locals[name]
}

// DeclareIvar records an instance-variable accessor string seen in
// this scope (spec.md §3 invariant: only strings usable as target
// property accessors).
func (s *Scope) DeclareIvar(accessor string) {
	s.Ivars[accessor] = true
}

// DeclareMethod appends name to this scope's ordered method list
// (class/module scopes only).
func (s *Scope) DeclareMethod(name string) {
	s.Methods = append(s.Methods, name)
}
