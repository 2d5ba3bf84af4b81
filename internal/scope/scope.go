// Package scope implements the translator's lexical scope chain
// (spec.md §2.2, §3 "Scope", §4.2). It is modeled the way the teacher
// pack's internal/symbols.SymbolTable models a parent-linked scope
// chain (an explicit outer pointer plus a per-scope store), adapted
// here to the code generator's bookkeeping: locals, temps, loop
// frames, and the block/super usage flags each emitter consults.
package scope

// Kind is the lexical scope kind spec.md §3 enumerates.
type Kind string

const (
	KindTop    Kind = "top"
	KindClass  Kind = "class"
	KindModule Kind = "module"
	KindSclass Kind = "sclass"
	KindDef    Kind = "def"
	KindIter   Kind = "iter"
)

// Loop is one frame of a Scope's while/until stack (spec.md §3,
// "while_stack"). Closure marks a loop whose break must emit a
// target-language return rather than a bare break, because the loop
// itself was wrapped in an IIFE to give it a value in expression
// position (spec.md §4.6 "while").
type Loop struct {
	Closure bool
	RedoVar string
	UseRedo bool
}

// Scope is one frame of the translator's lexical scope stack
// (spec.md §3). All fields are exported because every node emitter in
// internal/codegen reads and mutates them directly — there is exactly
// one writer (the single-threaded translator) at a time, matching the
// synchronous, non-reentrant concurrency model of spec.md §5.
type Scope struct {
	Kind   Kind
	Parent *Scope
	Name   string // declared name, for class/module

	Locals map[string]bool
	Args   []string
	Ivars  map[string]bool
	Methods []string

	tempsLive map[string]bool
	tempsPool []string
	uniqueSeq *int // shared counter, rooted at the top scope

	BlockName    string
	UsesBlock    bool
	UsesSuper    bool
	DefinesDefn  bool
	DefinesDefs  bool
	Defs         string

	// InClassSuper, SuperClassName and SuperVar are decided at
	// method-install time (spec.md §4.7 step 7) before the method body
	// is compiled, so `super`/`zsuper` emitted anywhere in that body
	// already know which of §4.11's two forms to target. InClassSuper
	// selects the `super_<uniq>.apply(...)` form, captured from
	// SuperVar; otherwise SuperClassName feeds the
	// `<ClassName>._super.prototype.<jsid>.apply(...)` form.
	InClassSuper   bool
	SuperClassName string
	SuperVar       string

	loops []*Loop

	identity string // lazily assigned TMP_N naming this iter/def's own function
}

// New creates a scope of the given kind, linked to parent. The unique
// id counter is inherited from parent so synthetic names stay unique
// across the whole translation, not just within one scope.
func New(kind Kind, parent *Scope) *Scope {
	s := &Scope{
		Kind:      kind,
		Parent:    parent,
		Locals:    make(map[string]bool),
		Ivars:     make(map[string]bool),
		tempsLive: make(map[string]bool),
		BlockName: "__yield",
	}
	if parent != nil {
		s.uniqueSeq = parent.uniqueSeq
	} else {
		zero := 0
		s.uniqueSeq = &zero
	}
	return s
}

// Stack is the explicit array-backed scope stack spec.md §9 requires
// ("implement as an explicit stack … not as heap-linked cells").
type Stack struct {
	frames []*Scope
}

// NewStack seeds a fresh stack with one top-level scope.
func NewStack() *Stack {
	st := &Stack{}
	st.frames = append(st.frames, New(KindTop, nil))
	return st
}

// Current returns the innermost scope.
func (s *Stack) Current() *Scope {
	return s.frames[len(s.frames)-1]
}

// Top returns the outermost (top-level) scope, the one the top-level
// assembler declares its prologue bindings against.
func (s *Stack) Top() *Scope {
	return s.frames[0]
}

// Enter pushes a new scope of kind, linked to the current one, and
// returns it so callers don't need a second Current() call.
func (s *Stack) Enter(kind Kind) *Scope {
	next := New(kind, s.Current())
	s.frames = append(s.frames, next)
	return next
}

// Leave pops the innermost scope. Callers must pair every Enter with
// exactly one Leave, including on error paths (spec.md §5): use
// InScope below rather than calling Enter/Leave by hand where possible.
func (s *Stack) Leave() {
	s.frames = s.frames[:len(s.frames)-1]
}

// InScope runs fn with a freshly entered scope of kind current, then
// leaves it on every exit path — the scoped acquire/release combinator
// spec.md §9 calls for around the scope stack itself.
func (s *Stack) InScope(kind Kind, fn func(sc *Scope)) {
	sc := s.Enter(kind)
	defer s.Leave()
	fn(sc)
}

// Enclosing walks outward from the current scope to find the nearest
// ancestor of one of the given kinds, or nil if none exists. Used by
// `break` resolution to find the nearest iter and by `super`
// resolution to find the nearest def.
func (s *Stack) Enclosing(kinds ...Kind) *Scope {
	for sc := s.Current(); sc != nil; sc = sc.Parent {
		for _, k := range kinds {
			if sc.Kind == k {
				return sc
			}
		}
	}
	return nil
}
