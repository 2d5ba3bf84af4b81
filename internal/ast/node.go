// Package ast defines the sexp tree this module's code generator walks.
//
// A Node is a tagged tuple (Kind, children...), exactly the shape the
// external parser/grammar collaborator is expected to produce: every
// construct of the source language — literals, variables, control flow,
// classes, calls, blocks, exceptions — arrives as one of the Kind values
// below, with a positive Line and an optional EndLine.
package ast

// Kind tags a Node with the sexp variant it represents.
type Kind string

const (
	KindNil   Kind = "nil"
	KindTrue  Kind = "true"
	KindFalse Kind = "false"
	KindSelf  Kind = "self"

	// Literals and strings.
	KindLit  Kind = "lit"  // Numeric, Symbol, Regexp, Range literal; see Lit.
	KindStr  Kind = "str"  // plain string
	KindDstr Kind = "dstr" // interpolated string: children alternate literal/expr parts
	KindDsym Kind = "dsym" // interpolated symbol
	KindDxstr Kind = "dxstr" // interpolated inline target-language code
	KindXstr  Kind = "xstr"  // verbatim inline target-language code

	// Variables and constants.
	KindLvar   Kind = "lvar"
	KindLasgn  Kind = "lasgn"
	KindIvar   Kind = "ivar"
	KindIasgn  Kind = "iasgn"
	KindGvar   Kind = "gvar"
	KindGasgn  Kind = "gasgn"
	KindCvar   Kind = "cvar"
	KindCvasgn Kind = "cvasgn"
	KindCvdecl Kind = "cvdecl"
	KindConst  Kind = "const"
	KindCdecl  Kind = "cdecl"
	KindColon2 Kind = "colon2"
	KindColon3 Kind = "colon3"
	KindNthRef Kind = "nth_ref"

	// Multiple assignment and literal aggregates.
	KindMasgn Kind = "masgn"
	KindArray Kind = "array"
	KindSplat Kind = "splat"
	KindToAry Kind = "to_ary"
	KindHash  Kind = "hash"

	// Control flow.
	KindIf             Kind = "if"
	KindWhile          Kind = "while"
	KindUntil          Kind = "until"
	KindCase           Kind = "case"
	KindWhen           Kind = "when"
	KindBreak          Kind = "break"
	KindNext           Kind = "next"
	KindRedo           Kind = "redo"
	KindReturn         Kind = "return"
	KindYield          Kind = "yield"
	KindReturnableYield Kind = "returnable_yield"
	KindBlock          Kind = "block"
	KindScope          Kind = "scope"
	KindRescue         Kind = "rescue"
	KindResbody        Kind = "resbody"
	KindEnsure         Kind = "ensure"

	// Logical operators.
	KindAnd Kind = "and"
	KindOr  Kind = "or"

	// Object construction.
	KindClass  Kind = "class"
	KindModule Kind = "module"
	KindSclass Kind = "sclass"
	KindDefn   Kind = "defn"
	KindDefs   Kind = "defs"
	KindAlias  Kind = "alias"
	KindUndef  Kind = "undef"

	// Calls and blocks.
	KindCall      Kind = "call"
	KindIter      Kind = "iter"
	KindBlockPass Kind = "block_pass"
	KindOperator  Kind = "operator"
	KindArgs      Kind = "args"

	// Method-local non-local control.
	KindSuper  Kind = "super"
	KindZsuper Kind = "zsuper"

	// Synthetic kinds introduced by the rewriters (§4.4, §4.5); never
	// produced by the parser collaborator, only by this module itself.
	KindJsReturn Kind = "js_return"
	KindJsTmp    Kind = "js_tmp"
	KindYasgn    Kind = "yasgn"
)

// Lit carries the payload of a KindLit node. Exactly one field is
// meaningful, selected by LitKind.
type Lit struct {
	LitKind LitKind
	Int     int64
	Float   float64
	Str     string // Symbol name, or Regexp source
	Flags   string // Regexp flags
	Exclude bool   // Range: exclude end
}

// LitKind distinguishes the payload carried by a Lit.
type LitKind string

const (
	LitInt    LitKind = "int"
	LitFloat  LitKind = "float"
	LitSymbol LitKind = "symbol"
	LitRegexp LitKind = "regexp"
	LitRange  LitKind = "range"
)

// Node is one tagged tuple of the sexp tree. Children are addressed
// positionally; each emitter documents which index means what for its
// Kind, mirroring the parenthesized-tuple shape of the source sexp.
type Node struct {
	Kind     Kind
	Line     int
	EndLine  int
	Children []*Node

	// Str carries an identifier, method name, class/module name, or
	// string-literal text, depending on Kind.
	Str string

	// Lit carries the payload of a KindLit node.
	LitVal Lit
}

// New builds a Node with the given kind, line and children.
func New(kind Kind, line int, children ...*Node) *Node {
	return &Node{Kind: kind, Line: line, Children: children}
}

// NewStr builds a Node carrying a Str payload (identifiers, literal text).
func NewStr(kind Kind, line int, str string, children ...*Node) *Node {
	return &Node{Kind: kind, Line: line, Str: str, Children: children}
}

// Child returns the i-th child, or nil if the index is out of range —
// callers use this to treat an absent optional child (e.g. a missing
// else branch) the same as an explicit nil node.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// IsNil reports whether n is an absent child or an explicit `nil` node.
func (n *Node) IsNil() bool {
	return n == nil || n.Kind == KindNil
}

// Clone makes a shallow copy of n with its own Children slice, so that
// in-place rewrites (returns-lifting, inline-yield lifting) never
// mutate a shared parent's view of a node they did not intend to change.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := *n
	cp.Children = append([]*Node(nil), n.Children...)
	return &cp
}

// WithChildren returns a shallow copy of n with Children replaced.
func (n *Node) WithChildren(children ...*Node) *Node {
	cp := n.Clone()
	cp.Children = children
	return cp
}

// WithKind returns a shallow copy of n retagged with a different Kind,
// its children and other fields unchanged. Used by the returns-lifting
// rewrite to retag a `yield` as `returnable_yield` in place.
func (n *Node) WithKind(kind Kind) *Node {
	cp := n.Clone()
	cp.Kind = kind
	return cp
}
