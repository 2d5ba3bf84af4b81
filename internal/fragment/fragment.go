// Package fragment implements the translator's output unit (spec.md
// §3 "Fragment") and its depth-first serialization into the final
// string. It is adapted from the teacher pack's
// internal/prettyprinter.CodePrinter, which tracks indent and column
// while rendering a tree back to text; this package keeps no indent
// or column state and does no line-width wrapping — Buffer and
// Flatten only concatenate fragment text in order, since spec.md's
// output contract is a single concatenated string, not a
// pretty-printed one.
package fragment

import (
	"strconv"
	"strings"

	"github.com/ivylang/ivyc/internal/ast"
)

// Level is spec.md §3's EmissionLevel, ordered low (least demanding)
// to high (most demanding of an expression value).
type Level int

const (
	LevelStmt Level = iota
	LevelStmtClosure
	LevelList
	LevelExpr
	LevelRecv
)

// Frag is an immutable (text, optional origin) pair (spec.md §3).
type Frag struct {
	Text   string
	Origin *ast.Node
}

// Plain builds an origin-less Frag.
func Plain(text string) Frag { return Frag{Text: text} }

// At builds a Frag tagged with the node it was emitted for.
func At(text string, n *ast.Node) Frag { return Frag{Text: text, Origin: n} }

// List is an ordered, flat sequence of fragments; node emitters
// return one of these and the dispatcher
// flattens them in traversal order before final concatenation
// (spec.md's "Data flow").
type List []Frag

// Buffer accumulates fragments in depth-first left-to-right order —
// the sole source of total ordering in the output (spec.md §5).
type Buffer struct {
	frags         []Frag
	sourceMapMode bool
}

// NewBuffer creates an output buffer. sourceMapEnabled mirrors the
// Options field of the same name: when true, every fragment carrying
// an origin is annotated with a "/*:<line>*/" marker on serialization.
func NewBuffer(sourceMapEnabled bool) *Buffer {
	return &Buffer{sourceMapMode: sourceMapEnabled}
}

// Push appends one fragment.
func (b *Buffer) Push(f Frag) {
	b.frags = append(b.frags, f)
}

// PushAll appends a whole List in order.
func (b *Buffer) PushAll(list List) {
	b.frags = append(b.frags, list...)
}

// String concatenates every collected fragment in order, annotating
// each with its position marker when source maps are enabled —
// exactly spec.md §6's output contract ("every emitted fragment
// carrying a position is prefixed with /*:<line>*/").
func (b *Buffer) String() string {
	var sb strings.Builder
	for _, f := range b.frags {
		if b.sourceMapMode && f.Origin != nil {
			sb.WriteString("/*:")
			sb.WriteString(strconv.Itoa(f.Origin.Line))
			sb.WriteString("*/")
		}
		sb.WriteString(f.Text)
	}
	return sb.String()
}

// Flatten concatenates a List on its own, applying the same
// source-map annotation rule, for emitters that need a plain string
// mid-traversal (e.g. to decide whether text already ends in a
// semicolon) without first pushing it to the top-level Buffer.
func Flatten(list List, sourceMapEnabled bool) string {
	var sb strings.Builder
	for _, f := range list {
		if sourceMapEnabled && f.Origin != nil {
			sb.WriteString("/*:")
			sb.WriteString(strconv.Itoa(f.Origin.Line))
			sb.WriteString("*/")
		}
		sb.WriteString(f.Text)
	}
	return sb.String()
}
