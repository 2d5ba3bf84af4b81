// Package backend adapts internal/codegen's Translator to the
// internal/pipeline.Processor contract, the way the teacher pack's own
// internal/backend adapts its tree-walk evaluator to the same
// pipeline's Step interface: one small interface (here, Backend)
// wrapping the thing that actually does the work, so the pipeline
// stage itself stays a thin adapter.
package backend

import "github.com/ivylang/ivyc/internal/ast"

// Backend is the interface for one "AST in, target-language text out"
// implementation. Only one concrete implementation exists today (the
// codegen.Translator-backed one below), but the seam is kept — as the
// teacher pack keeps Backend for tree-walk vs. VM — so an alternate
// code generator (say, one emitting a different target dialect) can be
// swapped in without touching the pipeline.
type Backend interface {
	// Translate emits root as target-language source text.
	Translate(root *ast.Node) (string, error)
	// Name identifies the backend for logging.
	Name() string
}
