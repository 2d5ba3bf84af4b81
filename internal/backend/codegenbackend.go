package backend

import (
	"github.com/ivylang/ivyc/internal/ast"
	"github.com/ivylang/ivyc/internal/codegen"
	"github.com/ivylang/ivyc/internal/config"
)

// CodegenBackend wraps one internal/codegen.Translator invocation as a
// Backend, the way the teacher pack's TreeWalkBackend wraps one
// evaluator invocation.
type CodegenBackend struct {
	Opts config.Options
}

// New creates a Backend translating with the given options.
func New(opts config.Options) *CodegenBackend {
	return &CodegenBackend{Opts: opts}
}

// Translate builds a fresh Translator per spec.md §5's "not
// re-entrant" rule — every call gets its own instance — and runs it to
// completion against root.
func (b *CodegenBackend) Translate(root *ast.Node) (string, error) {
	t := codegen.New(b.Opts)
	return t.Assemble(root)
}

// Name returns the backend name.
func (b *CodegenBackend) Name() string {
	return "codegen"
}
