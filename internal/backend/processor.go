package backend

import (
	"github.com/ivylang/ivyc/internal/ast"
	"github.com/ivylang/ivyc/internal/diagnostics"
	"github.com/ivylang/ivyc/internal/pipeline"
)

// TranslationProcessor implements pipeline.Processor, running a
// Backend against the context's decoded AST and recording either the
// emitted output or a fatal diagnostic.
type TranslationProcessor struct {
	Backend Backend
	Root    *ast.Node
}

// NewTranslationProcessor builds a pipeline stage running b against root.
func NewTranslationProcessor(b Backend, root *ast.Node) *TranslationProcessor {
	return &TranslationProcessor{Backend: b, Root: root}
}

// Process runs the backend, unless a prior stage already set a fatal
// Err or this ctx was already satisfied from cache.
func (p *TranslationProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Err != nil || ctx.FromCache {
		return ctx
	}

	output, err := p.Backend.Translate(p.Root)
	if err != nil {
		if d, ok := err.(*diagnostics.Diagnostic); ok {
			ctx.Diagnostics = append(ctx.Diagnostics, d)
		}
		ctx.Err = err
		return ctx
	}

	ctx.Output = output
	return ctx
}
