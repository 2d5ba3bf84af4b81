// Package pipeline composes a Parse call out of independent stages —
// decode, translate, cache lookup/store — the way the teacher pack's
// own internal/pipeline (functional_test.go's harness) chains parse,
// analysis, and execution into one Run. Here the AST already arrives
// decoded off the wire (spec.md §2.1's external parser/grammar
// collaborator), so the stages are narrower: cache probe, translate,
// cache store.
package pipeline

import (
	"github.com/ivylang/ivyc/internal/config"
	"github.com/ivylang/ivyc/internal/diagnostics"
)

// PipelineContext carries one Parse call's state between stages.
type PipelineContext struct {
	FilePath string
	Source   []byte
	Options  config.Options

	CacheKey  string
	FromCache bool

	Output      string
	Diagnostics []*diagnostics.Diagnostic
	Err         error
}

// Processor is one pipeline stage: given a context, produce the next
// one (typically the same pointer, mutated).
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline is a sequence of stages run in order.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline from the given stages, run in order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order, short-circuiting once a stage has
// recorded a fatal Err — later stages still see the context (so a
// logging/metrics stage can always run) but are expected to no-op past
// a set Err.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
