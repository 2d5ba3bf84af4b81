package cache

import (
	"github.com/ivylang/ivyc/internal/pipeline"
)

// LookupProcessor is the pipeline stage that probes a Cache before any
// translation work happens, setting ctx.FromCache and ctx.Output on a
// hit so later stages (TranslationProcessor, StoreProcessor) no-op.
type LookupProcessor struct {
	Cache *Cache
}

// NewLookupProcessor builds a cache-probe stage. c may be nil, in
// which case the stage always misses.
func NewLookupProcessor(c *Cache) *LookupProcessor {
	return &LookupProcessor{Cache: c}
}

func (p *LookupProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if p.Cache == nil || ctx.Err != nil {
		return ctx
	}
	key, err := Key(ctx.Source, ctx.Options)
	if err != nil {
		return ctx
	}
	ctx.CacheKey = key
	if output, ok, err := p.Cache.Get(key); err == nil && ok {
		ctx.Output = output
		ctx.FromCache = true
	}
	return ctx
}

// StoreProcessor is the pipeline stage that persists a freshly
// translated ctx.Output, run after TranslationProcessor.
type StoreProcessor struct {
	Cache *Cache
}

// NewStoreProcessor builds a cache-store stage. c may be nil, in which
// case the stage is a no-op.
func NewStoreProcessor(c *Cache) *StoreProcessor {
	return &StoreProcessor{Cache: c}
}

func (p *StoreProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if p.Cache == nil || ctx.Err != nil || ctx.FromCache || ctx.CacheKey == "" {
		return ctx
	}
	_ = p.Cache.Put(ctx.CacheKey, ctx.Output)
	return ctx
}
