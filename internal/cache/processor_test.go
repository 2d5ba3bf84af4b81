package cache

import (
	"testing"

	"github.com/ivylang/ivyc/internal/config"
	"github.com/ivylang/ivyc/internal/pipeline"
)

func TestLookupProcessorMissThenStoreThenHit(t *testing.T) {
	c := openTestCache(t)
	opts := config.Defaults()
	source := []byte("some source")

	ctx := &pipeline.PipelineContext{Source: source, Options: opts}
	ctx = NewLookupProcessor(c).Process(ctx)
	if ctx.FromCache {
		t.Fatal("expected a cache miss on first lookup")
	}
	if ctx.CacheKey == "" {
		t.Fatal("expected LookupProcessor to set CacheKey even on a miss")
	}

	ctx.Output = "translated output"
	ctx = NewStoreProcessor(c).Process(ctx)

	second := &pipeline.PipelineContext{Source: source, Options: opts}
	second = NewLookupProcessor(c).Process(second)
	if !second.FromCache {
		t.Fatal("expected a cache hit after StoreProcessor ran")
	}
	if second.Output != "translated output" {
		t.Errorf("Output = %q, want the stored translation", second.Output)
	}
}

func TestLookupProcessorNilCacheAlwaysMisses(t *testing.T) {
	ctx := &pipeline.PipelineContext{Source: []byte("x"), Options: config.Defaults()}
	ctx = NewLookupProcessor(nil).Process(ctx)
	if ctx.FromCache {
		t.Error("a nil Cache should never report a hit")
	}
}

func TestStoreProcessorSkipsOnError(t *testing.T) {
	c := openTestCache(t)
	ctx := &pipeline.PipelineContext{CacheKey: "k", Output: "out", Err: errBoom}
	ctx = NewStoreProcessor(c).Process(ctx)

	if _, ok, _ := c.Get("k"); ok {
		t.Error("StoreProcessor should not persist output when ctx.Err is set")
	}
}

var errBoom = boomError{}

type boomError struct{}

func (boomError) Error() string { return "boom" }
