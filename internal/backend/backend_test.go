package backend

import (
	"strings"
	"testing"

	"github.com/ivylang/ivyc/internal/ast"
	"github.com/ivylang/ivyc/internal/config"
	"github.com/ivylang/ivyc/internal/diagnostics"
	"github.com/ivylang/ivyc/internal/pipeline"
)

func TestCodegenBackendTranslateWrapsModule(t *testing.T) {
	b := New(config.Defaults())
	out, err := b.Translate(ast.New(ast.KindNil, 1))
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if !strings.Contains(out, "function(__opal)") {
		t.Errorf("Translate() output missing module prologue: %q", out)
	}
	if b.Name() != "codegen" {
		t.Errorf("Name() = %q, want codegen", b.Name())
	}
}

func TestCodegenBackendTranslateFailsOnUnsupportedSexp(t *testing.T) {
	b := New(config.Defaults())
	bad := &ast.Node{Kind: ast.Kind("totally_unknown"), Line: 1}
	_, err := b.Translate(bad)
	if err == nil {
		t.Fatal("expected an error translating an unknown sexp kind")
	}
	if _, ok := err.(*diagnostics.Diagnostic); !ok {
		t.Errorf("expected a *diagnostics.Diagnostic, got %T", err)
	}
}

func TestTranslationProcessorRecordsDiagnosticAndSkipsOnCacheHit(t *testing.T) {
	b := New(config.Defaults())
	bad := &ast.Node{Kind: ast.Kind("totally_unknown"), Line: 1}
	p := NewTranslationProcessor(b, bad)

	ctx := &pipeline.PipelineContext{}
	ctx = p.Process(ctx)
	if ctx.Err == nil {
		t.Fatal("expected ctx.Err set after a failing translation")
	}
	if len(ctx.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic recorded, got %d", len(ctx.Diagnostics))
	}

	fromCache := &pipeline.PipelineContext{FromCache: true, Output: "cached"}
	out := p.Process(fromCache)
	if out.Output != "cached" || out.Err != nil {
		t.Error("Process should no-op when ctx.FromCache is already set")
	}
}
