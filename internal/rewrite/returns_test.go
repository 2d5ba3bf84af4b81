package rewrite

import (
	"testing"

	"github.com/ivylang/ivyc/internal/ast"
)

func TestReturnsWrapsPlainExprInJsReturn(t *testing.T) {
	n := ast.New(ast.KindLvar, 1)
	got := Returns(n)
	if got.Kind != ast.KindJsReturn {
		t.Fatalf("Returns(lvar) kind = %s, want js_return", got.Kind)
	}
	if got.Child(0) != n {
		t.Error("expected js_return to wrap the original node unchanged")
	}
}

func TestReturnsPassesThroughBreakNextReturn(t *testing.T) {
	for _, kind := range []ast.Kind{ast.KindBreak, ast.KindNext, ast.KindReturn} {
		n := ast.New(kind, 1)
		if got := Returns(n); got != n {
			t.Errorf("Returns(%s) should return the node unchanged, got different node", kind)
		}
	}
}

func TestReturnsRetagsYieldAsReturnableYield(t *testing.T) {
	n := ast.New(ast.KindYield, 1)
	got := Returns(n)
	if got.Kind != ast.KindReturnableYield {
		t.Fatalf("Returns(yield) kind = %s, want returnable_yield", got.Kind)
	}
}

func TestReturnsLeavesLoopsAlone(t *testing.T) {
	for _, kind := range []ast.Kind{ast.KindWhile, ast.KindUntil} {
		n := ast.New(kind, 1, ast.New(ast.KindTrue, 1), ast.New(ast.KindBlock, 1))
		if got := Returns(n); got != n {
			t.Errorf("Returns(%s) should return the loop node unchanged", kind)
		}
	}
}

func TestReturnsLiftsLastBlockStatementOnly(t *testing.T) {
	first := ast.New(ast.KindLvar, 1)
	last := ast.New(ast.KindLvar, 2)
	block := ast.New(ast.KindBlock, 1, first, last)

	got := Returns(block)
	if got.Kind != ast.KindBlock {
		t.Fatalf("Returns(block) kind = %s, want block", got.Kind)
	}
	if got.Child(0) != first {
		t.Error("expected first statement left untouched")
	}
	if got.Child(1).Kind != ast.KindJsReturn {
		t.Error("expected last statement lifted into a js_return")
	}
}

func TestReturnsRecursesIntoIfBranches(t *testing.T) {
	cond := ast.New(ast.KindTrue, 1)
	thenB := ast.New(ast.KindLvar, 1)
	elseB := ast.New(ast.KindLvar, 2)
	n := ast.New(ast.KindIf, 1, cond, thenB, elseB)

	got := Returns(n)
	if got.Kind != ast.KindIf {
		t.Fatalf("Returns(if) kind = %s, want if", got.Kind)
	}
	if got.Child(0) != cond {
		t.Error("expected condition left unchanged")
	}
	if got.Child(1).Kind != ast.KindJsReturn || got.Child(2).Kind != ast.KindJsReturn {
		t.Error("expected both branches lifted into js_return")
	}
}

func TestReturnsHandlesMissingIfBranch(t *testing.T) {
	cond := ast.New(ast.KindTrue, 1)
	n := ast.New(ast.KindIf, 1, cond, ast.New(ast.KindLvar, 1), nil)

	got := Returns(n)
	elseBranch := got.Child(2)
	if elseBranch == nil || elseBranch.Kind != ast.KindJsReturn {
		t.Fatalf("expected missing else branch lifted into a js_return of nil, got %v", elseBranch)
	}
	if elseBranch.Child(0).Kind != ast.KindNil {
		t.Errorf("expected js_return(nil), got js_return(%s)", elseBranch.Child(0).Kind)
	}
}

func TestReturnsOnNilNodeProducesReturnNil(t *testing.T) {
	got := Returns(nil)
	if got.Kind != ast.KindJsReturn {
		t.Fatalf("Returns(nil) kind = %s, want js_return", got.Kind)
	}
	if got.Child(0).Kind != ast.KindNil {
		t.Errorf("Returns(nil) should wrap an explicit nil node, got %s", got.Child(0).Kind)
	}
}
