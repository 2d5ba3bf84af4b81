package rewrite

import (
	"testing"

	"github.com/ivylang/ivyc/internal/ast"
)

type fakeScope struct {
	declared []string
}

func (f *fakeScope) DeclareLocal(name string) {
	f.declared = append(f.declared, name)
}

func TestLiftBlockNonBlockPassesThrough(t *testing.T) {
	n := ast.New(ast.KindLvar, 1)
	if got := LiftBlock(n, &fakeScope{}); got != n {
		t.Error("LiftBlock on a non-block node should return it unchanged")
	}
}

func TestLiftBlockLiftsYieldInsideReturnedArrayElement(t *testing.T) {
	yld := ast.New(ast.KindYield, 5)
	arr := ast.New(ast.KindArray, 5, ast.New(ast.KindLit, 5), yld)
	stmt := ast.New(ast.KindJsReturn, 5, arr)
	block := ast.New(ast.KindBlock, 5, stmt)

	sc := &fakeScope{}
	got := LiftBlock(block, sc)

	if len(got.Children) != 2 {
		t.Fatalf("expected the yield-bearing statement split into 2, got %d children", len(got.Children))
	}
	assign := got.Child(0)
	if assign.Kind != ast.KindYasgn || assign.Str != "__yielded" {
		t.Fatalf("expected a yasgn(__yielded, yield) spliced in first, got %+v", assign)
	}
	if assign.Child(0) != yld {
		t.Error("expected the spliced yasgn to carry the original yield node")
	}

	rewrittenReturn := got.Child(1)
	rewrittenArr := rewrittenReturn.Child(0)
	if rewrittenArr.Child(1).Kind != ast.KindJsTmp || rewrittenArr.Child(1).Str != "__yielded" {
		t.Errorf("expected the array's yield element replaced by a js_tmp(__yielded), got %+v", rewrittenArr.Child(1))
	}

	if len(sc.declared) != 1 || sc.declared[0] != "__yielded" {
		t.Errorf("expected __yielded declared exactly once, got %v", sc.declared)
	}
}

func TestLiftBlockLiftsYieldInsideCallArgs(t *testing.T) {
	yld := ast.New(ast.KindYield, 3)
	args := ast.New(ast.KindArgs, 3, yld)
	call := ast.New(ast.KindCall, 3, nil, args)
	block := ast.New(ast.KindBlock, 3, call)

	got := LiftBlock(block, &fakeScope{})
	if len(got.Children) != 2 {
		t.Fatalf("expected call statement split into 2, got %d", len(got.Children))
	}
	rewrittenCall := got.Child(1)
	rewrittenArgs := rewrittenCall.Child(1)
	if rewrittenArgs.Child(0).Kind != ast.KindJsTmp {
		t.Errorf("expected call arg replaced by js_tmp, got %s", rewrittenArgs.Child(0).Kind)
	}
}

func TestLiftBlockAtMostOnePerStatement(t *testing.T) {
	y1 := ast.New(ast.KindYield, 1)
	y2 := ast.New(ast.KindYield, 1)
	arr := ast.New(ast.KindArray, 1, y1, y2)
	stmt := ast.New(ast.KindJsReturn, 1, arr)
	block := ast.New(ast.KindBlock, 1, stmt)

	got := LiftBlock(block, &fakeScope{})
	if len(got.Children) != 2 {
		t.Fatalf("expected exactly one lift producing 2 statements, got %d", len(got.Children))
	}
	rewrittenArr := got.Child(1).Child(0)
	if rewrittenArr.Child(0).Kind != ast.KindJsTmp {
		t.Error("expected the first yield lifted")
	}
	if rewrittenArr.Child(1).Kind != ast.KindYield {
		t.Error("expected the second yield left untouched (only one lift per statement)")
	}
}

func TestLiftBlockLeavesStatementsWithoutYieldUnchanged(t *testing.T) {
	stmt := ast.New(ast.KindLvar, 1)
	block := ast.New(ast.KindBlock, 1, stmt)
	got := LiftBlock(block, &fakeScope{})
	if len(got.Children) != 1 || got.Child(0) != stmt {
		t.Error("expected a yield-free block to pass through unchanged")
	}
}
