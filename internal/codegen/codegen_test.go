package codegen

import (
	"strings"
	"testing"

	"github.com/ivylang/ivyc/internal/ast"
	"github.com/ivylang/ivyc/internal/config"
	"github.com/ivylang/ivyc/internal/fragment"
)

func render(t *testing.T, n *ast.Node, level fragment.Level, opts config.Options) string {
	t.Helper()
	opts.SourceMapEnabled = false
	tr := New(opts)
	list, err := tr.Emit(n, level)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	return fragment.Flatten(list, false)
}

func lvar(name string) *ast.Node { return ast.NewStr(ast.KindLvar, 1, name) }
func lasgn(name string, rhs *ast.Node) *ast.Node {
	return ast.NewStr(ast.KindLasgn, 1, name, rhs)
}

// reqParam builds a required-param lasgn: childless, per parseParams'
// rule that a single (default-expr) child marks an optional param.
func reqParam(name string) *ast.Node { return ast.NewStr(ast.KindLasgn, 1, name) }
func intLit(v int64) *ast.Node {
	return &ast.Node{Kind: ast.KindLit, Line: 1, LitVal: ast.Lit{LitKind: ast.LitInt, Int: v}}
}

func TestEmitLasgnAndLvar(t *testing.T) {
	out := render(t, lasgn("x", intLit(1)), fragment.LevelStmt, config.Defaults())
	if !strings.Contains(out, "x = ") {
		t.Errorf("expected a local assignment, got %q", out)
	}
	out2 := render(t, lvar("x"), fragment.LevelExpr, config.Defaults())
	if out2 != "x" {
		t.Errorf("lvar emit = %q, want bare identifier", out2)
	}
}

func TestEmitIfStatementLevelOmittedThen(t *testing.T) {
	n := ast.New(ast.KindIf, 1, lvar("x"), nil, ast.New(ast.KindBlock, 1))
	out := render(t, n, fragment.LevelStmt, config.Defaults())
	if !strings.Contains(out, "if (") {
		t.Errorf("expected an if statement, got %q", out)
	}
	if strings.Contains(out, "!== false && x !== nil") {
		t.Errorf("expected the falsy peephole (missing then branch), got %q", out)
	}
}

func TestEmitIfExpressionLevelWrapsClosure(t *testing.T) {
	n := ast.New(ast.KindIf, 1, lvar("x"), intLit(1), intLit(2))
	out := render(t, n, fragment.LevelExpr, config.Defaults())
	if !strings.Contains(out, "(function() { if (") {
		t.Errorf("expected an expression-level if wrapped in a called closure, got %q", out)
	}
	if !strings.Contains(out, "}).call(self)") {
		t.Errorf("expected the closure to be immediately invoked, got %q", out)
	}
}

func TestEmitWhileLoop(t *testing.T) {
	body := ast.New(ast.KindBlock, 1, ast.New(ast.KindNext, 1))
	n := ast.New(ast.KindWhile, 1, lvar("x"), body)
	out := render(t, n, fragment.LevelStmt, config.Defaults())
	if !strings.Contains(out, "while (") {
		t.Errorf("expected a while loop, got %q", out)
	}
	if !strings.Contains(out, "continue;") {
		t.Errorf("expected next to compile to continue inside a loop, got %q", out)
	}
}

func TestEmitUntilNegatesCondition(t *testing.T) {
	n := ast.New(ast.KindUntil, 1, lvar("x"), ast.New(ast.KindBlock, 1))
	out := render(t, n, fragment.LevelStmt, config.Defaults())
	if !strings.Contains(out, "while (!(") {
		t.Errorf("expected until to negate its condition, got %q", out)
	}
}

func TestEmitBreakOutsideLoopOrBlockFails(t *testing.T) {
	tr := New(config.Defaults())
	_, err := tr.Emit(ast.New(ast.KindBreak, 1, nil), fragment.LevelStmt)
	if err == nil {
		t.Fatal("expected an error for break outside a loop or block")
	}
}

func TestEmitCaseWithSubject(t *testing.T) {
	when := ast.New(ast.KindWhen, 1, ast.New(ast.KindArray, 1, intLit(1)), ast.New(ast.KindBlock, 1))
	n := ast.New(ast.KindCase, 1, lvar("x"), nil, when)
	out := render(t, n, fragment.LevelStmt, config.Defaults())
	if !strings.Contains(out, "$case = x;") {
		t.Errorf("expected the scrutinee bound to $case, got %q", out)
	}
	if !strings.Contains(out, "['$===']($case)") {
		t.Errorf("expected each candidate compared via ===, got %q", out)
	}
}

func TestEmitCaseWithoutSubjectFallsBackToTruthy(t *testing.T) {
	when := ast.New(ast.KindWhen, 1, ast.New(ast.KindArray, 1, lvar("x")), ast.New(ast.KindBlock, 1))
	n := ast.New(ast.KindCase, 1, nil, nil, when)
	out := render(t, n, fragment.LevelStmt, config.Defaults())
	if strings.Contains(out, "$case") {
		t.Errorf("a caseless case should never reference $case, got %q", out)
	}
}

func TestEmitClassOpensKlassHelper(t *testing.T) {
	body := ast.New(ast.KindBlock, 1)
	n := ast.NewStr(ast.KindClass, 1, "Foo", nil, body)
	out := render(t, n, fragment.LevelStmt, config.Defaults())
	if !strings.Contains(out, `Foo = __klass(__base, __super, "Foo", Foo);`) {
		t.Errorf("expected a __klass(...) reassignment naming Foo, got %q", out)
	}
	if !strings.Contains(out, "var def = Foo.prototype, __scope = Foo._scope;") {
		t.Errorf("expected def/__scope bound from the class's own prototype, got %q", out)
	}
	if !strings.Contains(out, "})(self, null);") {
		t.Errorf("expected the class IIFE invoked with (base, super), got %q", out)
	}
}

func TestEmitModuleOpensModuleHelper(t *testing.T) {
	n := ast.NewStr(ast.KindModule, 1, "Bar", ast.New(ast.KindBlock, 1))
	out := render(t, n, fragment.LevelStmt, config.Defaults())
	if !strings.Contains(out, `Bar = __module(__base, "Bar", Bar);`) {
		t.Errorf("expected a __module(...) reassignment naming Bar, got %q", out)
	}
	if !strings.Contains(out, "})(self);") {
		t.Errorf("expected the module IIFE invoked with (base), got %q", out)
	}
}

func TestEmitDefnWrapsFunctionAndDeclaresMethod(t *testing.T) {
	params := ast.New(ast.KindArgs, 1, reqParam("a"))
	body := ast.New(ast.KindBlock, 1, lvar("a"))
	n := ast.NewStr(ast.KindDefn, 1, "greet", params, body)
	out := render(t, n, fragment.LevelStmt, config.Defaults())
	if !strings.Contains(out, "def.$greet = function(a)") {
		t.Errorf("expected def.$greet bound to a function(a), got %q", out)
	}
}

func TestEmitDefnInClassCapturesSuperBeforeInstall(t *testing.T) {
	defnBody := ast.New(ast.KindBlock, 1, ast.New(ast.KindSuper, 1, ast.New(ast.KindArgs, 1)))
	defn := ast.NewStr(ast.KindDefn, 1, "bar", ast.New(ast.KindArgs, 1), defnBody)
	classBody := ast.New(ast.KindBlock, 1, defn)
	n := ast.NewStr(ast.KindClass, 1, "Foo", nil, classBody)
	out := render(t, n, fragment.LevelStmt, config.Defaults())
	if !strings.Contains(out, "var super_1 = def.$bar;") {
		t.Errorf("expected a super_<uniq> capture preceding the install, got %q", out)
	}
	if !strings.Contains(out, "def.$bar = function()") {
		t.Errorf("expected the method installed on def after the capture, got %q", out)
	}
	if !strings.Contains(out, "super_1.apply(self, [])") {
		t.Errorf("expected super to dispatch through the captured super_1, got %q", out)
	}
}

func TestEmitDefsInstallsOnReceiverWithDollarName(t *testing.T) {
	recv := ast.New(ast.KindSelf, 1)
	nameNode := ast.NewStr(ast.KindLit, 1, "make")
	params := ast.New(ast.KindArgs, 1)
	body := ast.New(ast.KindBlock, 1)
	n := ast.New(ast.KindDefs, 1, recv, nameNode, params, body)
	out := render(t, n, fragment.LevelStmt, config.Defaults())
	if !strings.Contains(out, `__opal.defs(self, "$make", function()`) {
		t.Errorf("expected __opal.defs to install under a $-prefixed name, got %q", out)
	}
}

func TestEmitDefnArityCheck(t *testing.T) {
	params := ast.New(ast.KindArgs, 1, reqParam("a"))
	body := ast.New(ast.KindBlock, 1)
	n := ast.NewStr(ast.KindDefn, 1, "greet", params, body)
	opts := config.Defaults()
	opts.ArityCheck = true
	out := render(t, n, fragment.LevelStmt, opts)
	if !strings.Contains(out, "Opal.ac(arguments, 1, this, 1)") {
		t.Errorf("expected an arity-check prologue, got %q", out)
	}
}

func TestEmitDefnOptionalParamDefault(t *testing.T) {
	params := ast.New(ast.KindArgs, 1, lasgn("a", intLit(5)))
	body := ast.New(ast.KindBlock, 1)
	n := ast.NewStr(ast.KindDefn, 1, "greet", params, body)
	out := render(t, n, fragment.LevelStmt, config.Defaults())
	if !strings.Contains(out, "if (a == null) { a = 5; }") {
		t.Errorf("expected an optional-param default prologue, got %q", out)
	}
}

func TestEmitCallWithoutReceiverUsesSelf(t *testing.T) {
	n := ast.NewStr(ast.KindCall, 1, "foo", nil, ast.New(ast.KindArgs, 1))
	out := render(t, n, fragment.LevelExpr, config.Defaults())
	if !strings.Contains(out, "= self).$foo || $mm(\"foo\"))") {
		t.Errorf("expected a method-missing guarded dispatch on self, got %q", out)
	}
}

func TestEmitCallWithMethodMissingGuard(t *testing.T) {
	n := ast.NewStr(ast.KindCall, 1, "foo", lvar("x"), ast.New(ast.KindArgs, 1))
	opts := config.Defaults()
	opts.MethodMissing = true
	out := render(t, n, fragment.LevelExpr, opts)
	if !strings.Contains(out, "$mm(\"foo\")") {
		t.Errorf("expected a $mm fallback when method_missing is enabled, got %q", out)
	}
	if !strings.Contains(out, "||") {
		t.Errorf("expected the dispatch to fall back via ||, got %q", out)
	}
}

func TestEmitCallWithoutMethodMissingIsDirectDispatch(t *testing.T) {
	n := ast.NewStr(ast.KindCall, 1, "foo", lvar("x"), ast.New(ast.KindArgs, 1))
	opts := config.Defaults()
	opts.MethodMissing = false
	out := render(t, n, fragment.LevelExpr, opts)
	if strings.Contains(out, "$mm") {
		t.Errorf("method_missing fallback should not appear when the option is off, got %q", out)
	}
	if out != "(TMP_1 = x).$foo.call(TMP_1)" {
		t.Errorf("expected a direct (tmp = x).$foo.call(tmp) dispatch, got %q", out)
	}
}

func TestEmitOperatorOptimizedNumericPeephole(t *testing.T) {
	n := ast.NewStr(ast.KindOperator, 1, "+", lvar("a"), lvar("b"))
	opts := config.Defaults()
	opts.OptimizedOperators = true
	out := render(t, n, fragment.LevelExpr, opts)
	if !strings.Contains(out, `typeof`) || !strings.Contains(out, " + ") {
		t.Errorf("expected a native + peephole guarded by typeof, got %q", out)
	}
}

func TestEmitOperatorWithoutOptimizationIsPlainDispatch(t *testing.T) {
	n := ast.NewStr(ast.KindOperator, 1, "+", lvar("a"), lvar("b"))
	opts := config.Defaults()
	opts.OptimizedOperators = false
	out := render(t, n, fragment.LevelExpr, opts)
	if out != "a['$+'](b)" {
		t.Errorf("expected a plain method dispatch for +, got %q", out)
	}
}

func TestEmitRescueRethrowsUnmatched(t *testing.T) {
	body := ast.New(ast.KindBlock, 1)
	resbody := ast.New(ast.KindResbody, 1, nil, nil, ast.New(ast.KindBlock, 1))
	n := ast.New(ast.KindRescue, 1, body, nil, resbody)
	out := render(t, n, fragment.LevelStmt, config.Defaults())
	if !strings.Contains(out, "try {") || !strings.Contains(out, "} catch (") {
		t.Errorf("expected a try/catch, got %q", out)
	}
	if !strings.Contains(out, "throw ") {
		t.Errorf("expected an unmatched exception to be rethrown, got %q", out)
	}
	if !strings.Contains(out, "StandardError") {
		t.Errorf("expected a class-less resbody to default to StandardError, got %q", out)
	}
}

func TestEmitEnsureIsTryFinally(t *testing.T) {
	n := ast.New(ast.KindEnsure, 1, ast.New(ast.KindBlock, 1), ast.New(ast.KindBlock, 1))
	out := render(t, n, fragment.LevelStmt, config.Defaults())
	if !strings.Contains(out, "try {") || !strings.Contains(out, "} finally {") {
		t.Errorf("expected a try/finally, got %q", out)
	}
}

func TestEmitMasgnAssignsPositionallyWithSplatTail(t *testing.T) {
	lhs := ast.New(ast.KindArray, 1,
		ast.NewStr(ast.KindLasgn, 1, "a"),
		ast.New(ast.KindSplat, 1, ast.NewStr(ast.KindLasgn, 1, "rest")),
	)
	rhs := ast.NewStr(ast.KindCall, 1, "pair", nil, ast.New(ast.KindArgs, 1))
	n := ast.New(ast.KindMasgn, 1, lhs, rhs)
	out := render(t, n, fragment.LevelStmt, config.Defaults())
	if !strings.Contains(out, "a = (") {
		t.Errorf("expected the first slot assigned positionally, got %q", out)
	}
	if !strings.Contains(out, "rest = __slice.call(") {
		t.Errorf("expected the splat slot to collect the remaining elements, got %q", out)
	}
}

func TestEmitSuperForwardsExplicitArgs(t *testing.T) {
	params := ast.New(ast.KindArgs, 1)
	body := ast.New(ast.KindBlock, 1, ast.New(ast.KindSuper, 1, ast.New(ast.KindArgs, 1, intLit(1))))
	n := ast.NewStr(ast.KindDefn, 1, "go", params, body)
	out := render(t, n, fragment.LevelStmt, config.Defaults())
	if !strings.Contains(out, `__opal.Object._super.prototype.$go.apply(self, [1])`) {
		t.Errorf("expected a super dispatch applying the captured implementation, got %q", out)
	}
}

func TestEmitZsuperForwardsArguments(t *testing.T) {
	params := ast.New(ast.KindArgs, 1)
	body := ast.New(ast.KindBlock, 1, ast.New(ast.KindZsuper, 1))
	n := ast.NewStr(ast.KindDefn, 1, "go", params, body)
	out := render(t, n, fragment.LevelStmt, config.Defaults())
	if !strings.Contains(out, `__opal.Object._super.prototype.$go.apply(self, __slice.call(arguments))`) {
		t.Errorf("expected zsuper to forward the raw arguments object, got %q", out)
	}
}

func TestEmitYieldInvokesBoundBlock(t *testing.T) {
	params := ast.New(ast.KindArgs, 1, ast.NewStr(ast.KindBlockPass, 1, "blk"))
	body := ast.New(ast.KindBlock, 1, ast.New(ast.KindYield, 1, ast.New(ast.KindArgs, 1, intLit(1))))
	n := ast.NewStr(ast.KindDefn, 1, "go", params, body)
	out := render(t, n, fragment.LevelStmt, config.Defaults())
	if !strings.Contains(out, "blk.call(null, 1)") {
		t.Errorf("expected yield to invoke the bound block with its args, got %q", out)
	}
}

func TestEmitBlockGivenQuestion(t *testing.T) {
	n := ast.NewStr(ast.KindCall, 1, "block_given?", nil, nil)
	out := render(t, n, fragment.LevelExpr, config.Defaults())
	if !strings.Contains(out, "!== nil") {
		t.Errorf("expected a direct presence check on the bound block, got %q", out)
	}
}

func TestEmitArrayWithSplatConcatenates(t *testing.T) {
	n := ast.New(ast.KindArray, 1, intLit(1), ast.New(ast.KindSplat, 1, lvar("rest")))
	out := render(t, n, fragment.LevelExpr, config.Defaults())
	if !strings.Contains(out, ".concat(") {
		t.Errorf("expected a splat element to compile to a concat chain, got %q", out)
	}
}

func TestEmitHashUsesHashHelper(t *testing.T) {
	key := &ast.Node{Kind: ast.KindLit, Line: 1, LitVal: ast.Lit{LitKind: ast.LitSymbol, Str: "k"}}
	n := ast.New(ast.KindHash, 1, key, intLit(1))
	out := render(t, n, fragment.LevelExpr, config.Defaults())
	if !strings.HasPrefix(out, "__hash(") {
		t.Errorf("expected a __hash(...) call, got %q", out)
	}
}
