// Package codegen is the node dispatcher and per-node emitters of
// spec.md §4.6 — the ≈70-variant tree walker that is this module's
// core. It generalizes the teacher pack's own tree-walking evaluator
// (internal/evaluator's per-kind Eval* functions dispatching off
// ast.Node.Accept) from "evaluate this node to a runtime Object" to
// "emit this node as target-language text", keeping the same one
// function (or small file) per node-kind discipline the teacher uses
// across its expressions_*.go / statements_*.go / object_*.go split.
package codegen

import (
	"github.com/ivylang/ivyc/internal/ast"
	"github.com/ivylang/ivyc/internal/config"
	"github.com/ivylang/ivyc/internal/diagnostics"
	"github.com/ivylang/ivyc/internal/fragment"
	"github.com/ivylang/ivyc/internal/helpers"
	"github.com/ivylang/ivyc/internal/scope"
)

// Translator holds all of one Parse call's mutable state (spec.md §5:
// "a single translator instance holds mutable state … and is not
// re-entrant"). A fresh Translator must be built per call; never
// shared across concurrent translations.
type Translator struct {
	Opts    config.Options
	Scopes  *scope.Stack
	Helpers *helpers.Set
	Sink    *diagnostics.Sink

	line     int
	usesFile bool
}

// New builds a Translator seeded per spec.md §4.1: line=1, a fresh top
// scope, and the HelperSet seeded with {breaker, slice}.
func New(opts config.Options) *Translator {
	return &Translator{
		Opts:    opts.Normalize(),
		Scopes:  scope.NewStack(),
		Helpers: helpers.NewSet(),
		Sink:    &diagnostics.Sink{},
		line:    1,
	}
}

// fail raises the fatal StructuralError surface of spec.md §7(2).
func (t *Translator) fail(n *ast.Node, format string, args ...any) error {
	return diagnostics.Structural(t.Opts.File, t.lineOf(n), format, args...)
}

// failInternal raises the InternalInvariant surface of spec.md §7(3).
func (t *Translator) failInternal(n *ast.Node, format string, args ...any) error {
	return diagnostics.Internal(t.Opts.File, t.lineOf(n), format, args...)
}

func (t *Translator) lineOf(n *ast.Node) int {
	if n != nil && n.Line > 0 {
		return n.Line
	}
	return t.line
}

// touch updates the translator's current line to n's, per the emitter
// contract (spec.md §4.12(b): "updates @line to the node's line before
// recursion").
func (t *Translator) touch(n *ast.Node) {
	if n != nil && n.Line > 0 {
		t.line = n.Line
	}
}

// Emit dispatches n to its per-kind emitter at the given level. A nil
// node (an absent optional child) is treated as an explicit `nil`
// literal, matching spec.md §4.1's "replacing none with nil" at the
// root and every per-node handling of missing children.
func (t *Translator) Emit(n *ast.Node, level fragment.Level) (fragment.List, error) {
	if n.IsNil() {
		return fragment.List{fragment.At("nil", n)}, nil
	}
	t.touch(n)

	switch n.Kind {
	case ast.KindNil:
		return fragment.List{fragment.At("nil", n)}, nil
	case ast.KindTrue:
		return fragment.List{fragment.At("true", n)}, nil
	case ast.KindFalse:
		return fragment.List{fragment.At("false", n)}, nil
	case ast.KindSelf:
		return t.emitSelf(n, level)

	case ast.KindLit:
		return t.emitLit(n, level)
	case ast.KindStr:
		return t.emitStr(n, level)
	case ast.KindDstr:
		return t.emitDstr(n, level)
	case ast.KindDsym:
		return t.emitDsym(n, level)
	case ast.KindXstr:
		return t.emitXstr(n, level)
	case ast.KindDxstr:
		return t.emitDxstr(n, level)

	case ast.KindLvar:
		return t.emitLvar(n, level)
	case ast.KindLasgn:
		return t.emitLasgn(n, level)
	case ast.KindIvar:
		return t.emitIvar(n, level)
	case ast.KindIasgn:
		return t.emitIasgn(n, level)
	case ast.KindGvar:
		return t.emitGvar(n, level)
	case ast.KindGasgn:
		return t.emitGasgn(n, level)
	case ast.KindCvar:
		return t.emitCvar(n, level)
	case ast.KindCvasgn, ast.KindCvdecl:
		return t.emitCvasgn(n, level)
	case ast.KindConst:
		return t.emitConst(n, level)
	case ast.KindCdecl:
		return t.emitCdecl(n, level)
	case ast.KindColon2:
		return t.emitColon2(n, level)
	case ast.KindColon3:
		return t.emitColon3(n, level)
	case ast.KindNthRef:
		return fragment.List{fragment.At("nil", n)}, nil

	case ast.KindMasgn:
		return t.emitMasgn(n, level)
	case ast.KindArray:
		return t.emitArray(n, level)
	case ast.KindHash:
		return t.emitHash(n, level)

	case ast.KindIf:
		return t.emitIf(n, level)
	case ast.KindWhile, ast.KindUntil:
		return t.emitWhile(n, level)
	case ast.KindCase:
		return t.emitCase(n, level)
	case ast.KindBreak:
		return t.emitBreak(n, level)
	case ast.KindNext:
		return t.emitNext(n, level)
	case ast.KindRedo:
		return t.emitRedo(n, level)
	case ast.KindReturn:
		return t.emitReturn(n, level)
	case ast.KindYield:
		return t.emitYield(n, level, false)
	case ast.KindReturnableYield:
		return t.emitYield(n, level, true)
	case ast.KindBlock:
		return t.emitBlock(n, level)
	case ast.KindScope:
		return t.Emit(n.Child(0), level)

	case ast.KindAnd:
		return t.emitAnd(n, level)
	case ast.KindOr:
		return t.emitOr(n, level)

	case ast.KindClass:
		return t.emitClass(n, level)
	case ast.KindModule:
		return t.emitModule(n, level)
	case ast.KindSclass:
		return t.emitSclass(n, level)
	case ast.KindDefn:
		return t.emitDefn(n, level)
	case ast.KindDefs:
		return t.emitDefs(n, level)
	case ast.KindAlias:
		return t.emitAlias(n, level)
	case ast.KindUndef:
		return t.emitUndef(n, level)

	case ast.KindCall:
		return t.emitCall(n, level)
	case ast.KindOperator:
		return t.emitOperator(n, level)
	case ast.KindIter:
		return t.emitIter(n, level)

	case ast.KindRescue:
		return t.emitRescue(n, level)
	case ast.KindEnsure:
		return t.emitEnsure(n, level)

	case ast.KindSuper:
		return t.emitSuper(n, level)
	case ast.KindZsuper:
		return t.emitZsuper(n, level)

	case ast.KindJsReturn:
		return t.emitJsReturn(n, level)
	case ast.KindJsTmp:
		return fragment.List{fragment.At(n.Str, n)}, nil
	case ast.KindYasgn:
		return t.emitYasgn(n, level)

	default:
		return nil, diagnostics.UnsupportedSexp(t.Opts.File, t.lineOf(n), string(n.Kind))
	}
}

// emitOne is a convenience wrapper returning the flattened string for
// a single child, used by emitters that need text inline (e.g. to
// decide whether to wrap in parens) rather than pushing a List.
func (t *Translator) emitOne(n *ast.Node, level fragment.Level) (string, error) {
	list, err := t.Emit(n, level)
	if err != nil {
		return "", err
	}
	return fragment.Flatten(list, t.Opts.SourceMapEnabled), nil
}

func parenWrap(level fragment.Level, text string) string {
	if level == fragment.LevelRecv {
		return "(" + text + ")"
	}
	return text
}
