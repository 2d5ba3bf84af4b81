package codegen

import (
	"fmt"
	"strings"

	"github.com/ivylang/ivyc/internal/ast"
	"github.com/ivylang/ivyc/internal/fragment"
	"github.com/ivylang/ivyc/internal/mangle"
	"github.com/ivylang/ivyc/internal/scope"
)

// resolveSuper finds the nearest enclosing method (walking past any
// iter frames the use sits under — a block's super reuses its
// containing method's own resolution, spec.md §4.11) and returns the
// def scope that method-install time (spec.md §4.7 step 7) stashed its
// super target on, lazily minting the `super_<uniq>` capture name the
// first time it's needed.
func (t *Translator) resolveSuper(n *ast.Node) (*scope.Scope, error) {
	def := t.Scopes.Enclosing(scope.KindDef)
	if def == nil {
		return nil, t.fail(n, "super used outside of a method body")
	}
	def.UsesSuper = true
	if def.InClassSuper && def.SuperVar == "" {
		def.SuperVar = def.NewUniqueName("super_")
	}
	return def, nil
}

// superTarget renders the callable spec.md §4.11 dispatches super
// through: the `super_<uniq>` capture in class/module scope, or
// `<ClassName>._super.prototype.<jsid>` everywhere else.
func superTarget(def *scope.Scope) string {
	if def.InClassSuper {
		return def.SuperVar
	}
	return def.SuperClassName + "._super.prototype" + mangle.MidToJsid(def.Defs)
}

// emitSuper implements spec.md §4.11's `super(args…)`: an explicit
// argument list applied against the captured superclass implementation.
func (t *Translator) emitSuper(n *ast.Node, level fragment.Level) (fragment.List, error) {
	def, err := t.resolveSuper(n)
	if err != nil {
		return nil, err
	}
	args, err := t.compileArgs(n.Child(0))
	if err != nil {
		return nil, err
	}
	var arrExpr string
	if args.HasSplat {
		arrExpr = args.ArrayExpr
	} else {
		arrExpr = "[" + strings.Join(args.Fixed, ", ") + "]"
	}
	text := fmt.Sprintf("%s.apply(self, %s)", superTarget(def), arrExpr)
	return fragment.List{fragment.At(parenWrap(level, text), n)}, nil
}

// emitZsuper implements spec.md §4.11's bare `super`: the current
// method's own arguments, forwarded unchanged via __slice.call(arguments).
func (t *Translator) emitZsuper(n *ast.Node, level fragment.Level) (fragment.List, error) {
	def, err := t.resolveSuper(n)
	if err != nil {
		return nil, err
	}
	t.Helpers.Require("slice")
	text := fmt.Sprintf("%s.apply(self, __slice.call(arguments))", superTarget(def))
	return fragment.List{fragment.At(parenWrap(level, text), n)}, nil
}
