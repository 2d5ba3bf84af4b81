package codegen

import (
	"fmt"

	"github.com/ivylang/ivyc/internal/ast"
	"github.com/ivylang/ivyc/internal/fragment"
	"github.com/ivylang/ivyc/internal/mangle"
	"github.com/ivylang/ivyc/internal/scope"
)

func (t *Translator) isIrbTop() bool {
	return t.Opts.IRB && t.Scopes.Current().Kind == scope.KindTop
}

// emitLvar implements spec.md §4.6's `lvar`: the (possibly suffixed)
// name, or the Opal.irb_vars read form in irb top-scope.
func (t *Translator) emitLvar(n *ast.Node, level fragment.Level) (fragment.List, error) {
	name := mangle.Local(n.Str)
	if t.isIrbTop() {
		var text string
		t.Scopes.Current().WithTemp(func(tmp string) {
			text = fmt.Sprintf("((%s = Opal.irb_vars.%s) == null ? nil : %s)", tmp, n.Str, tmp)
		})
		return fragment.List{fragment.At(text, n)}, nil
	}
	return fragment.List{fragment.At(name, n)}, nil
}

// emitLasgn implements spec.md §4.6's `lasgn`.
func (t *Translator) emitLasgn(n *ast.Node, level fragment.Level) (fragment.List, error) {
	t.Scopes.Current().DeclareLocal(mangle.Local(n.Str))
	rhs, err := t.emitOne(n.Child(0), fragment.LevelExpr)
	if err != nil {
		return nil, err
	}
	var text string
	if t.isIrbTop() {
		text = fmt.Sprintf("Opal.irb_vars.%s = %s", n.Str, rhs)
	} else {
		text = fmt.Sprintf("%s = %s", mangle.Local(n.Str), rhs)
	}
	return fragment.List{fragment.At(parenWrap(level, text), n)}, nil
}

// emitIvar implements spec.md §4.6's `ivar`: records the accessor and
// emits `self.name` or `self['name']`.
func (t *Translator) emitIvar(n *ast.Node, level fragment.Level) (fragment.List, error) {
	accessor := mangle.IvarAccessor(n.Str)
	t.Scopes.Current().DeclareIvar(accessor)
	return fragment.List{fragment.At("self"+accessor, n)}, nil
}

// emitIasgn is the symmetric assignment form of emitIvar.
func (t *Translator) emitIasgn(n *ast.Node, level fragment.Level) (fragment.List, error) {
	accessor := mangle.IvarAccessor(n.Str)
	t.Scopes.Current().DeclareIvar(accessor)
	rhs, err := t.emitOne(n.Child(0), fragment.LevelExpr)
	if err != nil {
		return nil, err
	}
	text := fmt.Sprintf("self%s = %s", accessor, rhs)
	return fragment.List{fragment.At(parenWrap(level, text), n)}, nil
}

// emitGvar implements spec.md §4.6's `gvar`, requiring the gvars helper.
func (t *Translator) emitGvar(n *ast.Node, level fragment.Level) (fragment.List, error) {
	t.Helpers.Require("gvars")
	text := fmt.Sprintf("__gvars[%s]", quote(n.Str))
	return fragment.List{fragment.At(text, n)}, nil
}

func (t *Translator) emitGasgn(n *ast.Node, level fragment.Level) (fragment.List, error) {
	t.Helpers.Require("gvars")
	rhs, err := t.emitOne(n.Child(0), fragment.LevelExpr)
	if err != nil {
		return nil, err
	}
	text := fmt.Sprintf("__gvars[%s] = %s", quote(n.Str), rhs)
	return fragment.List{fragment.At(parenWrap(level, text), n)}, nil
}

// emitCvar implements spec.md §4.6's `cvar` (`@@name`): the name
// already carries its "@@" prefix, used verbatim as the Opal.cvars key.
func (t *Translator) emitCvar(n *ast.Node, level fragment.Level) (fragment.List, error) {
	var text string
	t.Scopes.Current().WithTemp(func(tmp string) {
		text = fmt.Sprintf("((%s = Opal.cvars[%s]) == null ? nil : %s)", tmp, quote(n.Str), tmp)
	})
	return fragment.List{fragment.At(text, n)}, nil
}

// emitCvasgn implements `cvasgn`/`cvdecl`.
func (t *Translator) emitCvasgn(n *ast.Node, level fragment.Level) (fragment.List, error) {
	rhs, err := t.emitOne(n.Child(0), fragment.LevelExpr)
	if err != nil {
		return nil, err
	}
	text := fmt.Sprintf("(Opal.cvars[%s] = %s)", quote(n.Str), rhs)
	return fragment.List{fragment.At(text, n)}, nil
}

// emitConst implements spec.md §4.6's `const`: with const_missing, a
// guarded lookup through the runtime trap; without, a bare scope read.
func (t *Translator) emitConst(n *ast.Node, level fragment.Level) (fragment.List, error) {
	if !t.Opts.ConstMissing {
		return fragment.List{fragment.At("__scope."+n.Str, n)}, nil
	}
	var text string
	t.Scopes.Current().WithTemp(func(tmp string) {
		text = fmt.Sprintf("((%s = __scope.%s) == null ? __opal.cm(%s) : %s)", tmp, n.Str, quote(n.Str), tmp)
	})
	return fragment.List{fragment.At(text, n)}, nil
}

func (t *Translator) emitCdecl(n *ast.Node, level fragment.Level) (fragment.List, error) {
	rhs, err := t.emitOne(n.Child(0), fragment.LevelExpr)
	if err != nil {
		return nil, err
	}
	text := fmt.Sprintf("__scope.%s = %s", n.Str, rhs)
	return fragment.List{fragment.At(text, n)}, nil
}

func (t *Translator) colon2Scope(n *ast.Node) (string, error) {
	base, err := t.emitOne(n.Child(0), fragment.LevelRecv)
	if err != nil {
		return "", err
	}
	return base + "._scope", nil
}

// emitColon2 implements `colon2(base, Name)`.
func (t *Translator) emitColon2(n *ast.Node, level fragment.Level) (fragment.List, error) {
	scopeExpr, err := t.colon2Scope(n)
	if err != nil {
		return nil, err
	}
	if !t.Opts.ConstMissing {
		return fragment.List{fragment.At(scopeExpr+"."+n.Str, n)}, nil
	}
	var text string
	t.Scopes.Current().WithTemp(func(tmp string) {
		text = fmt.Sprintf("((%s = %s.%s) == null ? __opal.cm(%s) : %s)", tmp, scopeExpr, n.Str, quote(n.Str), tmp)
	})
	return fragment.List{fragment.At(text, n)}, nil
}

// emitColon3 implements `colon3(Name)`, scoped through Opal.Object.
func (t *Translator) emitColon3(n *ast.Node, level fragment.Level) (fragment.List, error) {
	scopeExpr := "__opal.Object._scope"
	if !t.Opts.ConstMissing {
		return fragment.List{fragment.At(scopeExpr+"."+n.Str, n)}, nil
	}
	var text string
	t.Scopes.Current().WithTemp(func(tmp string) {
		text = fmt.Sprintf("((%s = %s.%s) == null ? __opal.cm(%s) : %s)", tmp, scopeExpr, n.Str, quote(n.Str), tmp)
	})
	return fragment.List{fragment.At(text, n)}, nil
}
