package codegen

import (
	"fmt"
	"strings"

	"github.com/ivylang/ivyc/internal/ast"
	"github.com/ivylang/ivyc/internal/fragment"
	"github.com/ivylang/ivyc/internal/mangle"
	"github.com/ivylang/ivyc/internal/scope"
)

// endsInMethodDef reports whether body's last statement is a defn/defs
// (spec.md §4.6: a class/module body ending in a method definition
// must append a trailing `nil`, since a JS assignment statement has no
// useful value of its own to leave as the body's last expression).
func endsInMethodDef(body *ast.Node) bool {
	if body.IsNil() {
		return false
	}
	if body.Kind == ast.KindBlock {
		for i := len(body.Children) - 1; i >= 0; i-- {
			c := body.Children[i]
			if c == nil {
				continue
			}
			return c.Kind == ast.KindDefn || c.Kind == ast.KindDefs
		}
		return false
	}
	return body.Kind == ast.KindDefn || body.Kind == ast.KindDefs
}

// emitClass implements spec.md §4.6's `class`: an IIFE closing over
// `__base`/`__super`, opening (or reopening) a class through the
// `klass` helper and entering a KindClass scope named after it so
// nested `self`, `ivar`, and method emitters resolve correctly.
func (t *Translator) emitClass(n *ast.Node, level fragment.Level) (fragment.List, error) {
	name := n.Str
	superExpr := n.Child(0)
	body := n.Child(1)
	t.Helpers.Require("klass")

	baseText := selfTextForScope(t.Scopes.Current())

	superText := "null"
	if !superExpr.IsNil() {
		txt, err := t.emitOne(superExpr, fragment.LevelExpr)
		if err != nil {
			return nil, err
		}
		superText = txt
	}

	var sc *scope.Scope
	var bodyText string
	var err error
	t.Scopes.InScope(scope.KindClass, func(s *scope.Scope) {
		sc = s
		sc.Name = name
		bodyText, err = t.emitOne(body, fragment.LevelStmt)
	})
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("(function(__base, __super) {\n")
	b.WriteString(fmt.Sprintf("  function %s(){};\n", name))
	b.WriteString(fmt.Sprintf("  %s = __klass(__base, __super, %s, %s);\n", name, quote(name), name))
	b.WriteString(fmt.Sprintf("  var def = %s.prototype, __scope = %s._scope;\n", name, name))
	if decl := declTemps(sc); decl != "" {
		b.WriteString("  " + decl + "\n")
	}
	b.WriteString(bodyText)
	if endsInMethodDef(body) {
		b.WriteString("\n  nil")
	}
	b.WriteString(fmt.Sprintf("\n})(%s, %s);", baseText, superText))
	return fragment.List{fragment.Plain(b.String())}, nil
}

// emitModule implements spec.md §4.6's `module`, the namespace-only
// sibling of `class`: no superclass, opened through the `module` helper.
func (t *Translator) emitModule(n *ast.Node, level fragment.Level) (fragment.List, error) {
	name := n.Str
	body := n.Child(0)
	t.Helpers.Require("module")

	baseText := selfTextForScope(t.Scopes.Current())

	var sc *scope.Scope
	var bodyText string
	var err error
	t.Scopes.InScope(scope.KindModule, func(s *scope.Scope) {
		sc = s
		sc.Name = name
		bodyText, err = t.emitOne(body, fragment.LevelStmt)
	})
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("(function(__base) {\n")
	b.WriteString(fmt.Sprintf("  function %s(){};\n", name))
	b.WriteString(fmt.Sprintf("  %s = __module(__base, %s, %s);\n", name, quote(name), name))
	b.WriteString(fmt.Sprintf("  var def = %s.prototype, __scope = %s._scope;\n", name, name))
	if decl := declTemps(sc); decl != "" {
		b.WriteString("  " + decl + "\n")
	}
	b.WriteString(bodyText)
	if endsInMethodDef(body) {
		b.WriteString("\n  nil")
	}
	b.WriteString(fmt.Sprintf("\n})(%s);", baseText))
	return fragment.List{fragment.Plain(b.String())}, nil
}

// emitSclass implements spec.md §4.6's `sclass` (`class << target`):
// opens target's singleton class as the new self.
func (t *Translator) emitSclass(n *ast.Node, level fragment.Level) (fragment.List, error) {
	target := n.Child(0)
	body := n.Child(1)
	targetText, err := t.emitOne(target, fragment.LevelExpr)
	if err != nil {
		return nil, err
	}

	var sc *scope.Scope
	var bodyText string
	t.Scopes.InScope(scope.KindSclass, func(s *scope.Scope) {
		sc = s
		sc.Name = "self"
		bodyText, err = t.emitOne(body, fragment.LevelStmt)
	})
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("(function() {\n")
	b.WriteString("  var self = this, def = self.prototype;\n")
	if decl := declTemps(sc); decl != "" {
		b.WriteString("  " + decl + "\n")
	}
	b.WriteString(bodyText)
	b.WriteString(fmt.Sprintf("\n}).call(__opal.singleton(%s));", targetText))
	return fragment.List{fragment.Plain(b.String())}, nil
}

// emitAlias implements spec.md §4.6's `alias new old`: a prototype
// assignment in class/module/sclass scope, `self.prototype` elsewhere.
func (t *Translator) emitAlias(n *ast.Node, level fragment.Level) (fragment.List, error) {
	oldName := n.Child(0).Str
	newName := n.Str
	enc := t.Scopes.Current()
	proto := "self.prototype"
	if enc.Kind == scope.KindClass || enc.Kind == scope.KindModule || enc.Kind == scope.KindSclass {
		proto = "def"
	}
	enc.DeclareMethod(newName)
	text := fmt.Sprintf("%s%s = %s%s;", proto, mangle.MidToJsid(newName), proto, mangle.MidToJsid(oldName))
	return fragment.List{fragment.Plain(text)}, nil
}

// emitUndef implements spec.md §4.6's `undef name…`: `delete
// <proto>.<$name>` for each name.
func (t *Translator) emitUndef(n *ast.Node, level fragment.Level) (fragment.List, error) {
	enc := t.Scopes.Current()
	proto := "self.prototype"
	if enc.Kind == scope.KindClass || enc.Kind == scope.KindModule || enc.Kind == scope.KindSclass {
		proto = "def"
	}
	var lines []string
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("delete %s%s;", proto, mangle.MidToJsid(c.Str)))
	}
	return fragment.List{fragment.Plain(strings.Join(lines, "\n"))}, nil
}
