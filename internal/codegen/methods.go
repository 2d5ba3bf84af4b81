package codegen

import (
	"fmt"
	"strings"

	"github.com/ivylang/ivyc/internal/ast"
	"github.com/ivylang/ivyc/internal/fragment"
	"github.com/ivylang/ivyc/internal/mangle"
	"github.com/ivylang/ivyc/internal/rewrite"
	"github.com/ivylang/ivyc/internal/scope"
)

// paramSpec is one parsed entry of a defn/defs parameter list. The
// parser collaborator is expected to express a method's parameter list
// as an `args` node whose children reuse existing node kinds rather
// than a dedicated parameter grammar: a bare `lasgn` is a required
// param, an `lasgn` wrapping one child is an optional param with that
// child as its default expression, `splat` is the rest-param, and
// `block_pass` is the block param.
type paramSpec struct {
	kind        string // "required", "optional", "splat", "block"
	name        string
	defaultExpr *ast.Node
}

func parseParams(paramsNode *ast.Node) []paramSpec {
	var out []paramSpec
	if paramsNode.IsNil() {
		return out
	}
	for _, c := range paramsNode.Children {
		if c == nil {
			continue
		}
		switch c.Kind {
		case ast.KindSplat:
			out = append(out, paramSpec{kind: "splat", name: c.Str})
		case ast.KindBlockPass:
			out = append(out, paramSpec{kind: "block", name: c.Str})
		case ast.KindLasgn:
			if len(c.Children) == 1 {
				out = append(out, paramSpec{kind: "optional", name: c.Str, defaultExpr: c.Children[0]})
			} else {
				out = append(out, paramSpec{kind: "required", name: c.Str})
			}
		}
	}
	return out
}

func requiredCount(params []paramSpec) int {
	n := 0
	for _, p := range params {
		if p.kind == "required" {
			n++
		}
	}
	return n
}

// arityCheckLine implements spec.md's optional arity_check option: a
// prologue guard comparing arguments.length against the method's
// required/optional/splat shape.
func arityCheckLine(params []paramSpec) string {
	required := requiredCount(params)
	hasSplat := false
	optional := 0
	for _, p := range params {
		switch p.kind {
		case "optional":
			optional++
		case "splat":
			hasSplat = true
		}
	}
	if hasSplat {
		return fmt.Sprintf("if (arguments.length < %d) { Opal.ac(arguments, %d, this, %s); }", required, required, quote("unbounded"))
	}
	max := required + optional
	return fmt.Sprintf("if (arguments.length < %d || arguments.length > %d) { Opal.ac(arguments, %d, this, %d); }", required, max, required, max)
}

// declareParams declares each param's name as a local of sc, and for a
// block param records it as the scope's bound block name used by
// yield/block_given?.
func declareParams(sc *scope.Scope, params []paramSpec) {
	for _, p := range params {
		switch p.kind {
		case "required", "optional", "splat":
			sc.DeclareLocal(mangle.Local(p.name))
		case "block":
			sc.BlockName = mangle.Local(p.name)
		}
	}
}

// renderParamPrologue builds the fixed JS formal-parameter list and
// the prologue lines assigning defaults and collecting the splat tail.
func (t *Translator) renderParamPrologue(params []paramSpec) (formals []string, prologue []string, err error) {
	for i, p := range params {
		switch p.kind {
		case "required":
			formals = append(formals, mangle.Local(p.name))
		case "optional":
			formals = append(formals, mangle.Local(p.name))
			defText, derr := t.emitOne(p.defaultExpr, fragment.LevelExpr)
			if derr != nil {
				return nil, nil, derr
			}
			prologue = append(prologue, fmt.Sprintf("if (%s == null) { %s = %s; }", mangle.Local(p.name), mangle.Local(p.name), defText))
		case "splat":
			prologue = append(prologue, fmt.Sprintf("%s = __slice.call(arguments, %d);", mangle.Local(p.name), i))
			t.Helpers.Require("slice")
		}
	}
	return formals, prologue, nil
}

// emitMethodBody is the shared core of emitDefn/emitDefs: push a def
// scope, stash the super-capture target it was installed with (spec.md
// §4.7 step 7, §4.11) so `super`/`zsuper` anywhere in the body can see
// it, declare params, return-lift and emit the body, then assemble the
// final `function(...) { ... }` text once the body's demand on the
// block parameter (and everything else discovered mid-compile) is known.
func (t *Translator) emitMethodBody(name string, paramsNode, bodyBlock *ast.Node, inClassSuper bool, superClassName string) (string, *scope.Scope, error) {
	params := parseParams(paramsNode)

	var sc *scope.Scope
	var bodyText string
	var err error
	t.Scopes.InScope(scope.KindDef, func(s *scope.Scope) {
		sc = s
		sc.Defs = name
		sc.InClassSuper = inClassSuper
		sc.SuperClassName = superClassName
		declareParams(sc, params)
		lifted := rewrite.Returns(bodyBlock)
		bodyText, err = t.emitOne(lifted, fragment.LevelStmt)
	})
	if err != nil {
		return "", nil, err
	}

	formals, prologue, err := t.renderParamPrologue(params)
	if err != nil {
		return "", nil, err
	}
	if t.Opts.ArityCheck {
		prologue = append([]string{arityCheckLine(params)}, prologue...)
	}
	if sc.UsesBlock {
		formals = append(formals, sc.BlockName)
	}

	var body strings.Builder
	if decl := declTemps(sc); decl != "" {
		body.WriteString(decl)
		body.WriteString("\n")
	}
	if len(prologue) > 0 {
		body.WriteString(strings.Join(prologue, "\n"))
		body.WriteString("\n")
	}
	body.WriteString(bodyText)

	return fmt.Sprintf("function(%s) {\n%s\n}", strings.Join(formals, ", "), body.String()), sc, nil
}

// emitDefn implements spec.md §4.6's `defn`, installed per the four
// forms §4.7 enumerates: a singleton method on the enclosing class
// goes through emitDefs instead, so this handles the remaining three —
// `self._defn` inside Object's own class body, `<proto>.$mid = fn` in
// any other class/module scope (capturing `super_<uniq>` first when
// the body used super), and `def.$mid = fn` everywhere else (top scope,
// inside a def, or inside an iter).
func (t *Translator) emitDefn(n *ast.Node, level fragment.Level) (fragment.List, error) {
	name := n.Str
	enc := t.Scopes.Current()

	isObjectBody := (enc.Kind == scope.KindClass || enc.Kind == scope.KindModule) && enc.Name == "Object"
	inClassSuper := (enc.Kind == scope.KindClass || enc.Kind == scope.KindModule) && !isObjectBody

	var superClassName string
	if !inClassSuper {
		switch enc.Kind {
		case scope.KindClass, scope.KindModule, scope.KindSclass:
			superClassName = enc.Name
		default:
			superClassName = "__opal.Object"
		}
	}

	fn, sc, err := t.emitMethodBody(name, n.Child(0), n.Child(1), inClassSuper, superClassName)
	if err != nil {
		return nil, err
	}
	enc.DeclareMethod(name)

	if isObjectBody {
		text := fmt.Sprintf("self._defn(%s, %s);", quote("$"+name), fn)
		return fragment.List{fragment.Plain(text)}, nil
	}

	accessor := mangle.MidToJsid(name)
	var b strings.Builder
	if inClassSuper && sc.UsesSuper {
		b.WriteString(fmt.Sprintf("var %s = def%s;\n", sc.SuperVar, accessor))
	}
	if enc.Kind == scope.KindTop || enc.Kind == scope.KindIter || enc.Kind == scope.KindDef {
		t.Scopes.Top().DefinesDefn = true
	}
	b.WriteString(fmt.Sprintf("def%s = %s;", accessor, fn))
	return fragment.List{fragment.Plain(b.String())}, nil
}

// emitDefs implements spec.md §4.6's `defs` (`def self.name`/`def
// Recv.name`): a singleton method, installed directly on the receiver
// expression through `__opal.defs` (spec.md §4.7 step 1). A `super`
// inside its body always targets the receiver's own `._super`, never a
// `super_<uniq>` capture — that form is reserved for ordinary `defn`s
// in class/module scope.
func (t *Translator) emitDefs(n *ast.Node, level fragment.Level) (fragment.List, error) {
	recv := n.Child(0)
	name := n.Child(1).Str
	paramsNode := n.Child(2)
	bodyBlock := n.Child(3)

	recvText, err := t.emitOne(recv, fragment.LevelRecv)
	if err != nil {
		return nil, err
	}
	fn, _, err := t.emitMethodBody(name, paramsNode, bodyBlock, false, recvText)
	if err != nil {
		return nil, err
	}
	text := fmt.Sprintf("__opal.defs(%s, %s, %s);", recvText, quote("$"+name), fn)
	return fragment.List{fragment.Plain(text)}, nil
}
