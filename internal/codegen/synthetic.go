package codegen

import (
	"fmt"
	"strings"

	"github.com/ivylang/ivyc/internal/ast"
	"github.com/ivylang/ivyc/internal/fragment"
)

// emitJsReturn implements spec.md §4.4's js_return wrapper, the node
// the returns-lifting rewrite wraps every tail expression in. Its one
// irregular case is an xstr/dxstr child: raw target-language text that
// may already be a complete `return …;` statement (or end a statement
// with its own semicolon, or span multiple lines), in which case no
// further "return " prefix is added — this text-level inspection is
// exactly what spec.md's own js_return does to inline code fragments.
func (t *Translator) emitJsReturn(n *ast.Node, level fragment.Level) (fragment.List, error) {
	child := n.Child(0)
	if child != nil && (child.Kind == ast.KindXstr || child.Kind == ast.KindDxstr) {
		raw, err := t.emitOne(child, fragment.LevelExpr)
		if err != nil {
			return nil, err
		}
		trimmed := strings.TrimSpace(raw)
		if strings.Contains(trimmed, "return") || strings.HasSuffix(trimmed, ";") || strings.Contains(raw, "\n") {
			return fragment.List{fragment.At(raw, n)}, nil
		}
		return fragment.List{fragment.At("return " + raw + ";", n)}, nil
	}

	val, err := t.emitOne(child, fragment.LevelExpr)
	if err != nil {
		return nil, err
	}
	return fragment.List{fragment.At("return " + val + ";", n)}, nil
}

// emitYasgn implements the synthetic `yasgn` node the inline-yield
// lifter (internal/rewrite.LiftBlock) splices in immediately before a
// statement whose expression position held a bare yield: assign the
// block call's result to "__yielded", with the same __breaker
// non-local-exit check an ordinary statement-level yield performs.
func (t *Translator) emitYasgn(n *ast.Node, level fragment.Level) (fragment.List, error) {
	yieldNode := n.Child(0)
	cur := t.Scopes.Current()
	cur.UsesBlock = true
	args, err := t.compileArgs(yieldNode.Child(0))
	if err != nil {
		return nil, err
	}
	t.Helpers.Require("breaker")
	callText := cur.BlockName + args.CallSuffix("null")
	text := fmt.Sprintf("if ((%s = %s) === __breaker) { return __breaker.$v; }", n.Str, callText)
	return fragment.List{fragment.Plain(text)}, nil
}
