package codegen

import (
	"fmt"
	"strings"

	"github.com/ivylang/ivyc/internal/ast"
	"github.com/ivylang/ivyc/internal/fragment"
	"github.com/ivylang/ivyc/internal/rewrite"
	"github.com/ivylang/ivyc/internal/scope"
)

// emitIter implements spec.md §4.6's `iter(call, params, body)`: a
// block literal attached to a call. The block compiles to an ordinary
// JS function in a fresh KindIter scope (so `self`, ivars, and a
// `break` inside it resolve to the enclosing method's, not its own —
// spec.md §3's "iter scope"), then is spliced in as the call's extra
// trailing argument.
func (t *Translator) emitIter(n *ast.Node, level fragment.Level) (fragment.List, error) {
	callNode := n.Child(0)
	paramsNode := n.Child(1)
	bodyBlock := n.Child(2)
	params := parseParams(paramsNode)

	var sc *scope.Scope
	var bodyText string
	var err error
	t.Scopes.InScope(scope.KindIter, func(s *scope.Scope) {
		sc = s
		declareParams(sc, params)
		lifted := rewrite.Returns(bodyBlock)
		bodyText, err = t.emitOne(lifted, fragment.LevelStmt)
	})
	if err != nil {
		return nil, err
	}

	formals, prologue, err := t.renderParamPrologue(params)
	if err != nil {
		return nil, err
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

	blockText := fmt.Sprintf("function(%s) {\n%s\n}", strings.Join(formals, ", "), body.String())

	text, err := t.compileCallText(callNode, blockText)
	if err != nil {
		return nil, err
	}
	return fragment.List{fragment.At(parenWrap(level, text), n)}, nil
}
