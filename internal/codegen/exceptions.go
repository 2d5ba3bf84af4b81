package codegen

import (
	"fmt"
	"strings"

	"github.com/ivylang/ivyc/internal/ast"
	"github.com/ivylang/ivyc/internal/fragment"
	"github.com/ivylang/ivyc/internal/rewrite"
)

// emitRescue implements spec.md §4.6's `rescue(body, else, resbody…)`
// as a native try/catch: each `resbody`'s exception-class list is
// tested through the `__opal.rescue` helper (spec.md's `===`-based
// ancestry check), an absent class list defaults to StandardError, an
// unmatched exception is rethrown, and a present else-clause runs only
// when the protected body raised nothing.
func (t *Translator) emitRescue(n *ast.Node, level fragment.Level) (fragment.List, error) {
	body := n.Child(0)
	elseBody := n.Child(1)
	resbodies := n.Children[2:]
	closure := level == fragment.LevelExpr || level == fragment.LevelRecv

	bodyTarget := body
	elseTarget := elseBody
	if closure {
		bodyTarget = rewrite.Returns(body)
		elseTarget = rewrite.Returns(elseBody)
	}
	bodyText, err := t.emitOne(bodyTarget, fragment.LevelStmt)
	if err != nil {
		return nil, err
	}

	hasElse := !elseBody.IsNil() || closure
	var elseText string
	if hasElse {
		elseText, err = t.emitOne(elseTarget, fragment.LevelStmt)
		if err != nil {
			return nil, err
		}
	}

	var text string
	t.Scopes.Current().WithTemp(func(errTmp string) {
		var clauses []string
		for _, rb := range resbodies {
			clsArray := rb.Child(0)
			bindTarget := rb.Child(1)
			rbBody := rb.Child(2)

			var condParts []string
			if clsArray.IsNil() || len(clsArray.Children) == 0 {
				condParts = append(condParts, fmt.Sprintf("__opal.rescue(%s, [__scope.StandardError])", errTmp))
			} else {
				for _, clsExpr := range clsArray.Children {
					clsText, e := t.emitOne(clsExpr, fragment.LevelExpr)
					if e != nil {
						err = e
						return
					}
					condParts = append(condParts, fmt.Sprintf("__opal.rescue(%s, [%s])", errTmp, clsText))
				}
			}

			var bindLine string
			if !bindTarget.IsNil() {
				assignText, e := t.emitLhsAssign(bindTarget, errTmp)
				if e != nil {
					err = e
					return
				}
				bindLine = assignText + ";\n"
			}

			rbTarget := rbBody
			if closure {
				rbTarget = rewrite.Returns(rbBody)
			}
			clauseBody, e := t.emitOne(rbTarget, fragment.LevelStmt)
			if e != nil {
				err = e
				return
			}
			clauses = append(clauses, fmt.Sprintf("if (%s) {\n%s%s\n}", strings.Join(condParts, " || "), bindLine, clauseBody))
		}

		chain := strings.Join(clauses, " else ")
		rethrow := fmt.Sprintf("throw %s;", errTmp)
		if chain == "" {
			chain = rethrow
		} else {
			chain += " else {\n" + rethrow + "\n}"
		}

		if hasElse {
			t.Scopes.Current().WithTemp(func(raised string) {
				text = fmt.Sprintf(
					"%s = false;\ntry {\n%s\n} catch (%s) {\n%s = true;\n%s\n}\nif (!%s) {\n%s\n}",
					raised, bodyText, errTmp, raised, chain, raised, elseText)
			})
			return
		}
		text = fmt.Sprintf("try {\n%s\n} catch (%s) {\n%s\n}", bodyText, errTmp, chain)
	})
	if err != nil {
		return nil, err
	}
	if closure {
		text = fmt.Sprintf("(function() { %s }).call(self)", text)
	}
	return fragment.List{fragment.At(parenWrap(level, text), n)}, nil
}

// emitEnsure implements spec.md §4.6's `ensure(body, ensureBody)` as a
// native try/finally.
func (t *Translator) emitEnsure(n *ast.Node, level fragment.Level) (fragment.List, error) {
	body := n.Child(0)
	ensureBody := n.Child(1)
	closure := level == fragment.LevelExpr || level == fragment.LevelRecv

	bodyTarget := body
	if closure {
		bodyTarget = rewrite.Returns(body)
	}
	bodyText, err := t.emitOne(bodyTarget, fragment.LevelStmt)
	if err != nil {
		return nil, err
	}
	ensureText, err := t.emitOne(ensureBody, fragment.LevelStmt)
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf("try {\n%s\n} finally {\n%s\n}", bodyText, ensureText)
	if closure {
		text = fmt.Sprintf("(function() { %s }).call(self)", text)
	}
	return fragment.List{fragment.At(parenWrap(level, text), n)}, nil
}
