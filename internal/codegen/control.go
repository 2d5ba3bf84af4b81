package codegen

import (
	"fmt"
	"strings"

	"github.com/ivylang/ivyc/internal/ast"
	"github.com/ivylang/ivyc/internal/fragment"
	"github.com/ivylang/ivyc/internal/rewrite"
	"github.com/ivylang/ivyc/internal/scope"
)

// emitIf implements spec.md §4.6's `if(test, then, else)`. At
// statement level, a missing then-branch with an else present is
// compiled as `if (js_falsy(test)) { <else> }` rather than inverting
// the branches textually — the same peephole the truthy/falsy pair
// already perform on the test itself. At expr|recv level both branches
// are return-lifted and the whole thing wrapped in a called closure.
func (t *Translator) emitIf(n *ast.Node, level fragment.Level) (fragment.List, error) {
	test := n.Child(0)
	thenNode := n.Child(1)
	elseNode := n.Child(2)

	if level == fragment.LevelExpr || level == fragment.LevelRecv {
		cond, err := t.Truthy(test)
		if err != nil {
			return nil, err
		}
		thenText, err := t.emitOne(rewrite.Returns(thenNode), fragment.LevelStmt)
		if err != nil {
			return nil, err
		}
		elseText, err := t.emitOne(rewrite.Returns(elseNode), fragment.LevelStmt)
		if err != nil {
			return nil, err
		}
		text := fmt.Sprintf("(function() { if (%s) {\n%s\n} else {\n%s\n} }).call(self)", cond, thenText, elseText)
		return fragment.List{fragment.At(parenWrap(level, text), n)}, nil
	}

	if thenNode.IsNil() && !elseNode.IsNil() {
		cond, err := t.Falsy(test)
		if err != nil {
			return nil, err
		}
		body, err := t.emitOne(elseNode, fragment.LevelStmt)
		if err != nil {
			return nil, err
		}
		return fragment.List{fragment.Plain(fmt.Sprintf("if (%s) {\n%s\n}", cond, body))}, nil
	}

	cond, err := t.Truthy(test)
	if err != nil {
		return nil, err
	}
	thenText, err := t.emitOne(thenNode, fragment.LevelStmt)
	if err != nil {
		return nil, err
	}
	if elseNode.IsNil() {
		return fragment.List{fragment.Plain(fmt.Sprintf("if (%s) {\n%s\n}", cond, thenText))}, nil
	}
	elseText, err := t.emitOne(elseNode, fragment.LevelStmt)
	if err != nil {
		return nil, err
	}
	return fragment.List{fragment.Plain(fmt.Sprintf("if (%s) {\n%s\n} else {\n%s\n}", cond, thenText, elseText))}, nil
}

// emitWhile implements spec.md §4.6's while/until. The body is
// compiled first so the loop frame's UseRedo flag — set only if the
// body actually contains a bare `redo` — is known before the loop
// header is assembled; only then does the redo_var guard get woven in.
func (t *Translator) emitWhile(n *ast.Node, level fragment.Level) (fragment.List, error) {
	isUntil := n.Kind == ast.KindUntil
	test := n.Child(0)
	body := n.Child(1)
	closure := level == fragment.LevelExpr || level == fragment.LevelRecv

	var baseCond string
	var err error
	if isUntil {
		baseCond, err = t.Truthy(test)
		baseCond = "!(" + baseCond + ")"
	} else {
		baseCond, err = t.Truthy(test)
	}
	if err != nil {
		return nil, err
	}

	redoVar := t.Scopes.Current().NewTemp()
	var bodyText string
	var useRedo bool
	t.Scopes.Current().InWhile(closure, redoVar, func(l *scope.Loop) {
		bodyText, err = t.emitOne(body, fragment.LevelStmt)
		useRedo = l.UseRedo
	})
	if err != nil {
		return nil, err
	}
	t.Scopes.Current().QueueTemp(redoVar)

	var text string
	if useRedo {
		text = fmt.Sprintf("%s = false;\nwhile (%s || %s) {\n%s = false;\n%s\n}", redoVar, redoVar, baseCond, redoVar, bodyText)
	} else {
		text = fmt.Sprintf("while (%s) {\n%s\n}", baseCond, bodyText)
	}
	if closure {
		text = fmt.Sprintf("(function() { %s return nil; }).call(self)", text)
	}
	return fragment.List{fragment.At(parenWrap(level, text), n)}, nil
}

// emitCase implements spec.md §4.6's case/when: the scrutinee (if any)
// is bound once to the scope-local `$case`, each `when` clause becomes
// an `if`/`else if` comparing its candidates against `$case` with the
// target-language `===` method, and a caseless `case` (no scrutinee)
// falls back to truthiness-testing each candidate directly, matching
// an if/elsif chain.
func (t *Translator) emitCase(n *ast.Node, level fragment.Level) (fragment.List, error) {
	subject := n.Child(0)
	elseBody := n.Child(1)
	whens := n.Children[2:]
	closure := level == fragment.LevelExpr || level == fragment.LevelRecv
	hasSubject := !subject.IsNil()

	var lines []string
	if hasSubject {
		subjText, err := t.emitOne(subject, fragment.LevelExpr)
		if err != nil {
			return nil, err
		}
		t.Scopes.Current().DeclareLocal("$case")
		lines = append(lines, fmt.Sprintf("$case = %s;", subjText))
	}

	var clauses []string
	for _, w := range whens {
		condsNode := w.Child(0)
		bodyNode := w.Child(1)
		var condParts []string
		for _, cand := range condsNode.Children {
			if cand != nil && cand.Kind == ast.KindSplat {
				arrText, err := t.emitOne(cand.Child(0), fragment.LevelExpr)
				if err != nil {
					return nil, err
				}
				check := "%[1]s[$i]['$===']($case) !== false && %[1]s[$i]['$===']($case) !== nil"
				if !hasSubject {
					check = "%[1]s[$i] !== false && %[1]s[$i] !== nil"
				}
				condParts = append(condParts, fmt.Sprintf(
					"(function() { for (var $i = 0; $i < %[1]s.length; $i++) { if ("+check+") { return true; } } return false; }).call(self)",
					arrText))
				continue
			}
			if !hasSubject {
				cond, err := t.Truthy(cand)
				if err != nil {
					return nil, err
				}
				condParts = append(condParts, cond)
				continue
			}
			candText, err := t.emitOne(cand, fragment.LevelRecv)
			if err != nil {
				return nil, err
			}
			condParts = append(condParts, fmt.Sprintf("%s['$===']($case) !== false && %s['$===']($case) !== nil", candText, candText))
		}

		var bodyText string
		var err error
		if closure {
			bodyText, err = t.emitOne(rewrite.Returns(bodyNode), fragment.LevelStmt)
		} else {
			bodyText, err = t.emitOne(bodyNode, fragment.LevelStmt)
		}
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, fmt.Sprintf("if (%s) {\n%s\n}", strings.Join(condParts, " || "), bodyText))
	}

	var elseText string
	var err error
	if closure {
		elseText, err = t.emitOne(rewrite.Returns(elseBody), fragment.LevelStmt)
	} else if !elseBody.IsNil() {
		elseText, err = t.emitOne(elseBody, fragment.LevelStmt)
	}
	if err != nil {
		return nil, err
	}

	body := strings.Join(clauses, " else ")
	if elseText != "" {
		body += " else {\n" + elseText + "\n}"
	}
	lines = append(lines, body)
	text := strings.Join(lines, "\n")
	if closure {
		text = fmt.Sprintf("(function() { %s }).call(self)", text)
	}
	return fragment.List{fragment.At(parenWrap(level, text), n)}, nil
}

// emitBreak implements spec.md §4.6's break: inside a while it is a
// bare `break` (or a `return` of the closure's value, when the loop
// itself was wrapped to carry an expression value); inside an
// iter it signals through the shared __breaker sentinel so the
// enclosing method call can recognize a non-local exit.
func (t *Translator) emitBreak(n *ast.Node, level fragment.Level) (fragment.List, error) {
	val, err := t.emitOne(n.Child(0), fragment.LevelExpr)
	if err != nil {
		return nil, err
	}
	if loop := t.Scopes.Current().CurrentLoop(); loop != nil {
		if loop.Closure {
			return fragment.List{fragment.Plain(fmt.Sprintf("return %s;", val))}, nil
		}
		return fragment.List{fragment.Plain("break;")}, nil
	}
	if t.Scopes.Enclosing(scope.KindIter) != nil {
		t.Helpers.Require("breaker")
		return fragment.List{fragment.Plain(fmt.Sprintf("return (__breaker.$v = %s, __breaker);", val))}, nil
	}
	return nil, t.fail(n, "break outside of a while/until loop or a block")
}

// emitNext implements spec.md §4.6's next: `continue` inside a while,
// else a target-language `return` of the given value.
func (t *Translator) emitNext(n *ast.Node, level fragment.Level) (fragment.List, error) {
	if t.Scopes.Current().InLoop() {
		return fragment.List{fragment.Plain("continue;")}, nil
	}
	val, err := t.emitOne(n.Child(0), fragment.LevelExpr)
	if err != nil {
		return nil, err
	}
	return fragment.List{fragment.Plain(fmt.Sprintf("return %s;", val))}, nil
}

// emitRedo implements spec.md §4.6's redo: inside a while it flags the
// enclosing loop frame and sets its redo_var; outside one its behavior
// is left unspecified by the source contract, rendered as a sentinel
// call so a miscompile is visible rather than silently wrong.
func (t *Translator) emitRedo(n *ast.Node, level fragment.Level) (fragment.List, error) {
	if loop := t.Scopes.Current().CurrentLoop(); loop != nil {
		loop.UseRedo = true
		return fragment.List{fragment.Plain(fmt.Sprintf("%s = true;\ncontinue;", loop.RedoVar))}, nil
	}
	return fragment.List{fragment.Plain("REDO();")}, nil
}

// emitReturn implements spec.md §4.6's return: legal only at statement
// level, since a target-language `return` has no expression form.
func (t *Translator) emitReturn(n *ast.Node, level fragment.Level) (fragment.List, error) {
	if level != fragment.LevelStmt {
		return nil, t.fail(n, "return used in expression position")
	}
	val, err := t.emitOne(n.Child(0), fragment.LevelExpr)
	if err != nil {
		return nil, err
	}
	return fragment.List{fragment.At(fmt.Sprintf("return %s;", val), n)}, nil
}

// emitYield implements spec.md §4.6's yield/returnable_yield: both
// invoke the enclosing scope's bound block function directly (never a
// method lookup); returnable_yield additionally binds the call's
// result to a temp and returns through the __breaker sentinel when the
// block itself performed a non-local break.
func (t *Translator) emitYield(n *ast.Node, level fragment.Level, returnable bool) (fragment.List, error) {
	cur := t.Scopes.Current()
	cur.UsesBlock = true
	blockName := cur.BlockName

	args, err := t.compileArgs(n.Child(0))
	if err != nil {
		return nil, err
	}
	callText := blockName + args.CallSuffix("null")

	if returnable {
		t.Helpers.Require("breaker")
		var text string
		cur.WithTemp(func(tmp string) {
			text = fmt.Sprintf("%s = %s;\nif (%s === __breaker) { return __breaker.$v; }\nreturn %s;", tmp, callText, tmp, tmp)
		})
		return fragment.List{fragment.At(text, n)}, nil
	}

	if level == fragment.LevelStmt {
		t.Helpers.Require("breaker")
		var text string
		cur.WithTemp(func(tmp string) {
			text = fmt.Sprintf("if ((%s = %s) === __breaker) { return __breaker.$v; }", tmp, callText)
		})
		return fragment.List{fragment.Plain(text)}, nil
	}
	return fragment.List{fragment.At(parenWrap(level, callText), n)}, nil
}

// emitBlock implements spec.md §4.5/§4.6's block: a plain sequence of
// statements, not itself a scope boundary. Before emission the inline
// yield lifter runs once over the (possibly already return-lifted)
// children; statements whose own kind is xstr, dxstr, or if manage
// their own trailing punctuation, everything else gets a block-level
// semicolon.
func (t *Translator) emitBlock(n *ast.Node, level fragment.Level) (fragment.List, error) {
	lifted := rewrite.LiftBlock(n, t.Scopes.Current())
	var lines []string
	for _, stmt := range lifted.Children {
		text, err := t.emitOne(stmt, fragment.LevelStmt)
		if err != nil {
			return nil, err
		}
		k := stmt.Kind
		if k != ast.KindXstr && k != ast.KindDxstr && k != ast.KindIf {
			text += ";"
		}
		lines = append(lines, text)
	}
	return fragment.List{fragment.Plain(strings.Join(lines, "\n"))}, nil
}
