package codegen

import (
	"github.com/ivylang/ivyc/internal/ast"
	"github.com/ivylang/ivyc/internal/fragment"
)

var comparisonOps = map[string]bool{
	"<": true, ">": true, "<=": true, ">=": true, "==": true, "!=": true,
}

// isPeepholeBoolean reports whether n's emitted value is already known
// safe to evaluate twice without a temp, for spec.md §4.6's js_truthy/
// js_falsy peephole: a block_given? call, a comparison/== operator, or
// a bare lvar/self read.
func isPeepholeBoolean(n *ast.Node) bool {
	switch n.Kind {
	case ast.KindLvar, ast.KindSelf:
		return true
	case ast.KindOperator:
		return comparisonOps[n.Str]
	case ast.KindCall:
		return n.Str == "==" || n.Str == "block_given?"
	default:
		return false
	}
}

// truthyValue builds the (condition, repeatable-value-text) pair
// js_truthy/js_falsy and and/or share: when n is peephole-safe, the
// raw emitted text is used directly on both sides of the check; else
// a temp is bound once and reused.
func (t *Translator) truthyValue(n *ast.Node) (cond string, val string, err error) {
	raw, err := t.emitOne(n, fragment.LevelExpr)
	if err != nil {
		return "", "", err
	}
	if isPeepholeBoolean(n) {
		return raw + " !== false && " + raw + " !== nil", raw, nil
	}
	t.Scopes.Current().WithTemp(func(tmp string) {
		val = tmp
		cond = "(" + tmp + " = " + raw + ") !== false && " + tmp + " !== nil"
	})
	return cond, val, nil
}

// Truthy emits spec.md §4.6's js_truthy(e).
func (t *Translator) Truthy(n *ast.Node) (string, error) {
	cond, _, err := t.truthyValue(n)
	return cond, err
}

// Falsy emits spec.md §4.6's js_falsy(e): the negation of Truthy.
func (t *Translator) Falsy(n *ast.Node) (string, error) {
	raw, err := t.emitOne(n, fragment.LevelExpr)
	if err != nil {
		return "", err
	}
	if isPeepholeBoolean(n) {
		return raw + " === false || " + raw + " === nil", nil
	}
	var cond string
	t.Scopes.Current().WithTemp(func(tmp string) {
		cond = "(" + tmp + " = " + raw + ") === false || " + tmp + " === nil"
	})
	return cond, nil
}

// emitAnd implements spec.md §4.6's `and(a,b)`.
func (t *Translator) emitAnd(n *ast.Node, level fragment.Level) (fragment.List, error) {
	cond, val, err := t.truthyValue(n.Child(0))
	if err != nil {
		return nil, err
	}
	b, err := t.emitOne(n.Child(1), fragment.LevelExpr)
	if err != nil {
		return nil, err
	}
	text := "(" + cond + " ? " + b + " : " + val + ")"
	return fragment.List{fragment.At(parenWrap(level, text), n)}, nil
}

// emitOr implements spec.md §4.6's `or(a,b)`.
func (t *Translator) emitOr(n *ast.Node, level fragment.Level) (fragment.List, error) {
	cond, val, err := t.truthyValue(n.Child(0))
	if err != nil {
		return nil, err
	}
	b, err := t.emitOne(n.Child(1), fragment.LevelExpr)
	if err != nil {
		return nil, err
	}
	text := "(" + cond + " ? " + val + " : " + b + ")"
	return fragment.List{fragment.At(parenWrap(level, text), n)}, nil
}
