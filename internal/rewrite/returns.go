// Package rewrite implements the two sexp-to-sexp transforms spec.md
// §4.4 and §4.5 describe: return-lifting and the inline-yield lifter.
// Both produce a new tree rather than mutating the input in place —
// spec.md §9 notes the source mutates children directly in three
// places and that "in an immutable-tree implementation, produce
// rewritten copies; the algorithms above are already described in
// value-form" — this is that immutable-tree implementation.
package rewrite

import "github.com/ivylang/ivyc/internal/ast"

// Returns transforms n into the sexp that, emitted, produces a
// target-language `return` of n's value (spec.md §4.4). The cases
// below are listed in the exact priority order spec.md specifies;
// first match wins.
func Returns(n *ast.Node) *ast.Node {
	if n.IsNil() {
		return jsReturn(ast.New(ast.KindNil, lineOf(n)))
	}

	switch n.Kind {
	case ast.KindBreak, ast.KindNext, ast.KindReturn:
		return n

	case ast.KindYield:
		return n.WithKind(ast.KindReturnableYield)

	case ast.KindScope, ast.KindRescue, ast.KindEnsure:
		children := append([]*ast.Node(nil), n.Children...)
		children[0] = Returns(children[0])
		return n.WithChildren(children...)

	case ast.KindBlock:
		if len(n.Children) == 0 {
			return n.WithChildren(Returns(nil))
		}
		children := append([]*ast.Node(nil), n.Children...)
		last := len(children) - 1
		children[last] = Returns(children[last])
		return n.WithChildren(children...)

	case ast.KindWhen:
		children := append([]*ast.Node(nil), n.Children...)
		children[1] = Returns(children[1])
		return n.WithChildren(children...)

	case ast.KindWhile, ast.KindUntil:
		return n // loops return nil

	case ast.KindIf:
		cond := n.Child(0)
		thenBranch := Returns(n.Child(1))
		elseBranch := Returns(n.Child(2))
		return ast.New(ast.KindIf, lineOf(n), cond, thenBranch, elseBranch)

	default:
		return jsReturn(n)
	}
}

func jsReturn(n *ast.Node) *ast.Node {
	return ast.New(ast.KindJsReturn, lineOf(n), n)
}

func lineOf(n *ast.Node) int {
	if n == nil {
		return 0
	}
	return n.Line
}
