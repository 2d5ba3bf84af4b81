package rewrite

import "github.com/ivylang/ivyc/internal/ast"

// TempDeclarer is the subset of *scope.Scope the lifter needs: a way
// to declare the synthetic "__yielded" temp in the scope that owns the
// block being lifted. Declared as an interface here (rather than
// importing internal/scope directly) so this package stays a pure
// tree-to-tree transform with no scope-stack dependency of its own.
type TempDeclarer interface {
	DeclareLocal(name string)
}

// LiftBlock implements spec.md §4.5: before emitting a block's
// children, each statement is scanned for a `yield` sitting in
// expression position inside an array literal's elements, a call's
// argument list, or directly under a return. The first such `yield`
// found is replaced in place with a reference to a synthetic
// "__yielded" temp, and a `yasgn("__yielded", yield)` statement is
// spliced in immediately before the statement that held it. At most
// one lift happens per statement.
func LiftBlock(block *ast.Node, scope TempDeclarer) *ast.Node {
	if block == nil || block.Kind != ast.KindBlock {
		return block
	}
	out := make([]*ast.Node, 0, len(block.Children))
	for _, stmt := range block.Children {
		rewritten, yieldNode, found := liftStatement(stmt)
		if found {
			scope.DeclareLocal("__yielded")
			assign := ast.NewStr(ast.KindYasgn, lineOf(yieldNode), "__yielded", yieldNode)
			out = append(out, assign, rewritten)
		} else {
			out = append(out, rewritten)
		}
	}
	return block.WithChildren(out...)
}

// liftStatement searches n's subtree for the first liftable yield,
// stopping at the first match (spec.md: "Only one lift per statement
// is performed").
func liftStatement(n *ast.Node) (rewritten *ast.Node, yieldNode *ast.Node, found bool) {
	if n == nil {
		return n, nil, false
	}

	if n.Kind == ast.KindJsReturn {
		if child := n.Child(0); child != nil && child.Kind == ast.KindYield {
			tmp := jsTmp(child.Line)
			return n.WithChildren(tmp), child, true
		}
	}

	if n.Kind == ast.KindArray {
		if rewrittenChildren, yn, ok := liftFirstYieldAmong(n.Children); ok {
			return n.WithChildren(rewrittenChildren...), yn, true
		}
	}

	if n.Kind == ast.KindCall {
		for i, c := range n.Children {
			if c != nil && c.Kind == ast.KindArgs {
				if rewrittenArgs, yn, ok := liftFirstYieldAmong(c.Children); ok {
					children := append([]*ast.Node(nil), n.Children...)
					children[i] = c.WithChildren(rewrittenArgs...)
					return n.WithChildren(children...), yn, true
				}
			}
		}
	}

	// Recurse into children, stopping at the first successful lift.
	for i, c := range n.Children {
		rw, yn, ok := liftStatement(c)
		if ok {
			children := append([]*ast.Node(nil), n.Children...)
			children[i] = rw
			return n.WithChildren(children...), yn, true
		}
	}
	return n, nil, false
}

// liftFirstYieldAmong replaces the first direct Yield child in list
// with a js_tmp reference, reporting the original yield node.
func liftFirstYieldAmong(list []*ast.Node) ([]*ast.Node, *ast.Node, bool) {
	for i, c := range list {
		if c != nil && c.Kind == ast.KindYield {
			out := append([]*ast.Node(nil), list...)
			out[i] = jsTmp(c.Line)
			return out, c, true
		}
	}
	return list, nil, false
}

func jsTmp(line int) *ast.Node {
	return ast.NewStr(ast.KindJsTmp, line, "__yielded")
}
