package codegen

import (
	"fmt"
	"strings"

	"github.com/ivylang/ivyc/internal/ast"
	"github.com/ivylang/ivyc/internal/fragment"
	"github.com/ivylang/ivyc/internal/mangle"
)

// emitArray implements spec.md §4.6's `array`: a bracketed, comma-
// joined list of element expressions, with a mid-list splat expanded
// via the same concatenation chain calls/yields use.
func (t *Translator) emitArray(n *ast.Node, level fragment.Level) (fragment.List, error) {
	args, err := t.compileArgs(n)
	if err != nil {
		return nil, err
	}
	var text string
	if args.HasSplat {
		text = args.ArrayExpr
	} else {
		text = "[" + strings.Join(args.Fixed, ", ") + "]"
	}
	return fragment.List{fragment.At(parenWrap(level, text), n)}, nil
}

// emitHash implements spec.md §4.6's `hash`: children alternate
// key/value pairs, emitted as a `__hash(...)` helper call so duplicate
// keys and hash equality follow the target runtime's own rules rather
// than a bare JS object literal's.
func (t *Translator) emitHash(n *ast.Node, level fragment.Level) (fragment.List, error) {
	t.Helpers.Require("hash")
	parts := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		text, err := t.emitOne(c, fragment.LevelExpr)
		if err != nil {
			return nil, err
		}
		parts = append(parts, text)
	}
	text := "__hash(" + strings.Join(parts, ", ") + ")"
	return fragment.List{fragment.At(text, n)}, nil
}

// emitMasgn implements spec.md §4.6's multiple assignment: the rhs is
// bound once to a temp coerced to an array (a to_ary rhs is wrapped
// unless already an array, a splat rhs goes through $to_a when it has
// one), then each lhs slot is assigned positionally by its own index; a
// splat lhs slot collects the elements from its index on with
// `__slice.call`.
func (t *Translator) emitMasgn(n *ast.Node, level fragment.Level) (fragment.List, error) {
	lhs := n.Child(0)
	rhs := n.Child(1)

	rhsNode := rhs
	coerce := ""
	if rhs != nil && (rhs.Kind == ast.KindToAry || rhs.Kind == ast.KindSplat) {
		rhsNode = rhs.Child(0)
		coerce = "%[1]s = %[1]s._isArray ? %[1]s : [%[1]s];"
		if rhs.Kind == ast.KindSplat {
			coerce = "%[1]s = %[1]s.$to_a ? %[1]s.$to_a() : (%[1]s._isArray ? %[1]s : [%[1]s]);"
		}
	}
	rhsText, err := t.emitOne(rhsNode, fragment.LevelExpr)
	if err != nil {
		return nil, err
	}

	t.Helpers.Require("slice")
	var lines []string
	var arrVar string
	t.Scopes.Current().WithTemp(func(tmp string) {
		arrVar = tmp
		lines = append(lines, fmt.Sprintf("%s = %s;", tmp, rhsText))
		if coerce != "" {
			lines = append(lines, fmt.Sprintf(coerce, tmp))
		}

		splatIdx := -1
		for i, c := range lhs.Children {
			if c != nil && c.Kind == ast.KindSplat {
				splatIdx = i
			}
		}
		for i, c := range lhs.Children {
			var valueExpr string
			if splatIdx >= 0 && i == splatIdx {
				valueExpr = fmt.Sprintf("__slice.call(%s, %d)", arrVar, i)
			} else {
				valueExpr = fmt.Sprintf("(%s[%d] == null ? nil : %s[%d])", arrVar, i, arrVar, i)
			}
			assignText, err2 := t.emitLhsAssign(c, valueExpr)
			if err2 != nil {
				err = err2
				return
			}
			lines = append(lines, assignText+";")
		}
	})
	if err != nil {
		return nil, err
	}
	text := strings.Join(lines, "\n")
	return fragment.List{fragment.At(parenWrap(level, text), n)}, nil
}

// emitLhsAssign assigns valueExpr into a masgn lhs slot, which is
// itself an lasgn/iasgn/gasgn/cvasgn/splat(lasgn) node reusing the
// ordinary assignment emitters rather than a bespoke masgn-only path.
func (t *Translator) emitLhsAssign(slot *ast.Node, valueExpr string) (string, error) {
	if slot.Kind == ast.KindSplat {
		return t.emitLhsAssign(slot.Child(0), valueExpr)
	}
	switch slot.Kind {
	case ast.KindLasgn:
		t.Scopes.Current().DeclareLocal(mangle.Local(slot.Str))
		return fmt.Sprintf("%s = %s", mangle.Local(slot.Str), valueExpr), nil
	case ast.KindIasgn:
		accessor := mangle.IvarAccessor(slot.Str)
		t.Scopes.Current().DeclareIvar(accessor)
		return fmt.Sprintf("self%s = %s", accessor, valueExpr), nil
	case ast.KindGasgn:
		t.Helpers.Require("gvars")
		return fmt.Sprintf("__gvars[%s] = %s", quote(slot.Str), valueExpr), nil
	case ast.KindCvasgn, ast.KindCvdecl:
		return fmt.Sprintf("Opal.cvars[%s] = %s", quote(slot.Str), valueExpr), nil
	case ast.KindCdecl:
		return fmt.Sprintf("__scope.%s = %s", slot.Str, valueExpr), nil
	default:
		return "", t.fail(slot, "unsupported masgn target: %s", slot.Kind)
	}
}
