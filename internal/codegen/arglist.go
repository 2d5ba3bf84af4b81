package codegen

import (
	"strings"

	"github.com/ivylang/ivyc/internal/ast"
	"github.com/ivylang/ivyc/internal/fragment"
)

// compiledArgs is the result of compiling a call/yield argument list
// (spec.md §4.8 "Arglist compilation"): either a flat comma-joined
// list of fixed argument texts, or — when a splat sits mid-list — a
// `.concat(...)` chain building one array argument.
type compiledArgs struct {
	HasSplat bool
	Fixed    []string // meaningful only when !HasSplat
	ArrayExpr string  // meaningful only when HasSplat: a single expression producing the full argument array
}

// compileArgs walks an args node's children, each either a plain
// expression or a KindSplat wrapping one, and builds a compiledArgs.
// Splats mid-list produce the concatenation chain spec.md §4.8
// describes: `[fixed…].concat(splat).concat([more…]).concat(…)`.
func (t *Translator) compileArgs(argsNode *ast.Node) (compiledArgs, error) {
	var result compiledArgs
	if argsNode == nil {
		return result, nil
	}

	hasSplat := false
	for _, c := range argsNode.Children {
		if c != nil && c.Kind == ast.KindSplat {
			hasSplat = true
			break
		}
	}
	if !hasSplat {
		for _, c := range argsNode.Children {
			text, err := t.emitOne(c, fragment.LevelExpr)
			if err != nil {
				return result, err
			}
			result.Fixed = append(result.Fixed, text)
		}
		return result, nil
	}

	result.HasSplat = true
	var chain strings.Builder
	var pending []string
	flushPending := func() {
		if chain.Len() == 0 {
			chain.WriteString("[" + strings.Join(pending, ", ") + "]")
		} else if len(pending) > 0 {
			chain.WriteString(".concat([" + strings.Join(pending, ", ") + "])")
		}
		pending = pending[:0]
	}
	for _, c := range argsNode.Children {
		if c != nil && c.Kind == ast.KindSplat {
			flushPending()
			splatText, err := t.emitOne(c.Child(0), fragment.LevelRecv)
			if err != nil {
				return result, err
			}
			coerced := splatText + ".$to_a ? " + splatText + ".$to_a() : (" + splatText + "._isArray ? " + splatText + " : [" + splatText + "])"
			if chain.Len() == 0 {
				chain.WriteString("(" + coerced + ")")
			} else {
				chain.WriteString(".concat(" + coerced + ")")
			}
			continue
		}
		text, err := t.emitOne(c, fragment.LevelExpr)
		if err != nil {
			return result, err
		}
		pending = append(pending, text)
	}
	flushPending()
	result.ArrayExpr = chain.String()
	return result, nil
}

// CallSuffix renders a compiledArgs as the trailing `(...)` of a
// `.call(recv, …)` invocation, or the single array argument of an
// `.apply(recv, …)` invocation when a splat is present.
func (c compiledArgs) CallSuffix(recv string) string {
	if c.HasSplat {
		return ".apply(" + recv + ", " + c.ArrayExpr + ")"
	}
	parts := append([]string{recv}, c.Fixed...)
	return ".call(" + strings.Join(parts, ", ") + ")"
}
