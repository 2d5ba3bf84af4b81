package codegen

import (
	"fmt"

	"github.com/ivylang/ivyc/internal/ast"
	"github.com/ivylang/ivyc/internal/fragment"
	"github.com/ivylang/ivyc/internal/mangle"
)

// jsNativeOps maps a source operator method name to the native
// target-language operator spec.md's optimized_operators option
// substitutes for it, guarded by a runtime `typeof(a) === 'number'`
// check on the receiver operand alone (falling back to the ordinary
// method dispatch when it isn't a number — spec.md §8.8).
var jsNativeOps = map[string]string{
	"+": "+", "-": "-", "*": "*", "/": "/", "%": "%",
	"<": "<", "<=": "<=", ">": ">", ">=": ">=", "==": "==",
}

// emitCall implements spec.md §4.6's `call`: a method dispatch through
// the mangled accessor. `block_given?` is special-cased to a direct
// read of the enclosing scope's bound block name rather than an actual
// method call. With method_missing enabled, dispatch falls back to the
// `$mm` runtime dispatcher when the receiver's accessor is absent.
func (t *Translator) emitCall(n *ast.Node, level fragment.Level) (fragment.List, error) {
	if n.Str == "block_given?" && n.Child(0).IsNil() {
		b := t.Scopes.Current().BlockName
		t.Scopes.Current().UsesBlock = true
		text := fmt.Sprintf("(%s !== nil && %s != null)", b, b)
		return fragment.List{fragment.At(parenWrap(level, text), n)}, nil
	}
	text, err := t.compileCallText(n, "")
	if err != nil {
		return nil, err
	}
	return fragment.List{fragment.At(parenWrap(level, text), n)}, nil
}

// compileCallText renders a call node's dispatch text, optionally with
// one extra trailing argument (blockText, from emitIter) appended past
// the ordinary argument list — the block function a `do…end`/`{…}`
// passes to the method it decorates.
func (t *Translator) compileCallText(n *ast.Node, blockText string) (string, error) {
	name := n.Str
	recvNode := n.Child(0)
	argsNode := n.Child(1)

	recvText := "self"
	var err error
	if !recvNode.IsNil() {
		recvText, err = t.emitOne(recvNode, fragment.LevelRecv)
		if err != nil {
			return "", err
		}
	}

	args, err := t.compileArgs(argsNode)
	if err != nil {
		return "", err
	}
	if blockText != "" {
		if args.HasSplat {
			args.ArrayExpr = args.ArrayExpr + ".concat([" + blockText + "])"
		} else {
			args.Fixed = append(args.Fixed, blockText)
		}
	}
	accessor := mangle.MidToJsid(name)

	// spec.md §9 warns these two branches are nearly duplicated,
	// differing subtly in how the receiver temp is folded into the
	// dispatch expression — reproduce that duplication rather than
	// unifying it, to match the documented emission exactly.
	if !t.Opts.MethodMissing {
		var text string
		t.Scopes.Current().WithTemp(func(tmp string) {
			text = "(" + tmp + " = " + recvText + ")" + accessor + args.CallSuffix(tmp)
		})
		return text, nil
	}

	var text string
	t.Scopes.Current().WithTemp(func(tmp string) {
		dispatch := "((" + tmp + " = " + recvText + ")" + accessor + " || $mm(" + quote(name) + "))"
		text = dispatch + args.CallSuffix(tmp)
	})
	return text, nil
}

// emitOperator implements spec.md §4.6's `operator`: an ordinary
// method dispatch on an operator-named method, optionally peepholed to
// a native target-language operator when the receiver operand is a
// number at runtime and optimized_operators is enabled.
func (t *Translator) emitOperator(n *ast.Node, level fragment.Level) (fragment.List, error) {
	op := n.Str
	recvNode := n.Child(0)
	argNode := n.Child(1)

	recvText, err := t.emitOne(recvNode, fragment.LevelRecv)
	if err != nil {
		return nil, err
	}
	accessor := mangle.MidToJsid(op)

	if argNode.IsNil() {
		text := recvText + accessor + "()"
		return fragment.List{fragment.At(parenWrap(level, text), n)}, nil
	}

	argText, err := t.emitOne(argNode, fragment.LevelExpr)
	if err != nil {
		return nil, err
	}

	jsOp, native := jsNativeOps[op]
	if !t.Opts.OptimizedOperators || !native {
		text := recvText + accessor + "(" + argText + ")"
		return fragment.List{fragment.At(parenWrap(level, text), n)}, nil
	}

	var text string
	t.Scopes.Current().WithTemp(func(ta string) {
		t.Scopes.Current().WithTemp(func(tb string) {
			text = fmt.Sprintf(
				"(%s = %s, %s = %s, typeof(%s) === 'number' ? %s %s %s : %s%s( %s ))",
				ta, recvText, tb, argText, ta, ta, jsOp, tb, ta, accessor, tb)
		})
	})
	return fragment.List{fragment.At(parenWrap(level, text), n)}, nil
}
