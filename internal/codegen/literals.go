package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ivylang/ivyc/internal/ast"
	"github.com/ivylang/ivyc/internal/fragment"
	"github.com/ivylang/ivyc/internal/scope"
)

// selfTextForScope resolves what `self` reads as in sc: the class name
// in class/module/sclass scope (a plain JS identifier, closure-captured
// from the class's own IIFE — spec.md §4.6), `this` in def scope,
// `self` (the bound prologue local) in top/iter scope.
func selfTextForScope(sc *scope.Scope) string {
	switch sc.Kind {
	case scope.KindClass, scope.KindModule, scope.KindSclass:
		return sc.Name
	case scope.KindDef:
		return "this"
	default:
		return "self"
	}
}

// emitSelf resolves `self` per spec.md §4.6.
func (t *Translator) emitSelf(n *ast.Node, level fragment.Level) (fragment.List, error) {
	return fragment.List{fragment.At(selfTextForScope(t.Scopes.Current()), n)}, nil
}

// emitLit implements spec.md §4.6's `lit`: Numeric, Symbol (quoted
// string), Regexp (inspect form, `//` becomes `/^/`), Range (the
// `__range` helper call). Numeric in recv position is parenthesized.
func (t *Translator) emitLit(n *ast.Node, level fragment.Level) (fragment.List, error) {
	switch n.LitVal.LitKind {
	case ast.LitInt:
		text := strconv.FormatInt(n.LitVal.Int, 10)
		return fragment.List{fragment.At(parenWrap(level, text), n)}, nil
	case ast.LitFloat:
		text := strconv.FormatFloat(n.LitVal.Float, 'g', -1, 64)
		return fragment.List{fragment.At(parenWrap(level, text), n)}, nil
	case ast.LitSymbol:
		return fragment.List{fragment.At(quote(n.LitVal.Str), n)}, nil
	case ast.LitRegexp:
		src := n.LitVal.Str
		if src == "" {
			src = "^"
		}
		return fragment.List{fragment.At("/" + src + "/" + n.LitVal.Flags, n)}, nil
	case ast.LitRange:
		t.Helpers.Require("range")
		begin, err := t.emitOne(n.Child(0), fragment.LevelExpr)
		if err != nil {
			return nil, err
		}
		end, err := t.emitOne(n.Child(1), fragment.LevelExpr)
		if err != nil {
			return nil, err
		}
		exclude := "false"
		if n.LitVal.Exclude {
			exclude = "true"
		}
		return fragment.List{fragment.At(fmt.Sprintf("__range(%s, %s, %s)", begin, end, exclude), n)}, nil
	default:
		return nil, t.fail(n, "bad lit kind: %s", n.LitVal.LitKind)
	}
}

// emitStr implements spec.md §4.6's `str`: a quoted string, flagging
// `usesFile` when the text equals the logical source file name (spec.md
// §4.6: "if the string equals the source filename, a side flag
// uses_file is set").
func (t *Translator) emitStr(n *ast.Node, level fragment.Level) (fragment.List, error) {
	if n.Str == t.Opts.File {
		t.usesFile = true
	}
	return fragment.List{fragment.At(quote(n.Str), n)}, nil
}

// emitDstr concatenates parts with " + ": expression parts wrapped in
// parens, literal parts quoted.
func (t *Translator) emitDstr(n *ast.Node, level fragment.Level) (fragment.List, error) {
	parts, err := t.dstrParts(n, false)
	if err != nil {
		return nil, err
	}
	return fragment.List{fragment.At(strings.Join(parts, " + "), n)}, nil
}

// emitDsym is like emitDstr but calls .to_s on expression parts.
func (t *Translator) emitDsym(n *ast.Node, level fragment.Level) (fragment.List, error) {
	parts, err := t.dstrParts(n, true)
	if err != nil {
		return nil, err
	}
	return fragment.List{fragment.At(strings.Join(parts, " + "), n)}, nil
}

func (t *Translator) dstrParts(n *ast.Node, toS bool) ([]string, error) {
	parts := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		if c == nil {
			return nil, t.fail(n, "bad dstr part")
		}
		if c.Kind == ast.KindStr {
			parts = append(parts, quote(c.Str))
			continue
		}
		text, err := t.emitOne(c, fragment.LevelExpr)
		if err != nil {
			return nil, err
		}
		if toS {
			text = "(" + text + ").$to_s()"
		} else {
			text = "(" + text + ")"
		}
		parts = append(parts, text)
	}
	return parts, nil
}

// emitXstr splices raw target-language text verbatim; in statement
// level a trailing semicolon is added if the text doesn't already end
// with one.
func (t *Translator) emitXstr(n *ast.Node, level fragment.Level) (fragment.List, error) {
	text := n.Str
	if level == fragment.LevelStmt && !strings.HasSuffix(strings.TrimSpace(text), ";") {
		text += ";"
	}
	return fragment.List{fragment.At(text, n)}, nil
}

// emitDxstr splices interpolated raw target-language text: literal
// parts verbatim, expression parts emitted at expr level and spliced
// in directly (no quoting — this is code, not a string).
func (t *Translator) emitDxstr(n *ast.Node, level fragment.Level) (fragment.List, error) {
	var sb strings.Builder
	for _, c := range n.Children {
		if c == nil {
			return nil, t.fail(n, "bad dxstr part")
		}
		if c.Kind == ast.KindStr {
			sb.WriteString(c.Str)
			continue
		}
		text, err := t.emitOne(c, fragment.LevelExpr)
		if err != nil {
			return nil, err
		}
		sb.WriteString(text)
	}
	text := sb.String()
	if level == fragment.LevelStmt && !strings.HasSuffix(strings.TrimSpace(text), ";") && !strings.Contains(text, "\n") {
		text += ";"
	}
	return fragment.List{fragment.At(text, n)}, nil
}

// quote renders a Go string as a double-quoted target-language string
// literal (Go's %q already escapes the way a C-family string literal
// needs: backslash, quote, and control characters).
func quote(s string) string {
	return strconv.Quote(s)
}
