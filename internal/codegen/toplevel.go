package codegen

import (
	"fmt"
	"strings"

	"github.com/ivylang/ivyc/internal/ast"
	"github.com/ivylang/ivyc/internal/fragment"
)

// Assemble implements spec.md §4.1/§6's top-level assembly: the program
// body is emitted once (top scope, statement level), then wrapped in
// the module prologue/epilogue — the `(function(__opal) {…})(Opal);`
// shape every emitted unit shares, declaring exactly the helpers this
// translation demanded (spec.md §9's fixed HelperOrder), the `def`
// alias when any top/iter/def-scope method install needed one, and the
// top scope's own temp pool.
func (t *Translator) Assemble(root *ast.Node) (string, error) {
	top := t.Scopes.Current()
	bodyText, err := t.emitOne(root, fragment.LevelStmt)
	if err != nil {
		return "", err
	}

	var helperDecls []string
	for _, name := range t.Helpers.Ordered() {
		if name == "breaker" || name == "slice" {
			continue
		}
		helperDecls = append(helperDecls, fmt.Sprintf("__%s = __opal.%s", name, name))
	}

	var sb strings.Builder
	if t.Opts.SourceMapEnabled {
		sb.WriteString(fmt.Sprintf("//@ sourceMappingURL=/__opal_source_maps__/%s.js.map\n", t.Opts.File))
		sb.WriteString(fmt.Sprintf("/*-file:%s-*/\n", t.Opts.SourceFile))
	}
	sb.WriteString("(function(__opal) {\n")

	preludeParts := []string{
		"self = __opal.top", "__scope = __opal", "$mm = __opal.mm", "nil = __opal.nil",
		"__breaker = __opal.breaker", "__slice = __opal.slice",
	}
	preludeParts = append(preludeParts, helperDecls...)
	if top.DefinesDefn {
		preludeParts = append(preludeParts, "def = __opal.Object.prototype")
	}
	sb.WriteString("  var ")
	sb.WriteString(strings.Join(preludeParts, ", "))
	sb.WriteString(";\n")
	if decl := declTemps(top); decl != "" {
		sb.WriteString("  ")
		sb.WriteString(decl)
		sb.WriteString("\n")
	}

	sb.WriteString(bodyText)
	sb.WriteString("\n")
	if t.usesFile {
		sb.WriteString(fmt.Sprintf("  __opal.file = %s;\n", quote(t.Opts.File)))
	}
	sb.WriteString("})(Opal);\n")
	return sb.String(), nil
}
