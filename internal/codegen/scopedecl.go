package codegen

import "github.com/ivylang/ivyc/internal/scope"

// declTemps renders the single `var` declaration statement a
// top/class/module/sclass/def/iter scope's body opens with, listing
// every temp that scope ever minted (spec.md §4.2: "temps … declared
// once, at the head of the scope they were minted in"). Empty when the
// scope never needed a temp.
func declTemps(sc *scope.Scope) string {
	names := sc.AllTemps()
	if len(names) == 0 {
		return ""
	}
	text := "var "
	for i, name := range names {
		if i > 0 {
			text += ", "
		}
		text += name
	}
	return text + ";"
}
