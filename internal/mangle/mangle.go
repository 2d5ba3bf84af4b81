// Package mangle implements the deterministic source-identifier to
// target-identifier mapping rules of spec.md §4.3.
package mangle

import (
	"strings"

	"github.com/ivylang/ivyc/internal/config"
)

// operatorChars is the set of characters that force the bracket-index
// jsid form instead of the dotted-accessor form.
const operatorChars = "=+-*/!?<>&|^%~["

// MidToJsid implements spec.md §4.3's mid_to_jsid: a method id
// containing any operator character is emitted as a bracket index
// (`['$name']`); anything else as a dotted accessor (`.$name`).
func MidToJsid(name string) string {
	if strings.ContainsAny(name, operatorChars) {
		return "['$" + name + "']"
	}
	return ".$" + name
}

// Local applies the reserved-word guard to a local/parameter name.
func Local(name string) string {
	return config.MangleReserved(name)
}

// IvarAccessor implements spec.md §4.3's ivar accessor rule: `@name`
// becomes `.name` unless name is reserved, in which case it becomes
// the bracket form `['name']`.
func IvarAccessor(name string) string {
	if config.IsReserved(name) {
		return "['" + name + "']"
	}
	return "." + name
}
