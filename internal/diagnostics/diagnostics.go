// Package diagnostics models the translator's single error surface and
// its non-fatal warning sink (spec §6, §7). It generalizes the teacher
// pack's own diagnostics convention (internal/backend/processor.go's
// diagnostics.NewError(code, token, msg) calls, and cmd/lsp's
// diagnostics publisher) to this module's sexp-based positions.
package diagnostics

import "fmt"

// Code distinguishes the three fatal error kinds spec.md §7 names.
type Code string

const (
	// CodeUnsupportedSexp: the dispatcher saw an unknown tag.
	CodeUnsupportedSexp Code = "unsupported_sexp"
	// CodeStructuralError: a well-formed sexp with an impossible shape.
	CodeStructuralError Code = "structural_error"
	// CodeInternalInvariant: an invariant this module itself is supposed
	// to maintain was violated (temp not queued, scope stack imbalance).
	CodeInternalInvariant Code = "internal_invariant"
)

// Severity distinguishes a fatal Error from a non-aborting Warning.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic is both the payload of a fatal translation error and of a
// collected warning. Its Error() rendering is the exact single-line
// shape spec.md §6/§7 requires: "<reason> :<file>:<line>".
type Diagnostic struct {
	Code     Code
	Severity Severity
	File     string
	Line     int
	Message  string
	// Session is a correlation id (see internal/session) attached by
	// the CLI/RPC callers so multi-file batches can tell diagnostics
	// from different translations apart; empty for direct library use.
	Session string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s :%s:%d", d.Message, d.File, d.Line)
}

// New builds a fatal Diagnostic.
func New(code Code, file string, line int, format string, args ...any) *Diagnostic {
	return &Diagnostic{Code: code, Severity: SeverityError, File: file, Line: line, Message: fmt.Sprintf(format, args...)}
}

// Warn builds a non-fatal Diagnostic.
func Warn(file string, line int, format string, args ...any) *Diagnostic {
	return &Diagnostic{Code: "", Severity: SeverityWarning, File: file, Line: line, Message: fmt.Sprintf(format, args...)}
}

// UnsupportedSexp reports the dispatcher failure of spec.md §7(1).
func UnsupportedSexp(file string, line int, tag string) *Diagnostic {
	return New(CodeUnsupportedSexp, file, line, "Unsupported sexp: %s", tag)
}

// Structural reports the malformed-shape failure of spec.md §7(2).
func Structural(file string, line int, format string, args ...any) *Diagnostic {
	return New(CodeStructuralError, file, line, format, args...)
}

// Internal reports the invariant-violation failure of spec.md §7(3).
// Implementations should treat this the way the source treats an
// assertion: it never fires on well-formed input, only on a bug in
// this module's own bookkeeping.
func Internal(file string, line int, format string, args ...any) *Diagnostic {
	return New(CodeInternalInvariant, file, line, format, args...)
}

// Sink collects warnings raised during one Parse call without aborting
// it; the first fatal Diagnostic raised instead unwinds as a Go error,
// per spec.md §7's propagation policy (translators raise, callers catch
// at the parse boundary).
type Sink struct {
	Warnings []*Diagnostic
}

func (s *Sink) Warn(d *Diagnostic) {
	s.Warnings = append(s.Warnings, d)
}
