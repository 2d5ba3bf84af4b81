// Package session mints the per-call correlation id SPEC_FULL.md's CLI
// and RPC surfaces attach to every Diagnostic and log line, so a batch
// of translations (or concurrent RPCs) can be told apart in output
// that otherwise looks identical file-by-file.
package session

import "github.com/google/uuid"

// New mints a fresh correlation id.
func New() string {
	return uuid.NewString()
}
