// Package config holds the translator's fixed vocabularies and its
// option set, the way the teacher pack's own internal/config holds
// the compiler's built-in names and version. Unlike the teacher, this
// module has no language runtime to configure — only a code generator,
// so everything here is compile-time-fixed naming and the Options a
// caller of Parse may vary.
package config

// Version is the current code-generator version.
var Version = "0.1.0"

// SourceFileExtensions are the source-file extensions TrimSourceExt
// strips from a filename.
var SourceFileExtensions = []string{".rb", ".sexp.json"}

// TrimSourceExt removes any recognized source extension from a filename.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// Reserved is the target language's fixed keyword set (spec.md §3,
// ReservedSet). Any source identifier colliding with one of these is
// suffixed with a single "$" wherever it is emitted as a local,
// parameter, or loop variable.
var Reserved = map[string]bool{
	"break": true, "case": true, "catch": true, "continue": true,
	"debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "finally": true, "for": true, "function": true,
	"if": true, "in": true, "instanceof": true, "new": true,
	"return": true, "switch": true, "this": true, "throw": true,
	"try": true, "typeof": true, "var": true, "let": true, "void": true,
	"while": true, "with": true, "class": true, "enum": true,
	"export": true, "extends": true, "import": true, "super": true,
	"true": true, "false": true, "native": true, "const": true,
	"static": true,
}

// IsReserved reports whether name collides with the target language's
// reserved words.
func IsReserved(name string) bool {
	return Reserved[name]
}

// MangleReserved applies the reserved-word suffix rule: a reserved
// identifier gets one trailing "$"; anything else passes through.
func MangleReserved(name string) string {
	if IsReserved(name) {
		return name + "$"
	}
	return name
}

// HelperOrder is the fixed, deterministic order the top-level
// assembler declares required helpers in: "breaker" and "slice" always
// first (every translation needs them), then the rest alphabetically
// (spec.md §9, "Helper demand tracking").
var HelperOrder = []string{"breaker", "slice", "gvars", "hash", "hash2", "klass", "module", "range"}

// Options configures one Parse call (spec.md §4.1). Use Defaults() as
// a starting point so every field's documented default is honored
// even as new fields are added.
type Options struct {
	// File is the logical name used in error messages and the
	// source-map comment.
	File string `yaml:"file"`
	// SourceFile is the name shown in the file comment; defaults to
	// File when empty.
	SourceFile string `yaml:"source_file"`
	// MethodMissing emits method-missing-aware dispatch (spec.md §4.8).
	MethodMissing bool `yaml:"method_missing"`
	// OptimizedOperators emits the inline numeric fast path for
	// comparison/arithmetic operators (spec.md §4.8).
	OptimizedOperators bool `yaml:"optimized_operators"`
	// ArityCheck emits runtime arity checks on methods (spec.md §4.7).
	ArityCheck bool `yaml:"arity_check"`
	// ConstMissing routes ::Const through a runtime trap.
	ConstMissing bool `yaml:"const_missing"`
	// IRB rewrites top-level locals to persistent Opal.irb_vars.
	IRB bool `yaml:"irb"`
	// SourceMapEnabled annotates fragments with line markers and
	// prepends the source-map and file comments.
	SourceMapEnabled bool `yaml:"source_map_enabled"`
}

// Defaults returns the option defaults spec.md §4.1's table specifies.
func Defaults() Options {
	return Options{
		File:               "(file)",
		MethodMissing:      true,
		OptimizedOperators: true,
		ArityCheck:         false,
		ConstMissing:       true,
		IRB:                false,
		SourceMapEnabled:   true,
	}
}

// Normalize fills in derived defaults (SourceFile falling back to
// File) after any overlay (YAML file, CLI flags, explicit call-site
// options) has been applied.
func (o Options) Normalize() Options {
	if o.File == "" {
		o.File = "(file)"
	}
	if o.SourceFile == "" {
		o.SourceFile = o.File
	}
	return o
}
