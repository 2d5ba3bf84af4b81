package diagnostics

import "testing"

func TestErrorRendering(t *testing.T) {
	d := New(CodeStructuralError, "foo.rb", 12, "bad %s", "shape")
	want := "bad shape :foo.rb:12"
	if got := d.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestUnsupportedSexpCode(t *testing.T) {
	d := UnsupportedSexp("foo.rb", 1, "weird_tag")
	if d.Code != CodeUnsupportedSexp {
		t.Errorf("Code = %s, want %s", d.Code, CodeUnsupportedSexp)
	}
	if d.Severity != SeverityError {
		t.Error("UnsupportedSexp should be a fatal severity")
	}
	want := "Unsupported sexp: weird_tag :foo.rb:1"
	if got := d.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestStructuralAndInternalCodes(t *testing.T) {
	s := Structural("f.rb", 2, "bad shape")
	if s.Code != CodeStructuralError {
		t.Errorf("Structural code = %s, want %s", s.Code, CodeStructuralError)
	}
	i := Internal("f.rb", 3, "pool imbalance")
	if i.Code != CodeInternalInvariant {
		t.Errorf("Internal code = %s, want %s", i.Code, CodeInternalInvariant)
	}
}

func TestWarnIsNonFatalSeverity(t *testing.T) {
	w := Warn("f.rb", 4, "unused var %s", "x")
	if w.Severity != SeverityWarning {
		t.Error("Warn() should produce SeverityWarning")
	}
}

func TestSinkCollectsWarningsInOrder(t *testing.T) {
	s := &Sink{}
	s.Warn(Warn("f.rb", 1, "a"))
	s.Warn(Warn("f.rb", 2, "b"))
	if len(s.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(s.Warnings))
	}
	if s.Warnings[0].Line != 1 || s.Warnings[1].Line != 2 {
		t.Error("expected warnings collected in call order")
	}
}
