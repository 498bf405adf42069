package strintern

import "testing"

func TestInternReturnsSameString(t *testing.T) {
	in := New()
	a := in.Intern("source_dir")
	b := in.Intern("source_dir")
	if a != b {
		t.Fatalf("expected interned strings to be equal, got %q and %q", a, b)
	}
	if in.Len() != 1 {
		t.Fatalf("expected 1 distinct string, got %d", in.Len())
	}
}

func TestInternDistinctStrings(t *testing.T) {
	in := New()
	in.Intern("a")
	in.Intern("b")
	in.Intern("a")
	if in.Len() != 2 {
		t.Fatalf("expected 2 distinct strings, got %d", in.Len())
	}
}

func TestGlobalInterner(t *testing.T) {
	if Global() == nil {
		t.Fatalf("expected a non-nil global interner")
	}
}
