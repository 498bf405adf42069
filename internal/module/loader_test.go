package module

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"mint.build/mint/internal/diagnostics"
	"mint.build/mint/internal/eval"
	"mint.build/mint/internal/object"
	"mint.build/mint/internal/strintern"
	"mint.build/mint/internal/types"
)

func newTestLoader(t *testing.T, dir string) (*Loader, *eval.Evaluator) {
	t.Helper()
	reg := types.NewRegistry()
	fundamentals := object.NewObject("Fundamentals", nil, nil)
	sink := diagnostics.NewSink(&bytes.Buffer{})
	sink.DisableExitOnFatal()
	ev := eval.New(reg, strintern.New(), sink, fundamentals)
	return New([]string{dir}, ev, sink), ev
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadParsesAndRealizesAModule(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "util.mint", `name = "util"`)

	l, _ := newTestLoader(t, dir)
	mod, err := l.Load("util")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	def, _, ok := mod.FindAttr("name")
	if !ok || def.Value.String() != "util" {
		t.Fatalf("expected name='util', got %#v", def)
	}
}

func TestLoadCachesByIdentity(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "util.mint", `name = "util"`)

	l, _ := newTestLoader(t, dir)
	first, err := l.Load("util")
	if err != nil {
		t.Fatal(err)
	}
	second, err := l.Load("util.mint")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("expected second Load to return the cached Object, got a different one")
	}
}

func TestLoadMissingModuleReturnsError(t *testing.T) {
	dir := t.TempDir()
	l, _ := newTestLoader(t, dir)
	if _, err := l.Load("does_not_exist"); err == nil {
		t.Fatalf("expected an error for a missing module")
	}
}

func TestLoadDetectsImportCycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.mint", `from b import *`)
	writeFile(t, dir, "b.mint", `from a import *`)

	l, _ := newTestLoader(t, dir)
	if _, err := l.Load("a"); err == nil {
		t.Fatalf("expected a circular dependency error")
	}
}

func TestImportMemberResolvesThroughLoader(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "util.mint", `greeting = "hi"`)
	writeFile(t, dir, "main.mint", "import util\nmessage = util.greeting")

	l, _ := newTestLoader(t, dir)
	mod, err := l.Load("main")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	def, _, ok := mod.FindAttr("message")
	if !ok || def.Value.String() != "hi" {
		t.Fatalf("expected message='hi' via imported util.greeting, got %#v", def)
	}
}
