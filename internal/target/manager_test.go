package target

import (
	"testing"

	"mint.build/mint/internal/object"
)

func TestManagerMemoizesTargetsAndFiles(t *testing.T) {
	mgr := NewManager()
	def := object.NewObject("app", nil, nil)

	t1 := mgr.GetTarget("app", def)
	t2 := mgr.GetTarget("app", def)
	if t1 != t2 {
		t.Fatalf("expected GetTarget to return the same Target for the same definition")
	}

	f1 := mgr.GetFile("a.c")
	f2 := mgr.GetFile("a.c")
	if f1 != f2 {
		t.Fatalf("expected GetFile to return the same File for the same path")
	}
}

func TestManagerBuildWiresSourcesOutputsAndDepends(t *testing.T) {
	mgr := NewManager()

	depDef := object.NewObject("dep", nil, nil)
	depDef.SetAttr(&object.AttrDef{Name: "name", Value: object.String("dep")})

	def := object.NewObject("app", nil, nil)
	def.SetAttr(&object.AttrDef{Name: "sources", Value: &object.List{Elems: []object.Node{object.String("a.c")}}})
	def.SetAttr(&object.AttrDef{Name: "outputs", Value: &object.List{Elems: []object.Node{object.String("a.o")}}})
	def.SetAttr(&object.AttrDef{Name: "depends", Value: &object.List{Elems: []object.Node{depDef}}})

	tgt := mgr.GetTarget("app", def)
	mgr.Build(tgt, "/src")

	if len(tgt.Sources) != 1 || tgt.Sources[0].Name != "/src/a.c" {
		t.Fatalf("expected one resolved source, got %v", tgt.Sources)
	}
	if len(tgt.Outputs) != 1 || tgt.Outputs[0].Name != "/src/a.o" {
		t.Fatalf("expected one resolved output, got %v", tgt.Outputs)
	}
	if len(tgt.Depends) != 1 || tgt.Depends[0].Name != "dep" {
		t.Fatalf("expected one dependency target named 'dep', got %v", tgt.Depends)
	}
}
