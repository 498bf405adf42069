package parser

import (
	"testing"

	"mint.build/mint/internal/ast"
	"mint.build/mint/internal/lexer"
)

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	file, diags := Parse([]byte(src), "test.mint")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	return file
}

func TestParseSetMember(t *testing.T) {
	file := mustParse(t, `x = 1 + 2`)
	if len(file.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(file.Members))
	}
	sm, ok := file.Members[0].(*ast.SetMember)
	if !ok {
		t.Fatalf("expected *ast.SetMember, got %T", file.Members[0])
	}
	if sm.Name != "x" {
		t.Fatalf("expected name x, got %s", sm.Name)
	}
	bin, ok := sm.Value.(*ast.BinaryExpr)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected binary +, got %#v", sm.Value)
	}
}

func TestParseAppendAndLazyMembers(t *testing.T) {
	file := mustParse(t, "deps ++= [1, 2]\nhelp => \"computed\"")
	if len(file.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(file.Members))
	}
	if _, ok := file.Members[0].(*ast.AppendMember); !ok {
		t.Fatalf("expected AppendMember, got %T", file.Members[0])
	}
	if _, ok := file.Members[1].(*ast.LazyMember); !ok {
		t.Fatalf("expected LazyMember, got %T", file.Members[1])
	}
}

func TestParseImportForms(t *testing.T) {
	file := mustParse(t, `
import base
import base as b
from base import (a, b)
from base import *
`)
	if len(file.Members) != 4 {
		t.Fatalf("expected 4 members, got %d", len(file.Members))
	}
	im := file.Members[1].(*ast.ImportMember)
	if im.Alias != "b" {
		t.Fatalf("expected alias b, got %q", im.Alias)
	}
	sel := file.Members[2].(*ast.ImportMember)
	if !sel.From || len(sel.Symbols) != 2 {
		t.Fatalf("expected selective from-import of 2 symbols, got %#v", sel)
	}
	all := file.Members[3].(*ast.ImportMember)
	if !all.From || !all.All {
		t.Fatalf("expected from-import *, got %#v", all)
	}
}

func TestParseParamAndOption(t *testing.T) {
	file := mustParse(t, `
param name : string = "widget"
cached param optimize : bool = true
option debug : bool {
  help = "enable debug output"
  default = false
}
`)
	if len(file.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(file.Members))
	}
	p1 := file.Members[0].(*ast.MakeParam)
	if p1.Cached {
		t.Fatalf("expected first param not cached")
	}
	p2 := file.Members[1].(*ast.MakeParam)
	if !p2.Cached {
		t.Fatalf("expected second param cached")
	}
	opt := file.Members[2].(*ast.MakeOption)
	if opt.Name != "debug" || len(opt.Members) != 2 {
		t.Fatalf("unexpected option: %#v", opt)
	}
}

func TestParseDoAndIfMember(t *testing.T) {
	file := mustParse(t, `
do println("hi")
if (debug) {
  level = 1
} else {
  level = 0
}
`)
	if len(file.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(file.Members))
	}
	if _, ok := file.Members[0].(*ast.DoMember); !ok {
		t.Fatalf("expected DoMember, got %T", file.Members[0])
	}
	ifm := file.Members[1].(*ast.IfMember)
	if len(ifm.Then) != 1 || len(ifm.Else) != 1 {
		t.Fatalf("unexpected if member: %#v", ifm)
	}
}

func TestParseObjectAndListLiterals(t *testing.T) {
	file := mustParse(t, `
cfg = base_target {
  name = "app",
  deps = [1, 2, 3]
}
`)
	sm := file.Members[0].(*ast.SetMember)
	obj := sm.Value.(*ast.ObjectLit)
	if obj.Proto == nil || obj.Proto.String() != "base_target" {
		t.Fatalf("expected prototype base_target, got %#v", obj.Proto)
	}
	if len(obj.Members) != 2 {
		t.Fatalf("expected 2 object members, got %d", len(obj.Members))
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	file := mustParse(t, `x = 1 + 2 * 3 ** 2 .. 4`)
	sm := file.Members[0].(*ast.SetMember)
	bin := sm.Value.(*ast.BinaryExpr)
	if bin.Op != "+" {
		t.Fatalf("expected top-level +, got %s", bin.Op)
	}
}

func TestParseIfExpr(t *testing.T) {
	file := mustParse(t, `x = if (flag) "yes" else "no"`)
	sm := file.Members[0].(*ast.SetMember)
	ifExpr, ok := sm.Value.(*ast.IfExpr)
	if !ok {
		t.Fatalf("expected IfExpr, got %T", sm.Value)
	}
	if ifExpr.Else == nil {
		t.Fatalf("expected else branch")
	}
}

func TestParseMemberAccessChain(t *testing.T) {
	file := mustParse(t, `x = a.b[0].c(1, 2)`)
	sm := file.Members[0].(*ast.SetMember)
	call, ok := sm.Value.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected CallExpr, got %T", sm.Value)
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
	if _, ok := call.Callee.(*ast.GetMember); !ok {
		t.Fatalf("expected GetMember callee, got %T", call.Callee)
	}
}

func TestParseInterpolatedString(t *testing.T) {
	file := mustParse(t, `x = "hello ${name}!"`)
	sm := file.Members[0].(*ast.SetMember)
	interp, ok := sm.Value.(*ast.InterpString)
	if !ok {
		t.Fatalf("expected InterpString, got %T", sm.Value)
	}
	if len(interp.Exprs) != 1 {
		t.Fatalf("expected 1 interpolated expr, got %d", len(interp.Exprs))
	}
}

func TestErrorRecoveryContinuesParsing(t *testing.T) {
	file, diags := Parse([]byte("x = @\ny = 2"), "bad.mint")
	if len(diags) == 0 {
		t.Fatalf("expected at least one diagnostic")
	}
	// Recovery should still find the second, well-formed member.
	found := false
	for _, m := range file.Members {
		if sm, ok := m.(*ast.SetMember); ok && sm.Name == "y" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected parser to recover and still parse member y, members=%#v", file.Members)
	}
}

func TestParseProjectsConfigFile(t *testing.T) {
	src := `
project "/src/foo" {
  option debug { value = true }
}
project "/src/bar" {
  option debug { value = false }
}
`
	l := lexer.New(src, "build.mint")
	p := New(l)
	projects := p.ParseProjects("build.mint")
	if len(p.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics())
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
}
