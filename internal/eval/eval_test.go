package eval

import (
	"bytes"
	"testing"

	"mint.build/mint/internal/ast"
	"mint.build/mint/internal/diagnostics"
	"mint.build/mint/internal/object"
	"mint.build/mint/internal/source"
	"mint.build/mint/internal/strintern"
	"mint.build/mint/internal/types"
)

func newTestEvaluator() *Evaluator {
	reg := types.NewRegistry()
	fundamentals := object.NewObject("Fundamentals", nil, nil)
	sink := diagnostics.NewSink(&bytes.Buffer{})
	sink.DisableExitOnFatal()
	return New(reg, strintern.New(), sink, fundamentals)
}

func pos(line int) ast.Pos { return ast.Pos{Line: line, Column: 1} }

func TestEvalLiterals(t *testing.T) {
	ev := newTestEvaluator()
	cases := []struct {
		expr ast.Expr
		want string
	}{
		{&ast.IntLit{Value: 7}, "7"},
		{&ast.FloatLit{Value: 1.5}, "1.5"},
		{&ast.BoolLit{Value: true}, "true"},
		{&ast.StringLit{Value: "hi"}, "hi"},
		{&ast.Undefined{}, "undefined"},
	}
	for _, c := range cases {
		if got := ev.Eval(c.expr).String(); got != c.want {
			t.Errorf("Eval(%v) = %q, want %q", c.expr, got, c.want)
		}
	}
}

func TestEvalArithmeticAndCoercion(t *testing.T) {
	ev := newTestEvaluator()
	expr := &ast.BinaryExpr{
		Op:    "+",
		Left:  &ast.IntLit{Value: 1},
		Right: &ast.FloatLit{Value: 2.5},
		Pos:   pos(1),
	}
	got := ev.Eval(expr)
	f, ok := got.(object.Float)
	if !ok || float64(f) != 3.5 {
		t.Fatalf("expected float 3.5, got %#v", got)
	}
}

func TestEvalStringConcat(t *testing.T) {
	ev := newTestEvaluator()
	expr := &ast.BinaryExpr{
		Op:    "+",
		Left:  &ast.StringLit{Value: "a"},
		Right: &ast.StringLit{Value: "b"},
	}
	if got := ev.Eval(expr).String(); got != "ab" {
		t.Fatalf("expected concat 'ab', got %q", got)
	}
}

func TestEvalListRange(t *testing.T) {
	ev := newTestEvaluator()
	expr := &ast.BinaryExpr{Op: "..", Left: &ast.IntLit{Value: 1}, Right: &ast.IntLit{Value: 3}}
	got, ok := ev.Eval(expr).(*object.List)
	if !ok || len(got.Elems) != 3 {
		t.Fatalf("expected 3-element list, got %#v", got)
	}
}

// realizeFile builds a module-shaped Object out of members and realizes it.
func realizeFile(ev *Evaluator, members []ast.Member) *object.Object {
	file := &ast.File{Path: "test.mint", Members: members}
	return ev.EvalFile(file, source.NewBuffer("test.mint", nil))
}

func TestRealizeSetMember(t *testing.T) {
	ev := newTestEvaluator()
	mod := realizeFile(ev, []ast.Member{
		&ast.SetMember{Name: "name", Value: &ast.StringLit{Value: "widget"}},
	})
	def, _, ok := mod.FindAttr("name")
	if !ok || def.Value.String() != "widget" {
		t.Fatalf("expected name='widget', got %#v", def)
	}
}

func TestRealizeSetMemberRejectsRedefinition(t *testing.T) {
	ev := newTestEvaluator()
	realizeFile(ev, []ast.Member{
		&ast.SetMember{Name: "x", Value: &ast.IntLit{Value: 1}},
		&ast.SetMember{Name: "x", Value: &ast.IntLit{Value: 2}},
	})
	if !ev.Diags.HadError() {
		t.Fatalf("expected a redefinition diagnostic")
	}
}

func TestRealizeAppendMemberSeedsFromPrototype(t *testing.T) {
	ev := newTestEvaluator()
	base := object.NewObject("base", nil, nil)
	base.SetAttr(&object.AttrDef{Name: "sources", Value: &object.List{Elems: []object.Node{object.String("a.c")}}})

	child := object.NewObject("child", base, ev.Fundamentals)
	child.SetDefinition([]ast.Member{
		&ast.AppendMember{Name: "sources", Value: &ast.StringLit{Value: "b.c"}},
	})
	ev.Realize(child)

	def, owner, ok := child.FindAttr("sources")
	if !ok || owner != child {
		t.Fatalf("expected child to own its own 'sources' attribute after append")
	}
	list := def.Value.(*object.List)
	if len(list.Elems) != 2 || list.Elems[0].String() != "a.c" || list.Elems[1].String() != "b.c" {
		t.Fatalf("expected [a.c, b.c], got %v", list.Elems)
	}
	// the prototype's own list must be untouched.
	baseDef, _ := base.Attrs.Get("sources")
	if len(baseDef.Value.(*object.List).Elems) != 1 {
		t.Fatalf("expected prototype list to be unmodified, got %v", baseDef.Value)
	}
}

func TestRealizeLazyMemberReevaluatesEachAccess(t *testing.T) {
	ev := newTestEvaluator()
	calls := 0
	mod := realizeFile(ev, []ast.Member{
		&ast.SetMember{Name: "n", Value: &ast.IntLit{Value: 1}},
		&ast.LazyMember{Name: "double", Value: &ast.BinaryExpr{
			Op:    "*",
			Left:  &ast.Ident{Name: "n"},
			Right: &ast.IntLit{Value: 2},
		}},
	})
	def, owner, ok := mod.FindAttr("double")
	if !ok {
		t.Fatalf("expected lazy attribute to be defined")
	}
	for i := 0; i < 3; i++ {
		calls++
		v := ev.realizeAttr(def, owner)
		if v.String() != "2" {
			t.Fatalf("expected re-evaluated value 2, got %s", v)
		}
	}
	if calls != 3 {
		t.Fatalf("expected 3 manual re-evaluations to have run")
	}
}

func TestRealizeIfMemberSelectsBranch(t *testing.T) {
	ev := newTestEvaluator()
	mod := realizeFile(ev, []ast.Member{
		&ast.IfMember{
			Cond: &ast.BoolLit{Value: true},
			Then: []ast.Member{&ast.SetMember{Name: "picked", Value: &ast.StringLit{Value: "then"}}},
			Else: []ast.Member{&ast.SetMember{Name: "picked", Value: &ast.StringLit{Value: "else"}}},
		},
	})
	def, _, ok := mod.FindAttr("picked")
	if !ok || def.Value.String() != "then" {
		t.Fatalf("expected 'then' branch to run, got %#v", def)
	}
}

func TestRealizeParamEvaluatesImmediately(t *testing.T) {
	ev := newTestEvaluator()
	mod := realizeFile(ev, []ast.Member{
		&ast.MakeParam{Name: "workers", Type: &ast.TypeName{Name: "int"}, Value: &ast.FloatLit{Value: 4}},
	})
	def, _, ok := mod.FindAttr("workers")
	if !ok {
		t.Fatalf("expected 'workers' param to be defined")
	}
	if !def.Flags.Has(object.PARAM) {
		t.Fatalf("expected PARAM flag set")
	}
	if _, ok := def.Value.(object.Int); !ok {
		t.Fatalf("expected float value coerced to int, got %#v", def.Value)
	}
}

func TestRealizeOptionDefaultsNameFromDeclaration(t *testing.T) {
	ev := newTestEvaluator()
	mod := realizeFile(ev, []ast.Member{
		&ast.MakeOption{Name: "verbose", Members: nil},
	})
	def, _, ok := mod.FindAttr("verbose")
	if !ok {
		t.Fatalf("expected 'verbose' option to be defined")
	}
	opt, ok := def.Value.(*object.Object)
	if !ok {
		t.Fatalf("expected option value to be an Object, got %#v", def.Value)
	}
	nameDef, _, ok := opt.FindAttr("name")
	if !ok || nameDef.Value.String() != "verbose" {
		t.Fatalf("expected option's name to default to 'verbose', got %#v", nameDef)
	}
}

func TestEvalObjectLitPrototypeChain(t *testing.T) {
	ev := newTestEvaluator()
	base := object.NewObject("Target", nil, ev.Fundamentals)
	base.SetAttr(&object.AttrDef{Name: "kind", Value: object.String("target")})
	ev.Fundamentals.SetAttr(&object.AttrDef{Name: "Target", Value: base})

	lit := &ast.ObjectLit{
		Proto: &ast.Ident{Name: "Target"},
		Members: []ast.Member{
			&ast.SetMember{Name: "name", Value: &ast.StringLit{Value: "app"}},
		},
	}
	obj := ev.evalObjectLit(lit, "app")
	if def, _, ok := obj.FindAttr("name"); !ok || def.Value.String() != "app" {
		t.Fatalf("expected own 'name' attribute, got %#v", def)
	}
	if def, owner, ok := obj.FindAttr("kind"); !ok || owner != base || def.Value.String() != "target" {
		t.Fatalf("expected inherited 'kind' attribute from prototype, got %#v on %v", def, owner)
	}
}

func TestResolveIdentChecksImportsBeforeFundamentals(t *testing.T) {
	ev := newTestEvaluator()
	ev.Fundamentals.SetAttr(&object.AttrDef{Name: "shared", Value: object.String("from-fundamentals")})
	ev.Imports = map[string]object.Node{"shared": object.String("from-import")}
	ev.ActiveScope = ev.Fundamentals

	got := ev.resolveIdent(&ast.Ident{Name: "shared"})
	if got.String() != "from-import" {
		t.Fatalf("expected import binding to take priority over Fundamentals, got %q", got)
	}
}

func TestTruthy(t *testing.T) {
	if truthy(object.Bool(false)) {
		t.Fatalf("false must not be truthy")
	}
	if truthy(object.TheUndefined) {
		t.Fatalf("undefined must not be truthy")
	}
	if !truthy(object.Int(0)) {
		t.Fatalf("int zero is truthy in Mint, unlike C-like languages")
	}
}
