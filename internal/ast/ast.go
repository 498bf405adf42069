// Package ast defines the syntax tree produced by the parser: a small
// Node sum type covering literals, identifiers, operators, and the member
// forms (assignment, append, param, option, import, do) that make up a
// module or object body.
package ast

import (
	"fmt"
	"strings"

	"mint.build/mint/internal/source"
)

// Pos is re-exported from the source package so AST nodes don't need two
// import paths for the same concept.
type Pos = source.Pos

// Node is the base interface implemented by every AST node.
type Node interface {
	String() string
	Position() Pos
}

// Expr is any node usable as an expression (evaluates to a value).
type Expr interface {
	Node
	exprNode()
}

// Member is any node usable as a module-level or object-level definition.
type Member interface {
	Node
	memberNode()
}

// TypeExpr is a type-position expression: a bare type name or a
// parameterised type built via element access (list[string], dict[int]).
type TypeExpr interface {
	Node
	typeNode()
}

// File is the result of parse_module: a MAKE_MODULE operator whose
// children are the file's top-level members.
type File struct {
	Path    string
	Members []Member
	Pos     Pos
}

func (f *File) Position() Pos { return f.Pos }
func (f *File) String() string {
	parts := make([]string, 0, len(f.Members))
	for _, m := range f.Members {
		parts = append(parts, m.String())
	}
	return strings.Join(parts, "\n")
}

// ---- Literals ----

type Undefined struct{ Pos Pos }

func (u *Undefined) Position() Pos { return u.Pos }
func (u *Undefined) String() string { return "undefined" }
func (u *Undefined) exprNode()      {}

type BoolLit struct {
	Value bool
	Pos   Pos
}

func (b *BoolLit) Position() Pos { return b.Pos }
func (b *BoolLit) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}
func (b *BoolLit) exprNode() {}

type IntLit struct {
	Value int64
	Pos   Pos
}

func (i *IntLit) Position() Pos   { return i.Pos }
func (i *IntLit) String() string  { return fmt.Sprintf("%d", i.Value) }
func (i *IntLit) exprNode()       {}

type FloatLit struct {
	Value float64
	Pos   Pos
}

func (f *FloatLit) Position() Pos  { return f.Pos }
func (f *FloatLit) String() string { return fmt.Sprintf("%g", f.Value) }
func (f *FloatLit) exprNode()      {}

// StringLit is a plain (non-interpolated) string, either single- or
// double-quoted; escapes are already resolved by the lexer.
type StringLit struct {
	Value string
	Pos   Pos
}

func (s *StringLit) Position() Pos  { return s.Pos }
func (s *StringLit) String() string { return fmt.Sprintf("%q", s.Value) }
func (s *StringLit) exprNode()      {}

// InterpString is a double-quoted string containing one or more ${...}
// expression segments. Segments alternate text, expr, text, expr, ..., text.
type InterpString struct {
	Segments []string // len(Segments) == len(Exprs)+1
	Exprs    []Expr
	Pos      Pos
}

func (s *InterpString) Position() Pos { return s.Pos }
func (s *InterpString) String() string {
	var b strings.Builder
	b.WriteByte('"')
	for i, seg := range s.Segments {
		b.WriteString(seg)
		if i < len(s.Exprs) {
			b.WriteString("${")
			b.WriteString(s.Exprs[i].String())
			b.WriteByte('}')
		}
	}
	b.WriteByte('"')
	return b.String()
}
func (s *InterpString) exprNode() {}

// Ident is a lexical symbol not yet resolved; Name may be project-qualified
// ("proj:name").
type Ident struct {
	Name string
	Pos  Pos
}

func (i *Ident) Position() Pos  { return i.Pos }
func (i *Ident) String() string { return i.Name }
func (i *Ident) exprNode()      {}

// Self and Super are the two reserved scope-relative identifiers.
type Self struct{ Pos Pos }

func (s *Self) Position() Pos  { return s.Pos }
func (s *Self) String() string { return "self" }
func (s *Self) exprNode()      {}

type Super struct{ Pos Pos }

func (s *Super) Position() Pos  { return s.Pos }
func (s *Super) String() string { return "super" }
func (s *Super) exprNode()      {}

// ---- Types ----

// TypeName is a bare type-name keyword token in type position
// (void, any, bool, int, float, string, list, dict, object, function).
type TypeName struct {
	Name string
	Pos  Pos
}

func (t *TypeName) Position() Pos  { return t.Pos }
func (t *TypeName) String() string { return t.Name }
func (t *TypeName) typeNode()      {}

// ParamType is a parameterised type built by element access in type
// position, e.g. list[string] or dict[int].
type ParamType struct {
	Base TypeName
	Elem TypeExpr
	Pos  Pos
}

func (t *ParamType) Position() Pos  { return t.Pos }
func (t *ParamType) String() string { return fmt.Sprintf("%s[%s]", t.Base.Name, t.Elem) }
func (t *ParamType) typeNode()      {}

// ---- Compound expressions ----

type ListLit struct {
	Elems []Expr
	Pos   Pos
}

func (l *ListLit) Position() Pos { return l.Pos }
func (l *ListLit) String() string {
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (l *ListLit) exprNode() {}

// ObjectLit is a PROTO { members } construction. Proto is nil for a bare
// `{ members }` dict/object literal with no named prototype.
type ObjectLit struct {
	Proto   Expr
	Members []Member
	Pos     Pos
}

func (o *ObjectLit) Position() Pos { return o.Pos }
func (o *ObjectLit) String() string {
	parts := make([]string, len(o.Members))
	for i, m := range o.Members {
		parts[i] = m.String()
	}
	proto := ""
	if o.Proto != nil {
		proto = o.Proto.String() + " "
	}
	return fmt.Sprintf("%s{ %s }", proto, strings.Join(parts, ", "))
}
func (o *ObjectLit) exprNode() {}

// UnaryExpr is a prefix operator: "not", "-".
type UnaryExpr struct {
	Op   string
	X    Expr
	Pos  Pos
}

func (u *UnaryExpr) Position() Pos  { return u.Pos }
func (u *UnaryExpr) String() string { return fmt.Sprintf("(%s %s)", u.Op, u.X) }
func (u *UnaryExpr) exprNode()      {}

// BinaryExpr covers arithmetic, comparison, logical, concat, and range ops.
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
	Pos   Pos
}

func (b *BinaryExpr) Position() Pos  { return b.Pos }
func (b *BinaryExpr) String() string { return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right) }
func (b *BinaryExpr) exprNode()      {}

// CallExpr is f(args...).
type CallExpr struct {
	Callee Expr
	Args   []Expr
	Pos    Pos
}

func (c *CallExpr) Position() Pos { return c.Pos }
func (c *CallExpr) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee, strings.Join(parts, ", "))
}
func (c *CallExpr) exprNode() {}

// GetMember is base.name.
type GetMember struct {
	Base Expr
	Name string
	Pos  Pos
}

func (g *GetMember) Position() Pos  { return g.Pos }
func (g *GetMember) String() string { return fmt.Sprintf("%s.%s", g.Base, g.Name) }
func (g *GetMember) exprNode()      {}

// GetElement is base[index]. In type position it builds a ParamType instead.
type GetElement struct {
	Base  Expr
	Index Expr
	Pos   Pos
}

func (g *GetElement) Position() Pos  { return g.Pos }
func (g *GetElement) String() string { return fmt.Sprintf("%s[%s]", g.Base, g.Index) }
func (g *GetElement) exprNode()      {}

// IfExpr is an expression-level conditional: if (cond) then else.
type IfExpr struct {
	Cond Expr
	Then Expr
	Else Expr // nil if no else branch
	Pos  Pos
}

func (i *IfExpr) Position() Pos { return i.Pos }
func (i *IfExpr) String() string {
	if i.Else != nil {
		return fmt.Sprintf("if (%s) %s else %s", i.Cond, i.Then, i.Else)
	}
	return fmt.Sprintf("if (%s) %s", i.Cond, i.Then)
}
func (i *IfExpr) exprNode() {}

// LetExpr introduces a local binding scoped to Body.
type LetExpr struct {
	Name  string
	Value Expr
	Body  Expr
	Pos   Pos
}

func (l *LetExpr) Position() Pos  { return l.Pos }
func (l *LetExpr) String() string { return fmt.Sprintf("let %s = %s in %s", l.Name, l.Value, l.Body) }
func (l *LetExpr) exprNode()      {}

// ---- Members (module- and object-level definitions) ----

// SetMember is `IDENT = EXPR`.
type SetMember struct {
	Name  string
	Value Expr
	Pos   Pos
}

func (s *SetMember) Position() Pos  { return s.Pos }
func (s *SetMember) String() string { return fmt.Sprintf("%s = %s", s.Name, s.Value) }
func (s *SetMember) memberNode()    {}

// AppendMember is `IDENT ++= EXPR`.
type AppendMember struct {
	Name  string
	Value Expr
	Pos   Pos
}

func (a *AppendMember) Position() Pos  { return a.Pos }
func (a *AppendMember) String() string { return fmt.Sprintf("%s ++= %s", a.Name, a.Value) }
func (a *AppendMember) memberNode()    {}

// LazyMember is `IDENT => EXPR`: the value is re-evaluated per access.
type LazyMember struct {
	Name  string
	Value Expr
	Pos   Pos
}

func (l *LazyMember) Position() Pos  { return l.Pos }
func (l *LazyMember) String() string { return fmt.Sprintf("%s => %s", l.Name, l.Value) }
func (l *LazyMember) memberNode()    {}

// MakeParam is `[cached] param IDENT [: TYPE] = EXPR`.
type MakeParam struct {
	Name     string
	Type     TypeExpr // nil if not annotated
	Value    Expr
	Cached   bool
	Pos      Pos
}

func (p *MakeParam) Position() Pos { return p.Pos }
func (p *MakeParam) String() string {
	prefix := "param"
	if p.Cached {
		prefix = "cached param"
	}
	if p.Type != nil {
		return fmt.Sprintf("%s %s : %s = %s", prefix, p.Name, p.Type, p.Value)
	}
	return fmt.Sprintf("%s %s = %s", prefix, p.Name, p.Value)
}
func (p *MakeParam) memberNode() {}

// MakeOption is `option NAME [: TYPE] { members }`, constructing an Object
// inheriting from the Option prototype with name/help/abbrev/default.
type MakeOption struct {
	Name    string
	Type    TypeExpr // nil if not annotated
	Members []Member
	Pos     Pos
}

func (o *MakeOption) Position() Pos { return o.Pos }
func (o *MakeOption) String() string {
	parts := make([]string, len(o.Members))
	for i, m := range o.Members {
		parts[i] = m.String()
	}
	if o.Type != nil {
		return fmt.Sprintf("option %s : %s { %s }", o.Name, o.Type, strings.Join(parts, ", "))
	}
	return fmt.Sprintf("option %s { %s }", o.Name, strings.Join(parts, ", "))
}
func (o *MakeOption) memberNode() {}

// DoMember defers an action expression to configuration time.
type DoMember struct {
	Value Expr
	Pos   Pos
}

func (d *DoMember) Position() Pos  { return d.Pos }
func (d *DoMember) String() string { return fmt.Sprintf("do %s", d.Value) }
func (d *DoMember) memberNode()    {}

// IfMember conditionally includes one of two member lists.
type IfMember struct {
	Cond Expr
	Then []Member
	Else []Member // nil if no else clause
	Pos  Pos
}

func (i *IfMember) Position() Pos { return i.Pos }
func (i *IfMember) String() string {
	parts := make([]string, len(i.Then))
	for j, m := range i.Then {
		parts[j] = m.String()
	}
	return fmt.Sprintf("if (%s) { %s }", i.Cond, strings.Join(parts, ", "))
}
func (i *IfMember) memberNode() {}

// ImportMember is `import NAME [as IDENT]` or `from NAME import (* | IDENT, ...)`.
type ImportMember struct {
	Path    string
	Alias   string   // non-empty for "import NAME as IDENT"
	From    bool     // true for "from NAME import ..."
	All     bool     // true for "from NAME import *"
	Symbols []string // selective symbols when From && !All
	Pos     Pos
}

func (im *ImportMember) Position() Pos { return im.Pos }
func (im *ImportMember) String() string {
	switch {
	case im.From && im.All:
		return fmt.Sprintf("from %s import *", im.Path)
	case im.From:
		return fmt.Sprintf("from %s import (%s)", im.Path, strings.Join(im.Symbols, ", "))
	case im.Alias != "":
		return fmt.Sprintf("import %s as %s", im.Path, im.Alias)
	default:
		return fmt.Sprintf("import %s", im.Path)
	}
}
func (im *ImportMember) memberNode() {}
