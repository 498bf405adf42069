package parser

import (
	"mint.build/mint/internal/ast"
	"mint.build/mint/internal/lexer"
)

var typeNameTokens = map[lexer.TokenType]string{
	lexer.TYPE_VOID:     "void",
	lexer.TYPE_ANY:      "any",
	lexer.TYPE_BOOL:     "bool",
	lexer.TYPE_INTEGER:  "int",
	lexer.TYPE_FLOAT:    "float",
	lexer.TYPE_STRING:   "string",
	lexer.TYPE_LIST:     "list",
	lexer.TYPE_DICT:     "dict",
	lexer.TYPE_OBJECT:   "object",
	lexer.TYPE_FUNCTION: "function",
}

// parseTypeExpr parses a type-position expression: a bare type name, or a
// parameterised type built by element access (list[string], dict[int]).
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	pos := p.pos()
	name, ok := typeNameTokens[p.cur.Type]
	if !ok {
		p.errorf("expected a type name, got %s %q", p.cur.Type, p.cur.Literal)
		return &ast.TypeName{Name: "any", Pos: pos}
	}
	p.advance()
	base := ast.TypeName{Name: name, Pos: pos}

	if p.at(lexer.LBRACKET) {
		p.advance()
		elem := p.parseTypeExpr()
		p.expect(lexer.RBRACKET)
		return &ast.ParamType{Base: base, Elem: elem, Pos: pos}
	}
	return &base
}
