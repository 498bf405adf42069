package parser

import (
	"strconv"

	"mint.build/mint/internal/ast"
	"mint.build/mint/internal/lexer"
)

// parsePrimary parses the innermost expression forms: literals,
// identifiers, self/super, parenthesized expressions, list literals, and
// object/dict literals (with or without a named prototype).
func (p *Parser) parsePrimary() ast.Expr {
	pos := p.pos()
	switch p.cur.Type {
	case lexer.UNDEFINED:
		p.advance()
		return &ast.Undefined{Pos: pos}
	case lexer.TRUE:
		p.advance()
		return &ast.BoolLit{Value: true, Pos: pos}
	case lexer.FALSE:
		p.advance()
		return &ast.BoolLit{Value: false, Pos: pos}
	case lexer.INT:
		lit := p.cur.Literal
		p.advance()
		v, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			p.errorf("invalid integer literal %q", lit)
		}
		return &ast.IntLit{Value: v, Pos: pos}
	case lexer.FLOAT:
		lit := p.cur.Literal
		p.advance()
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			p.errorf("invalid float literal %q", lit)
		}
		return &ast.FloatLit{Value: v, Pos: pos}
	case lexer.STRING:
		lit := p.cur.Literal
		p.advance()
		return &ast.StringLit{Value: lit, Pos: pos}
	case lexer.STRING_START:
		return p.parseInterpString()
	case lexer.SELF:
		p.advance()
		return &ast.Self{Pos: pos}
	case lexer.SUPER:
		p.advance()
		return &ast.Super{Pos: pos}
	case lexer.IDENT:
		name := p.cur.Literal
		p.advance()
		if p.at(lexer.LBRACE) {
			return p.parseObjectLit(&ast.Ident{Name: name, Pos: pos})
		}
		return &ast.Ident{Name: name, Pos: pos}
	case lexer.LPAREN:
		p.advance()
		expr := p.parseExpr()
		p.expect(lexer.RPAREN)
		return expr
	case lexer.LBRACKET:
		return p.parseListLit()
	case lexer.LBRACE:
		return p.parseObjectLit(nil)
	default:
		p.errorf("unexpected token %s %q in expression", p.cur.Type, p.cur.Literal)
		p.advance()
		return &ast.Undefined{Pos: pos}
	}
}

func (p *Parser) parseListLit() ast.Expr {
	pos := p.pos()
	p.expect(lexer.LBRACKET)
	var elems []ast.Expr
	for !p.at(lexer.RBRACKET) && !p.at(lexer.EOF) {
		elems = append(elems, p.parseExpr())
		if p.at(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACKET)
	return &ast.ListLit{Elems: elems, Pos: pos}
}

// parseObjectLit parses `{ members }`, optionally preceded by a prototype
// expression already consumed by the caller (proto NAME { ... }).
func (p *Parser) parseObjectLit(proto ast.Expr) ast.Expr {
	pos := p.pos()
	if proto != nil {
		pos = proto.Position()
	}
	p.expect(lexer.LBRACE)
	members := p.parseMemberList(lexer.RBRACE)
	p.expect(lexer.RBRACE)
	return &ast.ObjectLit{Proto: proto, Members: members, Pos: pos}
}

// parseInterpString assembles a STRING_START/(expr STRING_MID)*/expr
// STRING_END token sequence, parsing each expression segment in place
// from the token stream with the full expression grammar, into a single
// ast.InterpString node.
func (p *Parser) parseInterpString() ast.Expr {
	pos := p.pos()
	segs := []string{p.cur.Literal}
	var exprs []ast.Expr
	p.advance() // consume STRING_START

	for {
		exprs = append(exprs, p.parseExpr())
		switch p.cur.Type {
		case lexer.STRING_MID:
			segs = append(segs, p.cur.Literal)
			p.advance()
			continue
		case lexer.STRING_END:
			segs = append(segs, p.cur.Literal)
			p.advance()
			return &ast.InterpString{Segments: segs, Exprs: exprs, Pos: pos}
		default:
			p.errorf("unterminated string interpolation")
			return &ast.InterpString{Segments: segs, Exprs: exprs, Pos: pos}
		}
	}
}
