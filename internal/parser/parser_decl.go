package parser

import (
	"mint.build/mint/internal/ast"
	"mint.build/mint/internal/lexer"
	"mint.build/mint/internal/source"
)

// parseMemberList parses members separated by commas or line breaks until
// the stop token is reached, per the object-literal grammar (also reused
// for module bodies and parse_projects blocks).
func (p *Parser) parseMemberList(stop lexer.TokenType) []ast.Member {
	var members []ast.Member
	for !p.at(stop) && !p.at(lexer.EOF) {
		m := p.parseMember()
		if m != nil {
			members = append(members, m)
		} else {
			p.recover()
		}
		// Members may be separated by ',' or by a line break; a missing
		// comma is never an error, so only an explicit comma is consumed
		// here.
		if p.at(lexer.COMMA) {
			p.advance()
		}
		p.skipSeparators()
	}
	return members
}

// parseMember parses one module-level or object-level definition:
// import/from forms, do EXPR, if (EXPR) DEFS [else DEFS], IDENT = EXPR,
// IDENT ++= EXPR, IDENT => EXPR, [cached] param IDENT [: TYPE] = EXPR, or
// option NAME [: TYPE] { members }.
func (p *Parser) parseMember() ast.Member {
	switch p.cur.Type {
	case lexer.IMPORT:
		return p.parseImport()
	case lexer.FROM:
		return p.parseFromImport()
	case lexer.DO:
		return p.parseDo()
	case lexer.IF:
		return p.parseIfMember()
	case lexer.CACHED:
		start := p.pos()
		p.advance()
		if !p.at(lexer.PARAM) {
			p.errorf("expected 'param' after 'cached', got %s %q", p.cur.Type, p.cur.Literal)
			return nil
		}
		return p.parseParam(start, true)
	case lexer.PARAM:
		return p.parseParam(p.pos(), false)
	case lexer.OPTION:
		return p.parseOption()
	case lexer.IDENT:
		return p.parseAssignLikeMember()
	default:
		p.errorf("unexpected token %s %q in definition", p.cur.Type, p.cur.Literal)
		return nil
	}
}

func (p *Parser) parseImport() ast.Member {
	start := p.pos()
	p.advance() // 'import'
	path := p.expect(lexer.IDENT).Literal
	m := &ast.ImportMember{Path: path, Pos: start}
	if p.at(lexer.AS) {
		p.advance()
		m.Alias = p.expect(lexer.IDENT).Literal
	}
	return m
}

func (p *Parser) parseFromImport() ast.Member {
	start := p.pos()
	p.advance() // 'from'
	path := p.expect(lexer.IDENT).Literal
	p.expect(lexer.IMPORT)
	m := &ast.ImportMember{Path: path, From: true, Pos: start}
	if p.at(lexer.STAR) {
		p.advance()
		m.All = true
		return m
	}
	p.expect(lexer.LPAREN)
	for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
		m.Symbols = append(m.Symbols, p.expect(lexer.IDENT).Literal)
		if p.at(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)
	return m
}

func (p *Parser) parseDo() ast.Member {
	start := p.pos()
	p.advance() // 'do'
	expr := p.parseExpr()
	return &ast.DoMember{Value: expr, Pos: start}
}

func (p *Parser) parseIfMember() ast.Member {
	start := p.pos()
	p.advance() // 'if'
	p.expect(lexer.LPAREN)
	cond := p.parseExpr()
	p.expect(lexer.RPAREN)
	p.expect(lexer.LBRACE)
	then := p.parseMemberList(lexer.RBRACE)
	p.expect(lexer.RBRACE)

	m := &ast.IfMember{Cond: cond, Then: then, Pos: start}
	if p.at(lexer.ELSE) {
		p.advance()
		p.expect(lexer.LBRACE)
		m.Else = p.parseMemberList(lexer.RBRACE)
		p.expect(lexer.RBRACE)
	}
	return m
}

func (p *Parser) parseParam(pos source.Pos, cached bool) ast.Member {
	p.advance() // 'param'
	name := p.expect(lexer.IDENT).Literal
	var ty ast.TypeExpr
	if p.at(lexer.COLON) {
		p.advance()
		ty = p.parseTypeExpr()
	}
	p.expect(lexer.ASSIGN)
	value := p.parseExpr()
	return &ast.MakeParam{Name: name, Type: ty, Value: value, Cached: cached, Pos: pos}
}

func (p *Parser) parseOption() ast.Member {
	start := p.pos()
	p.advance() // 'option'
	name := p.expect(lexer.IDENT).Literal
	var ty ast.TypeExpr
	if p.at(lexer.COLON) {
		p.advance()
		ty = p.parseTypeExpr()
	}
	p.expect(lexer.LBRACE)
	members := p.parseMemberList(lexer.RBRACE)
	p.expect(lexer.RBRACE)
	return &ast.MakeOption{Name: name, Type: ty, Members: members, Pos: start}
}

// parseAssignLikeMember handles the three IDENT-led member forms:
// '=' (set), '++=' (append), '=>' (lazy).
func (p *Parser) parseAssignLikeMember() ast.Member {
	start := p.pos()
	name := p.cur.Literal
	p.advance() // IDENT

	switch p.cur.Type {
	case lexer.ASSIGN:
		p.advance()
		value := p.parseExpr()
		return &ast.SetMember{Name: name, Value: value, Pos: start}
	case lexer.APPEND:
		p.advance()
		value := p.parseExpr()
		return &ast.AppendMember{Name: name, Value: value, Pos: start}
	case lexer.FARROW:
		p.advance()
		value := p.parseExpr()
		return &ast.LazyMember{Name: name, Value: value, Pos: start}
	default:
		p.errorf("expected '=', '++=', or '=>' after identifier %q, got %s %q", name, p.cur.Type, p.cur.Literal)
		return nil
	}
}
