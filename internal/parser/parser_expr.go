package parser

import (
	"mint.build/mint/internal/ast"
	"mint.build/mint/internal/lexer"
)

// parseExpr parses a full expression using an operator-precedence chain,
// bands low to high: mapsto/or, and, in/not-in, relational, add/subtract/
// concat, multiply/divide/modulus, exponent, range, unary.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseIf()
}

// parseIf handles the expression-level `if (cond) then else` form, which
// sits above the binary-operator chain since its branches are themselves
// full expressions.
func (p *Parser) parseIf() ast.Expr {
	if p.at(lexer.IF) {
		pos := p.pos()
		p.advance()
		p.expect(lexer.LPAREN)
		cond := p.parseExpr()
		p.expect(lexer.RPAREN)
		then := p.parseExpr()
		var els ast.Expr
		if p.at(lexer.ELSE) {
			p.advance()
			els = p.parseExpr()
		}
		return &ast.IfExpr{Cond: cond, Then: then, Else: els, Pos: pos}
	}
	if p.at(lexer.LET) {
		pos := p.pos()
		p.advance()
		name := p.expect(lexer.IDENT).Literal
		p.expect(lexer.ASSIGN)
		value := p.parseExpr()
		p.expect(lexer.IN)
		body := p.parseExpr()
		return &ast.LetExpr{Name: name, Value: value, Body: body, Pos: pos}
	}
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.at(lexer.OR) || p.at(lexer.FARROW) {
		op := p.cur.Literal
		pos := p.pos()
		p.advance()
		right := p.parseAnd()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Pos: pos}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseInNotIn()
	for p.at(lexer.AND) {
		pos := p.pos()
		p.advance()
		right := p.parseInNotIn()
		left = &ast.BinaryExpr{Op: "and", Left: left, Right: right, Pos: pos}
	}
	return left
}

func (p *Parser) parseInNotIn() ast.Expr {
	left := p.parseRelational()
	for {
		if p.at(lexer.IN) {
			pos := p.pos()
			p.advance()
			right := p.parseRelational()
			left = &ast.BinaryExpr{Op: "in", Left: left, Right: right, Pos: pos}
			continue
		}
		if p.at(lexer.NOT) && p.nxt.Type == lexer.IN {
			pos := p.pos()
			p.advance()
			p.advance()
			right := p.parseRelational()
			left = &ast.BinaryExpr{Op: "not in", Left: left, Right: right, Pos: pos}
			continue
		}
		break
	}
	return left
}

var relOps = map[lexer.TokenType]string{
	lexer.EQ: "==", lexer.NE: "!=", lexer.LT: "<", lexer.LE: "<=", lexer.GT: ">", lexer.GE: ">=",
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAddSub()
	for {
		op, ok := relOps[p.cur.Type]
		if !ok {
			break
		}
		pos := p.pos()
		p.advance()
		right := p.parseAddSub()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Pos: pos}
	}
	return left
}

func (p *Parser) parseAddSub() ast.Expr {
	left := p.parseMulDivMod()
	for p.atAny(lexer.PLUS, lexer.MINUS) {
		op := p.cur.Literal
		pos := p.pos()
		p.advance()
		right := p.parseMulDivMod()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Pos: pos}
	}
	return left
}

func (p *Parser) parseMulDivMod() ast.Expr {
	left := p.parseExponent()
	for p.atAny(lexer.STAR, lexer.SLASH, lexer.PERCENT) {
		op := p.cur.Literal
		pos := p.pos()
		p.advance()
		right := p.parseExponent()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Pos: pos}
	}
	return left
}

func (p *Parser) parseExponent() ast.Expr {
	left := p.parseRange()
	if p.at(lexer.POW) {
		pos := p.pos()
		p.advance()
		right := p.parseExponent() // right-associative
		return &ast.BinaryExpr{Op: "**", Left: left, Right: right, Pos: pos}
	}
	return left
}

func (p *Parser) parseRange() ast.Expr {
	left := p.parseUnary()
	if p.at(lexer.RANGE) {
		pos := p.pos()
		p.advance()
		right := p.parseUnary()
		return &ast.BinaryExpr{Op: "..", Left: left, Right: right, Pos: pos}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.at(lexer.NOT) {
		pos := p.pos()
		p.advance()
		return &ast.UnaryExpr{Op: "not", X: p.parseUnary(), Pos: pos}
	}
	if p.at(lexer.MINUS) {
		pos := p.pos()
		p.advance()
		return &ast.UnaryExpr{Op: "-", X: p.parseUnary(), Pos: pos}
	}
	return p.parsePostfix()
}

// parsePostfix handles member access, element access, and calls, which
// chain left to right: a.b[0](x).c
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch p.cur.Type {
		case lexer.DOT:
			pos := p.pos()
			p.advance()
			name := p.expect(lexer.IDENT).Literal
			expr = &ast.GetMember{Base: expr, Name: name, Pos: pos}
		case lexer.LBRACKET:
			pos := p.pos()
			p.advance()
			idx := p.parseExpr()
			p.expect(lexer.RBRACKET)
			expr = &ast.GetElement{Base: expr, Index: idx, Pos: pos}
		case lexer.LPAREN:
			pos := p.pos()
			p.advance()
			var args []ast.Expr
			for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
				args = append(args, p.parseExpr())
				if p.at(lexer.COMMA) {
					p.advance()
				} else {
					break
				}
			}
			p.expect(lexer.RPAREN)
			expr = &ast.CallExpr{Callee: expr, Args: args, Pos: pos}
		default:
			return expr
		}
	}
}
