// Package parser implements a recursive-descent parser for Mint modules,
// producing the AST defined in internal/ast.
package parser

import (
	"fmt"

	"mint.build/mint/internal/ast"
	"mint.build/mint/internal/lexer"
	"mint.build/mint/internal/source"
)

// Diagnostic is a single parse-time error. The parser never aborts on one:
// it records the diagnostic, skips to a recovery point, and continues.
type Diagnostic struct {
	Message string
	Pos     source.Pos
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}

// Parser turns a token stream into an *ast.File.
type Parser struct {
	l   *lexer.Lexer
	cur lexer.Token
	nxt lexer.Token

	curLineBreakBefore bool
	nxtLineBreakBefore bool

	diagnostics []Diagnostic
}

// New creates a Parser over the given lexer, priming the two-token
// lookahead buffer.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.advance()
	p.advance()
	return p
}

// Parse lexes and parses src in one step.
func Parse(src []byte, filename string) (*ast.File, []Diagnostic) {
	l := lexer.New(string(lexer.Normalize(src)), filename)
	p := New(l)
	file := p.ParseModule(filename)
	return file, p.Diagnostics()
}

// Diagnostics returns every diagnostic recorded during parsing.
func (p *Parser) Diagnostics() []Diagnostic { return p.diagnostics }

func (p *Parser) advance() {
	p.cur = p.nxt
	p.curLineBreakBefore = p.nxtLineBreakBefore
	p.nxt = p.l.NextToken()
	p.nxtLineBreakBefore = p.l.LineBreakBefore()
}

func (p *Parser) pos() source.Pos {
	return source.Pos{File: p.cur.File, Line: p.cur.Line, Column: p.cur.Column, Offset: p.cur.Offset}
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.diagnostics = append(p.diagnostics, Diagnostic{
		Message: fmt.Sprintf(format, args...),
		Pos:     p.pos(),
	})
}

func (p *Parser) at(tt lexer.TokenType) bool { return p.cur.Type == tt }

func (p *Parser) atAny(tts ...lexer.TokenType) bool {
	for _, tt := range tts {
		if p.cur.Type == tt {
			return true
		}
	}
	return false
}

// expect consumes the current token if it matches tt, else records a
// diagnostic and leaves the cursor in place for recovery to handle.
func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	tok := p.cur
	if p.cur.Type != tt {
		p.errorf("expected %s, got %s %q", tt, p.cur.Type, p.cur.Literal)
		return tok
	}
	p.advance()
	return tok
}

// recover skips tokens until a recovery point: a comma, a matching close
// delimiter, a newline, or EOF. It does not consume the recovery token
// itself when it is a delimiter the caller still needs to see.
func (p *Parser) recover() {
	for {
		switch p.cur.Type {
		case lexer.COMMA, lexer.RBRACE, lexer.RBRACKET, lexer.RPAREN, lexer.EOF:
			return
		case lexer.SEMI:
			p.advance()
			return
		}
		if p.curLineBreakBefore {
			return
		}
		p.advance()
	}
}

// ParseModule is the parse_module entry point: builds a MAKE_MODULE
// operator (an *ast.File) whose children are the file's top-level members.
func (p *Parser) ParseModule(path string) *ast.File {
	file := &ast.File{Path: path, Pos: p.pos()}
	for !p.at(lexer.EOF) {
		p.skipSeparators()
		if p.at(lexer.EOF) {
			break
		}
		m := p.parseMember()
		if m != nil {
			file.Members = append(file.Members, m)
		} else {
			p.recover()
		}
	}
	return file
}

// ParseProjects is the parse_projects entry point, for the cached build
// configuration file: a flat sequence of `project "<absolute-source-dir>"
// { option NAME { value = ... } ... }` blocks, reusing the same
// object-member grammar as any other object.
func (p *Parser) ParseProjects(path string) []*ast.ObjectLit {
	var projects []*ast.ObjectLit
	for !p.at(lexer.EOF) {
		p.skipSeparators()
		if p.at(lexer.EOF) {
			break
		}
		if !p.at(lexer.PROJECT) {
			p.errorf("expected 'project', got %s %q", p.cur.Type, p.cur.Literal)
			p.recover()
			continue
		}
		start := p.pos()
		p.advance()
		srcDir := p.expect(lexer.STRING).Literal
		p.expect(lexer.LBRACE)
		members := p.parseMemberList(lexer.RBRACE)
		p.expect(lexer.RBRACE)
		projects = append(projects, &ast.ObjectLit{
			Proto:   &ast.StringLit{Value: srcDir, Pos: start},
			Members: members,
			Pos:     start,
		})
	}
	return projects
}

func (p *Parser) skipSeparators() {
	for p.atAny(lexer.SEMI) {
		p.advance()
	}
}
