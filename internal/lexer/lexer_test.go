package lexer

import (
	"testing"
)

func TestNextToken(t *testing.T) {
	input := `import base from "core/base.mint"

project foo {
  option optimize : bool = true
  param name : string = "widget"

  x = 1 + 2 * 3
  list = [1, 2, 3] ++ [4, 5]
  obj = { name = "Alice", age = 30 }

  # a comment
  flag = true and not false or undefined
}
`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{IMPORT, "import"},
		{IDENT, "base"},
		{FROM, "from"},
		{STRING, "core/base.mint"},

		{PROJECT, "project"},
		{IDENT, "foo"},
		{LBRACE, "{"},

		{OPTION, "option"},
		{IDENT, "optimize"},
		{COLON, ":"},
		{TYPE_BOOL, "bool"},
		{ASSIGN, "="},
		{TRUE, "true"},

		{PARAM, "param"},
		{IDENT, "name"},
		{COLON, ":"},
		{TYPE_STRING, "string"},
		{ASSIGN, "="},
		{STRING, "widget"},

		{IDENT, "x"},
		{ASSIGN, "="},
		{INT, "1"},
		{PLUS, "+"},
		{INT, "2"},
		{STAR, "*"},
		{INT, "3"},

		{IDENT, "list"},
		{ASSIGN, "="},
		{LBRACKET, "["},
		{INT, "1"},
		{COMMA, ","},
		{INT, "2"},
		{COMMA, ","},
		{INT, "3"},
		{RBRACKET, "]"},
		{PLUS, "+"},
		{PLUS, "+"}, // "++" without a trailing "=" is two PLUS tokens, not APPEND
	}

	l := New(input, "test.mint")
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("test[%d] - tokentype wrong. expected=%s, got=%s (%q)", i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("test[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `= ++= -> => + - * / % ** .. == != < <= > >=`
	expected := []TokenType{
		ASSIGN, APPEND, ARROW, FARROW, PLUS, MINUS, STAR, SLASH, PERCENT, POW,
		RANGE, EQ, NE, LT, LE, GT, GE, EOF,
	}
	l := New(input, "ops.mint")
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token[%d]: expected %s, got %s (%q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := "import from as project option param do let if else and or not in super self cached true false undefined"
	expected := []TokenType{
		IMPORT, FROM, AS, PROJECT, OPTION, PARAM, DO, LET, IF, ELSE,
		AND, OR, NOT, IN, SUPER, SELF, CACHED, TRUE, FALSE, UNDEFINED, EOF,
	}
	l := New(input, "kw.mint")
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token[%d]: expected %s, got %s (%q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestProjectQualifiedIdent(t *testing.T) {
	l := New("proj:name other", "pq.mint")
	tok := l.NextToken()
	if tok.Type != IDENT || tok.Literal != "proj:name" {
		t.Fatalf("expected IDENT proj:name, got %s %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != IDENT || tok.Literal != "other" {
		t.Fatalf("expected IDENT other, got %s %q", tok.Type, tok.Literal)
	}
}

func TestSingleQuotedString(t *testing.T) {
	l := New(`'raw \n text'`, "sq.mint")
	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("expected STRING, got %s", tok.Type)
	}
	if tok.Literal != `raw \n text` {
		t.Fatalf("expected literal escapes unprocessed, got %q", tok.Literal)
	}
}

func TestDoubleQuotedEscapes(t *testing.T) {
	l := New(`"a\tb\n\x41é"`, "dq.mint")
	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("expected STRING, got %s", tok.Type)
	}
	want := "a\tb\nAé"
	if tok.Literal != want {
		t.Fatalf("expected %q, got %q", want, tok.Literal)
	}
}

func TestInterpolatedString(t *testing.T) {
	l := New(`"hello ${name} and ${1 + 2}!"`, "interp.mint")

	tok := l.NextToken()
	if tok.Type != STRING_START || tok.Literal != "hello " {
		t.Fatalf("expected STRING_START %q, got %s %q", "hello ", tok.Type, tok.Literal)
	}

	tok = l.NextToken()
	if tok.Type != IDENT || tok.Literal != "name" {
		t.Fatalf("expected IDENT name, got %s %q", tok.Type, tok.Literal)
	}

	tok = l.NextToken()
	if tok.Type != STRING_MID || tok.Literal != " and " {
		t.Fatalf("expected STRING_MID %q, got %s %q", " and ", tok.Type, tok.Literal)
	}

	tok = l.NextToken()
	if tok.Type != INT || tok.Literal != "1" {
		t.Fatalf("expected INT 1, got %s %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != PLUS {
		t.Fatalf("expected PLUS, got %s", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != INT || tok.Literal != "2" {
		t.Fatalf("expected INT 2, got %s %q", tok.Type, tok.Literal)
	}

	tok = l.NextToken()
	if tok.Type != STRING_END || tok.Literal != "!" {
		t.Fatalf("expected STRING_END %q, got %s %q", "!", tok.Type, tok.Literal)
	}
}

func TestInterpolatedStringWithNestedBraces(t *testing.T) {
	l := New(`"v=${ {a=1}.a }"`, "interp2.mint")

	tok := l.NextToken()
	if tok.Type != STRING_START || tok.Literal != "v=" {
		t.Fatalf("expected STRING_START %q, got %s %q", "v=", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != LBRACE {
		t.Fatalf("expected LBRACE, got %s", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != IDENT || tok.Literal != "a" {
		t.Fatalf("expected IDENT a, got %s %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != ASSIGN {
		t.Fatalf("expected ASSIGN, got %s", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != INT || tok.Literal != "1" {
		t.Fatalf("expected INT 1, got %s %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != RBRACE {
		t.Fatalf("expected matching RBRACE for nested object, got %s", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != DOT {
		t.Fatalf("expected DOT, got %s", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != IDENT || tok.Literal != "a" {
		t.Fatalf("expected IDENT a, got %s %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != STRING_END {
		t.Fatalf("expected STRING_END closing interpolation, got %s %q", tok.Type, tok.Literal)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"never closed`, "unterm.mint")
	l.NextToken()
	errs := l.Errors()
	if len(errs) != 1 || errs[0].Code != ErrUnterminatedString {
		t.Fatalf("expected one UNTERMINATED_STRING error, got %+v", errs)
	}
}

func TestMalformedEscape(t *testing.T) {
	l := New(`"\q"`, "bad-escape.mint")
	l.NextToken()
	errs := l.Errors()
	if len(errs) != 1 || errs[0].Code != ErrMalformedEscape {
		t.Fatalf("expected one MALFORMED_ESCAPE_SEQUENCE error, got %+v", errs)
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New("x @ y", "illegal.mint")
	l.NextToken() // x
	l.NextToken() // @
	errs := l.Errors()
	if len(errs) != 1 || errs[0].Code != ErrIllegalChar {
		t.Fatalf("expected one ILLEGAL_CHAR error, got %+v", errs)
	}
}

func TestLineBreakBeforeTracksNewlines(t *testing.T) {
	l := New("a\nb", "nl.mint")
	l.NextToken() // a
	if l.LineBreakBefore() {
		t.Fatalf("no newline should precede the first token")
	}
	l.NextToken() // b
	if !l.LineBreakBefore() {
		t.Fatalf("expected a newline to precede b")
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
	}{
		{"42", INT},
		{"3.14", FLOAT},
		{"1e10", FLOAT},
		{"1.5e-3", FLOAT},
	}
	for _, tt := range tests {
		l := New(tt.input, "num.mint")
		tok := l.NextToken()
		if tok.Type != tt.typ || tok.Literal != tt.input {
			t.Fatalf("input %q: expected %s %q, got %s %q", tt.input, tt.typ, tt.input, tok.Type, tok.Literal)
		}
	}
}
