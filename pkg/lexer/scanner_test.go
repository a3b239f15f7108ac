package lexer

import "testing"

func TestNextTokenBasicSelect(t *testing.T) {
	input := `SELECT id, name FROM users WHERE id = 1;`

	expected := []struct {
		typ TokenType
		lit string
	}{
		{SELECT, "SELECT"},
		{IDENT, "id"},
		{COMMA, ","},
		{IDENT, "name"},
		{FROM, "FROM"},
		{IDENT, "users"},
		{WHERE, "WHERE"},
		{IDENT, "id"},
		{ASSIGN, "="},
		{NUMBER, "1"},
		{SEMICOLON, ";"},
		{EOF, ""},
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want.typ {
			t.Fatalf("token[%d] type = %s, want %s (literal %q)", i, tok.Type, want.typ, tok.Literal)
		}
		if tok.Literal != want.lit {
			t.Fatalf("token[%d] literal = %q, want %q", i, tok.Literal, want.lit)
		}
	}
}

func TestNextTokenOperators(t *testing.T) {
	input := `<= >= <> != < >`
	expected := []TokenType{LTE, GTE, NOT_EQ, NOT_EQ, LT, GT, EOF}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token[%d] type = %s, want %s", i, tok.Type, want)
		}
	}
}

func TestNextTokenStringEitherQuote(t *testing.T) {
	input := `'hello' "world"`
	l := New(input)

	tok := l.NextToken()
	if tok.Type != STRING || tok.Literal != "hello" {
		t.Fatalf("got %s %q, want STRING \"hello\"", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != STRING || tok.Literal != "world" {
		t.Fatalf("got %s %q, want STRING \"world\"", tok.Type, tok.Literal)
	}
}

func TestNextTokenNumberForms(t *testing.T) {
	input := `123 123.45 .5 1e10 1e+3 1E-2`
	expectedLiterals := []string{"123", "123.45", ".5", "1e10", "1e+3", "1E-2"}

	l := New(input)
	for i, want := range expectedLiterals {
		tok := l.NextToken()
		if tok.Type != NUMBER {
			t.Fatalf("token[%d] type = %s, want NUMBER", i, tok.Type)
		}
		if tok.Literal != want {
			t.Fatalf("token[%d] literal = %q, want %q", i, tok.Literal, want)
		}
	}
}

func TestNextTokenSkipsComments(t *testing.T) {
	input := "SELECT 1 -- trailing comment\nFROM /* block\ncomment */ t"
	expected := []TokenType{SELECT, NUMBER, FROM, IDENT, EOF}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token[%d] type = %s, want %s", i, tok.Type, want)
		}
	}
}

func TestNextTokenTrueFalseKeywords(t *testing.T) {
	input := `TRUE FALSE true false`
	expected := []TokenType{TRUE, FALSE, TRUE, FALSE}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token[%d] type = %s, want %s", i, tok.Type, want)
		}
	}
}

func TestNextTokenLineAndColumnTracking(t *testing.T) {
	input := "SELECT 1\nFROM t"
	l := New(input)

	tok := l.NextToken() // SELECT
	if tok.Line != 1 {
		t.Fatalf("SELECT line = %d, want 1", tok.Line)
	}
	l.NextToken() // 1
	tok = l.NextToken() // FROM
	if tok.Line != 2 {
		t.Fatalf("FROM line = %d, want 2", tok.Line)
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New("@")
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("got %s, want ILLEGAL", tok.Type)
	}
}
