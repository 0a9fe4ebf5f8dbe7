package lexer

import (
	"testing"

	"github.com/hintwire/hintcheck/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `dict[str, list[int | none]] | tuple[T, ...] | literal["a", -1, 2.5, true]`

	tests := []struct {
		wantType   token.TokenType
		wantLexeme string
	}{
		{token.IDENT, "dict"},
		{token.LBRACKET, "["},
		{token.IDENT, "str"},
		{token.COMMA, ","},
		{token.IDENT, "list"},
		{token.LBRACKET, "["},
		{token.IDENT, "int"},
		{token.PIPE, "|"},
		{token.NONE, "none"},
		{token.RBRACKET, "]"},
		{token.RBRACKET, "]"},
		{token.PIPE, "|"},
		{token.IDENT, "tuple"},
		{token.LBRACKET, "["},
		{token.IDENT_UPPER, "T"},
		{token.COMMA, ","},
		{token.ELLIPSIS, "..."},
		{token.RBRACKET, "]"},
		{token.PIPE, "|"},
		{token.IDENT, "literal"},
		{token.LBRACKET, "["},
		{token.STRING, `"a"`},
		{token.COMMA, ","},
		{token.INT, "-1"},
		{token.COMMA, ","},
		{token.FLOAT, "2.5"},
		{token.COMMA, ","},
		{token.TRUE, "true"},
		{token.RBRACKET, "]"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.wantType {
			t.Fatalf("token %d: type = %q, want %q (lexeme %q)", i, tok.Type, tt.wantType, tok.Lexeme)
		}
		if tok.Lexeme != tt.wantLexeme {
			t.Fatalf("token %d: lexeme = %q, want %q", i, tok.Lexeme, tt.wantLexeme)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	l := New("42 -7 3.25")

	tok := l.NextToken()
	if tok.Type != token.INT || tok.Literal.(int64) != 42 {
		t.Errorf("expected INT 42, got %v %v", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != token.INT || tok.Literal.(int64) != -7 {
		t.Errorf("expected INT -7, got %v %v", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != token.FLOAT || tok.Literal.(float64) != 3.25 {
		t.Errorf("expected FLOAT 3.25, got %v %v", tok.Type, tok.Literal)
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\nb\"c"`)
	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("expected STRING, got %v", tok.Type)
	}
	if tok.Literal.(string) != "a\nb\"c" {
		t.Errorf("unexpected string content %q", tok.Literal)
	}
}

func TestIllegalRunes(t *testing.T) {
	l := New("int & str")
	l.NextToken() // int
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Errorf("expected ILLEGAL for '&', got %v", tok.Type)
	}
}

func TestPositionTracking(t *testing.T) {
	l := New("int |\n  str")
	l.NextToken() // int
	l.NextToken() // |
	tok := l.NextToken()
	if tok.Line != 2 {
		t.Errorf("expected str on line 2, got line %d", tok.Line)
	}
}
