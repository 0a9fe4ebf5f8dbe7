// Package token defines the lexical tokens of hint expressions.
package token

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// IDENT is a lowercase identifier: a builtin class or container
	// name (int, str, list, dict, tuple, type, literal).
	IDENT = "IDENT"
	// IDENT_UPPER is a capitalized identifier: a type variable.
	IDENT_UPPER = "IDENT_UPPER"

	INT    = "INT"
	FLOAT  = "FLOAT"
	STRING = "STRING"

	PIPE     = "|"
	COMMA    = ","
	LBRACKET = "["
	RBRACKET = "]"
	LPAREN   = "("
	RPAREN   = ")"
	ELLIPSIS = "..."

	NONE  = "NONE"
	ANY   = "ANY"
	TRUE  = "TRUE"
	FALSE = "FALSE"
)

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any // parsed value for INT/FLOAT/STRING, else the lexeme
	Line    int
	Column  int
}

var keywords = map[string]TokenType{
	"none":  NONE,
	"any":   ANY,
	"true":  TRUE,
	"false": FALSE,
}

func LookupIdent(ident string) TokenType {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return IDENT
}
