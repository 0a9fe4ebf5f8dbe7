package parser

import (
	"strings"
	"testing"

	"github.com/hintwire/hintcheck/internal/hint"
)

func mustParse(t *testing.T, input string) hint.Hint {
	t.Helper()
	h, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	return h
}

func TestParseRenders(t *testing.T) {
	// Round-tripping through String() pins both the parsed structure
	// and the rendering in one assertion.
	tests := []struct {
		input string
		want  string
	}{
		{"int", "int"},
		{"none", "none"},
		{"any", "any"},
		{"int | str", "int | str"},
		{"list[int]", "list[int]"},
		{"dict[str, int]", "dict[str, int]"},
		{"dict[str, list[int | none]]", "dict[str, list[int | none]]"},
		{"tuple[int, str]", "tuple[int, str]"},
		{"tuple[int, ...]", "tuple[int, ...]"},
		{"tuple[()]", "tuple[()]"},
		{"type[int]", "type[int]"},
		{`literal["a", "b"]`, `literal["a", "b"]`},
		{"literal[1, 2]", "literal[1, 2]"},
		{"T", "T"},
		{"list[T]", "list[T]"},
		{"(int, str)", "(int, str)"},
		{"(int)", "int"},
		{"  list[ int ]  ", "list[int]"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			h := mustParse(t, tt.input)
			if got := h.String(); got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseStructure(t *testing.T) {
	h := mustParse(t, "list[int]")
	seq, ok := h.(hint.Sequence)
	if !ok {
		t.Fatalf("expected Sequence, got %T", h)
	}
	if _, ok := seq.Child.(hint.Class); !ok {
		t.Errorf("expected Class child, got %T", seq.Child)
	}

	h = mustParse(t, "(int, str)")
	if _, ok := h.(hint.ClassTuple); !ok {
		t.Errorf("a parenthesized class group must parse as a class tuple, got %T", h)
	}

	h = mustParse(t, "(int, list[str])")
	if _, ok := h.(hint.Union); !ok {
		t.Errorf("a group with a deep member must parse as a union, got %T", h)
	}
}

func TestParseBareContainers(t *testing.T) {
	if _, ok := mustParse(t, "list").(hint.Sequence); !ok {
		t.Errorf("bare list must parse as an unconstrained sequence")
	}
	if _, ok := mustParse(t, "dict").(hint.Mapping); !ok {
		t.Errorf("bare dict must parse as an unconstrained mapping")
	}
	if _, ok := mustParse(t, "tuple").(hint.TupleVariadic); !ok {
		t.Errorf("bare tuple must parse as an unconstrained variadic tuple")
	}
	if _, ok := mustParse(t, "type").(hint.Subtype); !ok {
		t.Errorf("bare type must parse as type[any]")
	}
}

func TestParseTypeVar(t *testing.T) {
	h := mustParse(t, "T")
	tv, ok := h.(hint.TypeVar)
	if !ok || tv.Name != "T" {
		t.Fatalf("expected type variable T, got %#v", h)
	}
}

func TestParseLiteralValues(t *testing.T) {
	h := mustParse(t, `literal[1, -2, 2.5, "x", true, false]`)
	lit, ok := h.(hint.Literal)
	if !ok {
		t.Fatalf("expected Literal, got %T", h)
	}
	if len(lit.Values) != 6 {
		t.Fatalf("expected 6 values, got %d", len(lit.Values))
	}
	if lit.Values[0].(int64) != 1 || lit.Values[1].(int64) != -2 {
		t.Errorf("int values parsed wrong: %#v", lit.Values[:2])
	}
	if lit.Values[2].(float64) != 2.5 {
		t.Errorf("float value parsed wrong: %#v", lit.Values[2])
	}
	if lit.Values[3].(string) != "x" {
		t.Errorf("string value parsed wrong: %#v", lit.Values[3])
	}
	if lit.Values[4] != true || lit.Values[5] != false {
		t.Errorf("bool values parsed wrong: %#v", lit.Values[4:])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input   string
		wantMsg string
	}{
		{"", "expected a hint"},
		{"int str", "unexpected trailing"},
		{"frob", "unknown class"},
		{"int[str]", "not subscriptable"},
		{"list[int", `expected "]"`},
		{"list[int, str]", "takes 1 argument"},
		{"dict[str]", "takes 2 argument"},
		{"tuple[..., int]", `"..." must follow exactly one tuple item`},
		{"literal[list[int]]", "raw values"},
		{"T[int]", "unknown generic"},
		{"int |", "expected a hint"},
		{"(int, str", `expected ")"`},
		{"int & str", "unexpected"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error containing %q", tt.input, tt.wantMsg)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Parse(%q) error %q does not contain %q", tt.input, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("list[frob]")
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Line != 1 || perr.Column != 6 {
		t.Errorf("expected error at 1:6, got %d:%d", perr.Line, perr.Column)
	}
}
