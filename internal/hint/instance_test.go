package hint

import (
	"reflect"
	"testing"
)

type stringerLike struct{}

func (stringerLike) String() string { return "x" }

type picky struct{}

func (picky) ExplainInstanceFailure(pith any) string {
	return "not picky enough"
}

type brokenExplainer struct{}

func (brokenExplainer) ExplainInstanceFailure(pith any) string { return "" }

func TestIsInstance(t *testing.T) {
	stringerType := reflect.TypeOf((*interface{ String() string })(nil)).Elem()

	tests := []struct {
		name  string
		pith  any
		class reflect.Type
		tower bool
		want  bool
	}{
		{"int is int", 3, IntType, false, true},
		{"string is not int", "x", IntType, false, false},
		{"nil is nothing", nil, IntType, false, false},
		{"int is not float", 3, FloatType, false, false},
		{"int is float under tower", 3, FloatType, true, true},
		{"float stays float", 3.5, FloatType, false, true},
		{"float never narrows to int", 3.5, IntType, true, false},
		{"interface implemented", stringerLike{}, stringerType, false, true},
		{"interface not implemented", 3, stringerType, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInstance(tt.pith, tt.class, tt.tower); got != tt.want {
				t.Errorf("IsInstance(%v, %s) = %v, want %v", tt.pith, tt.class, got, tt.want)
			}
		})
	}
}

func TestIsNil(t *testing.T) {
	var p *int
	var m map[string]int
	if !IsNil(nil) || !IsNil(p) || !IsNil(m) {
		t.Errorf("untyped nil, nil pointer and nil map are all nil piths")
	}
	if IsNil(0) || IsNil("") || IsNil([]int{}) {
		t.Errorf("zero values of non-nilable shapes are not nil piths")
	}
}

func TestIsSequence(t *testing.T) {
	if _, ok := IsSequence([]int{1, 2}, nil); !ok {
		t.Errorf("slice must be a sequence")
	}
	if _, ok := IsSequence([2]string{"a", "b"}, nil); !ok {
		t.Errorf("array must be a sequence")
	}
	if _, ok := IsSequence("abc", nil); ok {
		t.Errorf("string is not a sequence pith")
	}
	if _, ok := IsSequence([]int{}, reflect.TypeOf([]string(nil))); ok {
		t.Errorf("origin mismatch must fail")
	}
}

func TestIsMapping(t *testing.T) {
	if _, ok := IsMapping(map[string]int{}, nil); !ok {
		t.Errorf("map must be a mapping")
	}
	if _, ok := IsMapping([]int{}, nil); ok {
		t.Errorf("slice is not a mapping")
	}
}

func TestIsSubtype(t *testing.T) {
	if !IsSubtype(IntType, IntType) {
		t.Errorf("every type is a subtype of itself")
	}
	if IsSubtype(3, IntType) {
		t.Errorf("non-type piths are never subtypes")
	}
	stringerType := reflect.TypeOf((*interface{ String() string })(nil)).Elem()
	if !IsSubtype(reflect.TypeOf(stringerLike{}), stringerType) {
		t.Errorf("implementing type must be a subtype of the interface")
	}
}

func TestExplainerLookup(t *testing.T) {
	e, ok := Explainer(reflect.TypeOf(picky{}))
	if !ok {
		t.Fatalf("picky must expose an explainer")
	}
	if msg := e.ExplainInstanceFailure(3); msg != "not picky enough" {
		t.Errorf("explainer message = %q", msg)
	}
	if _, ok := Explainer(IntType); ok {
		t.Errorf("int has no explainer")
	}
	stringerType := reflect.TypeOf((*interface{ String() string })(nil)).Elem()
	if _, ok := Explainer(stringerType); ok {
		t.Errorf("interface classes cannot carry explainers")
	}
}

func TestEqualLiteral(t *testing.T) {
	tests := []struct {
		pith, lit any
		want      bool
	}{
		{1, 1, true},
		{int64(1), 1, true},
		{uint8(1), 1, true},
		{"a", "a", true},
		{"a", "b", false},
		{true, true, true},
		{1, "1", false},
		{1.0, 1, false},
	}
	for _, tt := range tests {
		if got := EqualLiteral(tt.pith, tt.lit); got != tt.want {
			t.Errorf("EqualLiteral(%v, %v) = %v, want %v", tt.pith, tt.lit, got, tt.want)
		}
	}
}
