package hint

import (
	"reflect"
	"testing"
)

func TestStringRendering(t *testing.T) {
	tests := []struct {
		name string
		hint Hint
		want string
	}{
		{"int class", Int(), "int"},
		{"any", Any{}, "any"},
		{"none", None{}, "none"},
		{"list of int", List(Int()), "list[int]"},
		{"dict", Dict(Str(), Int()), "dict[str, int]"},
		{"union", Union{Members: []Hint{Int(), Str()}}, "int | str"},
		{"optional", Optional(List(Int())), "list[int] | none"},
		{"fixed tuple", TupleFixed{Items: []Hint{Int(), Str()}}, "tuple[int, str]"},
		{"empty tuple", TupleFixed{}, "tuple[()]"},
		{"variadic tuple", TupleVariadic{Child: Int()}, "tuple[int, ...]"},
		{"literal", Literal{Values: []any{1, "a", true}}, `literal[1, "a", true]`},
		{"typevar", TypeVar{Name: "T"}, "T"},
		{"subtype", Subtype{Of: Int()}, "type[int]"},
		{"generic", Generic{Name: "Pair", Params: []string{"T", "S"}, Args: []Hint{Int(), Str()}}, "Pair[int, str]"},
		{"class tuple", ClassTuple{Types: []reflect.Type{IntType, StringType}}, "(int, str)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hint.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSigns(t *testing.T) {
	tests := []struct {
		hint Hint
		want Sign
	}{
		{Int(), SignNone},
		{ClassTuple{Types: []reflect.Type{IntType}}, SignNone},
		{Any{}, SignAny},
		{None{}, SignNoneType},
		{Union{Members: []Hint{Int()}}, SignUnion},
		{List(Int()), SignSequence},
		{TupleFixed{}, SignTupleFixed},
		{TupleVariadic{Child: Int()}, SignTupleVariadic},
		{Dict(Str(), Int()), SignMapping},
		{Literal{Values: []any{1}}, SignLiteral},
		{TypeVar{Name: "T"}, SignTypeVar},
		{Subtype{Of: Int()}, SignSubtype},
		{Generic{Name: "G"}, SignGeneric},
	}

	for _, tt := range tests {
		if got := tt.hint.Sign(); got != tt.want {
			t.Errorf("%s: Sign() = %v, want %v", tt.hint, got, tt.want)
		}
	}
}

func TestIgnorable(t *testing.T) {
	if !Ignorable(Any{}) {
		t.Errorf("Any must be ignorable")
	}
	if !Ignorable(nil) {
		t.Errorf("nil hint must be ignorable")
	}
	if Ignorable(TypeVar{Name: "T"}) {
		t.Errorf("typevars are never ignorable at sanify time: an enclosing generic may bind them")
	}
	if Ignorable(TypeVar{Name: "T", Bound: Int()}) {
		t.Errorf("bounded typevar must not be ignorable")
	}
	if Ignorable(Int()) {
		t.Errorf("int class must not be ignorable")
	}
}

func TestFlattenUnionOneLevel(t *testing.T) {
	// union[union[int, str], union[bool, float]] flattens to four flat
	// members.
	members := FlattenUnion([]Hint{
		Union{Members: []Hint{Int(), Str()}},
		Union{Members: []Hint{Bool(), Float()}},
	})
	if len(members) != 4 {
		t.Fatalf("flattened to %d members, want 4", len(members))
	}

	// One level only: a union nested two levels down stays a union.
	members = FlattenUnion([]Hint{
		Union{Members: []Hint{Union{Members: []Hint{Int(), Str()}}, Bool()}},
	})
	if len(members) != 2 {
		t.Fatalf("flattened to %d members, want 2", len(members))
	}
	if _, ok := members[0].(Union); !ok {
		t.Errorf("second-level union must survive one-level flattening")
	}
}

func TestFlattenUnionDedup(t *testing.T) {
	members := FlattenUnion([]Hint{Int(), Int(), Str()})
	if len(members) != 2 {
		t.Fatalf("deduplicated to %d members, want 2", len(members))
	}
}

func TestPartitionUnion(t *testing.T) {
	shallow, deep, allowsNil := PartitionUnion([]Hint{
		Int(),
		Str(),
		None{},
		List(Int()),
		ClassTuple{Types: []reflect.Type{BoolType, FloatType}},
	})
	if len(shallow) != 4 {
		t.Errorf("shallow partition has %d types, want 4", len(shallow))
	}
	if len(deep) != 1 {
		t.Errorf("deep partition has %d hints, want 1", len(deep))
	}
	if !allowsNil {
		t.Errorf("partition must report the none member")
	}
}

func TestPartitionUnionDistinguishesSameRenderedForm(t *testing.T) {
	// Both unions render "T | list[int]"; each partition must carry
	// its own variable, bound and all, never another union's.
	u1 := []Hint{TypeVar{Name: "T", Bound: Str()}, List(Int())}
	u2 := []Hint{TypeVar{Name: "T", Bound: Int()}, List(Int())}

	_, d1, _ := PartitionUnion(u1)
	_, d2, _ := PartitionUnion(u2)
	if len(d1) != 2 || len(d2) != 2 {
		t.Fatalf("deep partitions have %d and %d members, want 2 and 2", len(d1), len(d2))
	}
	if b := d1[0].(TypeVar).Bound; b.String() != "str" {
		t.Errorf("first union's variable is bound to %s, want str", b)
	}
	if b := d2[0].(TypeVar).Bound; b.String() != "int" {
		t.Errorf("second union's variable is bound to %s, want int", b)
	}
}
