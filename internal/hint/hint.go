package hint

import (
	"fmt"
	"reflect"
	"strings"
)

// Hint is the interface for all type hints in the algebra. A hint is a
// declarative constraint over runtime values; parents may be subscripted
// by ordered child hints (a sequence hint has one child, a mapping hint
// has two, and so on).
//
// Hints are immutable once constructed. The compiler and the cause
// sleuth both traverse them but never modify them.
type Hint interface {
	// Sign returns the discriminator identifying this hint's kind.
	// SignNone means "plain class or class tuple": checkable with a
	// bare instance test, no structural dispatch needed.
	Sign() Sign

	// Children returns the subscripted child hints in stable
	// positional order, or nil for leaf hints.
	Children() []Hint

	String() string
}

// Sign discriminates hint kinds. Every hint maps to exactly one sign.
// Dispatch tables in the compiler and sleuth are keyed by sign; an
// unregistered sign fails loudly, never silently mis-checks.
type Sign int

const (
	SignNone Sign = iota // plain isinstanceable class / class tuple
	SignAny
	SignNoneType
	SignUnion
	SignSequence
	SignTupleFixed
	SignTupleVariadic
	SignMapping
	SignGeneric
	SignLiteral
	SignTypeVar
	SignSubtype
)

var signNames = map[Sign]string{
	SignNone:          "none-sign",
	SignAny:           "any",
	SignNoneType:      "nonetype",
	SignUnion:         "union",
	SignSequence:      "sequence",
	SignTupleFixed:    "tuple-fixed",
	SignTupleVariadic: "tuple-variadic",
	SignMapping:       "mapping",
	SignGeneric:       "generic",
	SignLiteral:       "literal",
	SignTypeVar:       "typevar",
	SignSubtype:       "subtype",
}

func (s Sign) String() string {
	if n, ok := signNames[s]; ok {
		return n
	}
	return fmt.Sprintf("sign(%d)", int(s))
}

// Class constrains a pith to be an instance of a single concrete type.
// Instance semantics are reflect-based: the pith's dynamic type must be
// assignable to Type (or implement it, for interface types).
type Class struct {
	Type reflect.Type
}

func (h Class) Sign() Sign       { return SignNone }
func (h Class) Children() []Hint { return nil }

func (h Class) String() string {
	if h.Type == nil {
		return "<nil class>"
	}
	if name, ok := classNames[h.Type]; ok {
		return name
	}
	return h.Type.String()
}

// ClassTuple is the legacy union notation: a bare tuple of classes, any
// of which the pith may be an instance of. Like Class it has no sign.
type ClassTuple struct {
	Types []reflect.Type
}

func (h ClassTuple) Sign() Sign       { return SignNone }
func (h ClassTuple) Children() []Hint { return nil }

func (h ClassTuple) String() string {
	parts := make([]string, len(h.Types))
	for i, t := range h.Types {
		parts[i] = Class{Type: t}.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Any is the unconstrained hint. It is ignorable: the compiler emits no
// check for it and the sleuth treats it as trivially satisfied.
type Any struct{}

func (h Any) Sign() Sign       { return SignAny }
func (h Any) Children() []Hint { return nil }
func (h Any) String() string   { return "any" }

// None constrains the pith to be nil (an untyped nil, or a nil pointer,
// interface, map, slice, channel or function value).
type None struct{}

func (h None) Sign() Sign       { return SignNoneType }
func (h None) Children() []Hint { return nil }
func (h None) String() string   { return "none" }

// Union is satisfied when any member is satisfied. Members are kept in
// construction order; the compiler partitions them into plain classes
// (checked with one multi-type instance test) and deep hints.
type Union struct {
	Members []Hint
}

func (h Union) Sign() Sign       { return SignUnion }
func (h Union) Children() []Hint { return h.Members }

func (h Union) String() string {
	parts := make([]string, len(h.Members))
	for i, m := range h.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

// Sequence constrains the pith to be a slice or array whose items
// satisfy Child. A nil Origin accepts any slice or array; a non-nil
// Origin additionally requires assignability to that type.
type Sequence struct {
	Origin reflect.Type
	Child  Hint
}

func (h Sequence) Sign() Sign       { return SignSequence }
func (h Sequence) Children() []Hint { return []Hint{h.Child} }

func (h Sequence) String() string {
	name := "list"
	if h.Origin != nil {
		name = h.Origin.String()
	}
	if h.Child == nil {
		return name
	}
	return fmt.Sprintf("%s[%s]", name, h.Child)
}

// TupleFixed constrains the pith to a slice or array of exactly
// len(Items) elements, checked positionally. An empty Items list is the
// empty-tuple hint: only zero-length piths satisfy it.
type TupleFixed struct {
	Items []Hint
}

func (h TupleFixed) Sign() Sign       { return SignTupleFixed }
func (h TupleFixed) Children() []Hint { return h.Items }

func (h TupleFixed) String() string {
	if len(h.Items) == 0 {
		return "tuple[()]"
	}
	parts := make([]string, len(h.Items))
	for i, it := range h.Items {
		parts[i] = it.String()
	}
	return "tuple[" + strings.Join(parts, ", ") + "]"
}

// TupleVariadic is tuple[X, ...]: any length, every item an X. Checking
// semantics are identical to Sequence.
type TupleVariadic struct {
	Child Hint
}

func (h TupleVariadic) Sign() Sign       { return SignTupleVariadic }
func (h TupleVariadic) Children() []Hint { return []Hint{h.Child} }

func (h TupleVariadic) String() string {
	return fmt.Sprintf("tuple[%s, ...]", h.Child)
}

// Mapping constrains the pith to a map whose keys satisfy Key and
// values satisfy Value. A nil Origin accepts any map.
type Mapping struct {
	Origin reflect.Type
	Key    Hint
	Value  Hint
}

func (h Mapping) Sign() Sign       { return SignMapping }
func (h Mapping) Children() []Hint { return []Hint{h.Key, h.Value} }

func (h Mapping) String() string {
	name := "dict"
	if h.Origin != nil {
		name = h.Origin.String()
	}
	return fmt.Sprintf("%s[%s, %s]", name, h.Key, h.Value)
}

// Literal constrains the pith to equal one of a captured set of values.
// Values are raw values, never nested hints.
type Literal struct {
	Values []any
}

func (h Literal) Sign() Sign       { return SignLiteral }
func (h Literal) Children() []Hint { return nil }

func (h Literal) String() string {
	parts := make([]string, len(h.Values))
	for i, v := range h.Values {
		parts[i] = literalString(v)
	}
	return "literal[" + strings.Join(parts, ", ") + "]"
}

func literalString(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}

// TypeVar is a placeholder hint bound to a concrete hint by an
// enclosing generic (via its subscription) or resolved through its own
// Bound or Constraints. An unbound, unconstrained type variable is
// equivalent to Any.
type TypeVar struct {
	Name        string
	Bound       Hint   // upper bound, or nil
	Constraints []Hint // constraint set; unifies into a union
}

func (h TypeVar) Sign() Sign       { return SignTypeVar }
func (h TypeVar) Children() []Hint { return nil }
func (h TypeVar) String() string   { return h.Name }

// Generic is a user-declared parameterized hint: a named constructor
// with type parameters, subscripted by concrete argument hints, whose
// meaning is the conjunction of its base hints with the parameters
// substituted. The base hints may reference the parameters as TypeVars,
// including indirectly through other generics (alias chains are
// resolved with cycle detection, see Bindings).
type Generic struct {
	Name   string
	Params []string
	Args   []Hint
	Bases  []Hint
}

func (h Generic) Sign() Sign       { return SignGeneric }
func (h Generic) Children() []Hint { return h.Args }

func (h Generic) String() string {
	if len(h.Args) == 0 {
		return h.Name
	}
	parts := make([]string, len(h.Args))
	for i, a := range h.Args {
		parts[i] = a.String()
	}
	return h.Name + "[" + strings.Join(parts, ", ") + "]"
}

// Subtype is type[X]: the pith must itself be a reflect.Type that is a
// subtype of X's origin (assignable to it, or implementing it when X is
// an interface class).
type Subtype struct {
	Of Hint
}

func (h Subtype) Sign() Sign       { return SignSubtype }
func (h Subtype) Children() []Hint { return []Hint{h.Of} }
func (h Subtype) String() string   { return fmt.Sprintf("type[%s]", h.Of) }

// Ignorable reports whether a hint is equivalent to "no constraint".
// Nil hints (the sanifier's "wholly ignorable" result) are ignorable,
// as is bare Any. Type variables are never ignorable here: what a
// variable means depends on the bindings threaded by enclosing
// generics, which only the reduction step sees — deciding at sanify
// time would discard a binding applied further up the tree.
func Ignorable(h Hint) bool {
	switch h.(type) {
	case nil:
		return true
	case Any:
		return true
	}
	return false
}
