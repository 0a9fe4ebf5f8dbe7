package hint

import "reflect"

// Builtin scalar classes. These are the types YAML/JSON decoding and
// ordinary Go literals produce, which is what piths overwhelmingly are.
var (
	IntType    = reflect.TypeOf(int(0))
	FloatType  = reflect.TypeOf(float64(0))
	StringType = reflect.TypeOf("")
	BoolType   = reflect.TypeOf(false)
	BytesType  = reflect.TypeOf([]byte(nil))
)

// classNames maps builtin class types to the short names used by the
// hint grammar and by String() rendering.
var classNames = map[reflect.Type]string{
	IntType:    "int",
	FloatType:  "float",
	StringType: "str",
	BoolType:   "bool",
	BytesType:  "bytes",
}

// classesByName is the inverse lookup, used by the parser.
var classesByName = map[string]reflect.Type{}

func init() {
	for t, name := range classNames {
		classesByName[name] = t
	}
}

// LookupClass resolves a builtin class name, e.g. "int" or "str".
func LookupClass(name string) (reflect.Type, bool) {
	t, ok := classesByName[name]
	return t, ok
}

// Convenience constructors for the common builtin hints.
func Int() Hint   { return Class{Type: IntType} }
func Float() Hint { return Class{Type: FloatType} }
func Str() Hint   { return Class{Type: StringType} }
func Bool() Hint  { return Class{Type: BoolType} }

func List(child Hint) Hint      { return Sequence{Child: child} }
func Dict(key, value Hint) Hint { return Mapping{Key: key, Value: value} }
func Optional(h Hint) Hint      { return Union{Members: []Hint{h, None{}}} }
