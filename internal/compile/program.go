// Package compile implements the checker compiler: a breadth-first,
// sign-dispatched code generator that turns a sanified hint tree into a
// specialized check program.
//
// The original design of this engine emitted source text and compiled
// it with the host language's dynamic-function facility. Go has no eval,
// so the compiler targets an explicit intermediate representation
// instead: a tree of typed check nodes interpreted directly at call
// time. The traversal machinery is unchanged — a pooled worklist of
// hint metadata records, per-sign factories, placeholder slots patched
// as children are generated — and the assembled boolean expression the
// text-based design produced is still available via Program.Source().
package compile

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hintwire/hintcheck/internal/config"
	"github.com/hintwire/hintcheck/internal/hint"
)

// Op tags a check node. Every per-kind factory emits exactly one of
// these; the interpreter and the source renderer switch on them
// exhaustively.
type Op int

const (
	// OpTrue is the check of an ignorable subtree: always satisfied.
	OpTrue Op = iota

	// OpIsNil accepts nil piths only.
	OpIsNil

	// OpInstance is a single-class instance test.
	OpInstance

	// OpInstanceAny accepts an instance of any of a tuple of classes
	// (legacy tuple-union notation).
	OpInstanceAny

	// OpUnion ORs a shallow class partition, an optional nil branch
	// and deep child checks, cheapest first.
	OpUnion

	// OpAll ANDs its children; emitted for generics, whose meaning is
	// the conjunction of their substituted base hints.
	OpAll

	// OpSequence requires a slice/array pith whose sampled (or all)
	// items satisfy the single child check.
	OpSequence

	// OpTupleFixed requires an exact length and checks positionally.
	OpTupleFixed

	// OpTupleVariadic has sequence semantics with tuple spelling.
	OpTupleVariadic

	// OpMapping requires a map pith; the two children check a sampled
	// (or every) key/value pair.
	OpMapping

	// OpLiteral accepts piths equal to one of a captured value set.
	OpLiteral

	// OpSubtype accepts reflect.Type piths assignable to a class.
	OpSubtype
)

var opNames = map[Op]string{
	OpTrue:          "true",
	OpIsNil:         "isnil",
	OpInstance:      "instance",
	OpInstanceAny:   "instance-any",
	OpUnion:         "union",
	OpAll:           "all",
	OpSequence:      "sequence",
	OpTupleFixed:    "tuple-fixed",
	OpTupleVariadic: "tuple-variadic",
	OpMapping:       "mapping",
	OpLiteral:       "literal",
	OpSubtype:       "subtype",
}

func (o Op) String() string {
	if n, ok := opNames[o]; ok {
		return n
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Node is one check in the compiled program. Nodes are immutable after
// compilation; the interpreter only reads them, so one Program may be
// executed from any number of goroutines concurrently.
type Node struct {
	Op       Op
	Origin   reflect.Type   // container origin for sequence/mapping checks
	Types    []reflect.Type // instance classes (single entry for OpInstance/OpSubtype)
	AllowNil bool           // union: a none member was present
	Children []*Node
	Literals []any // captured literal values

	// PithExpr is the source expression this node's check applies to,
	// carried for Source() rendering and program dumps.
	PithExpr string
	// PithVar is the pooled local variable the pith is bound to when
	// the node references it more than once, or "" when unneeded.
	PithVar string
	Depth   int
}

// Program is a compiled checker: the root check node plus the captured
// scope and the configuration it was compiled under. The scope maps
// stable names (referenced by the Source() text) to every captured
// object — origin types, class tuples, literal value sets.
type Program struct {
	Root  *Node
	Scope map[string]any
	Hint  string // rendered root hint, for error prefixes and dumps

	strategy     config.Strategy
	numericTower bool
}

// Strategy reports the sampling policy the program was compiled under.
func (p *Program) Strategy() config.Strategy { return p.strategy }

// Execute runs the compiled check against a pith. randInt is the
// per-call random integer driving O(1) sampling; callers must generate
// it once per call and reuse the same value when diagnosing a failure,
// so checker and sleuth agree on the sampled elements. Under the O(n)
// strategy randInt is ignored.
func (p *Program) Execute(pith any, randInt uint64) bool {
	if p == nil || p.Root == nil {
		return true
	}
	return p.eval(p.Root, pith, randInt)
}

func (p *Program) eval(n *Node, pith any, randInt uint64) bool {
	switch n.Op {
	case OpTrue:
		return true

	case OpIsNil:
		return hint.IsNil(pith)

	case OpInstance:
		return hint.IsInstance(pith, n.Types[0], p.numericTower)

	case OpInstanceAny:
		return hint.IsInstanceAny(pith, n.Types, p.numericTower)

	case OpUnion:
		// Cheapest branch first: the flat instance test over the
		// shallow class partition short-circuits the deep checks.
		if n.AllowNil && hint.IsNil(pith) {
			return true
		}
		if len(n.Types) > 0 && hint.IsInstanceAny(pith, n.Types, p.numericTower) {
			return true
		}
		for _, child := range n.Children {
			if p.eval(child, pith, randInt) {
				return true
			}
		}
		return false

	case OpAll:
		for _, child := range n.Children {
			if !p.eval(child, pith, randInt) {
				return false
			}
		}
		return true

	case OpSequence, OpTupleVariadic:
		seq, ok := hint.IsSequence(pith, n.Origin)
		if !ok {
			return false
		}
		if seq.Len() == 0 || n.Children[0].Op == OpTrue {
			return true
		}
		if p.strategy == config.StrategyO1 {
			i := hint.SampleIndex(randInt, seq.Len())
			return p.eval(n.Children[0], seq.Index(i).Interface(), randInt)
		}
		for i := 0; i < seq.Len(); i++ {
			if !p.eval(n.Children[0], seq.Index(i).Interface(), randInt) {
				return false
			}
		}
		return true

	case OpTupleFixed:
		seq, ok := hint.IsSequence(pith, n.Origin)
		if !ok {
			return false
		}
		if seq.Len() != len(n.Children) {
			return false
		}
		for i, child := range n.Children {
			if child.Op == OpTrue {
				continue
			}
			if !p.eval(child, seq.Index(i).Interface(), randInt) {
				return false
			}
		}
		return true

	case OpMapping:
		m, ok := hint.IsMapping(pith, n.Origin)
		if !ok {
			return false
		}
		if m.Len() == 0 {
			return true
		}
		keyCheck, valCheck := n.Children[0], n.Children[1]
		if keyCheck.Op == OpTrue && valCheck.Op == OpTrue {
			return true
		}
		if p.strategy == config.StrategyO1 {
			k := hint.SampleKey(m, randInt)
			return p.evalPair(keyCheck, valCheck, k, m.MapIndex(k), randInt)
		}
		for _, k := range hint.SortedKeys(m) {
			if !p.evalPair(keyCheck, valCheck, k, m.MapIndex(k), randInt) {
				return false
			}
		}
		return true

	case OpLiteral:
		for _, lit := range n.Literals {
			if hint.EqualLiteral(pith, lit) {
				return true
			}
		}
		return false

	case OpSubtype:
		if len(n.Types) == 0 {
			// type[any]: any type value satisfies.
			_, isType := pith.(reflect.Type)
			return isType
		}
		return hint.IsSubtype(pith, n.Types[0])
	}
	return false
}

func (p *Program) evalPair(keyCheck, valCheck *Node, k, v reflect.Value, randInt uint64) bool {
	if keyCheck.Op != OpTrue && !p.eval(keyCheck, k.Interface(), randInt) {
		return false
	}
	if valCheck.Op != OpTrue && !p.eval(valCheck, v.Interface(), randInt) {
		return false
	}
	return true
}

// Source renders the program as one assembled boolean expression, the
// textual artifact the text-emitting ancestor of this compiler would
// have produced. The rendering is for inspection and tests; it is
// never evaluated. Sampled positions render as "[?]" under O(1) and
// "[*]" under O(n).
func (p *Program) Source() string {
	if p == nil || p.Root == nil {
		return "true"
	}
	var b strings.Builder
	p.renderNode(&b, p.Root)
	return b.String()
}

func (p *Program) renderNode(b *strings.Builder, n *Node) {
	indent := strings.Repeat("  ", n.Depth)
	expr := n.PithExpr
	if n.PithVar != "" {
		expr = fmt.Sprintf("(%s := %s)", n.PithVar, n.PithExpr)
	}

	switch n.Op {
	case OpTrue:
		b.WriteString("true")
	case OpIsNil:
		fmt.Fprintf(b, "%s is none", expr)
	case OpInstance:
		fmt.Fprintf(b, "isinstance(%s, %s)", expr, className(n.Types[0]))
	case OpInstanceAny:
		fmt.Fprintf(b, "isinstance(%s, %s)", expr, classTuple(n.Types))
	case OpUnion:
		b.WriteString("(")
		first := true
		if n.AllowNil {
			fmt.Fprintf(b, "%s is none", expr)
			first = false
		}
		if len(n.Types) > 0 {
			if !first {
				fmt.Fprintf(b, " or\n%s ", indent)
			}
			fmt.Fprintf(b, "isinstance(%s, %s)", n.varOr(n.PithExpr), classTuple(n.Types))
			first = false
		}
		for _, child := range n.Children {
			if !first {
				fmt.Fprintf(b, " or\n%s ", indent)
			}
			p.renderNode(b, child)
			first = false
		}
		b.WriteString(")")
	case OpAll:
		b.WriteString("(")
		for i, child := range n.Children {
			if i > 0 {
				fmt.Fprintf(b, " and\n%s ", indent)
			}
			p.renderNode(b, child)
		}
		b.WriteString(")")
	case OpSequence, OpTupleVariadic:
		fmt.Fprintf(b, "(issequence(%s, %s) and\n%s (len(%s) == 0 or ",
			expr, originName(n.Origin, "list"), indent, n.varOr(n.PithExpr))
		p.renderNode(b, n.Children[0])
		b.WriteString("))")
	case OpTupleFixed:
		fmt.Fprintf(b, "(issequence(%s, %s) and len(%s) == %d",
			expr, originName(n.Origin, "tuple"), n.varOr(n.PithExpr), len(n.Children))
		for _, child := range n.Children {
			if child.Op == OpTrue {
				continue
			}
			fmt.Fprintf(b, " and\n%s ", indent)
			p.renderNode(b, child)
		}
		b.WriteString(")")
	case OpMapping:
		fmt.Fprintf(b, "(ismapping(%s, %s) and\n%s (len(%s) == 0 or (",
			expr, originName(n.Origin, "dict"), indent, n.varOr(n.PithExpr))
		p.renderNode(b, n.Children[0])
		b.WriteString(" and ")
		p.renderNode(b, n.Children[1])
		b.WriteString(")))")
	case OpLiteral:
		fmt.Fprintf(b, "%s in %s", expr, hint.Literal{Values: n.Literals})
	case OpSubtype:
		if len(n.Types) == 0 {
			fmt.Fprintf(b, "istype(%s)", expr)
		} else {
			fmt.Fprintf(b, "issubclass(%s, %s)", expr, className(n.Types[0]))
		}
	}
}

// varOr returns the bound local name when the node has one, else the
// raw expression. Mirrors assignment-expression reuse: once a pith is
// bound, later references in the same check go through the local.
func (n *Node) varOr(expr string) string {
	if n.PithVar != "" {
		return n.PithVar
	}
	return expr
}

func className(t reflect.Type) string {
	return hint.Class{Type: t}.String()
}

func classTuple(types []reflect.Type) string {
	return hint.ClassTuple{Types: types}.String()
}

func originName(t reflect.Type, fallback string) string {
	if t == nil {
		return fallback
	}
	return t.String()
}
