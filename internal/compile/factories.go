package compile

import (
	"fmt"
	"reflect"

	"github.com/hintwire/hintcheck/internal/hint"
	"github.com/hintwire/hintcheck/internal/hinterr"
)

// factoryIgnorable handles signs that are always ignorable (bare any).
// Normally the sanifier filters these out before dispatch; the entry
// exists so the dispatch table stays total over supported signs.
func factoryIgnorable(c *compiler, m *hintMeta) (*Node, error) {
	return nil, nil
}

// factoryClass emits the bare instance test for plain classes and the
// flat multi-class test for legacy class tuples.
func factoryClass(c *compiler, m *hintMeta) (*Node, error) {
	switch t := m.hint.(type) {
	case hint.Class:
		c.capture("cls", t.Type)
		return &Node{
			Op:       OpInstance,
			Types:    []reflect.Type{t.Type},
			PithExpr: m.pithExpr,
			Depth:    m.depth,
		}, nil
	case hint.ClassTuple:
		c.capture("cls_tuple", t.Types)
		return &Node{
			Op:       OpInstanceAny,
			Types:    t.Types,
			PithExpr: m.pithExpr,
			Depth:    m.depth,
		}, nil
	}
	return nil, hinterr.NewMalformedHintError(m.hint.String(), "signless hint is neither a class nor a class tuple")
}

func factoryNone(c *compiler, m *hintMeta) (*Node, error) {
	return &Node{Op: OpIsNil, PithExpr: m.pithExpr, Depth: m.depth}, nil
}

// factoryUnion partitions a (already one-level-flattened) union into a
// shallow class tuple checked with one cheap instance test and deep
// members needing recursive checks, OR-joined after it.
func factoryUnion(c *compiler, m *hintMeta) (*Node, error) {
	u := m.hint.(hint.Union)
	shallow, deep, allowsNil := hint.PartitionUnion(u.Members)

	node := &Node{
		Op:       OpUnion,
		Types:    shallow,
		AllowNil: allowsNil,
		PithExpr: m.pithExpr,
		Depth:    m.depth,
	}
	if len(shallow) > 0 {
		c.capture("cls_tuple", shallow)
	}

	// Bind the pith once when the disjunction references it more than
	// once; deep branches then check the bound local.
	branches := len(deep)
	if allowsNil {
		branches++
	}
	if len(shallow) > 0 {
		branches++
	}
	childExpr := m.pithExpr
	if branches > 1 {
		node.PithVar = c.worklist.pithVarName(m.pithVarIndex)
		childExpr = node.PithVar
	}

	node.Children = make([]*Node, len(deep))
	for i, member := range deep {
		if err := c.enqueueChild(member, node, i, m.depth+1, m.pithVarIndex+1, childExpr, m.bindings); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// factorySequence emits the check for single-type-argument sequences
// and variadic tuples: an origin instance test, then one sampled item
// (O(1)) or every item (O(n)) checked against the child hint.
func factorySequence(c *compiler, m *hintMeta) (*Node, error) {
	var (
		op     Op
		origin reflect.Type
		child  hint.Hint
	)
	switch t := m.hint.(type) {
	case hint.Sequence:
		op, origin, child = OpSequence, t.Origin, t.Child
	case hint.TupleVariadic:
		op, origin, child = OpTupleVariadic, nil, t.Child
	default:
		return nil, hinterr.NewMalformedHintError(m.hint.String(), "sequence factory dispatched on a non-sequence hint")
	}
	if origin != nil {
		c.capture("origin", origin)
	}

	node := &Node{
		Op:       op,
		Origin:   origin,
		PithExpr: m.pithExpr,
		PithVar:  c.worklist.pithVarName(m.pithVarIndex),
		Depth:    m.depth,
		Children: make([]*Node, 1),
	}
	childExpr := fmt.Sprintf("%s[%s]", node.PithVar, c.idxToken())
	if err := c.enqueueChild(child, node, 0, m.depth+1, m.pithVarIndex+1, childExpr, m.bindings); err != nil {
		return nil, err
	}
	return node, nil
}

// factoryTupleFixed emits the exact-length positional check. The empty
// fixed tuple compiles to a length-zero requirement alone.
func factoryTupleFixed(c *compiler, m *hintMeta) (*Node, error) {
	t := m.hint.(hint.TupleFixed)

	node := &Node{
		Op:       OpTupleFixed,
		PithExpr: m.pithExpr,
		PithVar:  c.worklist.pithVarName(m.pithVarIndex),
		Depth:    m.depth,
		Children: make([]*Node, len(t.Items)),
	}
	for i, item := range t.Items {
		childExpr := fmt.Sprintf("%s[%d]", node.PithVar, i)
		if err := c.enqueueChild(item, node, i, m.depth+1, m.pithVarIndex+1, childExpr, m.bindings); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// factoryMapping emits the map check: origin test, emptiness
// short-circuit, then one sampled key/value pair (or all pairs),
// key and value independently skippable when ignorable.
func factoryMapping(c *compiler, m *hintMeta) (*Node, error) {
	t := m.hint.(hint.Mapping)
	if t.Origin != nil {
		c.capture("origin", t.Origin)
	}

	node := &Node{
		Op:       OpMapping,
		Origin:   t.Origin,
		PithExpr: m.pithExpr,
		PithVar:  c.worklist.pithVarName(m.pithVarIndex),
		Depth:    m.depth,
		Children: make([]*Node, 2),
	}
	keyExpr := fmt.Sprintf("%s.keys()[%s]", node.PithVar, c.idxToken())
	valExpr := fmt.Sprintf("%s[%s.keys()[%s]]", node.PithVar, node.PithVar, c.idxToken())
	if err := c.enqueueChild(t.Key, node, 0, m.depth+1, m.pithVarIndex+1, keyExpr, m.bindings); err != nil {
		return nil, err
	}
	if err := c.enqueueChild(t.Value, node, 1, m.depth+1, m.pithVarIndex+1, valExpr, m.bindings); err != nil {
		return nil, err
	}
	return node, nil
}

// factoryGeneric resolves the generic's own parameter bindings from
// its subscription, merges them into the bindings threaded to
// everything nested beneath, and conjoins the substituted base hints.
// Indirect parameter aliasing (a generic over T subclassing a generic
// over S with S bound back to T) terminates via the cycle detection in
// Bindings.Resolve and the compiler's reduction loop.
func factoryGeneric(c *compiler, m *hintMeta) (*Node, error) {
	t := m.hint.(hint.Generic)
	if len(t.Bases) == 0 {
		// A generic with no base structure constrains nothing beyond
		// its subscription, which has nowhere to apply.
		return nil, nil
	}
	c.capture("generic", t)

	bindings := m.bindings.With(t.Params, t.Args)
	node := &Node{
		Op:       OpAll,
		PithExpr: m.pithExpr,
		Depth:    m.depth,
		Children: make([]*Node, len(t.Bases)),
	}
	if len(t.Bases) > 1 {
		node.PithVar = c.worklist.pithVarName(m.pithVarIndex)
	}
	childExpr := node.varOr(m.pithExpr)
	for i, base := range t.Bases {
		if err := c.enqueueChild(base, node, i, m.depth+1, m.pithVarIndex+1, childExpr, bindings); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// factoryLiteral captures the raw literal values and emits the
// membership test.
func factoryLiteral(c *compiler, m *hintMeta) (*Node, error) {
	t := m.hint.(hint.Literal)
	c.capture("literals", t.Values)
	return &Node{
		Op:       OpLiteral,
		Literals: t.Values,
		PithExpr: m.pithExpr,
		Depth:    m.depth,
	}, nil
}

// factorySubtype emits the subclass test for type[X]. The subscripted
// hint must reduce to a plain class; type[any] accepts any type pith.
func factorySubtype(c *compiler, m *hintMeta) (*Node, error) {
	t := m.hint.(hint.Subtype)

	sane, err := hint.Sanify(t.Of)
	if err != nil {
		return nil, err
	}
	if sane == nil {
		// type[any]: the pith only has to be a type at all.
		return &Node{Op: OpSubtype, PithExpr: m.pithExpr, Depth: m.depth}, nil
	}
	cls, ok := sane.(hint.Class)
	if !ok {
		return nil, hinterr.NewMalformedHintError(t.String(), "subtype hints must be subscripted by a class")
	}
	c.capture("cls", cls.Type)
	return &Node{
		Op:       OpSubtype,
		Types:    []reflect.Type{cls.Type},
		PithExpr: m.pithExpr,
		Depth:    m.depth,
	}, nil
}
