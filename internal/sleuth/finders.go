package sleuth

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hintwire/hintcheck/internal/config"
	"github.com/hintwire/hintcheck/internal/hint"
	"github.com/hintwire/hintcheck/internal/hinterr"
	"github.com/hintwire/hintcheck/internal/render"
)

func findCauseIgnorable(c *ViolationCause) (*ViolationCause, error) {
	return c, nil
}

func findCauseNil(c *ViolationCause) (*ViolationCause, error) {
	if hint.IsNil(c.Pith) {
		return c, nil
	}
	return c.permute(func(n *ViolationCause) {
		n.Cause = "not none"
	}), nil
}

// findCauseInstance diagnoses plain classes and legacy class tuples.
// Single classes first consult the class's own explainer hook; a hook
// that returns an empty explanation has broken its contract and is
// reported loudly rather than papered over with the generic message.
func findCauseInstance(c *ViolationCause) (*ViolationCause, error) {
	var types []reflect.Type
	switch t := c.Hint.(type) {
	case hint.Class:
		types = []reflect.Type{t.Type}
	case hint.ClassTuple:
		types = t.Types
	default:
		return nil, hinterr.NewMalformedHintError(c.Hint.String(), "signless hint is neither a class nor a class tuple")
	}
	if hint.IsInstanceAny(c.Pith, types, c.Conf.NumericTower) {
		return c, nil
	}

	if len(types) == 1 {
		if ex, ok := hint.Explainer(types[0]); ok {
			msg := ex.ExplainInstanceFailure(c.Pith)
			if msg == "" {
				return nil, hinterr.NewExplainerContractError(
					c.Hint.String(), types[0].String(), "returned an empty explanation")
			}
			return c.permute(func(n *ViolationCause) {
				n.Cause = msg
			}), nil
		}
	}
	return c.permute(func(n *ViolationCause) {
		n.Cause = "not instance of " + c.Hint.String()
	}), nil
}

// findCauseUnion diagnoses a union the way the compiled check tests it:
// nil branch, then the flat shallow-class partition, then each deep
// member. Any satisfied branch satisfies the whole union; otherwise the
// cause enumerates every branch's failure, deep sub-causes indented one
// level below the union's own line.
func findCauseUnion(c *ViolationCause) (*ViolationCause, error) {
	u := c.Hint.(hint.Union)
	shallow, deep, allowsNil := hint.PartitionUnion(u.Members)

	if allowsNil && hint.IsNil(c.Pith) {
		return c, nil
	}
	if len(shallow) > 0 && hint.IsInstanceAny(c.Pith, shallow, c.Conf.NumericTower) {
		return c, nil
	}

	subIndent := c.Indent + "  "
	var lines []string
	if len(shallow) > 0 || allowsNil {
		names := make([]string, 0, len(shallow)+1)
		for _, t := range shallow {
			names = append(names, hint.Class{Type: t}.String())
		}
		if allowsNil {
			names = append(names, "none")
		}
		lines = append(lines, "not instance of "+strings.Join(names, " or "))
	}
	for _, member := range deep {
		sub, err := c.descendIndented(member, c.Pith, subIndent)
		if err != nil {
			return nil, err
		}
		if sub.Cause == "" {
			return c, nil
		}
		lines = append(lines, fmt.Sprintf("%s: %s", member, sub.Cause))
	}

	cause := lines[0]
	if len(lines) > 1 {
		var b strings.Builder
		b.WriteString("not any of:")
		for _, line := range lines {
			b.WriteString("\n")
			b.WriteString(subIndent)
			b.WriteString("* ")
			b.WriteString(line)
		}
		cause = b.String()
	}
	return c.permute(func(n *ViolationCause) {
		n.Cause = cause
	}), nil
}

// findCauseSequence diagnoses sequences and variadic tuples. Under the
// O(1) strategy the single item examined is the one the failed check
// sampled, re-derived from the cause's RandInt; under O(n) every item
// is examined and the first offender wins.
func findCauseSequence(c *ViolationCause) (*ViolationCause, error) {
	var (
		origin reflect.Type
		child  hint.Hint
		name   string
	)
	switch t := c.Hint.(type) {
	case hint.Sequence:
		origin, child = t.Origin, t.Child
		name = "list"
		if origin != nil {
			name = origin.String()
		}
	case hint.TupleVariadic:
		child = t.Child
		name = "tuple"
	default:
		return nil, hinterr.NewMalformedHintError(c.Hint.String(), "sequence finder dispatched on a non-sequence hint")
	}

	seq, ok := hint.IsSequence(c.Pith, origin)
	if !ok {
		return c.permute(func(n *ViolationCause) {
			n.Cause = "not instance of " + name
		}), nil
	}
	if seq.Len() == 0 {
		return c, nil
	}

	if c.Conf.Strategy == config.StrategyO1 {
		i := hint.SampleIndex(c.RandInt, seq.Len())
		item := seq.Index(i).Interface()
		return c.descend(child, item, itemPrefix(i, item), c.Bindings)
	}
	for i := 0; i < seq.Len(); i++ {
		item := seq.Index(i).Interface()
		found, err := c.descend(child, item, itemPrefix(i, item), c.Bindings)
		if err != nil {
			return nil, err
		}
		if found.Cause != "" {
			return found, nil
		}
	}
	return c, nil
}

// findCauseTupleFixed diagnoses exact-length tuples. Length mismatches
// report both lengths; item checks run positionally under either
// strategy, exactly as compiled.
func findCauseTupleFixed(c *ViolationCause) (*ViolationCause, error) {
	t := c.Hint.(hint.TupleFixed)

	seq, ok := hint.IsSequence(c.Pith, nil)
	if !ok {
		return c.permute(func(n *ViolationCause) {
			n.Cause = "not instance of tuple"
		}), nil
	}
	if seq.Len() != len(t.Items) {
		return c.permute(func(n *ViolationCause) {
			n.Cause = fmt.Sprintf("has %d items, not the required %d", seq.Len(), len(t.Items))
		}), nil
	}
	for i, itemHint := range t.Items {
		item := seq.Index(i).Interface()
		found, err := c.descend(itemHint, item, itemPrefix(i, item), c.Bindings)
		if err != nil {
			return nil, err
		}
		if found.Cause != "" {
			return found, nil
		}
	}
	return c, nil
}

// findCauseMapping diagnoses maps. Keys are visited in the same
// rendered-form order the compiled check samples from, so the O(1)
// diagnosis blames the identical pair the failed check examined. A
// failing key is blamed as "key K"; a failing value as "key K value".
func findCauseMapping(c *ViolationCause) (*ViolationCause, error) {
	t := c.Hint.(hint.Mapping)

	m, ok := hint.IsMapping(c.Pith, t.Origin)
	if !ok {
		name := "dict"
		if t.Origin != nil {
			name = t.Origin.String()
		}
		return c.permute(func(n *ViolationCause) {
			n.Cause = "not instance of " + name
		}), nil
	}
	if m.Len() == 0 {
		return c, nil
	}

	if c.Conf.Strategy == config.StrategyO1 {
		k := hint.SampleKey(m, c.RandInt)
		return c.examinePair(t, k, m.MapIndex(k))
	}
	for _, k := range hint.SortedKeys(m) {
		found, err := c.examinePair(t, k, m.MapIndex(k))
		if err != nil {
			return nil, err
		}
		if found.Cause != "" {
			return found, nil
		}
	}
	return c, nil
}

// itemPrefix names a failing sequence position: "index 2 item "x" ".
func itemPrefix(i int, item any) string {
	return fmt.Sprintf("index %d item %s ", i, render.Repr(item))
}

func (c *ViolationCause) examinePair(t hint.Mapping, k, v reflect.Value) (*ViolationCause, error) {
	keyRepr := render.Repr(k.Interface())
	found, err := c.descend(t.Key, k.Interface(), fmt.Sprintf("key %s ", keyRepr), c.Bindings)
	if err != nil {
		return nil, err
	}
	if found.Cause != "" {
		return found, nil
	}
	found, err = c.descend(t.Value, v.Interface(), fmt.Sprintf("key %s value %s ", keyRepr, render.Repr(v.Interface())), c.Bindings)
	if err != nil {
		return nil, err
	}
	if found.Cause != "" {
		return found, nil
	}
	return c, nil
}

// findCauseGeneric resolves the generic's parameter bindings from its
// subscription and examines each substituted base in turn; the first
// failing base is the cause, matching the conjunction the check
// compiles to.
func findCauseGeneric(c *ViolationCause) (*ViolationCause, error) {
	t := c.Hint.(hint.Generic)
	if len(t.Bases) == 0 {
		return c, nil
	}
	bindings := c.Bindings.With(t.Params, t.Args)
	for _, base := range t.Bases {
		found, err := c.descend(base, c.Pith, "", bindings)
		if err != nil {
			return nil, err
		}
		if found.Cause != "" {
			return found, nil
		}
	}
	return c, nil
}

func findCauseLiteral(c *ViolationCause) (*ViolationCause, error) {
	t := c.Hint.(hint.Literal)
	for _, lit := range t.Values {
		if hint.EqualLiteral(c.Pith, lit) {
			return c, nil
		}
	}
	return c.permute(func(n *ViolationCause) {
		n.Cause = "not one of " + t.String()
	}), nil
}

// findCauseSubtype diagnoses type[X]. The subscription must reduce to a
// plain class, with type[any] accepting any type pith at all.
func findCauseSubtype(c *ViolationCause) (*ViolationCause, error) {
	t := c.Hint.(hint.Subtype)

	sane, err := hint.Sanify(t.Of)
	if err != nil {
		return nil, err
	}
	pt, isType := c.Pith.(reflect.Type)
	if !isType {
		return c.permute(func(n *ViolationCause) {
			n.Cause = "not a class"
		}), nil
	}
	if sane == nil {
		return c, nil
	}
	cls, ok := sane.(hint.Class)
	if !ok {
		return nil, hinterr.NewMalformedHintError(t.String(), "subtype hints must be subscripted by a class")
	}
	if hint.IsSubtype(pt, cls.Type) {
		return c, nil
	}
	return c.permute(func(n *ViolationCause) {
		n.Cause = "not subclass of " + cls.String()
	}), nil
}
