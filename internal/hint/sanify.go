package hint

import (
	"fmt"

	"github.com/hintwire/hintcheck/internal/hinterr"
)

// Sanify normalizes one hint node into the canonical form the compiler
// and the sleuth dispatch on, or returns nil when the hint is wholly
// ignorable (equivalent to "no constraint"). It is shallow: both
// traversal engines re-sanify each child as they descend, so nothing
// here recurses.
//
// Structural problems (a mapping without both children, an empty
// literal, a generic whose subscription does not match its parameters)
// are rejected here, before any check is assembled for the subtree.
func Sanify(h Hint) (Hint, error) {
	if Ignorable(h) {
		return nil, nil
	}

	switch t := h.(type) {
	case Class:
		if t.Type == nil {
			return nil, hinterr.NewMalformedHintError("<class>", "class hint carries no type")
		}
		return t, nil

	case ClassTuple:
		if len(t.Types) == 0 {
			return nil, hinterr.NewMalformedHintError(t.String(), "class tuple is empty")
		}
		for _, typ := range t.Types {
			if typ == nil {
				return nil, hinterr.NewMalformedHintError(t.String(), "class tuple contains a nil type")
			}
		}
		if len(t.Types) == 1 {
			return Class{Type: t.Types[0]}, nil
		}
		return t, nil

	case Union:
		return sanifyUnion(t)

	case Sequence:
		// A sequence with an ignorable child degrades to the bare
		// origin instance test; keep the node, the compiler skips the
		// item check (ignorability propagation).
		return t, nil

	case TupleVariadic:
		return t, nil

	case TupleFixed:
		return t, nil

	case Mapping:
		if t.Key == nil && t.Value == nil {
			return nil, hinterr.NewMalformedHintError(t.String(), "mapping hint must be subscripted by a key and a value hint")
		}
		return t, nil

	case Literal:
		if len(t.Values) == 0 {
			return nil, hinterr.NewMalformedHintError(t.String(), "literal hint has no values")
		}
		for _, v := range t.Values {
			if _, isHint := v.(Hint); isHint {
				return nil, hinterr.NewMalformedHintError(t.String(), "literal arguments are raw values, never nested hints")
			}
		}
		return t, nil

	case Generic:
		if len(t.Params) != len(t.Args) {
			return nil, hinterr.NewMalformedHintError(t.String(),
				fmt.Sprintf("generic %s declares %d parameter(s) but is subscripted by %d argument(s)",
					t.Name, len(t.Params), len(t.Args)))
		}
		return t, nil

	case Subtype:
		if t.Of == nil {
			return nil, hinterr.NewMalformedHintError(t.String(), "subtype hint must be subscripted by a class")
		}
		return t, nil

	case None, TypeVar:
		return t, nil
	}

	return h, nil
}

func sanifyUnion(u Union) (Hint, error) {
	members := FlattenUnion(u.Members)

	kept := members[:0]
	for _, m := range members {
		if Ignorable(m) {
			// Union[X, any] accepts everything: the whole union is
			// ignorable.
			return nil, nil
		}
		kept = append(kept, m)
	}

	switch len(kept) {
	case 0:
		return nil, hinterr.NewMalformedHintError(u.String(), "union has no members")
	case 1:
		return Sanify(kept[0])
	}
	return Union{Members: kept}, nil
}
