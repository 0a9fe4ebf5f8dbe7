package hint

import "reflect"

// FlattenUnion splices the members of any child union directly into the
// parent's member list, then deduplicates by rendered form.
//
// Flattening is ONE level deep on purpose: unions nested two or more
// levels down (which only arise indirectly, through type-variable
// substitution) stay nested. The emitted disjunction is still correct,
// just not maximally flat. Deduplication by String() follows the same
// approach as union normalization in most structural type systems:
// cheap, deterministic, and adequate because rendering is injective
// over the hint kinds we admit into unions.
func FlattenUnion(members []Hint) []Hint {
	flat := make([]Hint, 0, len(members))
	for _, m := range members {
		if u, ok := m.(Union); ok {
			flat = append(flat, u.Members...)
		} else {
			flat = append(flat, m)
		}
	}

	seen := make(map[string]bool, len(flat))
	unique := flat[:0]
	for _, m := range flat {
		if m == nil {
			continue
		}
		key := m.String()
		if !seen[key] {
			seen[key] = true
			unique = append(unique, m)
		}
	}
	return unique
}

// PartitionUnion splits union members into plain isinstanceable classes
// (checkable with one multi-type instance test, emitted first because
// it is the cheapest) and deep hints needing recursive checks. Class
// tuples contribute their member types to the shallow side; None
// contributes a nil-check which callers handle via the returned flag.
//
// The split is recomputed per call on purpose. Rendered forms are a
// lossy cache key — two same-named type variables with different
// bounds render identically — and a memo keyed on one would hand a
// later compilation another hint's members.
func PartitionUnion(members []Hint) (shallow []reflect.Type, deep []Hint, allowsNil bool) {
	for _, m := range members {
		switch t := m.(type) {
		case Class:
			shallow = append(shallow, t.Type)
		case ClassTuple:
			shallow = append(shallow, t.Types...)
		case None:
			allowsNil = true
		default:
			deep = append(deep, m)
		}
	}
	return shallow, deep, allowsNil
}
