package hint

// ReduceTypeVar resolves a type variable to the concrete, sanified hint
// it stands for: first through the threaded bindings, else through the
// variable's own bound, else through its constraints (which unify into
// an open union). The result is never a type variable. A nil result
// means the variable constrains nothing — it is unbound, or its alias
// chain cycles (T bound to S, S bound back to T), which pins no
// concrete hint and is short-circuited rather than recursed into.
//
// Both traversal engines reduce through this one function, so the
// compiler and the cause sleuth always agree on what a variable means.
func ReduceTypeVar(tv TypeVar, b Bindings) (Hint, error) {
	seen := map[string]bool{}
	current := Hint(tv)

	for {
		v, isVar := current.(TypeVar)
		if !isVar {
			return Sanify(current)
		}
		if seen[v.Name] {
			return nil, nil
		}
		seen[v.Name] = true

		var next Hint
		if resolved, ok := b.Resolve(v.Name); ok {
			next = resolved
		} else if v.Bound != nil {
			next = v.Bound
		} else if len(v.Constraints) > 0 {
			next = Union{Members: v.Constraints}
		} else {
			return nil, nil
		}

		// Resolution that hands back the same variable, or one this
		// reduction already walked, cannot make progress through
		// bindings; fall through to the variable's own bound or
		// constraints instead.
		if nextVar, stillVar := next.(TypeVar); stillVar && (nextVar.Name == v.Name || seen[nextVar.Name]) {
			if v.Bound != nil {
				next = v.Bound
			} else if len(v.Constraints) > 0 {
				next = Union{Members: v.Constraints}
			} else {
				return nil, nil
			}
		}
		current = next
	}
}
