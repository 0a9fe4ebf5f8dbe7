package hint

// Bindings maps type-variable names to the hints an enclosing generic
// (or union context) bound them to. It is threaded through both
// traversal engines copy-on-write: With returns a fresh map, so hints
// nested under one binding site never observe a sibling's bindings.
type Bindings map[string]Hint

// With returns a new Bindings extending b with params[i] -> args[i].
// b itself is never mutated. Shorter of the two slices wins; arity
// mismatches are rejected earlier, by the sanifier.
func (b Bindings) With(params []string, args []Hint) Bindings {
	next := make(Bindings, len(b)+len(params))
	for k, v := range b {
		next[k] = v
	}
	n := len(params)
	if len(args) < n {
		n = len(args)
	}
	for i := 0; i < n; i++ {
		next[params[i]] = args[i]
	}
	return next
}

// Resolve follows the binding chain for a type-variable name until it
// reaches a non-typevar hint. Chains may alias indirectly (T bound to
// S, S bound back to T via nested subscription); a visited set breaks
// the cycle, returning the last variable reached so the caller can fall
// back to that variable's own bound or constraints.
func (b Bindings) Resolve(name string) (Hint, bool) {
	return b.resolve(name, make(map[string]bool))
}

func (b Bindings) resolve(name string, visited map[string]bool) (Hint, bool) {
	visited[name] = true

	h, ok := b[name]
	if !ok {
		return nil, false
	}
	tv, isVar := h.(TypeVar)
	if !isVar {
		return h, true
	}
	if visited[tv.Name] {
		// Alias cycle. Report no progress: the frame above surfaces
		// the last newly visited variable, the chain's endpoint.
		return nil, false
	}
	if deeper, found := b.resolve(tv.Name, visited); found {
		return deeper, true
	}
	// Chain dead-ends in an unbound or cyclic variable; surface the
	// endpoint so its Bound/Constraints can still apply.
	return tv, true
}
