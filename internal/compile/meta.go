package compile

import (
	"fmt"

	"github.com/hintwire/hintcheck/internal/config"
	"github.com/hintwire/hintcheck/internal/hint"
	"github.com/hintwire/hintcheck/internal/hinterr"
)

// pithVarNames is the fixed, pre-sized pool of local variable names,
// indexed by nesting depth. Each level that needs to bind its pith to a
// local consumes the slot for its depth; hints nested beyond the pool
// fail compilation with a depth error instead of silently producing an
// invalid program.
var pithVarNames = func() [config.DefaultDepthLimit]string {
	var names [config.DefaultDepthLimit]string
	for i := range names {
		names[i] = fmt.Sprintf("pith_%d", i)
	}
	return names
}()

// hintMeta is the per-node traversal record: one hint discovered but
// not yet compiled, plus everything the factory for its sign needs.
// Records are owned exclusively by the worklist; they are pooled per
// compilation and reused, never aliased outside the compiler.
type hintMeta struct {
	hint         hint.Hint // already sanified
	depth        int
	pithExpr     string
	pithVarIndex int
	bindings     hint.Bindings

	// parent/childIndex locate the placeholder slot the compiled node
	// is patched into. A nil parent marks the root record.
	parent     *Node
	childIndex int
}

// reinit replaces the record's hint in place. Used when a type variable
// reduces to its binding: the common "typevar is just an alias" case
// loops on the same record instead of growing the worklist.
func (m *hintMeta) reinit(h hint.Hint) {
	m.hint = h
}

// hintsMeta is the worklist: a FIFO queue of hintMeta records driving
// the breadth-first traversal, with a freelist so records released
// after compilation are reused by later enqueues. The pool is owned by
// one compilation and never shared, so no synchronization is needed.
type hintsMeta struct {
	queue      []*hintMeta
	head       int
	free       []*hintMeta
	depthLimit int
	rootHint   string // rendered root, for depth-error messages
}

func newHintsMeta(depthLimit int, rootHint string) *hintsMeta {
	if depthLimit > config.DefaultDepthLimit {
		depthLimit = config.DefaultDepthLimit
	}
	return &hintsMeta{depthLimit: depthLimit, rootHint: rootHint}
}

// enqueue acquires a record (from the freelist when possible), fills
// it, and appends it to the queue. The (parent, childIndex) pair is the
// placeholder: the compiler patches parent.Children[childIndex] once
// the child's check node is generated.
func (w *hintsMeta) enqueue(h hint.Hint, depth, pithVarIndex int, pithExpr string, bindings hint.Bindings, parent *Node, childIndex int) error {
	if depth >= w.depthLimit {
		return hinterr.NewDepthExceededError(w.rootHint, w.depthLimit)
	}

	var m *hintMeta
	if n := len(w.free); n > 0 {
		m = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		m = &hintMeta{}
	}
	m.hint = h
	m.depth = depth
	m.pithExpr = pithExpr
	m.pithVarIndex = pithVarIndex
	m.bindings = bindings
	m.parent = parent
	m.childIndex = childIndex

	w.queue = append(w.queue, m)
	return nil
}

// pop removes the oldest-enqueued record, keeping the traversal
// breadth-first. Processing order only affects program layout, never
// the checked semantics: sibling conditions combine with associative,
// commutative operators.
func (w *hintsMeta) pop() *hintMeta {
	if w.head >= len(w.queue) {
		return nil
	}
	m := w.queue[w.head]
	w.queue[w.head] = nil
	w.head++
	return m
}

// release returns a consumed record to the freelist.
func (w *hintsMeta) release(m *hintMeta) {
	m.hint = nil
	m.bindings = nil
	m.parent = nil
	w.free = append(w.free, m)
}

// pithVarName resolves the pooled local name for a variable index.
func (w *hintsMeta) pithVarName(index int) string {
	return pithVarNames[index%len(pithVarNames)]
}
