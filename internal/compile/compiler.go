package compile

import (
	"fmt"

	"github.com/hintwire/hintcheck/internal/config"
	"github.com/hintwire/hintcheck/internal/hint"
	"github.com/hintwire/hintcheck/internal/hinterr"
)

// DefaultPithExpr is the root pith expression used when the caller
// does not name the parameter/return access expression being checked.
const DefaultPithExpr = "pith"

// compiler is the per-compilation state: the worklist, the captured
// scope under assembly, and the configuration. One compiler instance is
// built per Compile call and never shared, so factories may freely
// close over it; for the same reason nothing reached from here is
// memoized (a cached result would smuggle one call's pith expressions
// into another's program).
type compiler struct {
	conf     *config.Config
	worklist *hintsMeta
	scope    map[string]any
	scopeSeq int
}

// Compile builds a check program for a sanified-or-raw root hint.
//
// The returned program is nil (with a nil error) when the hint is
// wholly ignorable: no check is needed and callers should emit none.
// pithRootExpr names the expression the root check applies to (a
// parameter access, "return", ...) and defaults to DefaultPithExpr.
func Compile(root hint.Hint, conf *config.Config, pithRootExpr string) (*Program, error) {
	if conf == nil {
		conf = config.Default()
	}
	if pithRootExpr == "" {
		pithRootExpr = DefaultPithExpr
	}

	sane, err := hint.Sanify(root)
	if err != nil {
		return nil, err
	}
	if sane == nil {
		return nil, nil
	}

	// A root-level type variable has no enclosing generic, so it can
	// be reduced right here with empty bindings; an unbound one makes
	// the whole hint ignorable.
	if tv, isVar := sane.(hint.TypeVar); isVar {
		reduced, err := hint.ReduceTypeVar(tv, hint.Bindings{})
		if err != nil {
			return nil, err
		}
		if reduced == nil {
			return nil, nil
		}
		sane = reduced
	}

	c := &compiler{
		conf:  conf,
		scope: make(map[string]any),
	}
	c.worklist = newHintsMeta(conf.EffectiveDepthLimit(), sane.String())

	// The root's placeholder slot lives in a synthetic holder node.
	holder := &Node{Children: make([]*Node, 1)}
	if err := c.worklist.enqueue(sane, 0, 0, pithRootExpr, hint.Bindings{}, holder, 0); err != nil {
		return nil, err
	}

	for {
		m := c.worklist.pop()
		if m == nil {
			break
		}

		node, err := c.compileOne(m)
		if err != nil {
			return nil, err
		}
		if node == nil {
			// The whole subtree turned out ignorable.
			node = trueNode(m.depth, m.pithExpr)
		}
		m.parent.Children[m.childIndex] = node
		c.worklist.release(m)
	}

	return &Program{
		Root:         holder.Children[0],
		Scope:        c.scope,
		Hint:         sane.String(),
		strategy:     conf.Strategy,
		numericTower: conf.NumericTower,
	}, nil
}

// compileOne processes one worklist record: reduce type variables in
// place, then dispatch on sign to the per-kind factory.
func (c *compiler) compileOne(m *hintMeta) (*Node, error) {
	// Type variables never reach a factory: they reduce here, through
	// the shared reduction in the hint package, and reuse the record
	// (reinit) rather than growing the worklist — the common "typevar
	// is just an alias" case costs no allocation.
	if tv, isVar := m.hint.(hint.TypeVar); isVar {
		reduced, err := hint.ReduceTypeVar(tv, m.bindings)
		if err != nil {
			return nil, err
		}
		if reduced == nil {
			// Unbound, unconstrained or cyclically aliased: the
			// variable constrains nothing.
			return nil, nil
		}
		m.reinit(reduced)
	}

	sign := m.hint.Sign()
	f, ok := factories[sign]
	if !ok {
		return nil, hinterr.NewUnsupportedSignError(sign.String(), m.hint.String())
	}
	return f(c, m)
}

// enqueueChild sanifies a child hint and either records an ignorable
// placeholder immediately or enqueues it for code generation, wiring
// the placeholder slot the compiled child is later patched into.
func (c *compiler) enqueueChild(raw hint.Hint, parent *Node, childIndex int, depth, pithVarIndex int, pithExpr string, bindings hint.Bindings) error {
	sane, err := hint.Sanify(raw)
	if err != nil {
		return err
	}
	if sane == nil {
		parent.Children[childIndex] = trueNode(depth, pithExpr)
		return nil
	}
	return c.worklist.enqueue(sane, depth, pithVarIndex, pithExpr, bindings, parent, childIndex)
}

// capture adds an object to the program scope under a stable generated
// name and returns that name.
func (c *compiler) capture(prefix string, v any) string {
	name := fmt.Sprintf("%s_%d", prefix, c.scopeSeq)
	c.scopeSeq++
	c.scope[name] = v
	return name
}

// idxToken is the rendered placeholder for a container subscript:
// one sampled position under O(1), every position under O(n).
func (c *compiler) idxToken() string {
	if c.conf.Strategy == config.StrategyO1 {
		return "?"
	}
	return "*"
}

func trueNode(depth int, pithExpr string) *Node {
	return &Node{Op: OpTrue, Depth: depth, PithExpr: pithExpr}
}
