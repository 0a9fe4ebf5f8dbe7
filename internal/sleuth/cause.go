// Package sleuth locates and explains type-hint violations. It mirrors
// the checker compiler's sign dispatch in an interpretive style:
// instead of emitting check nodes, each step directly evaluates the
// concrete pith against the concrete child hint and, on failure,
// produces a human-readable breadcrumb pointing at the exact failing
// subexpression.
//
// The invariant shared with the compiler is first-cause-wins: the first
// non-empty explanation found along any traversal path is final; no
// sibling or later check overrides it.
package sleuth

import (
	"fmt"

	"github.com/hintwire/hintcheck/internal/config"
	"github.com/hintwire/hintcheck/internal/hint"
	"github.com/hintwire/hintcheck/internal/hinterr"
	"github.com/hintwire/hintcheck/internal/render"
)

// ViolationCause is the sleuth's traversal record, the diagnostic
// analogue of the compiler's hint metadata. Recursive steps never
// mutate a cause in place: they work on shallow-copied permutations,
// so sibling branches (union members, tuple positions) each see an
// unmodified parent context.
type ViolationCause struct {
	// Hint is the current, already-sanified subhint; nil means
	// ignorable, which is trivially satisfied.
	Hint hint.Hint

	// Pith is the runtime value under examination at this node.
	Pith any

	// PithName names the value being diagnosed ("xs", "return"). Only
	// meaningful at the root.
	PithName string

	// Bindings carries the type-variable bindings accumulated by
	// enclosing generics.
	Bindings hint.Bindings

	// RandInt is the per-call random integer the failed check was
	// executed with. Sampling re-derives the identical index/key from
	// it, so the diagnosis blames the element the check examined.
	RandInt uint64

	Conf   *config.Config
	Prefix string // exception-message prefix, carried for hook errors

	// Indent is the current indentation for nested cause listings
	// (union branches render their sub-causes one level deeper).
	Indent string

	// Cause is the accumulated explanation. Empty means "this node and
	// everything checked so far is satisfied".
	Cause string

	depth int
}

// permute returns a shallow copy of the cause with the given override
// applied. The receiver is never modified.
func (c *ViolationCause) permute(override func(*ViolationCause)) *ViolationCause {
	next := *c
	next.Cause = ""
	override(&next)
	return &next
}

// finder is the per-kind cause-finder contract, mirroring the
// compiler's factory table.
type finder func(c *ViolationCause) (*ViolationCause, error)

// finders is populated in init: the container finders recurse back
// through FindCause, so a composite-literal initializer would be
// self-referential at package initialization.
var finders map[hint.Sign]finder

func init() {
	finders = map[hint.Sign]finder{
		hint.SignNone:          findCauseInstance,
		hint.SignAny:           findCauseIgnorable,
		hint.SignNoneType:      findCauseNil,
		hint.SignUnion:         findCauseUnion,
		hint.SignSequence:      findCauseSequence,
		hint.SignTupleFixed:    findCauseTupleFixed,
		hint.SignTupleVariadic: findCauseSequence,
		hint.SignMapping:       findCauseMapping,
		hint.SignGeneric:       findCauseGeneric,
		hint.SignLiteral:       findCauseLiteral,
		hint.SignSubtype:       findCauseSubtype,
	}
}

// FindCause determines whether the cause's pith satisfies its hint
// and, if not, which subpart of the hint is the proximate cause,
// returning a permutation carrying the explanation. A returned cause
// with an empty Cause means satisfied.
func FindCause(c *ViolationCause) (*ViolationCause, error) {
	if c.Hint == nil {
		return c, nil
	}
	if c.depth >= c.Conf.EffectiveDepthLimit() {
		return nil, hinterr.NewDepthExceededError(c.Hint.String(), c.Conf.EffectiveDepthLimit())
	}

	// Type variables reduce exactly as in the compiler, through the
	// shared reduction, so both engines agree on what a variable means.
	if tv, isVar := c.Hint.(hint.TypeVar); isVar {
		reduced, err := hint.ReduceTypeVar(tv, c.Bindings)
		if err != nil {
			return nil, err
		}
		if reduced == nil {
			return c.permute(func(n *ViolationCause) {}), nil
		}
		c = c.permute(func(n *ViolationCause) { n.Hint = reduced })
	}

	f, ok := finders[c.Hint.Sign()]
	if !ok {
		return nil, hinterr.NewUnsupportedSignError(c.Hint.Sign().String(), c.Hint.String())
	}
	return f(c)
}

// Diagnose is the sleuth's public entry point: given the root hint and
// a pith the compiled check rejected, it returns the full explanation,
// or "" if on re-examination the pith actually satisfies the hint — a
// defensive consistency signal callers should treat as "should not
// happen".
func Diagnose(root hint.Hint, pith any, pithName string, conf *config.Config, randInt uint64, prefix string) (string, error) {
	if conf == nil {
		conf = config.Default()
	}
	sane, err := hint.Sanify(root)
	if err != nil {
		return "", err
	}
	if sane == nil {
		return "", nil
	}

	cause := &ViolationCause{
		Hint:     sane,
		Pith:     pith,
		PithName: pithName,
		Bindings: hint.Bindings{},
		RandInt:  randInt,
		Conf:     conf,
		Prefix:   prefix,
	}
	found, err := FindCause(cause)
	if err != nil {
		return "", err
	}
	if found.Cause == "" {
		return "", nil
	}

	name := pithName
	if name == "" {
		name = "value"
	}
	return fmt.Sprintf("%s%s %s violates %s, as %s",
		prefix, name, render.Repr(pith), sane, found.Cause), nil
}

// descend recursively finds the cause for a child hint against a child
// pith, sanifying the child first. The childPrefix is prepended to any
// explanation found, building the root-to-leaf breadcrumb as the
// search unwinds.
func (c *ViolationCause) descend(child hint.Hint, childPith any, childPrefix string, bindings hint.Bindings) (*ViolationCause, error) {
	sane, err := hint.Sanify(child)
	if err != nil {
		return nil, err
	}
	next := c.permute(func(n *ViolationCause) {
		n.Hint = sane
		n.Pith = childPith
		n.Bindings = bindings
		n.depth = c.depth + 1
	})
	found, err := FindCause(next)
	if err != nil {
		return nil, err
	}
	if found.Cause != "" {
		found = found.permute(func(n *ViolationCause) {
			n.Cause = childPrefix + found.Cause
		})
	}
	return found, nil
}

// descendIndented is descend for union branches: the child sees the
// same pith under a deeper indent, so any multi-line sub-cause it
// produces nests below the union's own listing.
func (c *ViolationCause) descendIndented(child hint.Hint, childPith any, indent string) (*ViolationCause, error) {
	sane, err := hint.Sanify(child)
	if err != nil {
		return nil, err
	}
	next := c.permute(func(n *ViolationCause) {
		n.Hint = sane
		n.Pith = childPith
		n.Indent = indent
		n.depth = c.depth + 1
	})
	return FindCause(next)
}
