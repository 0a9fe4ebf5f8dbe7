// Package hintcheck is the public surface of the runtime type-checking
// engine: parse a hint expression (or build a hint tree directly),
// compile it once into a check program, then check values against it
// on every call, with a readable diagnosis on failure.
package hintcheck

import (
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/hintwire/hintcheck/internal/compile"
	"github.com/hintwire/hintcheck/internal/config"
	"github.com/hintwire/hintcheck/internal/hint"
	"github.com/hintwire/hintcheck/internal/parser"
	"github.com/hintwire/hintcheck/internal/render"
	"github.com/hintwire/hintcheck/internal/sleuth"
)

// Re-exported so callers build hint trees and configurations without
// importing internal packages.
type (
	Hint    = hint.Hint
	Config  = config.Config
	Program = compile.Program
)

// Convenience hint constructors.
var (
	Int      = hint.Int
	Float    = hint.Float
	Str      = hint.Str
	Bool     = hint.Bool
	List     = hint.List
	Dict     = hint.Dict
	Optional = hint.Optional
)

// DefaultConfig returns the stock configuration: O(1) sampling.
func DefaultConfig() *Config { return config.Default() }

// ParseHint parses a hint expression such as
// "dict[str, list[int | none]]" into a hint tree.
func ParseHint(expr string) (Hint, error) {
	return parser.Parse(expr)
}

// Violation is the error a failed check resolves to. Message carries
// the full root-to-leaf diagnosis.
type Violation struct {
	Hint    string // rendered hint the pith violated
	Pith    any    // the offending root value
	Message string
}

func (v *Violation) Error() string { return v.Message }

// Checker compiles hints on first use and caches the programs. A
// Checker is safe for concurrent use; every successful compilation is
// reused by all goroutines checking the same hint.
type Checker struct {
	id   uuid.UUID
	conf *config.Config

	// programs memoizes hint -> compiled program. Compilation is pure
	// with respect to (hint, conf), which is the condition for caching
	// it; per-call state (the random integer) never enters the cache.
	programs sync.Map // string -> *compile.Program
}

func New(conf *config.Config) *Checker {
	if conf == nil {
		conf = config.Default()
	}
	return &Checker{id: uuid.New(), conf: conf}
}

// ID returns the checker's unique identity, for logs and registries.
func (c *Checker) ID() uuid.UUID { return c.id }

// CompileHint returns the compiled program for a hint, compiling on
// first use. A nil program (with nil error) means the hint is wholly
// ignorable and every pith satisfies it.
func (c *Checker) CompileHint(h Hint) (*Program, error) {
	if h == nil {
		return nil, nil
	}
	key := h.String()
	if cached, ok := c.programs.Load(key); ok {
		return cached.(*Program), nil
	}
	p, err := compile.Compile(h, c.conf, "")
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	actual, _ := c.programs.LoadOrStore(key, p)
	return actual.(*Program), nil
}

// Check checks a pith against a hint. It returns nil when satisfied
// and a *Violation when not; other error types indicate a problem with
// the hint itself, not the pith.
func (c *Checker) Check(h Hint, pith any) error {
	return c.CheckNamed(h, pith, "value")
}

// CheckNamed is Check with a caller-supplied name for the pith,
// carried into the diagnosis ("xs", "return", a parameter name).
func (c *Checker) CheckNamed(h Hint, pith any, name string) error {
	p, err := c.CompileHint(h)
	if err != nil {
		return err
	}
	if p == nil {
		return nil
	}

	// One random integer per call: it drives every sampled container
	// access in the check, and on failure the sleuth re-derives the
	// identical samples from it.
	randInt := rand.Uint64()
	if p.Execute(pith, randInt) {
		return nil
	}

	msg, err := sleuth.Diagnose(h, pith, name, c.conf, randInt, "")
	if err != nil {
		return err
	}
	if msg == "" {
		// The sampled re-examination disagrees with the failed check;
		// surface a generic violation rather than silence.
		msg = name + " " + render.Repr(pith) + " violates " + p.Hint
	}
	return &Violation{Hint: p.Hint, Pith: pith, Message: msg}
}

// CheckExpr parses a hint expression and checks the pith against it.
func (c *Checker) CheckExpr(expr string, pith any) error {
	h, err := ParseHint(expr)
	if err != nil {
		return err
	}
	return c.CheckNamed(h, pith, "value")
}

// Check is the package-level one-shot: stock configuration, no program
// reuse across calls beyond the shared default checker.
func Check(h Hint, pith any) error {
	return defaultChecker.Check(h, pith)
}

// CheckExpr is the package-level one-shot for hint expressions.
func CheckExpr(expr string, pith any) error {
	return defaultChecker.CheckExpr(expr, pith)
}

var defaultChecker = New(nil)
