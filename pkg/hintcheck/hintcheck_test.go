package hintcheck

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/hintwire/hintcheck/internal/config"
)

func onChecker() *Checker {
	return New(&Config{Strategy: config.StrategyOn})
}

func TestCheckSatisfied(t *testing.T) {
	c := onChecker()
	if err := c.Check(List(Int()), []any{1, 2, 3}); err != nil {
		t.Errorf("satisfying pith must pass, got %v", err)
	}
	if err := c.Check(Optional(Str()), nil); err != nil {
		t.Errorf("nil must satisfy an optional hint, got %v", err)
	}
}

func TestCheckViolation(t *testing.T) {
	c := onChecker()
	err := c.Check(List(Int()), []any{1, 2, "x"})

	var v *Violation
	if !errors.As(err, &v) {
		t.Fatalf("expected *Violation, got %T: %v", err, err)
	}
	if v.Hint != "list[int]" {
		t.Errorf("violation hint = %q, want %q", v.Hint, "list[int]")
	}
	for _, want := range []string{"index 2 item", `"x"`, "not instance of int"} {
		if !strings.Contains(v.Message, want) {
			t.Errorf("violation message %q does not contain %q", v.Message, want)
		}
	}
}

func TestCheckExpr(t *testing.T) {
	c := onChecker()

	if err := c.CheckExpr("dict[str, int]", map[string]int{"a": 1}); err != nil {
		t.Errorf("satisfying pith must pass, got %v", err)
	}

	err := c.CheckExpr("dict[str, int]", map[string]any{"a": "x"})
	var v *Violation
	if !errors.As(err, &v) {
		t.Fatalf("expected *Violation, got %T: %v", err, err)
	}
	if !strings.Contains(v.Message, `key "a"`) {
		t.Errorf("violation message %q does not blame the key", v.Message)
	}
}

func TestCheckExprParseError(t *testing.T) {
	c := onChecker()
	err := c.CheckExpr("list[", 1)
	if err == nil {
		t.Fatalf("malformed expression must fail")
	}
	var v *Violation
	if errors.As(err, &v) {
		t.Errorf("parse failures are not violations, got %v", err)
	}
}

func TestCheckNamed(t *testing.T) {
	c := onChecker()
	err := c.CheckNamed(Int(), "x", "return")
	if err == nil || !strings.HasPrefix(err.Error(), "return ") {
		t.Errorf("diagnosis must carry the pith name, got %v", err)
	}
}

func TestProgramCache(t *testing.T) {
	c := onChecker()
	h := List(Int())

	p1, err := c.CompileHint(h)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	p2, err := c.CompileHint(List(Int()))
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if p1 != p2 {
		t.Errorf("equal hints must share one compiled program")
	}
}

func TestProgramCacheConcurrent(t *testing.T) {
	c := onChecker()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if err := c.Check(Dict(Str(), Int()), map[string]int{"a": j}); err != nil {
					t.Errorf("concurrent check failed: %v", err)
				}
			}
		}()
	}
	wg.Wait()
}

func TestIgnorableHint(t *testing.T) {
	c := onChecker()
	h, err := ParseHint("any")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if err := c.Check(h, struct{}{}); err != nil {
		t.Errorf("any accepts everything, got %v", err)
	}
}

func TestCheckerIdentity(t *testing.T) {
	a, b := New(nil), New(nil)
	if a.ID() == b.ID() {
		t.Errorf("two checkers must not share an identity")
	}
}

func TestO1CheckerEventuallyCatches(t *testing.T) {
	// Under O(1) sampling a bad element is caught with probability
	// proportional to its share of the container; over many calls the
	// two-element container with one bad item fails at least once.
	c := New(nil)
	h := List(Int())

	caught := false
	for i := 0; i < 200 && !caught; i++ {
		if err := c.Check(h, []any{1, "x"}); err != nil {
			var v *Violation
			if !errors.As(err, &v) {
				t.Fatalf("expected *Violation, got %T: %v", err, err)
			}
			caught = true
		}
	}
	if !caught {
		t.Errorf("O(1) sampling failed to catch a 50%% violation in 200 calls")
	}
}

func TestPackageLevelCheck(t *testing.T) {
	if err := Check(Int(), 1); err != nil {
		t.Errorf("package-level check must pass, got %v", err)
	}
	if err := CheckExpr("str", 1); err == nil {
		t.Errorf("package-level check must fail for a wrong class")
	}
}
