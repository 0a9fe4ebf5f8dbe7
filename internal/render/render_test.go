package render

import (
	"strings"
	"testing"
)

func TestRepr(t *testing.T) {
	tests := []struct {
		name string
		pith any
		want string
	}{
		{"nil", nil, "none"},
		{"string quoted", "abc", `"abc"`},
		{"int", 42, "42"},
		{"float", 3.14, "3.14"},
		{"slice", []any{1, 2}, "[1 2]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Repr(tt.pith); got != tt.want {
				t.Errorf("Repr(%v) = %q, want %q", tt.pith, got, tt.want)
			}
		})
	}
}

func TestReprTruncates(t *testing.T) {
	long := strings.Repeat("x", 200)
	got := Repr(long)
	if len(got) > maxReprLen+8 {
		t.Errorf("Repr did not truncate: %d chars", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated repr must end in ellipsis: %q", got)
	}
}

func TestPalette(t *testing.T) {
	off := Palette{}
	if off.Fail("boom") != "boom" {
		t.Errorf("disabled palette must pass text through")
	}

	on := Palette{Enabled: true}
	colored := on.Fail("boom")
	if !strings.Contains(colored, "boom") || colored == "boom" {
		t.Errorf("enabled palette must wrap text, got %q", colored)
	}
	if on.Fail("") != "" {
		t.Errorf("empty text stays empty even when colored")
	}
}

func TestDetectPaletteOverride(t *testing.T) {
	forceOn := true
	if !DetectPalette(&forceOn).Enabled {
		t.Errorf("explicit true must enable color")
	}
	forceOff := false
	if DetectPalette(&forceOff).Enabled {
		t.Errorf("explicit false must disable color")
	}
}
