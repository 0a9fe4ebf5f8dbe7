// Package render formats piths and diagnosis text for humans. Library
// code builds plain strings; color is applied only at the outermost
// presentation layer, gated on the output actually being a terminal.
package render

import (
	"fmt"
	"os"
	"reflect"

	"github.com/mattn/go-isatty"
)

// maxReprLen bounds rendered pith representations so a diagnosis never
// drowns its message in a huge container dump.
const maxReprLen = 64

// Repr renders a pith for inclusion in a diagnosis. Strings are
// quoted, types render by name, nil renders as "none", and anything
// long is truncated with an ellipsis.
func Repr(v any) string {
	if v == nil {
		return "none"
	}
	var s string
	switch t := v.(type) {
	case string:
		s = fmt.Sprintf("%q", t)
	case reflect.Type:
		s = fmt.Sprintf("<class %s>", t)
	default:
		s = fmt.Sprintf("%v", v)
	}
	return Truncate(s, maxReprLen)
}

// Truncate shortens s to at most max runes, appending an ellipsis when
// anything was cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// ANSI escape fragments used by Palette.
const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiRed   = "\x1b[31m"
	ansiCyan  = "\x1b[36m"
)

// Palette wraps text in ANSI color when enabled and passes it through
// untouched when not.
type Palette struct {
	Enabled bool
}

// DetectPalette decides color from an explicit override (config), else
// from whether stdout is a terminal.
func DetectPalette(force *bool) Palette {
	if force != nil {
		return Palette{Enabled: *force}
	}
	enabled := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return Palette{Enabled: enabled}
}

func (p Palette) wrap(code, s string) string {
	if !p.Enabled || s == "" {
		return s
	}
	return code + s + ansiReset
}

// Fail colors the violating fragment of a diagnosis.
func (p Palette) Fail(s string) string { return p.wrap(ansiRed, s) }

// Hint colors a rendered hint expression.
func (p Palette) Hint(s string) string { return p.wrap(ansiCyan, s) }

// Head colors a message heading.
func (p Palette) Head(s string) string { return p.wrap(ansiBold, s) }
