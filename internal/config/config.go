// Package config holds the engine configuration shared by the checker
// compiler and the violation cause sleuth. A Config is immutable once
// handed to the engine; the same Config value must be used for
// compiling a checker and for diagnosing its failures, since the
// sampling strategy is semantically load-bearing (the sleuth must
// re-examine the same elements the checker sampled).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Strategy selects how much of a container a compiled check examines.
type Strategy int

const (
	// StrategyO1 samples exactly one pseudo-randomly chosen item per
	// container per call. Checking is an explicit sampling guarantee,
	// not a full invariant: O(1) may accept values O(n) would reject.
	StrategyO1 Strategy = iota

	// StrategyOn examines every item of every container.
	StrategyOn
)

func (s Strategy) String() string {
	switch s {
	case StrategyO1:
		return "O(1)"
	case StrategyOn:
		return "O(n)"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// DefaultDepthLimit caps hint nesting. Each nesting level consumes one
// slot from the fixed pith variable-name pool; a hint deeper than this
// fails compilation with a depth error rather than mis-checking.
const DefaultDepthLimit = 64

// Config carries the engine knobs.
type Config struct {
	// Strategy picks O(1) sampling or O(n) exhaustive checking.
	Strategy Strategy

	// NumericTower widens instance checks so integer piths satisfy
	// float class hints.
	NumericTower bool

	// DepthLimit lowers the depth ceiling when positive. Values above
	// DefaultDepthLimit are capped there: the ceiling exists because
	// the pith variable-name pool is fixed-size, so it cannot be
	// raised by configuration.
	DepthLimit int

	// Color forces colored diagnosis rendering on or off. Nil means
	// auto-detect from the output terminal.
	Color *bool
}

// Default returns the stock configuration: O(1) sampling, no numeric
// tower, default depth ceiling.
func Default() *Config {
	return &Config{Strategy: StrategyO1}
}

// EffectiveDepthLimit resolves the depth ceiling for this Config. The
// compiler and the sleuth both read the ceiling through this one
// function, so a check and its diagnosis always agree on it.
func (c *Config) EffectiveDepthLimit() int {
	if c != nil && c.DepthLimit > 0 && c.DepthLimit < DefaultDepthLimit {
		return c.DepthLimit
	}
	return DefaultDepthLimit
}

// fileConfig is the YAML shape of a hintcheck.yaml file.
type fileConfig struct {
	Strategy     string `yaml:"strategy,omitempty"`
	NumericTower bool   `yaml:"numeric_tower,omitempty"`
	DepthLimit   int    `yaml:"depth_limit,omitempty"`
	Color        *bool  `yaml:"color,omitempty"`
}

// Load reads a hintcheck.yaml configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses hintcheck.yaml content. The path argument is used only
// for error messages.
func Parse(data []byte, path string) (*Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg := Default()
	switch fc.Strategy {
	case "", "o1", "O1", "O(1)":
		cfg.Strategy = StrategyO1
	case "on", "On", "O(n)":
		cfg.Strategy = StrategyOn
	default:
		return nil, fmt.Errorf("parsing %s: unknown strategy %q (want \"o1\" or \"on\")", path, fc.Strategy)
	}
	cfg.NumericTower = fc.NumericTower
	if fc.DepthLimit < 0 {
		return nil, fmt.Errorf("parsing %s: depth_limit must be positive, got %d", path, fc.DepthLimit)
	}
	cfg.DepthLimit = fc.DepthLimit
	cfg.Color = fc.Color
	return cfg, nil
}
