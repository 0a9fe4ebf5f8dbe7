package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hintwire/hintcheck/internal/config"
	"github.com/hintwire/hintcheck/internal/derive"
	"github.com/hintwire/hintcheck/internal/render"
	"github.com/hintwire/hintcheck/pkg/hintcheck"
)

const usage = `Usage: hintcheck -hint EXPR [options] [pith.yaml]
       hintcheck -proto FILE -message NAME [options] [pith.yaml]

Checks a YAML-encoded value against a type hint and explains the first
violation found.

Options:
  -hint EXPR      hint expression, e.g. "dict[str, list[int | none]]"
  -proto FILE     derive the hint from a .proto file instead
  -message NAME   fully-qualified message name within the proto file
  -config PATH    load a hintcheck.yaml configuration file
  -on             check every container item (default samples one)
  -name NAME      name for the checked value in diagnoses
  -help           show this help

The value is read from the file argument, or from stdin when piped.
`

type options struct {
	hintExpr string
	proto    string
	message  string
	confPath string
	exhaust  bool
	name     string
	pithFile string
}

func parseArgs(args []string) (*options, error) {
	opts := &options{name: "value"}
	for i := 1; i < len(args); i++ {
		arg := args[i]
		needsValue := func() (string, error) {
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s requires a value", arg)
			}
			i++
			return args[i], nil
		}

		var err error
		switch arg {
		case "-hint", "--hint":
			opts.hintExpr, err = needsValue()
		case "-proto", "--proto":
			opts.proto, err = needsValue()
		case "-message", "--message":
			opts.message, err = needsValue()
		case "-config", "--config":
			opts.confPath, err = needsValue()
		case "-name", "--name":
			opts.name, err = needsValue()
		case "-on", "--on":
			opts.exhaust = true
		case "-help", "--help", "help":
			fmt.Print(usage)
			os.Exit(0)
		default:
			if opts.pithFile != "" {
				return nil, fmt.Errorf("unexpected argument %q", arg)
			}
			opts.pithFile = arg
		}
		if err != nil {
			return nil, err
		}
	}

	if opts.hintExpr == "" && opts.proto == "" {
		return nil, errors.New("one of -hint or -proto is required")
	}
	if opts.proto != "" && opts.message == "" {
		return nil, errors.New("-proto requires -message")
	}
	return opts, nil
}

func loadConfig(opts *options) (*config.Config, error) {
	conf := config.Default()
	if opts.confPath != "" {
		loaded, err := config.Load(opts.confPath)
		if err != nil {
			return nil, err
		}
		conf = loaded
	}
	if opts.exhaust {
		conf.Strategy = config.StrategyOn
	}
	return conf, nil
}

func resolveHint(opts *options) (hintcheck.Hint, error) {
	if opts.hintExpr != "" {
		return hintcheck.ParseHint(opts.hintExpr)
	}
	if _, err := derive.LoadProtoFiles(nil, opts.proto); err != nil {
		return nil, err
	}
	return derive.HintFor(opts.message)
}

func readPith(opts *options) (any, error) {
	var data []byte
	var err error
	if opts.pithFile != "" {
		data, err = os.ReadFile(opts.pithFile)
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			return nil, errors.New("no value given: pass a file or pipe YAML to stdin")
		}
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return nil, fmt.Errorf("reading value: %w", err)
	}

	var pith any
	if err := yaml.Unmarshal(data, &pith); err != nil {
		return nil, fmt.Errorf("decoding value: %w", err)
	}
	return pith, nil
}

func run() int {
	opts, err := parseArgs(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n\n%s", err, usage)
		return 2
	}

	conf, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 2
	}
	palette := render.DetectPalette(conf.Color)

	h, err := resolveHint(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 2
	}

	pith, err := readPith(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 2
	}

	checker := hintcheck.New(conf)
	err = checker.CheckNamed(h, pith, opts.name)
	if err == nil {
		fmt.Printf("%s satisfies %s\n", opts.name, palette.Hint(h.String()))
		return 0
	}

	var violation *hintcheck.Violation
	if errors.As(err, &violation) {
		fmt.Fprintln(os.Stderr, palette.Fail(violation.Message))
		return 1
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	return 2
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	os.Exit(run())
}
