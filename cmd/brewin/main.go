package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"brewin/interpreter-go/pkg/ast"
	"brewin/interpreter-go/pkg/driver"
	"brewin/interpreter-go/pkg/interpreter"
)

const cliToolVersion = "brewin-cli 0.0.0-dev"

// traceVerbosity is the commonlog verbosity that emits debug records.
const traceVerbosity = 2

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runProgram(args[1:])
	case "test":
		return runTests(args[1:])
	case "pack":
		return runPack(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		printUsage()
		return 1
	}
}

// cliOptions collects the flags shared by run and test.
type cliOptions struct {
	verbosity   int
	trace       bool
	ref         string
	parallelism int
	positional  []string
}

func parseOptions(args []string, cfg *driver.Config) (*cliOptions, error) {
	opts := &cliOptions{
		verbosity:   cfg.LogVerbosity,
		trace:       cfg.Trace,
		parallelism: cfg.Parallelism,
	}
	for idx := 0; idx < len(args); idx++ {
		arg := args[idx]
		switch {
		case arg == "--trace":
			opts.trace = true
		case arg == "-v" || arg == "-vv" || arg == "-vvv":
			opts.verbosity += len(arg) - 1
		case arg == "--ref" || arg == "--parallel":
			if idx+1 >= len(args) {
				return nil, fmt.Errorf("%s requires a value", arg)
			}
			idx++
			if arg == "--ref" {
				opts.ref = args[idx]
				continue
			}
			n, err := strconv.Atoi(args[idx])
			if err != nil || n < 1 {
				return nil, fmt.Errorf("--parallel expects a positive integer (received %q)", args[idx])
			}
			opts.parallelism = n
		case strings.HasPrefix(arg, "-") && arg != "-":
			return nil, fmt.Errorf("unknown flag %s", arg)
		default:
			opts.positional = append(opts.positional, arg)
		}
	}
	if opts.trace && opts.verbosity < traceVerbosity {
		opts.verbosity = traceVerbosity
	}
	return opts, nil
}

func prepare(args []string, command string) (*cliOptions, *driver.Config, bool) {
	cfg, err := driver.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", driver.ConfigFileName, err)
		return nil, nil, false
	}
	opts, err := parseOptions(args, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "brewin %s: %v\n", command, err)
		return nil, nil, false
	}
	if len(opts.positional) != 1 {
		fmt.Fprintf(os.Stderr, "brewin %s requires exactly one target\n", command)
		return nil, nil, false
	}
	commonlog.Configure(opts.verbosity, nil)
	return opts, cfg, true
}

func runProgram(args []string) int {
	opts, _, ok := prepare(args, "run")
	if !ok {
		return 1
	}
	program, err := ast.LoadFile(opts.positional[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load program: %v\n", err)
		return 1
	}
	interp := interpreter.New(interpreter.Options{
		Host:  interpreter.NewConsoleHost(os.Stdin, os.Stdout),
		Trace: opts.trace,
	})
	if err := interp.Run(program); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runTests(args []string) int {
	opts, cfg, ok := prepare(args, "test")
	if !ok {
		return 1
	}
	ctx := context.Background()
	target := opts.positional[0]
	if driver.IsGitURL(target) || opts.ref != "" {
		dir, err := driver.FetchSuite(ctx, target, opts.ref, cfg.CacheDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to fetch suite: %v\n", err)
			return 1
		}
		target = dir
	}
	suite, err := driver.LoadSuite(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load suite: %v\n", err)
		return 1
	}
	report, err := driver.RunSuite(ctx, suite, driver.RunOptions{Parallelism: opts.parallelism, Trace: opts.trace})
	if err != nil {
		fmt.Fprintf(os.Stderr, "suite %s aborted: %v\n", suite.Name, err)
		return 1
	}
	for _, res := range report.Results {
		if res.Passed {
			fmt.Fprintf(os.Stdout, "PASS %s\n", res.Fixture.Name)
			continue
		}
		fmt.Fprintf(os.Stdout, "FAIL %s\n", res.Fixture.Name)
		for _, line := range strings.Split(strings.TrimRight(res.Failure, "\n"), "\n") {
			fmt.Fprintf(os.Stdout, "    %s\n", line)
		}
	}
	failed := len(report.Failed())
	fmt.Fprintf(os.Stdout, "%s: %d passed, %d failed\n", suite.Name, len(report.Results)-failed, failed)
	if failed > 0 {
		return 1
	}
	return 0
}

func runPack(args []string) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "brewin pack requires an input program and an output path")
		return 1
	}
	program, err := ast.LoadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load program: %v\n", err)
		return 1
	}
	format, err := ast.FormatForPath(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "brewin pack: %v\n", err)
		return 1
	}
	var data []byte
	switch format {
	case ast.FormatCBOR:
		data, err = ast.EncodeCBOR(program)
	case ast.FormatJSON:
		data, err = ast.EncodeJSON(program)
	default:
		fmt.Fprintf(os.Stderr, "brewin pack: cannot write %s output\n", format)
		return 1
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode program: %v\n", err)
		return 1
	}
	if dir := filepath.Dir(args[1]); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", dir, err)
			return 1
		}
	}
	if err := os.WriteFile(args[1], data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", args[1], err)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  brewin run [--trace] [-v] <program.json|yaml|cbor>")
	fmt.Fprintln(os.Stderr, "  brewin test [--ref <rev>] [--parallel <n>] [--trace] <suite-dir|git-url>")
	fmt.Fprintln(os.Stderr, "  brewin pack <program> <out.cbor|out.json>")
	fmt.Fprintln(os.Stderr, "  brewin version")
}
