package driver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"brewin/interpreter-go/pkg/ast"
	"brewin/interpreter-go/pkg/interpreter"
)

func TestRunSuitePasses(t *testing.T) {
	dir := t.TempDir()
	writeSampleSuite(t, dir)
	suite, err := LoadSuite(dir)
	if err != nil {
		t.Fatalf("LoadSuite: %v", err)
	}
	report, err := RunSuite(context.Background(), suite, RunOptions{Parallelism: 2})
	if err != nil {
		t.Fatalf("RunSuite: %v", err)
	}
	if !report.Passed() {
		for _, res := range report.Failed() {
			t.Errorf("%s: %s", res.Fixture.Name, res.Failure)
		}
		t.FailNow()
	}
	var names []string
	for _, res := range report.Results {
		names = append(names, res.Fixture.Name)
	}
	if diff := cmp.Diff([]string{"hello", "echo", "ghost"}, names); diff != "" {
		t.Fatalf("result order mismatch (-want +got):\n%s", diff)
	}
	if kind, ok := interpreter.KindOf(report.Results[2].Err); !ok || kind != interpreter.NameError {
		t.Fatalf("expected NAME_ERROR for ghost, got %v", report.Results[2].Err)
	}
}

func TestRunSuiteReportsFailures(t *testing.T) {
	dir := t.TempDir()
	writeProgram(t, filepath.Join(dir, "hello.json"), ast.Main(ast.Call("print", ast.Str("hello"))))
	writeProgram(t, filepath.Join(dir, "boom.json"), ast.Main(ast.Raise(ast.Str("boom"))))
	writeFile(t, filepath.Join(dir, SuiteFileName), `
name: failing
fixtures:
  - name: wrong-output
    program: hello.json
    stdout: ["goodbye"]
  - name: missing-error
    program: hello.json
    stdout: ["hello"]
    error: TYPE_ERROR
  - name: unexpected-error
    program: boom.json
  - name: wrong-kind
    program: boom.json
    error: NAME_ERROR
  - name: missing-program
    program: nowhere.json
`)
	suite, err := LoadSuite(dir)
	if err != nil {
		t.Fatalf("LoadSuite: %v", err)
	}
	report, err := RunSuite(context.Background(), suite, RunOptions{})
	if err != nil {
		t.Fatalf("RunSuite: %v", err)
	}
	if len(report.Failed()) != len(suite.Fixtures) {
		t.Fatalf("expected every fixture to fail, got %d failures", len(report.Failed()))
	}
	prefixes := []string{
		"stdout mismatch",
		"expected TYPE_ERROR, program completed",
		"unexpected error: FAULT_ERROR: Unhandled exception: boom",
		"expected NAME_ERROR, got FAULT_ERROR",
		"load program:",
	}
	for idx, res := range report.Results {
		if !strings.HasPrefix(res.Failure, prefixes[idx]) {
			t.Errorf("%s: failure %q, want prefix %q", res.Fixture.Name, res.Failure, prefixes[idx])
		}
	}
}

func TestRunSuiteParallelKeepsManifestOrder(t *testing.T) {
	dir := t.TempDir()
	var manifest strings.Builder
	manifest.WriteString("name: many\nfixtures:\n")
	for idx := 0; idx < 12; idx++ {
		name := fmt.Sprintf("p%02d", idx)
		writeProgram(t, filepath.Join(dir, name+".json"), ast.Main(
			ast.VarDef("i"),
			ast.VarDef("sum"),
			ast.Assign("sum", ast.Int(0)),
			ast.For(ast.Assign("i", ast.Int(0)), ast.Bin("<", ast.Var("i"), ast.Int(int64(idx))), ast.Assign("i", ast.Bin("+", ast.Var("i"), ast.Int(1))),
				ast.Assign("sum", ast.Bin("+", ast.Var("sum"), ast.Var("i"))),
			),
			ast.Call("print", ast.Var("sum")),
		))
		fmt.Fprintf(&manifest, "  - program: %s.json\n    stdout: [\"%d\"]\n", name, idx*(idx-1)/2)
	}
	writeFile(t, filepath.Join(dir, SuiteFileName), manifest.String())
	suite, err := LoadSuite(dir)
	if err != nil {
		t.Fatalf("LoadSuite: %v", err)
	}
	report, err := RunSuite(context.Background(), suite, RunOptions{Parallelism: 4})
	if err != nil {
		t.Fatalf("RunSuite: %v", err)
	}
	for idx, res := range report.Results {
		if res.Fixture != suite.Fixtures[idx] {
			t.Fatalf("result %d belongs to %s", idx, res.Fixture.Name)
		}
		if !res.Passed {
			t.Errorf("%s: %s", res.Fixture.Name, res.Failure)
		}
	}
}

func TestRunSuiteHonorsCancellation(t *testing.T) {
	dir := t.TempDir()
	writeSampleSuite(t, dir)
	suite, err := LoadSuite(dir)
	if err != nil {
		t.Fatalf("LoadSuite: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunSuite(ctx, suite, RunOptions{Parallelism: 1}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
