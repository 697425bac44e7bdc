package interpreter

import (
	"testing"

	"brewin/interpreter-go/pkg/ast"
)

// runProgram executes program against an in-memory host and returns its output.
func runProgram(t *testing.T, program *ast.Program, input ...string) ([]string, error) {
	t.Helper()
	host := NewBufferHost(input...)
	interp := New(Options{Host: host, Trace: true})
	err := interp.Run(program)
	return host.Lines(), err
}

// mustRun fails the test when the program stops with a fatal error.
func mustRun(t *testing.T, program *ast.Program, input ...string) []string {
	t.Helper()
	lines, err := runProgram(t, program, input...)
	if err != nil {
		t.Fatalf("program failed: %v (output so far %q)", err, lines)
	}
	return lines
}

// expectFatal fails the test unless the program stops with an error of kind.
func expectFatal(t *testing.T, program *ast.Program, kind ErrorKind) ([]string, *Error) {
	t.Helper()
	lines, err := runProgram(t, program)
	if err == nil {
		t.Fatalf("expected %s, program succeeded with output %q", kind, lines)
	}
	got, ok := KindOf(err)
	if !ok {
		t.Fatalf("expected interpreter error, got %T: %v", err, err)
	}
	if got != kind {
		t.Fatalf("expected %s, got %v", kind, err)
	}
	var interpErr *Error
	if ve, ok := err.(*ValidationError); ok {
		interpErr = ve.Issues[0]
	} else {
		interpErr = err.(*Error)
	}
	return lines, interpErr
}
