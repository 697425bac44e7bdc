package interpreter

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"brewin/interpreter-go/pkg/ast"
)

func TestLazyAssignmentCapturesEnvironment(t *testing.T) {
	program := ast.Main(
		ast.VarDef("x"),
		ast.VarDef("y"),
		ast.Assign("x", ast.Int(5)),
		ast.Assign("y", ast.Bin("+", ast.Var("x"), ast.Int(1))),
		ast.Assign("x", ast.Int(100)),
		ast.Call("print", ast.Var("y")),
	)
	got := mustRun(t, program)
	if diff := cmp.Diff([]string{"6"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestLazyValueIsEvaluatedOnce(t *testing.T) {
	program := ast.Prog(nil,
		ast.Fn("main", nil, "void",
			ast.VarDef("y"),
			ast.Assign("y", ast.Call("tick")),
			ast.Call("print", ast.Str("before")),
			ast.Call("print", ast.Var("y")),
			ast.Call("print", ast.Var("y")),
		),
		ast.Fn("tick", nil, "int",
			ast.Call("print", ast.Str("tick")),
			ast.Ret(ast.Int(1)),
		),
	)
	got := mustRun(t, program)
	want := []string{"before", "tick", "1", "1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestUnusedLazyValueNeverRuns(t *testing.T) {
	program := ast.Main(
		ast.VarDef("y"),
		ast.Assign("y", ast.Bin("/", ast.Int(1), ast.Int(0))),
		ast.Call("print", ast.Str("ok")),
	)
	got := mustRun(t, program)
	if diff := cmp.Diff([]string{"ok"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestLazyArgumentsEvaluatedOnDemand(t *testing.T) {
	program := ast.Prog(nil,
		ast.Fn("main", nil, "void",
			ast.Call("show", ast.Call("source")),
			ast.Call("ignore", ast.Call("source")),
		),
		ast.Fn("show", []*ast.Parameter{ast.Param("a", "int")}, "void",
			ast.Call("print", ast.Str("in show")),
			ast.Call("print", ast.Var("a")),
		),
		ast.Fn("ignore", []*ast.Parameter{ast.Param("a", "int")}, "void",
			ast.Call("print", ast.Str("in ignore")),
		),
		ast.Fn("source", nil, "int",
			ast.Call("print", ast.Str("in source")),
			ast.Ret(ast.Int(7)),
		),
	)
	got := mustRun(t, program)
	want := []string{"in show", "in source", "7", "in ignore"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestLazyArgumentUsesCallerSnapshot(t *testing.T) {
	program := ast.Prog(nil,
		ast.Fn("main", nil, "void",
			ast.VarDef("x"),
			ast.Assign("x", ast.Int(1)),
			ast.Call("later", ast.Bin("+", ast.Var("x"), ast.Int(10))),
		),
		ast.Fn("later", []*ast.Parameter{ast.Param("v", "int")}, "void",
			ast.VarDef("x"),
			ast.Assign("x", ast.Int(500)),
			ast.Call("print", ast.Var("v")),
		),
	)
	got := mustRun(t, program)
	if diff := cmp.Diff([]string{"11"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRaisingLazyValueIsNotMemoized(t *testing.T) {
	program := ast.Main(
		ast.VarDef("y"),
		ast.Assign("y", ast.Bin("/", ast.Int(1), ast.Int(0))),
		ast.Try(ast.Block(ast.Call("print", ast.Var("y"))),
			ast.Catch("div0", ast.Call("print", ast.Str("first"))),
		),
		ast.Try(ast.Block(ast.Call("print", ast.Var("y"))),
			ast.Catch("div0", ast.Call("print", ast.Str("second"))),
		),
	)
	got := mustRun(t, program)
	if diff := cmp.Diff([]string{"first", "second"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestSelfReferentialAssignmentChain(t *testing.T) {
	program := ast.Main(
		ast.VarDef("x"),
		ast.Assign("x", ast.Int(1)),
		ast.Assign("x", ast.Bin("+", ast.Var("x"), ast.Int(1))),
		ast.Assign("x", ast.Bin("*", ast.Var("x"), ast.Int(10))),
		ast.Call("print", ast.Var("x")),
	)
	got := mustRun(t, program)
	if diff := cmp.Diff([]string{"20"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}
