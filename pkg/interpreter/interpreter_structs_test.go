package interpreter

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"brewin/interpreter-go/pkg/ast"
)

func petStructs() []*ast.StructDefinition {
	return []*ast.StructDefinition{
		ast.Struct("dog",
			ast.Field("name", "string"),
			ast.Field("age", "int"),
			ast.Field("vaccinated", "bool"),
			ast.Field("owner", "person"),
		),
		ast.Struct("person", ast.Field("name", "string")),
	}
}

func petProgram(body ...ast.Statement) *ast.Program {
	return ast.Prog(petStructs(), ast.Fn("main", nil, "void", body...))
}

func TestStructDefaultInitialization(t *testing.T) {
	program := petProgram(
		ast.VarDefTyped("d", "dog"),
		ast.Call("print", ast.Var("d")),
		ast.Call("print", ast.Bin("==", ast.Var("d"), ast.Nil())),
		ast.Assign("d", ast.New("dog")),
		ast.Call("print", ast.Var("d.name"), ast.Str("|"), ast.Var("d.age"), ast.Str("|"), ast.Var("d.vaccinated"), ast.Str("|"), ast.Var("d.owner")),
		ast.Call("print", ast.Bin("==", ast.Var("d.owner"), ast.Nil())),
		ast.Call("print", ast.Bin("==", ast.Var("d"), ast.Nil())),
	)
	got := mustRun(t, program)
	want := []string{"nil", "true", "|0|false|nil", "true", "false"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestStructAliasingSharesInstance(t *testing.T) {
	program := ast.Prog(petStructs(),
		ast.Fn("main", nil, "void",
			ast.VarDefTyped("d", "dog"),
			ast.VarDefTyped("e", "dog"),
			ast.Assign("d", ast.New("dog")),
			ast.Assign("e", ast.Var("d")),
			ast.Assign("e.age", ast.Int(5)),
			ast.Call("print", ast.Var("d.age")),
			ast.Call("birthday", ast.Var("d")),
			ast.Call("print", ast.Var("e.age")),
			ast.Call("print", ast.Bin("==", ast.Var("d"), ast.Var("e"))),
		),
		ast.Fn("birthday", []*ast.Parameter{ast.Param("pet", "dog")}, "void",
			ast.Assign("pet.age", ast.Bin("+", ast.Var("pet.age"), ast.Int(1))),
		),
	)
	got := mustRun(t, program)
	if diff := cmp.Diff([]string{"5", "6", "true"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestNestedFieldAssignmentAndPrinting(t *testing.T) {
	program := petProgram(
		ast.VarDefTyped("d", "dog"),
		ast.Assign("d", ast.New("dog")),
		ast.Assign("d.name", ast.Str("koda")),
		ast.Assign("d.owner", ast.New("person")),
		ast.Assign("d.owner.name", ast.Str("sam")),
		ast.Call("print", ast.Var("d.owner.name")),
		ast.Call("print", ast.Var("d")),
		ast.Assign("d.owner", ast.Nil()),
		ast.Call("print", ast.Var("d.owner")),
	)
	got := mustRun(t, program)
	want := []string{
		"sam",
		"dog { name: koda, age: 0, vaccinated: false, owner: person { name: sam } }",
		"nil",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestStructDeepEquality(t *testing.T) {
	program := petProgram(
		ast.VarDefTyped("a", "person"),
		ast.VarDefTyped("b", "person"),
		ast.Assign("a", ast.New("person")),
		ast.Assign("b", ast.New("person")),
		ast.Call("print", ast.Bin("==", ast.Var("a"), ast.Var("b"))),
		ast.Assign("b.name", ast.Str("sam")),
		ast.Call("print", ast.Bin("==", ast.Var("a"), ast.Var("b"))),
		ast.Call("print", ast.Bin("!=", ast.Var("a"), ast.Int(0))),
	)
	got := mustRun(t, program)
	if diff := cmp.Diff([]string{"true", "false", "true"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestStructFieldErrors(t *testing.T) {
	cases := []struct {
		name string
		body []ast.Statement
		kind ErrorKind
	}{
		{
			name: "read through nil struct",
			body: ast.Block(ast.VarDefTyped("p", "person"), ast.Call("print", ast.Var("p.name"))),
			kind: FaultError,
		},
		{
			name: "write through nil nested struct",
			body: ast.Block(ast.VarDefTyped("d", "dog"), ast.Assign("d", ast.New("dog")), ast.Assign("d.owner.name", ast.Str("x"))),
			kind: FaultError,
		},
		{
			name: "field type mismatch",
			body: ast.Block(ast.VarDefTyped("d", "dog"), ast.Assign("d", ast.New("dog")), ast.Assign("d.age", ast.Str("old"))),
			kind: TypeError,
		},
		{
			name: "wrong struct type in field",
			body: ast.Block(ast.VarDefTyped("d", "dog"), ast.Assign("d", ast.New("dog")), ast.Assign("d.owner", ast.New("dog"))),
			kind: TypeError,
		},
		{
			name: "unknown field",
			body: ast.Block(ast.VarDefTyped("d", "dog"), ast.Assign("d", ast.New("dog")), ast.Call("print", ast.Var("d.color"))),
			kind: NameError,
		},
		{
			name: "field access on int",
			body: ast.Block(ast.VarDef("n"), ast.Assign("n", ast.Int(3)), ast.Call("print", ast.Var("n.size"))),
			kind: TypeError,
		},
		{
			name: "new of undeclared struct",
			body: ast.Block(ast.VarDef("c"), ast.Assign("c", ast.New("cat")), ast.Call("print", ast.Var("c"))),
			kind: TypeError,
		},
		{
			name: "field write on undefined variable",
			body: ast.Block(ast.Assign("ghost.name", ast.Str("boo"))),
			kind: NameError,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectFatal(t, petProgram(tc.body...), tc.kind)
		})
	}
}

func TestStructDeclarationValidation(t *testing.T) {
	cases := []struct {
		name    string
		structs []*ast.StructDefinition
		kind    ErrorKind
	}{
		{
			name:    "duplicate struct",
			structs: []*ast.StructDefinition{ast.Struct("a"), ast.Struct("a")},
			kind:    NameError,
		},
		{
			name:    "duplicate field",
			structs: []*ast.StructDefinition{ast.Struct("a", ast.Field("x", "int"), ast.Field("x", "bool"))},
			kind:    NameError,
		},
		{
			name:    "invalid field type",
			structs: []*ast.StructDefinition{ast.Struct("a", ast.Field("x", "float"))},
			kind:    TypeError,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectFatal(t, ast.Prog(tc.structs, ast.Fn("main", nil, "void")), tc.kind)
		})
	}
}

func TestSelfReferentialStructPrints(t *testing.T) {
	program := ast.Prog(
		[]*ast.StructDefinition{ast.Struct("node", ast.Field("val", "int"), ast.Field("next", "node"))},
		ast.Fn("main", nil, "void",
			ast.VarDefTyped("n", "node"),
			ast.Assign("n", ast.New("node")),
			ast.Assign("n.next", ast.Var("n")),
			ast.Call("print", ast.Var("n")),
			ast.Call("print", ast.Var("n.next.next.val")),
		),
	)
	got := mustRun(t, program)
	want := []string{"node { val: 0, next: node { ... } }", "0"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}
