package driver

import (
	"os"
	"path/filepath"
	"testing"

	"brewin/interpreter-go/pkg/ast"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeProgram(t *testing.T, path string, program *ast.Program) {
	t.Helper()
	data, err := ast.EncodeJSON(program)
	if err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	writeFile(t, path, string(data))
}

// writeSampleSuite lays out a suite whose fixtures all pass.
func writeSampleSuite(t *testing.T, dir string) {
	t.Helper()
	writeProgram(t, filepath.Join(dir, "hello.json"), ast.Main(ast.Call("print", ast.Str("hello"))))
	writeProgram(t, filepath.Join(dir, "programs", "echo.json"), ast.Main(
		ast.VarDef("x"),
		ast.Assign("x", ast.Call("inputi")),
		ast.Call("print", ast.Bin("+", ast.Var("x"), ast.Int(1))),
	))
	writeProgram(t, filepath.Join(dir, "ghost.json"), ast.Main(
		ast.Call("print", ast.Str("before")),
		ast.Call("print", ast.Var("ghost")),
	))
	writeFile(t, filepath.Join(dir, SuiteFileName), `
name: sample
fixtures:
  - program: hello.json
    stdout: ["hello"]
  - name: echo
    program: programs/echo.json
    input: ["41"]
    stdout: ["42"]
  - program: ghost.json
    stdout: ["before"]
    error: name_error
`)
}
