package interpreter

import (
	"os"

	"github.com/tliron/commonlog"

	"brewin/interpreter-go/pkg/ast"
	"brewin/interpreter-go/pkg/runtime"
)

var log = commonlog.GetLogger("brewin.interpreter")

// Options configures an Interpreter.
type Options struct {
	// Host defaults to a console host over stdin/stdout.
	Host Host
	// Trace logs every executed statement at debug level.
	Trace bool
}

// Interpreter evaluates one Brewin program at a time.
type Interpreter struct {
	host  Host
	trace bool
	ops   operatorTable

	types     *runtime.Types
	functions map[string]map[int]*ast.FunctionDefinition
	env       *runtime.Environment
}

// New returns an interpreter with its operator table built.
func New(opts Options) *Interpreter {
	host := opts.Host
	if host == nil {
		host = NewConsoleHost(os.Stdin, os.Stdout)
	}
	return &Interpreter{
		host:      host,
		trace:     opts.Trace,
		ops:       buildOperatorTable(),
		types:     runtime.NewTypes(),
		functions: make(map[string]map[int]*ast.FunctionDefinition),
		env:       runtime.NewEnvironment(),
	}
}

// Run loads the program's declarations and invokes the zero-argument main. A
// raise that escapes main is reported as a FAULT_ERROR.
func (i *Interpreter) Run(program *ast.Program) error {
	if err := i.Load(program); err != nil {
		return err
	}
	main, ok := i.functions["main"][0]
	if !ok {
		return nameErrorf("No main() function was found")
	}
	log.Debugf("running main (%d functions, %d structs)", len(program.Functions), len(program.Structs))
	out, err := i.invokeFunction(main, nil)
	if err != nil {
		return err
	}
	if id, ok := out.RaisedID(); ok {
		return faultErrorf("Unhandled exception: %s", id)
	}
	return nil
}

// Load resets interpreter state and registers the program's structs and
// functions. Problems are aggregated into a ValidationError.
func (i *Interpreter) Load(program *ast.Program) error {
	i.types = runtime.NewTypes()
	i.functions = make(map[string]map[int]*ast.FunctionDefinition)
	i.env = runtime.NewEnvironment()
	if program == nil {
		return nameErrorf("No main() function was found")
	}

	var issues []*Error
	report := func(err error) {
		if interpErr, ok := err.(*Error); ok {
			issues = append(issues, interpErr)
		}
	}
	for _, err := range i.declareStructs(program.Structs) {
		report(err)
	}
	for _, err := range i.declareFunctions(program.Functions) {
		report(err)
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func (i *Interpreter) declareFunctions(defs []*ast.FunctionDefinition) []error {
	var errs []error
	for _, def := range defs {
		if def == nil {
			continue
		}
		for _, param := range def.Params {
			if param.TypeName != "" && !i.types.IsValid(param.TypeName) {
				errs = append(errs, typeErrorf("Invalid type %s for parameter %s of function %s", param.TypeName, param.Name, def.Name))
			}
		}
		if def.ReturnType != "" && def.ReturnType != "void" && !i.types.IsValid(def.ReturnType) {
			errs = append(errs, typeErrorf("Invalid return type %s for function %s", def.ReturnType, def.Name))
		}
		bucket, ok := i.functions[def.Name]
		if !ok {
			bucket = make(map[int]*ast.FunctionDefinition)
			i.functions[def.Name] = bucket
		}
		if _, exists := bucket[def.Arity()]; exists {
			errs = append(errs, nameErrorf("Duplicate definition for function %s taking %d params", def.Name, def.Arity()))
			continue
		}
		bucket[def.Arity()] = def
	}
	return errs
}

func (i *Interpreter) traceStatement(stmt ast.Statement) {
	if !i.trace {
		return
	}
	log.Debugf("[depth %d] %s", i.env.Depth(), ast.Describe(stmt))
}
