package interpreter

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"brewin/interpreter-go/pkg/ast"
	"brewin/interpreter-go/pkg/runtime"
)

type builtinFunc func(i *Interpreter, call *ast.FunctionCall) (runtime.Outcome, error)

var builtins map[string]builtinFunc

func init() {
	builtins = map[string]builtinFunc{
		"print":  (*Interpreter).callPrint,
		"inputi": (*Interpreter).callInput,
		"inputs": (*Interpreter).callInput,
	}
}

// evaluateFunctionCall intercepts built-ins, then resolves a user function by
// name and argument count. Arguments are deferred over one snapshot of the
// caller's environment.
func (i *Interpreter) evaluateFunctionCall(call *ast.FunctionCall) (runtime.Outcome, error) {
	if builtin, ok := builtins[call.Name]; ok {
		return builtin(i, call)
	}
	fn, err := i.resolveFunction(call.Name, len(call.Arguments))
	if err != nil {
		return runtime.Outcome{}, err
	}
	args := make([]runtime.Value, len(call.Arguments))
	if len(call.Arguments) > 0 {
		snapshot := i.env.Snapshot()
		for idx, arg := range call.Arguments {
			args[idx] = i.deferExpression(arg, snapshot)
		}
	}
	return i.invokeFunction(fn, args)
}

func (i *Interpreter) resolveFunction(name string, arity int) (*ast.FunctionDefinition, error) {
	bucket, ok := i.functions[name]
	if !ok {
		return nil, nameErrorf("Function %s not found", name)
	}
	fn, ok := bucket[arity]
	if !ok {
		return nil, nameErrorf("Function %s taking %d params not found", name, arity)
	}
	return fn, nil
}

// invokeFunction binds args in a new frame and runs the body. The frame is
// popped before the outcome is reconciled: Return yields its forced payload,
// fallthrough yields nil and Raise propagates unchanged.
func (i *Interpreter) invokeFunction(fn *ast.FunctionDefinition, args []runtime.Value) (runtime.Outcome, error) {
	log.Debugf("call %s/%d", fn.Name, len(args))
	env := i.env
	env.PushFunction()
	out, err := i.bindAndRun(fn, args)
	env.PopFunction()
	if err != nil {
		return out, err
	}
	switch out.Status {
	case runtime.StatusRaise:
		return out, nil
	case runtime.StatusReturn:
		return runtime.Resolve(out.Value)
	default:
		return runtime.Normal(runtime.NilValue{}), nil
	}
}

func (i *Interpreter) bindAndRun(fn *ast.FunctionDefinition, args []runtime.Value) (runtime.Outcome, error) {
	for idx, param := range fn.Params {
		if !i.env.Create(param.Name, args[idx]) {
			return runtime.Outcome{}, nameErrorf("Duplicate definition for variable %s", param.Name)
		}
	}
	return i.executeBlock(fn.Body)
}

// evaluateArguments evaluates built-in arguments eagerly, left to right,
// stopping at the first raise.
func (i *Interpreter) evaluateArguments(args []ast.Expression) ([]runtime.Value, runtime.Outcome, error) {
	values := make([]runtime.Value, 0, len(args))
	for _, arg := range args {
		out, err := i.evaluateExpression(arg, i.env)
		if err != nil || out.Abrupt() {
			return nil, out, err
		}
		values = append(values, out.Value)
	}
	return values, runtime.Continue(), nil
}

func (i *Interpreter) callPrint(call *ast.FunctionCall) (runtime.Outcome, error) {
	values, out, err := i.evaluateArguments(call.Arguments)
	if err != nil || out.Abrupt() {
		return out, err
	}
	var sb strings.Builder
	for _, val := range values {
		sb.WriteString(valueToString(val))
	}
	i.host.Output(sb.String())
	return runtime.Normal(runtime.NilValue{}), nil
}

// callInput prints an optional prompt, then reads one line as an int (inputi)
// or a string (inputs).
func (i *Interpreter) callInput(call *ast.FunctionCall) (runtime.Outcome, error) {
	if len(call.Arguments) > 1 {
		return runtime.Outcome{}, nameErrorf("No %s() function that takes > 1 parameter", call.Name)
	}
	if len(call.Arguments) == 1 {
		values, out, err := i.evaluateArguments(call.Arguments)
		if err != nil || out.Abrupt() {
			return out, err
		}
		i.host.Output(valueToString(values[0]))
	}
	line, err := i.host.Input()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return runtime.Outcome{}, faultErrorf("No input available for %s()", call.Name)
		}
		return runtime.Outcome{}, faultErrorf("Reading input for %s(): %v", call.Name, err)
	}
	if call.Name == "inputs" {
		return runtime.Normal(runtime.StringValue{Val: line}), nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return runtime.Outcome{}, typeErrorf("inputi() expected an integer, got %q", line)
	}
	return runtime.Normal(runtime.IntValue{Val: n}), nil
}
