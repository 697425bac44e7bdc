package interpreter

import (
	"errors"
	"fmt"

	"brewin/interpreter-go/pkg/ast"
	"brewin/interpreter-go/pkg/runtime"
)

// evaluateExpression yields a fully forced value, or a Raise outcome. env is the
// environment the expression observes: the live one, or a lazy value's snapshot.
func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Outcome, error) {
	if env != i.env {
		saved := i.env
		i.env = env
		defer func() { i.env = saved }()
	}
	switch n := node.(type) {
	case *ast.IntegerLiteral, *ast.StringLiteral, *ast.BooleanLiteral, *ast.NilLiteral:
		val, err := runtime.Construct(n)
		if err != nil {
			return runtime.Outcome{}, err
		}
		return runtime.Normal(val), nil
	case *ast.Variable:
		return i.evaluateVariable(n)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n)
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(n)
	case *ast.NewExpression:
		return i.evaluateNewExpression(n)
	case nil:
		return runtime.Outcome{}, fmt.Errorf("missing expression")
	default:
		return runtime.Outcome{}, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateVariable(ref *ast.Variable) (runtime.Outcome, error) {
	if ref.IsFieldAccess() {
		return i.evaluateFieldAccess(ref)
	}
	val, ok := i.env.Get(ref.Name)
	if !ok {
		return runtime.Outcome{}, nameErrorf("Variable %s not found", ref.Name)
	}
	return runtime.Resolve(val)
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression) (runtime.Outcome, error) {
	left, err := i.evaluateExpression(expr.Left, i.env)
	if err != nil || left.Abrupt() {
		return left, err
	}
	if expr.Operator == "&&" || expr.Operator == "||" {
		return i.evaluateShortCircuit(expr, left.Value)
	}
	right, err := i.evaluateExpression(expr.Right, i.env)
	if err != nil || right.Abrupt() {
		return right, err
	}
	result, err := i.applyBinary(expr.Operator, left.Value, right.Value)
	if errors.Is(err, errDivisionByZero) {
		return runtime.Raised("div0"), nil
	}
	if err != nil {
		return runtime.Outcome{}, err
	}
	return runtime.Normal(result), nil
}

// evaluateShortCircuit only evaluates the right operand when the left one does
// not already decide the result. Both operands must be bool.
func (i *Interpreter) evaluateShortCircuit(expr *ast.BinaryExpression, left runtime.Value) (runtime.Outcome, error) {
	lb, ok := left.(runtime.BoolValue)
	if !ok {
		return runtime.Outcome{}, typeErrorf("Incompatible operator %s for type %s", expr.Operator, runtime.TypeName(left))
	}
	if expr.Operator == "&&" && !lb.Val {
		return runtime.Normal(runtime.BoolValue{Val: false}), nil
	}
	if expr.Operator == "||" && lb.Val {
		return runtime.Normal(runtime.BoolValue{Val: true}), nil
	}
	right, err := i.evaluateExpression(expr.Right, i.env)
	if err != nil || right.Abrupt() {
		return right, err
	}
	result, err := i.applyBinary(expr.Operator, left, right.Value)
	if err != nil {
		return runtime.Outcome{}, err
	}
	return runtime.Normal(result), nil
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression) (runtime.Outcome, error) {
	operand, err := i.evaluateExpression(expr.Operand, i.env)
	if err != nil || operand.Abrupt() {
		return operand, err
	}
	switch expr.NodeType() {
	case ast.NodeNegation:
		iv, ok := operand.Value.(runtime.IntValue)
		if !ok {
			return runtime.Outcome{}, typeErrorf("Incompatible type for %s operation", expr.NodeType())
		}
		return runtime.Normal(runtime.IntValue{Val: -iv.Val}), nil
	case ast.NodeNot:
		bv, ok := operand.Value.(runtime.BoolValue)
		if !ok {
			return runtime.Outcome{}, typeErrorf("Incompatible type for %s operation", expr.NodeType())
		}
		return runtime.Normal(runtime.BoolValue{Val: !bv.Val}), nil
	default:
		return runtime.Outcome{}, fmt.Errorf("unsupported unary operator %s", expr.NodeType())
	}
}

// deferExpression wraps expr as a lazy value over a snapshot of the live
// environment. Literals need no capture and are constructed directly.
func (i *Interpreter) deferExpression(expr ast.Expression, snapshot *runtime.Environment) runtime.Value {
	if val, err := runtime.Construct(expr); err == nil {
		return val
	}
	return runtime.NewLazyValue(expr, snapshot, i.evaluateExpression)
}
