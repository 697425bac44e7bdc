package interpreter

import (
	"fmt"

	"brewin/interpreter-go/pkg/ast"
	"brewin/interpreter-go/pkg/runtime"
)

// executeBlock runs a statement list in a fresh block scope and stops at the
// first Return or Raise. The scope is popped on every exit path.
func (i *Interpreter) executeBlock(stmts []ast.Statement) (runtime.Outcome, error) {
	env := i.env
	env.PushBlock()
	defer env.PopBlock()
	for _, stmt := range stmts {
		out, err := i.executeStatement(stmt)
		if err != nil || out.Abrupt() {
			return out, err
		}
	}
	return runtime.Continue(), nil
}

func (i *Interpreter) executeStatement(node ast.Statement) (runtime.Outcome, error) {
	i.traceStatement(node)
	switch n := node.(type) {
	case *ast.VariableDefinition:
		return i.executeVariableDefinition(n)
	case *ast.Assignment:
		return i.executeAssignment(n)
	case *ast.FunctionCall:
		out, err := i.evaluateFunctionCall(n)
		if err != nil || out.Abrupt() {
			return out, err
		}
		return runtime.Continue(), nil
	case *ast.IfStatement:
		return i.executeIfStatement(n)
	case *ast.ForStatement:
		return i.executeForStatement(n)
	case *ast.ReturnStatement:
		return i.executeReturnStatement(n)
	case *ast.RaiseStatement:
		return i.executeRaiseStatement(n)
	case *ast.TryStatement:
		return i.executeTryStatement(n)
	case nil:
		return runtime.Outcome{}, fmt.Errorf("missing statement")
	default:
		return runtime.Outcome{}, fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

// executeVariableDefinition binds the declared type's default, or nil when the
// definition is untyped.
func (i *Interpreter) executeVariableDefinition(stmt *ast.VariableDefinition) (runtime.Outcome, error) {
	var val runtime.Value = runtime.NilValue{}
	if stmt.TypeName != "" {
		def, ok := i.types.Default(stmt.TypeName)
		if !ok {
			return runtime.Outcome{}, typeErrorf("Invalid type %s for variable %s", stmt.TypeName, stmt.Name)
		}
		val = def
	}
	if !i.env.Create(stmt.Name, val) {
		return runtime.Outcome{}, nameErrorf("Duplicate definition for variable %s", stmt.Name)
	}
	return runtime.Continue(), nil
}

// executeAssignment defers the right-hand side over a snapshot of the current
// environment. Field assignments are evaluated immediately.
func (i *Interpreter) executeAssignment(stmt *ast.Assignment) (runtime.Outcome, error) {
	if stmt.IsFieldAssignment() {
		return i.assignField(stmt)
	}
	if _, ok := i.env.Get(stmt.Name); !ok {
		return runtime.Outcome{}, nameErrorf("Undefined variable %s in assignment", stmt.Name)
	}
	val := i.deferExpression(stmt.Expression, i.env.Snapshot())
	i.env.Set(stmt.Name, val)
	return runtime.Continue(), nil
}

func (i *Interpreter) evaluateCondition(cond ast.Expression, context string) (bool, runtime.Outcome, error) {
	out, err := i.evaluateExpression(cond, i.env)
	if err != nil || out.Abrupt() {
		return false, out, err
	}
	bv, ok := out.Value.(runtime.BoolValue)
	if !ok {
		return false, out, typeErrorf("Incompatible type for %s condition", context)
	}
	return bv.Val, out, nil
}

func (i *Interpreter) executeIfStatement(stmt *ast.IfStatement) (runtime.Outcome, error) {
	cond, out, err := i.evaluateCondition(stmt.Condition, "if")
	if err != nil || out.Abrupt() {
		return out, err
	}
	if cond {
		return i.executeBlock(stmt.Body)
	}
	if stmt.Else != nil {
		return i.executeBlock(stmt.Else)
	}
	return runtime.Continue(), nil
}

// executeForStatement runs init once in the enclosing scope. A Return or Raise
// from the body leaves the loop without running update.
func (i *Interpreter) executeForStatement(stmt *ast.ForStatement) (runtime.Outcome, error) {
	if stmt.Init != nil {
		out, err := i.executeStatement(stmt.Init)
		if err != nil || out.Abrupt() {
			return out, err
		}
	}
	for {
		cond, out, err := i.evaluateCondition(stmt.Condition, "for")
		if err != nil || out.Abrupt() {
			return out, err
		}
		if !cond {
			return runtime.Continue(), nil
		}
		out, err = i.executeBlock(stmt.Body)
		if err != nil || out.Abrupt() {
			return out, err
		}
		if stmt.Update != nil {
			out, err = i.executeStatement(stmt.Update)
			if err != nil || out.Abrupt() {
				return out, err
			}
		}
	}
}

// executeReturnStatement evaluates the result in the callee's frame, so a raise
// while computing it is seen by enclosing try blocks of the callee.
func (i *Interpreter) executeReturnStatement(stmt *ast.ReturnStatement) (runtime.Outcome, error) {
	if stmt.Expression == nil {
		return runtime.Returned(runtime.NilValue{}), nil
	}
	out, err := i.evaluateExpression(stmt.Expression, i.env)
	if err != nil || out.Abrupt() {
		return out, err
	}
	return runtime.Returned(out.Value), nil
}

func (i *Interpreter) executeRaiseStatement(stmt *ast.RaiseStatement) (runtime.Outcome, error) {
	out, err := i.evaluateExpression(stmt.ExceptionType, i.env)
	if err != nil || out.Abrupt() {
		return out, err
	}
	id, ok := out.Value.(runtime.StringValue)
	if !ok {
		return runtime.Outcome{}, typeErrorf("Incompatible type for raise exception type")
	}
	return runtime.Raised(id.Val), nil
}

// executeTryStatement runs the first catcher whose identifier matches a raise
// from the body. Unmatched raises, returns and normal completion pass through.
func (i *Interpreter) executeTryStatement(stmt *ast.TryStatement) (runtime.Outcome, error) {
	out, err := i.executeBlock(stmt.Body)
	if err != nil {
		return out, err
	}
	id, raised := out.RaisedID()
	if !raised {
		return out, nil
	}
	for _, catcher := range stmt.Catchers {
		if catcher.ExceptionType == id {
			log.Debugf("caught %q", id)
			return i.executeBlock(catcher.Body)
		}
	}
	return out, nil
}
