package ast

// Literal and reference helpers.

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Nil() *NilLiteral {
	return NewNilLiteral()
}

// Var accepts a dotted reference such as `p.addr.zip`.
func Var(dotted string) *Variable {
	name, fields := SplitPath(dotted)
	return NewVariable(name, fields)
}

func New(typeName string) *NewExpression {
	return NewNewExpression(typeName)
}

// Operator helpers.

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func Neg(operand Expression) *UnaryExpression {
	return NewUnaryExpression(NodeNegation, operand)
}

func Not(operand Expression) *UnaryExpression {
	return NewUnaryExpression(NodeNot, operand)
}

func Call(name string, args ...Expression) *FunctionCall {
	return NewFunctionCall(name, args)
}

// Statement helpers.

func Block(stmts ...Statement) []Statement {
	return stmts
}

func VarDef(name string) *VariableDefinition {
	return NewVariableDefinition(name, "")
}

func VarDefTyped(name, typeName string) *VariableDefinition {
	return NewVariableDefinition(name, typeName)
}

func Assign(dotted string, expr Expression) *Assignment {
	name, fields := SplitPath(dotted)
	return NewAssignment(name, fields, expr)
}

func If(cond Expression, body ...Statement) *IfStatement {
	return NewIfStatement(cond, body, nil)
}

func IfElse(cond Expression, body []Statement, elseBody []Statement) *IfStatement {
	if elseBody == nil {
		elseBody = []Statement{}
	}
	return NewIfStatement(cond, body, elseBody)
}

func For(init Statement, cond Expression, update Statement, body ...Statement) *ForStatement {
	return NewForStatement(init, cond, update, body)
}

func Ret(expr Expression) *ReturnStatement {
	return NewReturnStatement(expr)
}

func RetVoid() *ReturnStatement {
	return NewReturnStatement(nil)
}

func Raise(expr Expression) *RaiseStatement {
	return NewRaiseStatement(expr)
}

func Try(body []Statement, catchers ...*CatchClause) *TryStatement {
	return NewTryStatement(body, catchers)
}

func Catch(exceptionType string, body ...Statement) *CatchClause {
	return NewCatchClause(exceptionType, body)
}

// Definition helpers.

func Param(name, typeName string) *Parameter {
	return NewParameter(name, typeName)
}

func Fn(name string, params []*Parameter, returnType string, body ...Statement) *FunctionDefinition {
	return NewFunctionDefinition(name, params, returnType, body)
}

func Field(name, typeName string) *FieldDefinition {
	return NewFieldDefinition(name, typeName)
}

func Struct(name string, fields ...*FieldDefinition) *StructDefinition {
	return NewStructDefinition(name, fields)
}

func Prog(structs []*StructDefinition, functions ...*FunctionDefinition) *Program {
	return NewProgram(structs, functions)
}

// Main wraps statements into a program with a single zero-argument main.
func Main(body ...Statement) *Program {
	return NewProgram(nil, []*FunctionDefinition{Fn("main", nil, "void", body...)})
}
