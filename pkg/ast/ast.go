package ast

import "strings"

// NodeType mirrors the element tags emitted by the Brewin parser.
type NodeType string

const (
	NodeProgram            NodeType = "program"
	NodeStructDefinition   NodeType = "struct"
	NodeFieldDefinition    NodeType = "field"
	NodeFunctionDefinition NodeType = "func"
	NodeParameter          NodeType = "arg"
	NodeVariableDefinition NodeType = "vardef"
	NodeAssignment         NodeType = "="
	NodeFunctionCall       NodeType = "fcall"
	NodeIfStatement        NodeType = "if"
	NodeForStatement       NodeType = "for"
	NodeReturnStatement    NodeType = "return"
	NodeRaiseStatement     NodeType = "raise"
	NodeTryStatement       NodeType = "try"
	NodeCatchClause        NodeType = "catch"
	NodeIntegerLiteral     NodeType = "int"
	NodeStringLiteral      NodeType = "string"
	NodeBooleanLiteral     NodeType = "bool"
	NodeNilLiteral         NodeType = "nil"
	NodeVariable           NodeType = "var"
	NodeNewExpression      NodeType = "new"
	NodeNegation           NodeType = "neg"
	NodeNot                NodeType = "!"
)

// Binary operators use their symbol as the element tag.
var BinaryOperators = map[string]struct{}{
	"+": {}, "-": {}, "*": {}, "/": {},
	"==": {}, "!=": {}, "<": {}, "<=": {}, ">": {}, ">=": {},
	"&&": {}, "||": {},
}

func IsBinaryOperator(tag string) bool {
	_, ok := BinaryOperators[tag]
	return ok
}

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"elem_type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces. The unexported methods close the set of implementations to
// this package.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Literals

type IntegerLiteral struct {
	nodeImpl
	expressionMarker

	Value int64 `json:"val"`
}

func NewIntegerLiteral(value int64) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"val"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"val"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NilLiteral struct {
	nodeImpl
	expressionMarker
}

func NewNilLiteral() *NilLiteral {
	return &NilLiteral{nodeImpl: newNodeImpl(NodeNilLiteral)}
}

// References

// Variable is a name reference. A dotted reference such as `p.addr.zip` keeps the
// base name in Name and the walked field chain in Fields.
type Variable struct {
	nodeImpl
	expressionMarker

	Name   string   `json:"name"`
	Fields []string `json:"fields,omitempty"`
}

func NewVariable(name string, fields []string) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name, Fields: fields}
}

// IsFieldAccess reports whether the reference walks into a struct.
func (v *Variable) IsFieldAccess() bool {
	return len(v.Fields) > 0
}

// Path renders the dotted form of the reference.
func (v *Variable) Path() string {
	return joinPath(v.Name, v.Fields)
}

// SplitPath splits a dotted reference into its base name and field chain.
func SplitPath(dotted string) (string, []string) {
	parts := strings.Split(dotted, ".")
	if len(parts) == 1 {
		return parts[0], nil
	}
	return parts[0], parts[1:]
}

func joinPath(name string, fields []string) string {
	if len(fields) == 0 {
		return name
	}
	return name + "." + strings.Join(fields, ".")
}

// Operators

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"-"`
	Left     Expression `json:"op1"`
	Right    Expression `json:"op2"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeType(operator)), Operator: operator, Left: left, Right: right}
}

// UnaryExpression covers arithmetic negation (`neg`) and logical not (`!`).
type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operand Expression `json:"op1"`
}

func NewUnaryExpression(kind NodeType, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(kind), Operand: operand}
}

// Operator returns the printable operator symbol.
func (u *UnaryExpression) Operator() string {
	if u.Type == NodeNegation {
		return "-"
	}
	return "!"
}

type NewExpression struct {
	nodeImpl
	expressionMarker

	TypeName string `json:"var_type"`
}

func NewNewExpression(typeName string) *NewExpression {
	return &NewExpression{nodeImpl: newNodeImpl(NodeNewExpression), TypeName: typeName}
}

// FunctionCall is usable both as an expression and as a statement.
type FunctionCall struct {
	nodeImpl
	expressionMarker
	statementMarker

	Name      string       `json:"name"`
	Arguments []Expression `json:"args"`
}

func NewFunctionCall(name string, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Name: name, Arguments: args}
}

// Statements

type VariableDefinition struct {
	nodeImpl
	statementMarker

	Name     string `json:"name"`
	TypeName string `json:"var_type,omitempty"`
}

func NewVariableDefinition(name, typeName string) *VariableDefinition {
	return &VariableDefinition{nodeImpl: newNodeImpl(NodeVariableDefinition), Name: name, TypeName: typeName}
}

type Assignment struct {
	nodeImpl
	statementMarker

	Name       string     `json:"name"`
	Fields     []string   `json:"fields,omitempty"`
	Expression Expression `json:"expression"`
}

func NewAssignment(name string, fields []string, expr Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Name: name, Fields: fields, Expression: expr}
}

func (a *Assignment) IsFieldAssignment() bool {
	return len(a.Fields) > 0
}

func (a *Assignment) Path() string {
	return joinPath(a.Name, a.Fields)
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression  `json:"condition"`
	Body      []Statement `json:"statements"`
	Else      []Statement `json:"else_statements"`
}

func NewIfStatement(cond Expression, body []Statement, elseBody []Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: cond, Body: body, Else: elseBody}
}

type ForStatement struct {
	nodeImpl
	statementMarker

	Init      Statement   `json:"init"`
	Condition Expression  `json:"condition"`
	Update    Statement   `json:"update"`
	Body      []Statement `json:"statements"`
}

func NewForStatement(init Statement, cond Expression, update Statement, body []Statement) *ForStatement {
	return &ForStatement{nodeImpl: newNodeImpl(NodeForStatement), Init: init, Condition: cond, Update: update, Body: body}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression,omitempty"`
}

func NewReturnStatement(expr Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Expression: expr}
}

type RaiseStatement struct {
	nodeImpl
	statementMarker

	ExceptionType Expression `json:"exception_type"`
}

func NewRaiseStatement(expr Expression) *RaiseStatement {
	return &RaiseStatement{nodeImpl: newNodeImpl(NodeRaiseStatement), ExceptionType: expr}
}

type CatchClause struct {
	nodeImpl

	ExceptionType string      `json:"exception_type"`
	Body          []Statement `json:"statements"`
}

func NewCatchClause(exceptionType string, body []Statement) *CatchClause {
	return &CatchClause{nodeImpl: newNodeImpl(NodeCatchClause), ExceptionType: exceptionType, Body: body}
}

type TryStatement struct {
	nodeImpl
	statementMarker

	Body     []Statement    `json:"statements"`
	Catchers []*CatchClause `json:"catchers"`
}

func NewTryStatement(body []Statement, catchers []*CatchClause) *TryStatement {
	return &TryStatement{nodeImpl: newNodeImpl(NodeTryStatement), Body: body, Catchers: catchers}
}
