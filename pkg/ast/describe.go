package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Describe renders a compact one-line form of a node for trace output. Bodies of
// compound statements are elided.
func Describe(node Node) string {
	switch n := node.(type) {
	case nil:
		return "<nil>"
	case *IntegerLiteral:
		return strconv.FormatInt(n.Value, 10)
	case *StringLiteral:
		return strconv.Quote(n.Value)
	case *BooleanLiteral:
		return strconv.FormatBool(n.Value)
	case *NilLiteral:
		return "nil"
	case *Variable:
		return n.Path()
	case *NewExpression:
		return "new " + n.TypeName
	case *BinaryExpression:
		return fmt.Sprintf("(%s %s %s)", Describe(n.Left), n.Operator, Describe(n.Right))
	case *UnaryExpression:
		return n.Operator() + Describe(n.Operand)
	case *FunctionCall:
		args := make([]string, len(n.Arguments))
		for i, arg := range n.Arguments {
			args[i] = Describe(arg)
		}
		return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, ", "))
	case *VariableDefinition:
		if n.TypeName != "" {
			return fmt.Sprintf("var %s: %s", n.Name, n.TypeName)
		}
		return "var " + n.Name
	case *Assignment:
		return fmt.Sprintf("%s = %s", n.Path(), Describe(n.Expression))
	case *IfStatement:
		return fmt.Sprintf("if %s { ... }", Describe(n.Condition))
	case *ForStatement:
		return fmt.Sprintf("for (%s; %s; %s) { ... }", Describe(n.Init), Describe(n.Condition), Describe(n.Update))
	case *ReturnStatement:
		if n.Expression == nil {
			return "return"
		}
		return "return " + Describe(n.Expression)
	case *RaiseStatement:
		return "raise " + Describe(n.ExceptionType)
	case *TryStatement:
		kinds := make([]string, len(n.Catchers))
		for i, catcher := range n.Catchers {
			kinds[i] = strconv.Quote(catcher.ExceptionType)
		}
		return fmt.Sprintf("try { ... } catch %s", strings.Join(kinds, ", "))
	case *FunctionDefinition:
		params := make([]string, len(n.Params))
		for i, param := range n.Params {
			params[i] = param.Name
		}
		return fmt.Sprintf("func %s(%s)", n.Name, strings.Join(params, ", "))
	default:
		return string(node.NodeType())
	}
}
