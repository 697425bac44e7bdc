package ast

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// DecodeError reports an interchange node that cannot be turned into an AST node.
type DecodeError struct {
	Type    string
	Message string
}

func (e *DecodeError) Error() string {
	if e.Type == "" {
		return "decode: " + e.Message
	}
	return fmt.Sprintf("decode %s: %s", e.Type, e.Message)
}

func decodeErrorf(typ string, format string, args ...any) error {
	return &DecodeError{Type: typ, Message: fmt.Sprintf(format, args...)}
}

// DecodeProgram decodes the root `program` node.
func DecodeProgram(node map[string]any) (*Program, error) {
	decoded, err := Decode(node)
	if err != nil {
		return nil, err
	}
	program, ok := decoded.(*Program)
	if !ok {
		return nil, decodeErrorf(string(decoded.NodeType()), "expected program root")
	}
	return program, nil
}

// Decode converts one interchange node map (keyed on `elem_type`) into an AST node.
func Decode(node map[string]any) (Node, error) {
	typ, _ := node["elem_type"].(string)
	switch typ {
	case "":
		return nil, decodeErrorf("", "node missing elem_type")
	case string(NodeProgram):
		structsVal, err := listAttr(node, typ, "structs", false)
		if err != nil {
			return nil, err
		}
		structs := make([]*StructDefinition, 0, len(structsVal))
		for _, raw := range structsVal {
			def, err := decodeAs[*StructDefinition](raw, typ)
			if err != nil {
				return nil, err
			}
			structs = append(structs, def)
		}
		funcsVal, err := listAttr(node, typ, "functions", false)
		if err != nil {
			return nil, err
		}
		funcs := make([]*FunctionDefinition, 0, len(funcsVal))
		for _, raw := range funcsVal {
			def, err := decodeAs[*FunctionDefinition](raw, typ)
			if err != nil {
				return nil, err
			}
			funcs = append(funcs, def)
		}
		return NewProgram(structs, funcs), nil
	case string(NodeStructDefinition):
		name, err := stringAttr(node, typ, "name", true)
		if err != nil {
			return nil, err
		}
		fieldsVal, err := listAttr(node, typ, "fields", false)
		if err != nil {
			return nil, err
		}
		fields := make([]*FieldDefinition, 0, len(fieldsVal))
		for _, raw := range fieldsVal {
			field, err := decodeAs[*FieldDefinition](raw, typ)
			if err != nil {
				return nil, err
			}
			fields = append(fields, field)
		}
		return NewStructDefinition(name, fields), nil
	case string(NodeFieldDefinition):
		name, err := stringAttr(node, typ, "name", true)
		if err != nil {
			return nil, err
		}
		typeName, err := stringAttr(node, typ, "var_type", true)
		if err != nil {
			return nil, err
		}
		return NewFieldDefinition(name, typeName), nil
	case string(NodeFunctionDefinition):
		name, err := stringAttr(node, typ, "name", true)
		if err != nil {
			return nil, err
		}
		argsVal, err := listAttr(node, typ, "args", false)
		if err != nil {
			return nil, err
		}
		params := make([]*Parameter, 0, len(argsVal))
		for _, raw := range argsVal {
			param, err := decodeAs[*Parameter](raw, typ)
			if err != nil {
				return nil, err
			}
			params = append(params, param)
		}
		returnType, err := stringAttr(node, typ, "return_type", false)
		if err != nil {
			return nil, err
		}
		body, err := decodeStatements(node, typ, "statements")
		if err != nil {
			return nil, err
		}
		return NewFunctionDefinition(name, params, returnType, body), nil
	case string(NodeParameter):
		name, err := stringAttr(node, typ, "name", true)
		if err != nil {
			return nil, err
		}
		typeName, err := stringAttr(node, typ, "var_type", false)
		if err != nil {
			return nil, err
		}
		return NewParameter(name, typeName), nil
	case string(NodeCatchClause):
		exceptionType, err := stringAttr(node, typ, "exception_type", true)
		if err != nil {
			return nil, err
		}
		body, err := decodeStatements(node, typ, "statements")
		if err != nil {
			return nil, err
		}
		return NewCatchClause(exceptionType, body), nil
	}
	if decoded, ok, err := decodeStatementNode(node, typ); ok || err != nil {
		return decoded, err
	}
	if decoded, ok, err := decodeExpressionNode(node, typ); ok || err != nil {
		return decoded, err
	}
	return nil, decodeErrorf(typ, "unsupported node type")
}

func decodeStatementNode(node map[string]any, typ string) (Node, bool, error) {
	switch typ {
	case string(NodeVariableDefinition):
		name, err := stringAttr(node, typ, "name", true)
		if err != nil {
			return nil, true, err
		}
		typeName, err := stringAttr(node, typ, "var_type", false)
		if err != nil {
			return nil, true, err
		}
		return NewVariableDefinition(name, typeName), true, nil
	case string(NodeAssignment):
		dotted, err := stringAttr(node, typ, "name", true)
		if err != nil {
			return nil, true, err
		}
		expr, err := expressionAttr(node, typ, "expression", true)
		if err != nil {
			return nil, true, err
		}
		name, fields := SplitPath(dotted)
		return NewAssignment(name, fields, expr), true, nil
	case string(NodeIfStatement):
		cond, err := expressionAttr(node, typ, "condition", true)
		if err != nil {
			return nil, true, err
		}
		body, err := decodeStatements(node, typ, "statements")
		if err != nil {
			return nil, true, err
		}
		elseBody, err := decodeStatements(node, typ, "else_statements")
		if err != nil {
			return nil, true, err
		}
		return NewIfStatement(cond, body, elseBody), true, nil
	case string(NodeForStatement):
		init, err := statementAttr(node, typ, "init")
		if err != nil {
			return nil, true, err
		}
		cond, err := expressionAttr(node, typ, "condition", true)
		if err != nil {
			return nil, true, err
		}
		update, err := statementAttr(node, typ, "update")
		if err != nil {
			return nil, true, err
		}
		body, err := decodeStatements(node, typ, "statements")
		if err != nil {
			return nil, true, err
		}
		return NewForStatement(init, cond, update, body), true, nil
	case string(NodeReturnStatement):
		expr, err := expressionAttr(node, typ, "expression", false)
		if err != nil {
			return nil, true, err
		}
		return NewReturnStatement(expr), true, nil
	case string(NodeRaiseStatement):
		expr, err := expressionAttr(node, typ, "exception_type", true)
		if err != nil {
			return nil, true, err
		}
		return NewRaiseStatement(expr), true, nil
	case string(NodeTryStatement):
		body, err := decodeStatements(node, typ, "statements")
		if err != nil {
			return nil, true, err
		}
		catchersVal, err := listAttr(node, typ, "catchers", false)
		if err != nil {
			return nil, true, err
		}
		catchers := make([]*CatchClause, 0, len(catchersVal))
		for _, raw := range catchersVal {
			catcher, err := decodeAs[*CatchClause](raw, typ)
			if err != nil {
				return nil, true, err
			}
			catchers = append(catchers, catcher)
		}
		return NewTryStatement(body, catchers), true, nil
	default:
		return nil, false, nil
	}
}

func decodeExpressionNode(node map[string]any, typ string) (Node, bool, error) {
	switch typ {
	case string(NodeIntegerLiteral):
		val, err := intAttr(node, typ, "val")
		if err != nil {
			return nil, true, err
		}
		return NewIntegerLiteral(val), true, nil
	case string(NodeStringLiteral):
		raw, ok := node["val"]
		if !ok {
			return nil, true, decodeErrorf(typ, "missing val")
		}
		val, ok := raw.(string)
		if !ok {
			return nil, true, decodeErrorf(typ, "invalid val %T", raw)
		}
		return NewStringLiteral(val), true, nil
	case string(NodeBooleanLiteral):
		val, err := boolAttr(node, typ, "val")
		if err != nil {
			return nil, true, err
		}
		return NewBooleanLiteral(val), true, nil
	case string(NodeNilLiteral):
		return NewNilLiteral(), true, nil
	case string(NodeVariable):
		dotted, err := stringAttr(node, typ, "name", true)
		if err != nil {
			return nil, true, err
		}
		name, fields := SplitPath(dotted)
		return NewVariable(name, fields), true, nil
	case string(NodeNewExpression):
		typeName, err := stringAttr(node, typ, "var_type", true)
		if err != nil {
			return nil, true, err
		}
		return NewNewExpression(typeName), true, nil
	case string(NodeFunctionCall):
		name, err := stringAttr(node, typ, "name", true)
		if err != nil {
			return nil, true, err
		}
		argsVal, err := listAttr(node, typ, "args", false)
		if err != nil {
			return nil, true, err
		}
		args := make([]Expression, 0, len(argsVal))
		for _, raw := range argsVal {
			arg, err := decodeAs[Expression](raw, typ)
			if err != nil {
				return nil, true, err
			}
			args = append(args, arg)
		}
		return NewFunctionCall(name, args), true, nil
	case string(NodeNegation), string(NodeNot):
		operand, err := expressionAttr(node, typ, "op1", true)
		if err != nil {
			return nil, true, err
		}
		return NewUnaryExpression(NodeType(typ), operand), true, nil
	}
	if IsBinaryOperator(typ) {
		left, err := expressionAttr(node, typ, "op1", true)
		if err != nil {
			return nil, true, err
		}
		right, err := expressionAttr(node, typ, "op2", true)
		if err != nil {
			return nil, true, err
		}
		return NewBinaryExpression(typ, left, right), true, nil
	}
	return nil, false, nil
}

func decodeAs[T Node](raw any, parent string) (T, error) {
	var zero T
	child, ok := asMap(raw)
	if !ok {
		return zero, decodeErrorf(parent, "invalid child %T", raw)
	}
	decoded, err := Decode(child)
	if err != nil {
		return zero, err
	}
	typed, ok := decoded.(T)
	if !ok {
		return zero, decodeErrorf(parent, "unexpected child %s", decoded.NodeType())
	}
	return typed, nil
}

func decodeStatements(node map[string]any, typ, key string) ([]Statement, error) {
	items, err := listAttr(node, typ, key, false)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return nil, nil
	}
	stmts := make([]Statement, 0, len(items))
	for _, raw := range items {
		stmt, err := decodeAs[Statement](raw, typ)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func expressionAttr(node map[string]any, typ, key string, required bool) (Expression, error) {
	raw, ok := node[key]
	if !ok || raw == nil {
		if required {
			return nil, decodeErrorf(typ, "missing %s", key)
		}
		return nil, nil
	}
	return decodeAs[Expression](raw, typ)
}

func statementAttr(node map[string]any, typ, key string) (Statement, error) {
	raw, ok := node[key]
	if !ok || raw == nil {
		return nil, decodeErrorf(typ, "missing %s", key)
	}
	return decodeAs[Statement](raw, typ)
}

func stringAttr(node map[string]any, typ, key string, required bool) (string, error) {
	raw, ok := node[key]
	if !ok || raw == nil {
		if required {
			return "", decodeErrorf(typ, "missing %s", key)
		}
		return "", nil
	}
	val, ok := raw.(string)
	if !ok {
		return "", decodeErrorf(typ, "invalid %s %T", key, raw)
	}
	if required && val == "" {
		return "", decodeErrorf(typ, "empty %s", key)
	}
	return val, nil
}

func listAttr(node map[string]any, typ, key string, required bool) ([]any, error) {
	raw, ok := node[key]
	if !ok || raw == nil {
		if required {
			return nil, decodeErrorf(typ, "missing %s", key)
		}
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, decodeErrorf(typ, "invalid %s %T", key, raw)
	}
	return items, nil
}

func intAttr(node map[string]any, typ, key string) (int64, error) {
	raw, ok := node[key]
	if !ok || raw == nil {
		return 0, decodeErrorf(typ, "missing %s", key)
	}
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, decodeErrorf(typ, "%s out of range: %d", key, v)
		}
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt64 || v < math.MinInt64 {
			return 0, decodeErrorf(typ, "%s is not an integer: %v", key, v)
		}
		return int64(v), nil
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, decodeErrorf(typ, "invalid %s %q", key, v.String())
		}
		return i, nil
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, decodeErrorf(typ, "invalid %s %q", key, v)
		}
		return i, nil
	default:
		return 0, decodeErrorf(typ, "invalid %s %T", key, raw)
	}
}

func boolAttr(node map[string]any, typ, key string) (bool, error) {
	raw, ok := node[key]
	if !ok || raw == nil {
		return false, decodeErrorf(typ, "missing %s", key)
	}
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		switch v {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, decodeErrorf(typ, "invalid %s %v", key, raw)
}

func asMap(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			s, ok := key.(string)
			if !ok {
				return nil, false
			}
			out[s] = val
		}
		return out, true
	default:
		return nil, false
	}
}
