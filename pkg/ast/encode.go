package ast

// Encode renders a node back into its interchange map form. It is the inverse of
// Decode; dotted references are joined back into a single name.
func Encode(node Node) map[string]any {
	if node == nil {
		return nil
	}
	out := map[string]any{"elem_type": string(node.NodeType())}
	switch n := node.(type) {
	case *Program:
		structs := make([]any, 0, len(n.Structs))
		for _, def := range n.Structs {
			structs = append(structs, Encode(def))
		}
		funcs := make([]any, 0, len(n.Functions))
		for _, def := range n.Functions {
			funcs = append(funcs, Encode(def))
		}
		out["structs"] = structs
		out["functions"] = funcs
	case *StructDefinition:
		fields := make([]any, 0, len(n.Fields))
		for _, field := range n.Fields {
			fields = append(fields, Encode(field))
		}
		out["name"] = n.Name
		out["fields"] = fields
	case *FieldDefinition:
		out["name"] = n.Name
		out["var_type"] = n.TypeName
	case *FunctionDefinition:
		params := make([]any, 0, len(n.Params))
		for _, param := range n.Params {
			params = append(params, Encode(param))
		}
		out["name"] = n.Name
		out["args"] = params
		out["return_type"] = optionalString(n.ReturnType)
		out["statements"] = encodeStatements(n.Body)
	case *Parameter:
		out["name"] = n.Name
		out["var_type"] = optionalString(n.TypeName)
	case *VariableDefinition:
		out["name"] = n.Name
		out["var_type"] = optionalString(n.TypeName)
	case *Assignment:
		out["name"] = n.Path()
		out["expression"] = Encode(n.Expression)
	case *FunctionCall:
		args := make([]any, 0, len(n.Arguments))
		for _, arg := range n.Arguments {
			args = append(args, Encode(arg))
		}
		out["name"] = n.Name
		out["args"] = args
	case *IfStatement:
		out["condition"] = Encode(n.Condition)
		out["statements"] = encodeStatements(n.Body)
		if n.Else != nil {
			out["else_statements"] = encodeStatements(n.Else)
		} else {
			out["else_statements"] = nil
		}
	case *ForStatement:
		out["init"] = Encode(n.Init)
		out["condition"] = Encode(n.Condition)
		out["update"] = Encode(n.Update)
		out["statements"] = encodeStatements(n.Body)
	case *ReturnStatement:
		if n.Expression != nil {
			out["expression"] = Encode(n.Expression)
		} else {
			out["expression"] = nil
		}
	case *RaiseStatement:
		out["exception_type"] = Encode(n.ExceptionType)
	case *TryStatement:
		catchers := make([]any, 0, len(n.Catchers))
		for _, catcher := range n.Catchers {
			catchers = append(catchers, Encode(catcher))
		}
		out["statements"] = encodeStatements(n.Body)
		out["catchers"] = catchers
	case *CatchClause:
		out["exception_type"] = n.ExceptionType
		out["statements"] = encodeStatements(n.Body)
	case *IntegerLiteral:
		out["val"] = n.Value
	case *StringLiteral:
		out["val"] = n.Value
	case *BooleanLiteral:
		out["val"] = n.Value
	case *NilLiteral:
	case *Variable:
		out["name"] = n.Path()
	case *NewExpression:
		out["var_type"] = n.TypeName
	case *BinaryExpression:
		out["op1"] = Encode(n.Left)
		out["op2"] = Encode(n.Right)
	case *UnaryExpression:
		out["op1"] = Encode(n.Operand)
	}
	return out
}

func encodeStatements(stmts []Statement) []any {
	out := make([]any, 0, len(stmts))
	for _, stmt := range stmts {
		out = append(out, Encode(stmt))
	}
	return out
}

func optionalString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
