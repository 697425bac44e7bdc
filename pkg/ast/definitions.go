package ast

// Definitions

type FieldDefinition struct {
	nodeImpl

	Name     string `json:"name"`
	TypeName string `json:"var_type"`
}

func NewFieldDefinition(name, typeName string) *FieldDefinition {
	return &FieldDefinition{nodeImpl: newNodeImpl(NodeFieldDefinition), Name: name, TypeName: typeName}
}

type StructDefinition struct {
	nodeImpl

	Name   string             `json:"name"`
	Fields []*FieldDefinition `json:"fields"`
}

func NewStructDefinition(name string, fields []*FieldDefinition) *StructDefinition {
	return &StructDefinition{nodeImpl: newNodeImpl(NodeStructDefinition), Name: name, Fields: fields}
}

type Parameter struct {
	nodeImpl

	Name     string `json:"name"`
	TypeName string `json:"var_type,omitempty"`
}

func NewParameter(name, typeName string) *Parameter {
	return &Parameter{nodeImpl: newNodeImpl(NodeParameter), Name: name, TypeName: typeName}
}

type FunctionDefinition struct {
	nodeImpl

	Name       string       `json:"name"`
	Params     []*Parameter `json:"args"`
	ReturnType string       `json:"return_type,omitempty"`
	Body       []Statement  `json:"statements"`
}

func NewFunctionDefinition(name string, params []*Parameter, returnType string, body []Statement) *FunctionDefinition {
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition), Name: name, Params: params, ReturnType: returnType, Body: body}
}

// Arity is the parameter count used for overload resolution.
func (f *FunctionDefinition) Arity() int {
	return len(f.Params)
}

// Program root

type Program struct {
	nodeImpl

	Structs   []*StructDefinition   `json:"structs"`
	Functions []*FunctionDefinition `json:"functions"`
}

func NewProgram(structs []*StructDefinition, functions []*FunctionDefinition) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Structs: structs, Functions: functions}
}
