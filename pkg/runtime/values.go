package runtime

import (
	"fmt"

	"brewin/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInt Kind = iota
	KindBool
	KindString
	KindNil
	KindStruct
	KindLazy
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindNil:
		return "nil"
	case KindStruct:
		return "struct"
	case KindLazy:
		return "lazy"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type IntValue struct {
	Val int64
}

func (v IntValue) Kind() Kind { return KindInt }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

// ErrorValue carries the identifier of a raised exception.
type ErrorValue struct {
	Message string
}

func (v ErrorValue) Kind() Kind { return KindError }

// Construct builds the value of a literal node.
func Construct(lit ast.Expression) (Value, error) {
	switch n := lit.(type) {
	case *ast.IntegerLiteral:
		return IntValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return BoolValue{Val: n.Value}, nil
	case *ast.NilLiteral:
		return NilValue{}, nil
	default:
		return nil, fmt.Errorf("not a literal: %T", lit)
	}
}

//-----------------------------------------------------------------------------
// Structs
//-----------------------------------------------------------------------------

// StructDefinition holds the ordered field list of a declared struct.
type StructDefinition struct {
	Name       string
	FieldNames []string
	FieldTypes map[string]string

	instantiated bool
}

func NewStructDefinition(name string) *StructDefinition {
	return &StructDefinition{Name: name, FieldTypes: make(map[string]string)}
}

// AddField appends a field. It reports false when the name is already declared.
func (d *StructDefinition) AddField(name, typeName string) bool {
	if _, exists := d.FieldTypes[name]; exists {
		return false
	}
	d.FieldNames = append(d.FieldNames, name)
	d.FieldTypes[name] = typeName
	return true
}

func (d *StructDefinition) FieldType(name string) (string, bool) {
	typeName, ok := d.FieldTypes[name]
	return typeName, ok
}

// Instantiated reports whether `new` has produced an instance of this struct.
func (d *StructDefinition) Instantiated() bool {
	return d.instantiated
}

// StructInstance is shared by pointer: every alias observes field writes.
type StructInstance struct {
	Definition *StructDefinition
	Fields     map[string]Value
}

// StructValue is a struct-typed slot. A nil Instance is an uninitialized struct,
// which prints as nil and compares equal to nil.
type StructValue struct {
	TypeName string
	Instance *StructInstance
}

func (v StructValue) Kind() Kind { return KindStruct }

func (v StructValue) IsNil() bool { return v.Instance == nil }

// TypeName returns the Brewin type name of a value. Struct values report their
// declared struct name.
func TypeName(v Value) string {
	switch val := v.(type) {
	case StructValue:
		return val.TypeName
	case nil:
		return "nil"
	default:
		return val.Kind().String()
	}
}

//-----------------------------------------------------------------------------
// Type registry
//-----------------------------------------------------------------------------

var primitiveTypes = map[string]struct{}{
	"int":    {},
	"bool":   {},
	"string": {},
}

// Types holds the struct definitions of one program.
type Types struct {
	structs map[string]*StructDefinition
}

func NewTypes() *Types {
	return &Types{structs: make(map[string]*StructDefinition)}
}

// Define registers a struct. It reports false when the name is taken.
func (t *Types) Define(def *StructDefinition) bool {
	if _, exists := t.structs[def.Name]; exists {
		return false
	}
	if _, primitive := primitiveTypes[def.Name]; primitive {
		return false
	}
	t.structs[def.Name] = def
	return true
}

func (t *Types) Struct(name string) (*StructDefinition, bool) {
	def, ok := t.structs[name]
	return def, ok
}

// IsValid reports whether name is a primitive type or a declared struct.
func (t *Types) IsValid(name string) bool {
	if _, ok := primitiveTypes[name]; ok {
		return true
	}
	_, ok := t.structs[name]
	return ok
}

func (t *Types) IsStruct(name string) bool {
	_, ok := t.structs[name]
	return ok
}

// Default returns the canonical default of a type: 0, false, "" or an
// uninitialized struct.
func (t *Types) Default(name string) (Value, bool) {
	switch name {
	case "int":
		return IntValue{Val: 0}, true
	case "bool":
		return BoolValue{Val: false}, true
	case "string":
		return StringValue{Val: ""}, true
	}
	if _, ok := t.structs[name]; ok {
		return StructValue{TypeName: name}, true
	}
	return nil, false
}

// Instantiate allocates a struct instance with every field at its default.
func (t *Types) Instantiate(name string) (StructValue, bool) {
	def, ok := t.structs[name]
	if !ok {
		return StructValue{}, false
	}
	inst := &StructInstance{Definition: def, Fields: make(map[string]Value, len(def.FieldNames))}
	for _, field := range def.FieldNames {
		val, _ := t.Default(def.FieldTypes[field])
		inst.Fields[field] = val
	}
	def.instantiated = true
	return StructValue{TypeName: name, Instance: inst}, true
}
