package interpreter

import (
	"brewin/interpreter-go/pkg/ast"
	"brewin/interpreter-go/pkg/runtime"
)

// declareStructs registers every struct before fields are validated, so field
// types may refer to structs declared later in the program.
func (i *Interpreter) declareStructs(defs []*ast.StructDefinition) []error {
	var errs []error
	declared := make([]*runtime.StructDefinition, 0, len(defs))
	sources := make([]*ast.StructDefinition, 0, len(defs))
	for _, def := range defs {
		if def == nil {
			continue
		}
		structDef := runtime.NewStructDefinition(def.Name)
		if !i.types.Define(structDef) {
			errs = append(errs, nameErrorf("Duplicate definition for struct %s", def.Name))
			continue
		}
		declared = append(declared, structDef)
		sources = append(sources, def)
	}
	for idx, structDef := range declared {
		for _, field := range sources[idx].Fields {
			if !i.types.IsValid(field.TypeName) {
				errs = append(errs, typeErrorf("Invalid type %s for field %s of struct %s", field.TypeName, field.Name, structDef.Name))
				continue
			}
			if !structDef.AddField(field.Name, field.TypeName) {
				errs = append(errs, nameErrorf("Duplicate field %s in struct %s", field.Name, structDef.Name))
			}
		}
	}
	return errs
}

func (i *Interpreter) evaluateNewExpression(expr *ast.NewExpression) (runtime.Outcome, error) {
	val, ok := i.types.Instantiate(expr.TypeName)
	if !ok {
		return runtime.Outcome{}, typeErrorf("Invalid struct type %s in new expression", expr.TypeName)
	}
	return runtime.Normal(val), nil
}

// walkFields follows a field chain from base and returns the struct that owns
// the final field. Every hop is forced before it is inspected.
func (i *Interpreter) walkFields(path string, base runtime.Value, fields []string) (runtime.StructValue, runtime.Outcome, error) {
	current := base
	for idx, field := range fields {
		owner, out, err := i.structOperand(path, current)
		if err != nil || out.Abrupt() {
			return runtime.StructValue{}, out, err
		}
		if idx == len(fields)-1 {
			if _, ok := owner.Instance.Definition.FieldType(field); !ok {
				return runtime.StructValue{}, runtime.Outcome{}, nameErrorf("Field %s not found in struct %s", field, owner.TypeName)
			}
			return owner, runtime.Normal(owner), nil
		}
		next, ok := owner.Instance.Fields[field]
		if !ok {
			return runtime.StructValue{}, runtime.Outcome{}, nameErrorf("Field %s not found in struct %s", field, owner.TypeName)
		}
		current = next
	}
	return runtime.StructValue{}, runtime.Outcome{}, nameErrorf("Missing field name in %s", path)
}

func (i *Interpreter) structOperand(path string, v runtime.Value) (runtime.StructValue, runtime.Outcome, error) {
	out, err := runtime.Resolve(v)
	if err != nil || out.Abrupt() {
		return runtime.StructValue{}, out, err
	}
	switch val := out.Value.(type) {
	case runtime.StructValue:
		if val.IsNil() {
			return runtime.StructValue{}, runtime.Outcome{}, faultErrorf("Cannot access field of nil struct in %s", path)
		}
		return val, out, nil
	case runtime.NilValue:
		return runtime.StructValue{}, runtime.Outcome{}, faultErrorf("Cannot access field of nil struct in %s", path)
	default:
		return runtime.StructValue{}, runtime.Outcome{}, typeErrorf("Cannot access field of non-struct value of type %s in %s", runtime.TypeName(out.Value), path)
	}
}

// evaluateFieldAccess reads a dotted reference such as `p.addr.zip`.
func (i *Interpreter) evaluateFieldAccess(ref *ast.Variable) (runtime.Outcome, error) {
	base, ok := i.env.Get(ref.Name)
	if !ok {
		return runtime.Outcome{}, nameErrorf("Variable %s not found", ref.Name)
	}
	owner, out, err := i.walkFields(ref.Path(), base, ref.Fields)
	if err != nil || out.Abrupt() {
		return out, err
	}
	return runtime.Resolve(owner.Instance.Fields[ref.Fields[len(ref.Fields)-1]])
}

// assignField evaluates the right-hand side eagerly and stores it in place, so
// every alias of the struct observes the write.
func (i *Interpreter) assignField(stmt *ast.Assignment) (runtime.Outcome, error) {
	base, ok := i.env.Get(stmt.Name)
	if !ok {
		return runtime.Outcome{}, nameErrorf("Undefined variable %s in assignment", stmt.Name)
	}
	owner, out, err := i.walkFields(stmt.Path(), base, stmt.Fields)
	if err != nil || out.Abrupt() {
		return out, err
	}
	out, err = i.evaluateExpression(stmt.Expression, i.env)
	if err != nil || out.Abrupt() {
		return out, err
	}
	field := stmt.Fields[len(stmt.Fields)-1]
	fieldType, _ := owner.Instance.Definition.FieldType(field)
	stored, ok := i.coerceToField(fieldType, out.Value)
	if !ok {
		return runtime.Outcome{}, typeErrorf("Cannot assign %s to field %s of type %s", runtime.TypeName(out.Value), stmt.Path(), fieldType)
	}
	owner.Instance.Fields[field] = stored
	return runtime.Continue(), nil
}

// coerceToField checks v against a declared field type. Nil stored into a
// struct-typed field becomes an uninitialized struct of that type.
func (i *Interpreter) coerceToField(fieldType string, v runtime.Value) (runtime.Value, bool) {
	if i.types.IsStruct(fieldType) {
		switch val := v.(type) {
		case runtime.NilValue:
			return runtime.StructValue{TypeName: fieldType}, true
		case runtime.StructValue:
			return val, val.TypeName == fieldType
		}
		return nil, false
	}
	return v, runtime.TypeName(v) == fieldType
}
