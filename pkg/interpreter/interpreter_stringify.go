package interpreter

import (
	"fmt"
	"strconv"
	"strings"

	"brewin/interpreter-go/pkg/runtime"
)

// valueToString renders the printable form of a forced value.
func valueToString(val runtime.Value) string {
	return stringify(val, make(map[*runtime.StructInstance]struct{}))
}

func stringify(val runtime.Value, visiting map[*runtime.StructInstance]struct{}) string {
	switch v := val.(type) {
	case runtime.StringValue:
		return v.Val
	case runtime.BoolValue:
		if v.Val {
			return "true"
		}
		return "false"
	case runtime.IntValue:
		return strconv.FormatInt(v.Val, 10)
	case runtime.NilValue:
		return "nil"
	case runtime.ErrorValue:
		return v.Message
	case runtime.StructValue:
		if v.IsNil() {
			return "nil"
		}
		return structInstanceToString(v, visiting)
	case *runtime.LazyValue:
		if v.Forced() {
			out, _ := v.Force()
			return stringify(out.Value, visiting)
		}
		return "<lazy>"
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("[%s]", v.Kind())
	}
}

// structInstanceToString renders `name { field: value, ... }` in declared
// field order. A struct reached again through its own fields prints as `...`.
func structInstanceToString(v runtime.StructValue, visiting map[*runtime.StructInstance]struct{}) string {
	if _, ok := visiting[v.Instance]; ok {
		return v.TypeName + " { ... }"
	}
	visiting[v.Instance] = struct{}{}
	defer delete(visiting, v.Instance)

	fields := v.Instance.Definition.FieldNames
	if len(fields) == 0 {
		return v.TypeName + " {}"
	}
	parts := make([]string, 0, len(fields))
	for _, name := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", name, stringify(v.Instance.Fields[name], visiting)))
	}
	return fmt.Sprintf("%s { %s }", v.TypeName, strings.Join(parts, ", "))
}

// Printable is the text print() writes for v.
func Printable(v runtime.Value) string {
	return valueToString(v)
}
