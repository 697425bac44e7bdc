package interpreter

import (
	"errors"

	"brewin/interpreter-go/pkg/runtime"
)

type binaryOp func(left, right runtime.Value) (runtime.Value, error)

// operatorTable maps a left-operand kind to the operators defined for it.
type operatorTable map[runtime.Kind]map[string]binaryOp

var errDivisionByZero = errors.New("division by zero")

func buildOperatorTable() operatorTable {
	equality := map[string]binaryOp{
		"==": func(l, r runtime.Value) (runtime.Value, error) {
			return runtime.BoolValue{Val: valuesEqual(l, r)}, nil
		},
		"!=": func(l, r runtime.Value) (runtime.Value, error) {
			return runtime.BoolValue{Val: !valuesEqual(l, r)}, nil
		},
	}
	withEquality := func(ops map[string]binaryOp) map[string]binaryOp {
		for sym, fn := range equality {
			ops[sym] = fn
		}
		return ops
	}

	return operatorTable{
		runtime.KindInt: withEquality(map[string]binaryOp{
			"+": intArith(func(a, b int64) int64 { return a + b }),
			"-": intArith(func(a, b int64) int64 { return a - b }),
			"*": intArith(func(a, b int64) int64 { return a * b }),
			"/": func(l, r runtime.Value) (runtime.Value, error) {
				divisor := r.(runtime.IntValue).Val
				if divisor == 0 {
					return nil, errDivisionByZero
				}
				return runtime.IntValue{Val: floorDiv(l.(runtime.IntValue).Val, divisor)}, nil
			},
			"<":  intCompare(func(a, b int64) bool { return a < b }),
			"<=": intCompare(func(a, b int64) bool { return a <= b }),
			">":  intCompare(func(a, b int64) bool { return a > b }),
			">=": intCompare(func(a, b int64) bool { return a >= b }),
		}),
		runtime.KindString: withEquality(map[string]binaryOp{
			"+": func(l, r runtime.Value) (runtime.Value, error) {
				return runtime.StringValue{Val: l.(runtime.StringValue).Val + r.(runtime.StringValue).Val}, nil
			},
		}),
		runtime.KindBool: withEquality(map[string]binaryOp{
			"&&": func(l, r runtime.Value) (runtime.Value, error) {
				return runtime.BoolValue{Val: l.(runtime.BoolValue).Val && r.(runtime.BoolValue).Val}, nil
			},
			"||": func(l, r runtime.Value) (runtime.Value, error) {
				return runtime.BoolValue{Val: l.(runtime.BoolValue).Val || r.(runtime.BoolValue).Val}, nil
			},
		}),
		runtime.KindNil:    withEquality(map[string]binaryOp{}),
		runtime.KindStruct: withEquality(map[string]binaryOp{}),
	}
}

func intArith(fn func(a, b int64) int64) binaryOp {
	return func(l, r runtime.Value) (runtime.Value, error) {
		return runtime.IntValue{Val: fn(l.(runtime.IntValue).Val, r.(runtime.IntValue).Val)}, nil
	}
}

func intCompare(fn func(a, b int64) bool) binaryOp {
	return func(l, r runtime.Value) (runtime.Value, error) {
		return runtime.BoolValue{Val: fn(l.(runtime.IntValue).Val, r.(runtime.IntValue).Val)}, nil
	}
}

// floorDiv rounds the quotient toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// operandsCompatible reports whether two operand kinds may meet under op.
// Equality accepts any pairing; everything else needs matching kinds.
func operandsCompatible(op string, left, right runtime.Value) bool {
	if op == "==" || op == "!=" {
		return true
	}
	return left.Kind() == right.Kind()
}

// applyBinary dispatches op through the table. Operands must already be forced.
func (i *Interpreter) applyBinary(op string, left, right runtime.Value) (runtime.Value, error) {
	if !operandsCompatible(op, left, right) {
		return nil, typeErrorf("Incompatible types for %s operation", op)
	}
	fn, ok := i.ops[left.Kind()][op]
	if !ok {
		return nil, typeErrorf("Incompatible operator %s for type %s", op, runtime.TypeName(left))
	}
	return fn(left, right)
}

// valuesEqual compares tag and value. Nil equals an uninitialized struct, and
// initialized structs compare by definition and deep field equality.
func valuesEqual(left, right runtime.Value) bool {
	return equalValues(left, right, make(map[[2]*runtime.StructInstance]struct{}))
}

func equalValues(left, right runtime.Value, seen map[[2]*runtime.StructInstance]struct{}) bool {
	switch l := left.(type) {
	case runtime.IntValue:
		r, ok := right.(runtime.IntValue)
		return ok && l.Val == r.Val
	case runtime.BoolValue:
		r, ok := right.(runtime.BoolValue)
		return ok && l.Val == r.Val
	case runtime.StringValue:
		r, ok := right.(runtime.StringValue)
		return ok && l.Val == r.Val
	case runtime.ErrorValue:
		r, ok := right.(runtime.ErrorValue)
		return ok && l.Message == r.Message
	case runtime.NilValue:
		switch r := right.(type) {
		case runtime.NilValue:
			return true
		case runtime.StructValue:
			return r.IsNil()
		}
		return false
	case runtime.StructValue:
		switch r := right.(type) {
		case runtime.NilValue:
			return l.IsNil()
		case runtime.StructValue:
			return structsEqual(l, r, seen)
		}
		return false
	default:
		return false
	}
}

func structsEqual(l, r runtime.StructValue, seen map[[2]*runtime.StructInstance]struct{}) bool {
	if l.IsNil() || r.IsNil() {
		return l.IsNil() && r.IsNil()
	}
	if l.Instance == r.Instance {
		return true
	}
	if l.Instance.Definition != r.Instance.Definition {
		return false
	}
	key := [2]*runtime.StructInstance{l.Instance, r.Instance}
	if _, ok := seen[key]; ok {
		return true
	}
	seen[key] = struct{}{}
	for _, field := range l.Instance.Definition.FieldNames {
		if !equalValues(l.Instance.Fields[field], r.Instance.Fields[field], seen) {
			return false
		}
	}
	return true
}
