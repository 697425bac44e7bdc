package runtime

import "brewin/interpreter-go/pkg/ast"

// Evaluator evaluates an expression against an environment.
type Evaluator func(expr ast.Expression, env *Environment) (Outcome, error)

// LazyValue defers an expression until its value is demanded. The result is
// memoized on the first successful force; a force that raises or fails is not
// memoized and will be re-run on the next demand.
type LazyValue struct {
	expr ast.Expression
	env  *Environment
	eval Evaluator

	forced bool
	value  Value
}

// NewLazyValue captures expr over env. The caller passes a snapshot so later
// mutation of the live environment stays invisible to the deferred computation.
func NewLazyValue(expr ast.Expression, env *Environment, eval Evaluator) *LazyValue {
	return &LazyValue{expr: expr, env: env, eval: eval}
}

func (v *LazyValue) Kind() Kind { return KindLazy }

func (v *LazyValue) Expression() ast.Expression { return v.expr }

// Forced reports whether a value has been memoized.
func (v *LazyValue) Forced() bool { return v.forced }

// Force evaluates the deferred expression, or returns the memoized value.
func (v *LazyValue) Force() (Outcome, error) {
	if v.forced {
		return Normal(v.value), nil
	}
	out, err := v.eval(v.expr, v.env)
	if err != nil || out.Abrupt() {
		return out, err
	}
	out, err = Resolve(out.Value)
	if err != nil || out.Abrupt() {
		return out, err
	}
	v.value = out.Value
	v.forced = true
	v.env = nil
	return out, nil
}

// Resolve forces v when it is lazy and wraps it as a normal outcome otherwise.
func Resolve(v Value) (Outcome, error) {
	lazy, ok := v.(*LazyValue)
	if !ok {
		return Normal(v), nil
	}
	return lazy.Force()
}
