package runtime

// Status is the execution-control signal of a statement or expression.
type Status int

const (
	StatusContinue Status = iota
	StatusReturn
	StatusRaise
)

func (s Status) String() string {
	switch s {
	case StatusContinue:
		return "continue"
	case StatusReturn:
		return "return"
	case StatusRaise:
		return "raise"
	default:
		return "unknown"
	}
}

// Outcome pairs a Status with its payload. A Continue outcome of an expression
// carries the expression's value.
type Outcome struct {
	Status Status
	Value  Value
}

// Continue is normal fallthrough with a nil payload.
func Continue() Outcome {
	return Outcome{Status: StatusContinue, Value: NilValue{}}
}

// Normal wraps an expression result.
func Normal(v Value) Outcome {
	return Outcome{Status: StatusContinue, Value: v}
}

func Returned(v Value) Outcome {
	if v == nil {
		v = NilValue{}
	}
	return Outcome{Status: StatusReturn, Value: v}
}

// Raised signals an exception carrying its string identifier.
func Raised(id string) Outcome {
	return Outcome{Status: StatusRaise, Value: ErrorValue{Message: id}}
}

// Abrupt reports whether control must unwind past the current evaluator.
func (o Outcome) Abrupt() bool {
	return o.Status != StatusContinue
}

// RaisedID returns the exception identifier of a Raise outcome.
func (o Outcome) RaisedID() (string, bool) {
	if o.Status != StatusRaise {
		return "", false
	}
	switch v := o.Value.(type) {
	case ErrorValue:
		return v.Message, true
	case StringValue:
		return v.Val, true
	}
	return "", false
}
