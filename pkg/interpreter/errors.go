package interpreter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies fatal interpreter errors.
type ErrorKind int

const (
	NameError ErrorKind = iota
	TypeError
	FaultError
)

func (k ErrorKind) String() string {
	switch k {
	case NameError:
		return "NAME_ERROR"
	case TypeError:
		return "TYPE_ERROR"
	case FaultError:
		return "FAULT_ERROR"
	default:
		return fmt.Sprintf("ERROR_%d", int(k))
	}
}

// ParseErrorKind maps NAME_ERROR, TYPE_ERROR and FAULT_ERROR back to a kind.
func ParseErrorKind(s string) (ErrorKind, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NAME_ERROR":
		return NameError, true
	case "TYPE_ERROR":
		return TypeError, true
	case "FAULT_ERROR":
		return FaultError, true
	default:
		return 0, false
	}
}

// Error is a fatal condition that halts interpretation.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func nameErrorf(format string, args ...any) error {
	return &Error{Kind: NameError, Message: fmt.Sprintf(format, args...)}
}

func typeErrorf(format string, args ...any) error {
	return &Error{Kind: TypeError, Message: fmt.Sprintf(format, args...)}
}

func faultErrorf(format string, args ...any) error {
	return &Error{Kind: FaultError, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the ErrorKind of a fatal interpreter error.
func KindOf(err error) (ErrorKind, bool) {
	var interpErr *Error
	if errors.As(err, &interpErr) {
		return interpErr.Kind, true
	}
	return 0, false
}

// ValidationError aggregates problems found in a program before main runs.
type ValidationError struct {
	Issues []*Error
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return e.Issues[0].Error()
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.Error()
	}
	return fmt.Sprintf("%d program errors: %s", len(e.Issues), strings.Join(parts, "; "))
}

// As lets errors.As find the first issue as an *Error.
func (e *ValidationError) As(target any) bool {
	ptr, ok := target.(**Error)
	if !ok || len(e.Issues) == 0 {
		return false
	}
	*ptr = e.Issues[0]
	return true
}
