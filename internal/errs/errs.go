// Package errs defines the run-fatal error kinds raised while building a sheet.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindConfig: a geometry invariant is violated. Raised before any page opens.
	KindConfig
	// KindInput: a record is malformed or its type has no theme entry.
	KindInput
	// KindRender: the QR encoder or the drawing surface failed mid-run.
	KindRender
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "configuration error"
	case KindInput:
		return "input error"
	case KindRender:
		return "render error"
	default:
		return "error"
	}
}

// NoRecord marks errors that are not tied to a single record.
const NoRecord = -1

// Error carries the offending value so a caller can fix the input and re-run.
type Error struct {
	Kind   Kind
	Op     string
	Record int
	Field  string
	Value  any
	Hint   string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Op != "" {
		b.WriteString(": ")
		b.WriteString(e.Op)
	}
	if e.Record >= 0 {
		fmt.Fprintf(&b, ": record %d", e.Record)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": %s", e.Field)
		if e.Value != nil {
			fmt.Fprintf(&b, "=%v", e.Value)
		}
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if e.Hint != "" {
		b.WriteString("\n")
		b.WriteString(e.Hint)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Config builds a configuration error for a geometry field.
func Config(op, field string, value any, hint string, err error) *Error {
	return &Error{Kind: KindConfig, Op: op, Record: NoRecord, Field: field, Value: value, Hint: hint, Err: err}
}

// Input builds an input error. Pass NoRecord when no single record is at fault.
func Input(record int, field string, value any, err error) *Error {
	return &Error{Kind: KindInput, Op: "check input", Record: record, Field: field, Value: value, Err: err}
}

// Render builds a render error.
func Render(op string, record int, err error) *Error {
	return &Error{Kind: KindRender, Op: op, Record: record, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
