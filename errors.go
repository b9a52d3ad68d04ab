package buxom

import (
	"fmt"
	"strings"
)

type (
	// Error is implemented by every error value this package creates:
	// [Invalid], [MultipleInvalid], and [SchemaError]. Errors produced by
	// Coerce conversions and Callable functions pass through to the caller
	// unchanged and do not implement it.
	Error interface {
		error
		validationError()
	}

	// Invalid reports a single violation found while validating data:
	// a missing required key, a type mismatch, or a failed constraint.
	// Path locates the offending key, outermost key first; it is empty for
	// violations that name the key in the message itself.
	Invalid struct {
		Message string
		Path    []any
	}

	// MultipleInvalid collects every violation found by [Schema.ValidateAll].
	// It unwraps to its individual [Invalid] values, so errors.As and
	// errors.Is see through it.
	MultipleInvalid struct {
		Errors []*Invalid
	}

	// SchemaError reports a malformed schema definition, such as duplicate
	// keys or a value that is not a type, nested schema, or validator.
	// It is returned by [NewSchema], never by Validate.
	SchemaError struct {
		Message string
	}
)

// NewInvalid returns an Invalid with the given message and no path.
// Callable functions can return one to participate in the error taxonomy.
func NewInvalid(message string) *Invalid {
	return &Invalid{Message: message}
}

func invalidf(format string, args ...any) *Invalid {
	return &Invalid{Message: fmt.Sprintf(format, args...)}
}

func (e *Invalid) Error() string {
	if len(e.Path) == 0 {
		return e.Message
	}
	return pathString(e.Path) + ": " + e.Message
}

func (e *Invalid) validationError() {}

// prepend returns a copy of e with key added as the outermost path element.
func (e *Invalid) prepend(key any) *Invalid {
	path := make([]any, 0, len(e.Path)+1)
	path = append(path, key)
	path = append(path, e.Path...)
	return &Invalid{Message: e.Message, Path: path}
}

func pathString(path []any) string {
	parts := make([]string, len(path))
	for i := range path {
		parts[i] = fmt.Sprint(path[i])
	}
	return strings.Join(parts, ".")
}

func (e *MultipleInvalid) Error() string {
	msgs := make([]string, len(e.Errors))
	for i := range e.Errors {
		msgs[i] = e.Errors[i].Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the collected violations to the errors package.
func (e *MultipleInvalid) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i := range e.Errors {
		errs[i] = e.Errors[i]
	}
	return errs
}

func (e *MultipleInvalid) validationError() {}

func schemaErrorf(format string, args ...any) *SchemaError {
	return &SchemaError{Message: fmt.Sprintf(format, args...)}
}

func (e *SchemaError) Error() string {
	return "invalid schema: " + e.Message
}

func (e *SchemaError) validationError() {}
