package buxom

import (
	"github.com/getkin/kin-openapi/openapi3"
)

type callableValidator struct {
	fn func(any) (any, error)
}

// Callable wraps a conversion function as a validator. The function runs
// against each value and its result is written back into the mapping. An
// error from the function aborts validation and reaches the caller
// unchanged; return an error built with [NewInvalid] to participate in the
// package's error taxonomy.
func Callable(fn func(any) (any, error)) Validator {
	return &callableValidator{fn: fn}
}

func (v *callableValidator) verify() error {
	if v.fn == nil {
		return schemaErrorf("Callable function is nil")
	}
	return nil
}

func (v *callableValidator) Validate(data Map) (Map, error) {
	if err := v.verify(); err != nil {
		return nil, err
	}
	for key, value := range data {
		out, err := v.fn(value)
		if err != nil {
			return nil, err
		}
		data[key] = out
	}
	return data, nil
}

// Describe implements [Validator]. A bare function exposes nothing worth
// documenting, so the schema is left untouched.
func (v *callableValidator) Describe(_ string, _ *openapi3.Schema, _ *openapi3.SchemaRef) error {
	return nil
}
