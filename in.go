package buxom

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type inValidator struct {
	rule   validation.InRule
	values []any
	msg    string
}

// In accepts only values equal to one of the given values.
func In(values ...any) Validator {
	want := make([]string, len(values))
	for i := range values {
		want[i] = fmt.Sprintf("'%v'", values[i])
	}
	msg := fmt.Sprintf("must be one of %s", strings.Join(want, ", "))
	return &inValidator{
		rule:   validation.In(values...).Error(msg),
		values: values,
		msg:    msg,
	}
}

func (v *inValidator) Validate(data Map) (Map, error) {
	for key, value := range data {
		// The underlying rule waves empty values through, so zero values
		// like "" and 0 are checked against the set by hand.
		if validation.IsEmpty(value) {
			if !v.member(value) {
				return nil, v.invalid(key, value)
			}
			continue
		}
		if err := v.rule.Validate(value); err != nil {
			return nil, v.invalid(key, value)
		}
	}
	return data, nil
}

func (v *inValidator) member(value any) bool {
	for i := range v.values {
		if reflect.DeepEqual(value, v.values[i]) {
			return true
		}
	}
	return false
}

func (v *inValidator) invalid(key, value any) *Invalid {
	return &Invalid{
		Message: fmt.Sprintf("%s, got '%v'", v.msg, value),
		Path:    []any{key},
	}
}

// Describe implements [Validator] by listing the allowed values as an enum.
func (v *inValidator) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Enum = v.values
	return nil
}
