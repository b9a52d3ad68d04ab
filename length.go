package buxom

import (
	"fmt"
	"unicode/utf8"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type lengthValidator struct {
	min int
	max *int
}

// Length constrains the size of each value to min..max inclusive. Strings
// measure their rune length; slices, arrays, and maps their element count;
// values with no length fail. Use [MinLength] when there is no upper bound.
func Length(min, max int) Validator {
	return &lengthValidator{min: min, max: &max}
}

// MinLength is Length with no upper bound.
func MinLength(min int) Validator {
	return &lengthValidator{min: min}
}

func (v *lengthValidator) verify() error {
	if v.min < 0 {
		return schemaErrorf("Length minimum %d is negative", v.min)
	}
	if v.max != nil && *v.max < v.min {
		return schemaErrorf("Length bounds %d..%d are out of order", v.min, *v.max)
	}
	return nil
}

func (v *lengthValidator) Validate(data Map) (Map, error) {
	if err := v.verify(); err != nil {
		return nil, err
	}
	for key, value := range data {
		n, err := lengthOf(value)
		if err != nil {
			return nil, &Invalid{Message: err.Error(), Path: []any{key}}
		}
		if n < v.min || (v.max != nil && n > *v.max) {
			return nil, &Invalid{Message: v.boundsMessage(n), Path: []any{key}}
		}
	}
	return data, nil
}

func (v *lengthValidator) boundsMessage(n int) string {
	if v.max == nil {
		return fmt.Sprintf("length must be at least %d, got %d", v.min, n)
	}
	return fmt.Sprintf("length must be between %d and %d, got %d", v.min, *v.max, n)
}

// lengthOf measures strings in runes and everything else through the
// underlying validation library.
func lengthOf(value any) (int, error) {
	if s, ok := value.(string); ok {
		return utf8.RuneCountInString(s), nil
	}
	return validation.LengthOfValue(value)
}

// Describe implements [Validator] by setting the length bounds on the schema.
func (v *lengthValidator) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	if v.min > 0 {
		ref.Value.MinLength = uint64(v.min)
	}
	if v.max != nil {
		max := uint64(*v.max)
		ref.Value.MaxLength = &max
	}
	return nil
}
