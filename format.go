package buxom

import (
	"fmt"

	"github.com/asaskevich/govalidator"
	"github.com/getkin/kin-openapi/openapi3"
)

type formatValidator struct {
	format string
	check  func(string) bool
	msg    string
}

// Email requires each value to be a syntactically valid email address.
func Email() Validator {
	return &formatValidator{
		format: "email",
		check:  govalidator.IsEmail,
		msg:    "must be a valid email address",
	}
}

// URL requires each value to be a valid URL.
func URL() Validator {
	return &formatValidator{
		format: "uri",
		check:  govalidator.IsURL,
		msg:    "must be a valid URL",
	}
}

// UUID requires each value to be a valid UUID of any version.
func UUID() Validator {
	return &formatValidator{
		format: "uuid",
		check:  govalidator.IsUUID,
		msg:    "must be a valid UUID",
	}
}

func (v *formatValidator) Validate(data Map) (Map, error) {
	for key, value := range data {
		s, ok := value.(string)
		if !ok {
			return nil, &Invalid{
				Message: fmt.Sprintf("expected string, got %T", value),
				Path:    []any{key},
			}
		}
		if !v.check(s) {
			return nil, &Invalid{Message: v.msg, Path: []any{key}}
		}
	}
	return data, nil
}

// Describe implements [Validator] by recording the well-known format name.
func (v *formatValidator) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Type = &openapi3.Types{openapi3.TypeString}
	ref.Value.Format = v.format
	return nil
}
