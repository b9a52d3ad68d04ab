package buxom

import (
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type datetimeValidator struct {
	rule   validation.DateRule
	layout string
}

// Datetime requires each string value to parse under the given time layout,
// such as time.RFC3339 or "2006-01-02". Empty strings pass; combine with
// Length or In to reject them.
func Datetime(layout string) Validator {
	return &datetimeValidator{
		rule:   validation.Date(layout),
		layout: layout,
	}
}

func (v *datetimeValidator) verify() error {
	if v.layout == "" {
		return schemaErrorf("Datetime layout is empty")
	}
	return nil
}

func (v *datetimeValidator) Validate(data Map) (Map, error) {
	if err := v.verify(); err != nil {
		return nil, err
	}
	for key, value := range data {
		if err := v.rule.Validate(value); err != nil {
			return nil, &Invalid{Message: err.Error(), Path: []any{key}}
		}
	}
	return data, nil
}

// Describe implements [Validator] by recording the layout as the format.
func (v *datetimeValidator) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Type = &openapi3.Types{openapi3.TypeString}
	ref.Value.Format = v.layout
	return nil
}
