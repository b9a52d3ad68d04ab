package buxom

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

type allValidator struct {
	members []any
	bad     error
}

// All chains constraints: a value must satisfy every member, evaluated in
// declaration order with each member's conversion feeding the next. Compose
// it with Coerce to convert first and constrain after. With no members
// every value passes.
func All(members ...any) Validator {
	return &allValidator{
		members: members,
		bad:     verifyMembers("All", members),
	}
}

func (v *allValidator) verify() error { return v.bad }

func (v *allValidator) Validate(data Map) (Map, error) {
	if v.bad != nil {
		return nil, v.bad
	}
	for key, value := range data {
		out, err := v.match(key, value)
		if err != nil {
			return nil, err
		}
		data[key] = out
	}
	return data, nil
}

func (v *allValidator) match(key, value any) (any, error) {
	for _, m := range v.members {
		switch t := m.(type) {
		case reflect.Type:
			if !instanceOf(value, t) {
				msg := fmt.Sprintf("expected all of %s, got %T", strings.Join(typeNames(v.members), ", "), value)
				return nil, &Invalid{Message: msg, Path: []any{key}}
			}
		case *Schema:
			sub, ok := AsMap(value)
			if !ok {
				return nil, &Invalid{
					Message: fmt.Sprintf("expected a mapping, got %T", value),
					Path:    []any{key},
				}
			}
			res, err := t.Validate(sub)
			if err != nil {
				return nil, prependPath(err, key)
			}
			value = res
		case Validator:
			res, err := t.Validate(Map{key: value})
			if err != nil {
				return nil, err
			}
			if out, ok := res[key]; ok {
				value = out
			}
		}
	}
	return value, nil
}

// Describe implements [Validator] by rendering the members as an allOf.
func (v *allValidator) Describe(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef) error {
	refs, err := describeMembers(name, schema, v.members)
	if err != nil {
		return err
	}
	ref.Value.AllOf = refs
	return nil
}
