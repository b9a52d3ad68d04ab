package buxom

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

type anyValidator struct {
	members []any // reflect.Type, *Schema, or Validator, in declaration order
	bad     error
}

// Any builds a union constraint from type references, nested schemas, and
// other validators. A value passes when it satisfies at least one member;
// members are tried in declaration order and the first success wins,
// keeping that member's conversions. With no members every value fails.
func Any(members ...any) Validator {
	return &anyValidator{
		members: members,
		bad:     verifyMembers("Any", members),
	}
}

func (v *anyValidator) verify() error { return v.bad }

func (v *anyValidator) Validate(data Map) (Map, error) {
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

func (v *anyValidator) match(key, value any) (any, error) {
	for _, m := range v.members {
		switch t := m.(type) {
		case reflect.Type:
			if instanceOf(value, t) {
				return value, nil
			}
		case *Schema:
			if sub, ok := AsMap(value); ok {
				if res, err := t.Validate(sub); err == nil {
					return res, nil
				}
			}
		case Validator:
			if res, err := t.Validate(Map{key: value}); err == nil {
				return res[key], nil
			}
		}
	}
	msg := "value did not match any allowed alternative"
	if names := typeNames(v.members); len(names) > 0 {
		msg = fmt.Sprintf("expected any of %s, got %T", strings.Join(names, ", "), value)
	}
	return nil, &Invalid{Message: msg, Path: []any{key}}
}

// Describe implements [Validator] by rendering the members as an anyOf.
func (v *anyValidator) Describe(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef) error {
	refs, err := describeMembers(name, schema, v.members)
	if err != nil {
		return err
	}
	ref.Value.AnyOf = refs
	return nil
}

// verifyMembers rejects members that are neither types, schemas, nor
// validators, and surfaces construction mistakes from members that carry
// parameters, such as a zero Range step. The error is held and surfaced by
// NewSchema, or by Validate when the combinator is used on its own.
func verifyMembers(op string, members []any) error {
	for _, m := range members {
		switch t := m.(type) {
		case reflect.Type, *Schema:
		case verifier:
			if err := t.verify(); err != nil {
				return err
			}
		case Validator:
		default:
			return schemaErrorf("%s member must be a type, a nested schema, or a validator, got %T", op, m)
		}
	}
	return nil
}

// typeNames renders the type-reference members for failure messages.
// Schema and validator members have no useful printable name.
func typeNames(members []any) []string {
	var names []string
	for _, m := range members {
		if t, ok := m.(reflect.Type); ok {
			names = append(names, t.String())
		}
	}
	return names
}

// describeMembers renders each member into its own schema ref for anyOf
// and allOf composition.
func describeMembers(name string, schema *openapi3.Schema, members []any) (openapi3.SchemaRefs, error) {
	refs := make(openapi3.SchemaRefs, 0, len(members))
	for _, m := range members {
		sub := &openapi3.SchemaRef{Value: openapi3.NewSchema()}
		switch t := m.(type) {
		case reflect.Type:
			applyTypeSchema(sub.Value, t)
		case Validator:
			if err := t.Describe(name, schema, sub); err != nil {
				return nil, err
			}
		}
		refs = append(refs, sub)
	}
	return refs, nil
}
