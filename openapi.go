package buxom

import (
	"fmt"
	"reflect"

	"github.com/getkin/kin-openapi/openapi3"
)

// NewSchemaRef renders the schema as an OpenAPI 3 object schema. Required
// markers become the object's required list, nested schemas nest, and each
// validator contributes the constraints it can express. Schemas built with
// Extra close the object to additional properties.
func NewSchemaRef(s *Schema) (*openapi3.SchemaRef, error) {
	ref := &openapi3.SchemaRef{Value: openapi3.NewSchema()}
	if err := s.Describe("", nil, ref); err != nil {
		return nil, err
	}
	return ref, nil
}

// Describe implements [Validator] by filling ref with an object schema
// describing this Schema's keys.
func (s *Schema) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	obj := ref.Value
	obj.Type = &openapi3.Types{openapi3.TypeObject}
	if obj.Properties == nil {
		obj.Properties = make(openapi3.Schemas, len(s.entries))
	}
	for _, e := range s.entries {
		name := fmt.Sprint(e.key)
		prop := &openapi3.SchemaRef{Value: openapi3.NewSchema()}
		if e.marker != nil && e.marker.IsRequired() {
			obj.Required = append(obj.Required, name)
		}
		switch {
		case e.nested != nil:
			if err := e.nested.Describe(name, obj, prop); err != nil {
				return err
			}
		case e.leaf != nil:
			if err := e.leaf.Describe(name, obj, prop); err != nil {
				return err
			}
		case e.typ != nil:
			applyTypeSchema(prop.Value, e.typ)
		}
		obj.Properties[name] = prop
	}
	if s.extra {
		no := false
		obj.AdditionalProperties = openapi3.AdditionalProperties{Has: &no}
	}
	return nil
}

// applyTypeSchema maps a Go type onto the closest OpenAPI type. Types with
// no counterpart, interfaces among them, leave the schema untyped.
func applyTypeSchema(sc *openapi3.Schema, t reflect.Type) {
	switch t.Kind() {
	case reflect.String:
		sc.Type = &openapi3.Types{openapi3.TypeString}
	case reflect.Bool:
		sc.Type = &openapi3.Types{openapi3.TypeBoolean}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		sc.Type = &openapi3.Types{openapi3.TypeInteger}
	case reflect.Float32, reflect.Float64:
		sc.Type = &openapi3.Types{openapi3.TypeNumber}
	case reflect.Slice, reflect.Array:
		sc.Type = &openapi3.Types{openapi3.TypeArray}
		item := openapi3.NewSchema()
		applyTypeSchema(item, t.Elem())
		sc.Items = &openapi3.SchemaRef{Value: item}
	case reflect.Map:
		sc.Type = &openapi3.Types{openapi3.TypeObject}
	case reflect.Ptr:
		sc.Nullable = true
		applyTypeSchema(sc, t.Elem())
	}
}
