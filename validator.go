package buxom

import (
	"reflect"

	"github.com/getkin/kin-openapi/openapi3"
)

type (
	// Map is the mapping shape buxom validates. Keys may be any comparable
	// value, not just strings, so YAML documents and schema literals with
	// integer or boolean keys work unchanged.
	Map map[any]any

	// Validator is the interface all schema values implement. Validate
	// receives the mapping entries it applies to, returns the mapping with
	// any conversions written back, and reports the first violation found.
	// Describe renders the equivalent OpenAPI 3 constraints into ref.
	Validator interface {
		Validate(data Map) (Map, error)
		Describe(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef) error
	}
)

// Type references for schema values. A data value satisfies a type reference
// when its dynamic type matches, so Int rejects a float64 even when the
// float is integral. Any reflect.Type works as a schema value; these cover
// the types JSON and YAML decoding produce.
var (
	String = reflect.TypeOf("")
	Int    = reflect.TypeOf(int(0))
	Float  = reflect.TypeOf(float64(0))
	Bool   = reflect.TypeOf(false)
)

// instanceOf reports whether value's dynamic type satisfies t. Interface
// types match by implementation, everything else by assignability. A nil
// value satisfies no type.
func instanceOf(value any, t reflect.Type) bool {
	if value == nil {
		return false
	}
	vt := reflect.TypeOf(value)
	if t.Kind() == reflect.Interface {
		return vt.Implements(t)
	}
	return vt.AssignableTo(t)
}

// AsMap adapts common mapping shapes to Map. A Map or map[any]any comes
// back without copying; a map[string]any, the shape encoding/json and
// yaml.v3 produce, is converted one level deep. Nested mappings are adapted
// as validation descends into them.
func AsMap(v any) (Map, bool) {
	switch m := v.(type) {
	case Map:
		return m, true
	case map[any]any:
		return Map(m), true
	case map[string]any:
		out := make(Map, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, true
	}
	return nil, false
}
