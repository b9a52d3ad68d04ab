package buxom

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type coerceValidator struct {
	target reflect.Type
}

// Coerce converts each value to the target type and writes the result back
// into the mapping. Values already of the target type pass through, so
// coercion is idempotent. Strings parse with strconv, floats truncate
// toward zero when the target is an integer type, and anything converts to
// string through fmt. A failed conversion aborts validation with the
// underlying error, not an [Invalid]. Compose with other validators via
// All to constrain the converted value.
func Coerce(t reflect.Type) Validator {
	return &coerceValidator{target: t}
}

func (v *coerceValidator) verify() error {
	if v.target == nil {
		return schemaErrorf("Coerce target type is nil")
	}
	return nil
}

func (v *coerceValidator) Validate(data Map) (Map, error) {
	if err := v.verify(); err != nil {
		return nil, err
	}
	for key, value := range data {
		out, err := coerceValue(value, v.target)
		if err != nil {
			return nil, err
		}
		data[key] = out
	}
	return data, nil
}

// Describe implements [Validator] by declaring the type values are coerced to.
func (v *coerceValidator) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	applyTypeSchema(ref.Value, v.target)
	return nil
}

func coerceValue(value any, t reflect.Type) (any, error) {
	if value == nil {
		return nil, fmt.Errorf("cannot coerce nil to %s", t)
	}
	if instanceOf(value, t) {
		return value, nil
	}
	switch t.Kind() {
	case reflect.String:
		return convertTo(fmt.Sprint(value), t), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return coerceInt(value, t)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return coerceUint(value, t)
	case reflect.Float32, reflect.Float64:
		return coerceFloat(value, t)
	case reflect.Bool:
		return coerceBool(value, t)
	}
	rv := reflect.ValueOf(value)
	if rv.Type().ConvertibleTo(t) {
		return rv.Convert(t).Interface(), nil
	}
	return nil, fmt.Errorf("cannot coerce %T to %s", value, t)
}

// stringValue unpacks strings and string-backed values such as json.Number.
func stringValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	}
	return "", false
}

// coerceInt accepts base-10 strings and any numeric kind. Floats truncate
// toward zero, matching Go's own conversion.
func coerceInt(value any, t reflect.Type) (any, error) {
	if s, ok := stringValue(value); ok {
		i, err := strconv.ParseInt(s, 10, t.Bits())
		if err != nil {
			return nil, err
		}
		return convertInt(i, t)
	}
	if i, err := validation.ToInt(value); err == nil {
		return convertInt(i, t)
	}
	if u, err := validation.ToUint(value); err == nil {
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("%d overflows %s", u, t)
		}
		return convertInt(int64(u), t)
	}
	if f, err := validation.ToFloat(value); err == nil {
		if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return nil, fmt.Errorf("cannot coerce %v to %s", f, t)
		}
		return convertInt(int64(f), t)
	}
	return nil, fmt.Errorf("cannot coerce %T to %s", value, t)
}

// coerceUint rejects negative inputs rather than wrapping them around.
func coerceUint(value any, t reflect.Type) (any, error) {
	if s, ok := stringValue(value); ok {
		u, err := strconv.ParseUint(s, 10, t.Bits())
		if err != nil {
			return nil, err
		}
		return convertUint(u, t)
	}
	if u, err := validation.ToUint(value); err == nil {
		return convertUint(u, t)
	}
	if i, err := validation.ToInt(value); err == nil {
		if i < 0 {
			return nil, fmt.Errorf("cannot coerce negative value %d to %s", i, t)
		}
		return convertUint(uint64(i), t)
	}
	if f, err := validation.ToFloat(value); err == nil {
		if math.IsNaN(f) || f < 0 || f >= math.MaxUint64 {
			return nil, fmt.Errorf("cannot coerce %v to %s", f, t)
		}
		return convertUint(uint64(f), t)
	}
	return nil, fmt.Errorf("cannot coerce %T to %s", value, t)
}

func coerceFloat(value any, t reflect.Type) (any, error) {
	if s, ok := stringValue(value); ok {
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return nil, err
		}
		return convertTo(f, t), nil
	}
	if f, err := validation.ToFloat(value); err == nil {
		return convertTo(f, t), nil
	}
	if i, err := validation.ToInt(value); err == nil {
		return convertTo(float64(i), t), nil
	}
	if u, err := validation.ToUint(value); err == nil {
		return convertTo(float64(u), t), nil
	}
	return nil, fmt.Errorf("cannot coerce %T to %s", value, t)
}

// coerceBool accepts strconv.ParseBool string forms and numeric values,
// which convert by zeroness.
func coerceBool(value any, t reflect.Type) (any, error) {
	if s, ok := stringValue(value); ok {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, err
		}
		return convertTo(b, t), nil
	}
	if i, err := validation.ToInt(value); err == nil {
		return convertTo(i != 0, t), nil
	}
	if u, err := validation.ToUint(value); err == nil {
		return convertTo(u != 0, t), nil
	}
	if f, err := validation.ToFloat(value); err == nil {
		return convertTo(f != 0, t), nil
	}
	return nil, fmt.Errorf("cannot coerce %T to %s", value, t)
}

func convertTo(v any, t reflect.Type) any {
	return reflect.ValueOf(v).Convert(t).Interface()
}

// convertInt and convertUint reject values the target type cannot hold
// instead of silently truncating bits the way reflect's Convert would.
func convertInt(i int64, t reflect.Type) (any, error) {
	rv := reflect.New(t).Elem()
	if rv.OverflowInt(i) {
		return nil, fmt.Errorf("%d overflows %s", i, t)
	}
	rv.SetInt(i)
	return rv.Interface(), nil
}

func convertUint(u uint64, t reflect.Type) (any, error) {
	rv := reflect.New(t).Elem()
	if rv.OverflowUint(u) {
		return nil, fmt.Errorf("%d overflows %s", u, t)
	}
	rv.SetUint(u)
	return rv.Interface(), nil
}
