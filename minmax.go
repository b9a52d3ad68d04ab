package buxom

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type thresholdValidator struct {
	rule      validation.ThresholdRule
	threshold any
	min       bool
}

// Min requires each value to be greater than or equal to threshold. The
// comparison follows the threshold's type: numbers compare numerically,
// times chronologically. Nil values pass; use a Required marker to reject
// missing keys.
func Min(threshold any) Validator {
	return &thresholdValidator{
		rule:      validation.Min(threshold),
		threshold: threshold,
		min:       true,
	}
}

// Max requires each value to be less than or equal to threshold.
func Max(threshold any) Validator {
	return &thresholdValidator{
		rule:      validation.Max(threshold),
		threshold: threshold,
	}
}

func (v *thresholdValidator) Validate(data Map) (Map, error) {
	for key, value := range data {
		if err := v.check(value); err != nil {
			return nil, &Invalid{Message: err.Error(), Path: []any{key}}
		}
	}
	return data, nil
}

// check compares one value against the threshold. String values, including
// json.Number, are parsed into the threshold's kind first so data decoded
// without conversion still compares numerically.
func (v *thresholdValidator) check(value any) error {
	value, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}

	if reflect.ValueOf(value).Kind() == reflect.String {
		str := reflect.ValueOf(value).String()
		if s, ok := value.(fmt.Stringer); ok {
			str = s.String()
		}

		var err error
		switch reflect.ValueOf(v.threshold).Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			value, err = strconv.ParseInt(str, 10, 64)
			if err != nil {
				return errors.New("must be int64")
			}
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			value, err = strconv.ParseUint(str, 10, 64)
			if err != nil {
				return errors.New("must be uint64")
			}
		case reflect.Float32, reflect.Float64:
			value, err = strconv.ParseFloat(str, 64)
			if err != nil {
				return errors.New("must be float64")
			}
		}
	}

	// The underlying rule waves empty values through, so zero values like
	// 0 and 0.0 are compared against the threshold by hand. A present key
	// holding zero is real data, not an unset field.
	if validation.IsEmpty(value) {
		return v.checkZero(value)
	}
	return v.rule.Validate(value)
}

// checkZero compares a zero value against the threshold, mirroring the
// comparisons the underlying rule applies to non-empty values.
func (v *thresholdValidator) checkZero(value any) error {
	rv := reflect.ValueOf(v.threshold)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := validation.ToInt(value)
		if err != nil {
			return err
		}
		if v.min && n >= rv.Int() || !v.min && n <= rv.Int() {
			return nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := validation.ToUint(value)
		if err != nil {
			return err
		}
		if v.min && n >= rv.Uint() || !v.min && n <= rv.Uint() {
			return nil
		}
	case reflect.Float32, reflect.Float64:
		n, err := validation.ToFloat(value)
		if err != nil {
			return err
		}
		if v.min && n >= rv.Float() || !v.min && n <= rv.Float() {
			return nil
		}
	case reflect.Struct:
		t, ok := v.threshold.(time.Time)
		if !ok {
			return fmt.Errorf("type not supported: %v", rv.Type())
		}
		z, ok := value.(time.Time)
		if !ok {
			return fmt.Errorf("cannot convert %T to time.Time", value)
		}
		if v.min && !z.Before(t) || !v.min && !z.After(t) {
			return nil
		}
	default:
		return fmt.Errorf("type not supported: %v", rv.Type())
	}
	if v.min {
		return fmt.Errorf("must be no less than %v", v.threshold)
	}
	return fmt.Errorf("must be no greater than %v", v.threshold)
}

// Describe implements [Validator] by setting the numeric bound on the schema.
func (v *thresholdValidator) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	if ref.Value.Type.Is(openapi3.TypeString) {
		ref.Value.Format = fmt.Sprintf("%T", v.threshold)
	}
	f, err := getFloat(v.threshold)
	if err != nil {
		return err
	}
	if v.min {
		ref.Value.Min = &f
	} else {
		ref.Value.Max = &f
	}
	return nil
}

var floatType = reflect.TypeOf(float64(0))

func getFloat(unk any) (float64, error) {
	v := reflect.ValueOf(unk)
	v = reflect.Indirect(v)
	if !v.Type().ConvertibleTo(floatType) {
		return 0, fmt.Errorf("cannot convert %v to float64", v.Type())
	}
	fv := v.Convert(floatType)
	return fv.Float(), nil
}
