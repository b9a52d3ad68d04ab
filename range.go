package buxom

import (
	"fmt"
	"math"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RangeValidator constrains numeric values to membership in an arithmetic
// progression: start, start+step, start+2*step, and so on, stopping before
// stop when one is set. Use [Range] to create one, then chain
// [RangeValidator.To] and [RangeValidator.By] to bound and stride it.
type RangeValidator struct {
	start int64
	step  int64
	stop  *int64
}

// Range starts a progression at start with step 1 and no upper bound.
func Range(start int) *RangeValidator {
	return &RangeValidator{start: int64(start), step: 1}
}

// To sets the exclusive stop. Values must fall strictly before it when the
// step is positive, strictly after it when negative.
func (v *RangeValidator) To(stop int) *RangeValidator {
	s := int64(stop)
	v.stop = &s
	return v
}

// By sets the stride between members. Negative steps build descending
// progressions. A zero step is rejected when the schema compiles.
func (v *RangeValidator) By(step int) *RangeValidator {
	v.step = int64(step)
	return v
}

func (v *RangeValidator) verify() error {
	if v.step == 0 {
		return schemaErrorf("Range step must not be zero")
	}
	if v.stop != nil && (v.step > 0 && *v.stop <= v.start || v.step < 0 && *v.stop >= v.start) {
		return schemaErrorf("Range from %d to %d in steps of %d has no members", v.start, *v.stop, v.step)
	}
	return nil
}

func (v *RangeValidator) Validate(data Map) (Map, error) {
	if err := v.verify(); err != nil {
		return nil, err
	}
	for key, value := range data {
		n, integral, numeric := rangeOperand(value)
		if !numeric {
			return nil, &Invalid{
				Message: fmt.Sprintf("expected a numeric value, got %T", value),
				Path:    []any{key},
			}
		}
		if !integral || !v.contains(n) {
			return nil, &Invalid{Message: v.missMessage(), Path: []any{key}}
		}
	}
	return data, nil
}

// rangeOperand normalizes value to int64. Floats count as members only when
// integral, the way 4.0 compares equal to 4.
func rangeOperand(value any) (n int64, integral, numeric bool) {
	if i, err := validation.ToInt(value); err == nil {
		return i, true, true
	}
	if u, err := validation.ToUint(value); err == nil {
		if u > math.MaxInt64 {
			return 0, false, true
		}
		return int64(u), true, true
	}
	if f, err := validation.ToFloat(value); err == nil {
		if math.IsNaN(f) || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false, true
		}
		return int64(f), true, true
	}
	return 0, false, false
}

func (v *RangeValidator) contains(n int64) bool {
	if v.step > 0 {
		if n < v.start || (v.stop != nil && n >= *v.stop) {
			return false
		}
	} else {
		if n > v.start || (v.stop != nil && n <= *v.stop) {
			return false
		}
	}
	return (n-v.start)%v.step == 0
}

func (v *RangeValidator) missMessage() string {
	if v.stop != nil {
		return fmt.Sprintf("must be in the progression from %d to %d in steps of %d", v.start, *v.stop, v.step)
	}
	return fmt.Sprintf("must be in the progression from %d in steps of %d", v.start, v.step)
}

const rangeEnumLimit = 64

// Describe implements [Validator]. Short bounded progressions render as an
// enum; everything else falls back to numeric bounds, plus multipleOf when
// the progression is aligned on the step.
func (v *RangeValidator) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	if err := v.verify(); err != nil {
		return err
	}
	ref.Value.Type = &openapi3.Types{openapi3.TypeInteger}
	if members := v.members(rangeEnumLimit); members != nil {
		ref.Value.Enum = members
		return nil
	}
	fstart := float64(v.start)
	if v.step > 0 {
		ref.Value.Min = &fstart
		if v.stop != nil {
			last := float64(v.lastMember())
			ref.Value.Max = &last
		}
	} else {
		ref.Value.Max = &fstart
		if v.stop != nil {
			last := float64(v.lastMember())
			ref.Value.Min = &last
		}
	}
	if v.start%v.step == 0 {
		if mult := math.Abs(float64(v.step)); mult > 1 {
			ref.Value.MultipleOf = &mult
		}
	}
	return nil
}

// members lists the progression when it is bounded and holds at most limit
// values, for enum documentation. It returns nil otherwise.
func (v *RangeValidator) members(limit int) []any {
	if v.stop == nil {
		return nil
	}
	out := make([]any, 0, limit)
	if v.step > 0 {
		for n := v.start; n < *v.stop; n += v.step {
			if len(out) == limit {
				return nil
			}
			out = append(out, n)
		}
	} else {
		for n := v.start; n > *v.stop; n += v.step {
			if len(out) == limit {
				return nil
			}
			out = append(out, n)
		}
	}
	return out
}

// lastMember returns the final value of a bounded progression, the one
// just before stop.
func (v *RangeValidator) lastMember() int64 {
	span := *v.stop - v.start
	steps := span / v.step
	if span%v.step == 0 {
		steps--
	}
	return v.start + steps*v.step
}
