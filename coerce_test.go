package buxom

import (
	"fmt"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		target      reflect.Type
		value       any
		want        any
		expectError bool
	}{
		{target: Int, value: "5", want: 5},
		{target: Int, value: 5, want: 5}, // already an int, idempotent
		{target: Int, value: 5.9, want: 5},
		{target: Int, value: -3.9, want: -3}, // truncation is toward zero
		{target: Int, value: "abc", expectError: true},
		{target: Int, value: nil, expectError: true},
		{target: String, value: 42, want: "42"},
		{target: String, value: 3.5, want: "3.5"},
		{target: String, value: "x", want: "x"},
		{target: Float, value: "3.5", want: 3.5},
		{target: Float, value: 2, want: 2.0},
		{target: Float, value: "x", expectError: true},
		{target: Bool, value: "true", want: true},
		{target: Bool, value: "0", want: false},
		{target: Bool, value: 1, want: true},
		{target: Bool, value: 0.0, want: false},
		{target: Bool, value: "yes", expectError: true},
		{target: reflect.TypeOf(uint(0)), value: "7", want: uint(7)},
		{target: reflect.TypeOf(uint(0)), value: -1, expectError: true},
		{target: reflect.TypeOf(int8(0)), value: 300, expectError: true}, // overflow
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s:%v", tt.target, tt.value), func(t *testing.T) {
			out, err := Coerce(tt.target).Validate(Map{"k": tt.value})
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out["k"])
		})
	}
}

func TestCoerce_ErrorPassesThroughRaw(t *testing.T) {
	_, err := Coerce(Int).Validate(Map{"k": "abc"})
	require.Error(t, err)

	var numErr *strconv.NumError
	assert.ErrorAs(t, err, &numErr)
}

func TestCoerce_NilTarget(t *testing.T) {
	_, err := Coerce(nil).Validate(Map{"k": 1})
	require.Error(t, err)

	var se *SchemaError
	assert.ErrorAs(t, err, &se)
}
