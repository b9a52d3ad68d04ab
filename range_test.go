package buxom

import (
	"fmt"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange(t *testing.T) {
	tests := []struct {
		rule        *RangeValidator
		value       any
		expectError bool
	}{
		{rule: Range(0).To(10).By(2), value: 4, expectError: false},
		{rule: Range(0).To(10).By(2), value: 0, expectError: false},
		{rule: Range(0).To(10).By(2), value: 8, expectError: false},
		{rule: Range(0).To(10).By(2), value: 5, expectError: true},
		{rule: Range(0).To(10).By(2), value: 10, expectError: true}, // stop is exclusive
		{rule: Range(0).To(10).By(2), value: -2, expectError: true},
		{rule: Range(0).To(10).By(2), value: 4.0, expectError: false}, // integral float
		{rule: Range(0).To(10).By(2), value: 4.5, expectError: true},
		{rule: Range(0).To(10).By(2), value: "4", expectError: true}, // strings are not numbers
		{rule: Range(5), value: 7, expectError: false},               // unbounded
		{rule: Range(5), value: 4, expectError: true},
		{rule: Range(10).To(0).By(-2), value: 10, expectError: false},
		{rule: Range(10).To(0).By(-2), value: 8, expectError: false},
		{rule: Range(10).To(0).By(-2), value: 0, expectError: true}, // exclusive stop
		{rule: Range(10).To(0).By(-2), value: 9, expectError: true},
		{rule: Range(10).To(0).By(-2), value: 12, expectError: true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.value), func(t *testing.T) {
			_, err := tt.rule.Validate(Map{"k": tt.value})
			if tt.expectError {
				require.Error(t, err)
				var inv *Invalid
				assert.ErrorAs(t, err, &inv)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestRange_ZeroStep(t *testing.T) {
	_, err := Range(0).By(0).Validate(Map{"k": 1})
	require.Error(t, err)

	var se *SchemaError
	assert.ErrorAs(t, err, &se)
}

func TestRange_EmptyProgression(t *testing.T) {
	// Start already past stop means no value can ever be a member.
	var se *SchemaError

	_, err := Range(5).To(3).Validate(Map{"k": 5})
	require.Error(t, err)
	assert.ErrorAs(t, err, &se)

	_, err = Range(3).To(3).Validate(Map{"k": 3})
	require.Error(t, err)
	assert.ErrorAs(t, err, &se)

	_, err = Range(0).To(5).By(-1).Validate(Map{"k": 0})
	require.Error(t, err)
	assert.ErrorAs(t, err, &se)

	_, err = NewSchema(map[any]any{"n": Range(5).To(3)})
	require.Error(t, err)
	assert.ErrorAs(t, err, &se)

	err = Range(5).To(3).Describe("n", nil, &openapi3.SchemaRef{Value: openapi3.NewSchema()})
	require.Error(t, err)
	assert.ErrorAs(t, err, &se)
}

func TestRange_Members(t *testing.T) {
	assert.Equal(t, []any{int64(0), int64(2), int64(4), int64(6), int64(8)},
		Range(0).To(10).By(2).members(64))
	assert.Equal(t, []any{int64(3), int64(2), int64(1)},
		Range(3).To(0).By(-1).members(64))
	assert.Nil(t, Range(0).members(64), "unbounded progressions have no member list")
	assert.Nil(t, Range(0).To(1000).members(64), "long progressions are not enumerated")
}

func TestRange_LastMember(t *testing.T) {
	assert.Equal(t, int64(8), Range(0).To(10).By(2).lastMember())
	assert.Equal(t, int64(9), Range(0).To(10).By(3).lastMember())
	assert.Equal(t, int64(2), Range(10).To(0).By(-2).lastMember())
}
