package buxom

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLength(t *testing.T) {
	tests := []struct {
		min         int
		max         int
		value       any
		expectError bool
	}{
		{min: 2, max: 4, value: "ab", expectError: false},
		{min: 2, max: 4, value: "abcd", expectError: false},
		{min: 2, max: 4, value: "a", expectError: true},
		{min: 2, max: 4, value: "abcde", expectError: true},
		{min: 5, max: 5, value: "héllo", expectError: false}, // runes, not bytes
		{min: 1, max: 3, value: []int{1, 2}, expectError: false},
		{min: 1, max: 3, value: []int{}, expectError: true},
		{min: 0, max: 1, value: map[string]int{"a": 1}, expectError: false},
		{min: 0, max: 1, value: 42, expectError: true}, // ints have no length
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d..%d:%v", tt.min, tt.max, tt.value), func(t *testing.T) {
			_, err := Length(tt.min, tt.max).Validate(Map{"k": tt.value})
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

func TestMinLength(t *testing.T) {
	_, err := MinLength(2).Validate(Map{"k": "abcdefghij"})
	require.NoError(t, err)

	_, err = MinLength(2).Validate(Map{"k": "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2")
}

func TestLength_BadBounds(t *testing.T) {
	_, err := Length(4, 2).Validate(Map{"k": "abc"})
	require.Error(t, err)
	var se *SchemaError
	assert.ErrorAs(t, err, &se)

	_, err = MinLength(-1).Validate(Map{"k": "abc"})
	require.Error(t, err)
	assert.ErrorAs(t, err, &se)
}
