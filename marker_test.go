package buxom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarker_Unwrap(t *testing.T) {
	assert.Equal(t, "k", Required("k").Unwrap())
	assert.Equal(t, "k", Optional(Required("k")).Unwrap())
	assert.Equal(t, 7, Required(Required(7)).Unwrap())
}

func TestMarker_Validate(t *testing.T) {
	_, err := Required("k").Validate(Map{"k": 1})
	require.NoError(t, err)

	_, err = Required("k").Validate(Map{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required key k not found in data")

	_, err = Optional("k").Validate(Map{})
	require.NoError(t, err)
}

func TestMarker_String(t *testing.T) {
	assert.Equal(t, "Required(k)", Required("k").String())
	assert.Equal(t, "Optional(7)", Optional(7).String())
}

func TestUnwrapKey_Cycle(t *testing.T) {
	m := &Marker{key: "k"}
	m.key = m // cannot happen through the constructors

	_, err := unwrapKey(m)
	require.Error(t, err)
	var se *SchemaError
	assert.ErrorAs(t, err, &se)

	_, err = NewSchema(map[any]any{m: String})
	require.Error(t, err)
	assert.ErrorAs(t, err, &se)
}
