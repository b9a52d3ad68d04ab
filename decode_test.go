package buxom_test

import (
	"strings"
	"testing"

	v "github.com/cgkanchi/buxom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalAndValidate(t *testing.T) {
	schema := v.MustSchema(map[any]any{
		v.Required("name"): v.String,
		"age":              v.Int,
		"score":            v.Float,
	})

	out, err := v.UnmarshalAndValidate([]byte(`{"name":"ada","age":36,"score":9.5}`), schema)
	require.NoError(t, err)
	// Integral JSON numbers decode to int, fractional ones to float64.
	assert.Equal(t, 36, out["age"])
	assert.Equal(t, 9.5, out["score"])

	_, err = v.UnmarshalAndValidate([]byte(`{"age":36}`), schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestUnmarshalAndValidate_BadJSON(t *testing.T) {
	schema := v.MustSchema(map[any]any{"a": v.Int})

	_, err := v.UnmarshalAndValidate([]byte(`{"a":`), schema)
	require.Error(t, err)
}

func TestUnmarshalAndValidate_Nested(t *testing.T) {
	schema := v.MustSchema(map[any]any{
		"server": v.MustSchema(map[any]any{
			v.Required("host"): v.String,
			"port":             v.Range(1).To(65536),
		}),
	})

	out, err := v.UnmarshalAndValidate([]byte(`{"server":{"host":"localhost","port":8080}}`), schema)
	require.NoError(t, err)
	server, ok := v.AsMap(out["server"])
	require.True(t, ok)
	assert.Equal(t, 8080, server["port"])

	_, err = v.UnmarshalAndValidate([]byte(`{"server":{"host":"localhost","port":0}}`), schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestDecodeAndValidate(t *testing.T) {
	schema := v.MustSchema(map[any]any{
		v.Required("name"): v.String,
	})

	out, err := v.DecodeAndValidate(strings.NewReader(`{"name":"bob"}`), schema)
	require.NoError(t, err)
	assert.Equal(t, "bob", out["name"])
}

func TestUnmarshalYAMLAndValidate(t *testing.T) {
	schema := v.MustSchema(map[any]any{
		v.Required("host"): v.String,
		"port":             v.Int,
		"debug":            v.Bool,
	})

	doc := []byte("host: localhost\nport: 8080\ndebug: true\n")
	out, err := v.UnmarshalYAMLAndValidate(doc, schema)
	require.NoError(t, err)
	assert.Equal(t, "localhost", out["host"])
	assert.Equal(t, 8080, out["port"])
	assert.Equal(t, true, out["debug"])

	_, err = v.UnmarshalYAMLAndValidate([]byte("port: 8080\n"), schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "host")
}

func TestUnmarshalYAMLAndValidate_BadYAML(t *testing.T) {
	schema := v.MustSchema(map[any]any{"a": v.Int})

	_, err := v.UnmarshalYAMLAndValidate([]byte(":\n  - ["), schema)
	require.Error(t, err)
}
