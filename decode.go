package buxom

import (
	"bytes"
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// UnmarshalAndValidate decodes JSON from b and validates the result against
// s, returning the validated mapping with coercions applied. JSON numbers
// become int when integral and float64 otherwise, so type references behave
// the same for JSON as for YAML and literal data.
func UnmarshalAndValidate(b []byte, s *Schema) (Map, error) {
	return DecodeAndValidate(bytes.NewReader(b), s)
}

// DecodeAndValidate reads one JSON object from r and validates it against
// s. Use it instead of [UnmarshalAndValidate] when reading directly from an
// io.Reader such as an HTTP request body.
func DecodeAndValidate(r io.Reader, s *Schema) (Map, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	data, _ := normalize(raw).(Map)
	return s.Validate(data)
}

// UnmarshalYAMLAndValidate decodes a YAML document from b and validates it
// against s. YAML mappings may carry non-string keys; they are preserved
// as-is.
func UnmarshalYAMLAndValidate(b []byte, s *Schema) (Map, error) {
	var raw map[any]any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	data, _ := normalize(raw).(Map)
	return s.Validate(data)
}

// normalize rewrites decoder output into validation-ready shapes: mappings
// become Map at every level and json.Number becomes int when it fits,
// float64 otherwise. Numbers too large for either stay json.Number.
func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil && int64(int(i)) == i {
			return int(i)
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t
	case map[string]any:
		out := make(Map, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(Map, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case Map:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case []any:
		for i := range t {
			t[i] = normalize(t[i])
		}
		return t
	}
	return v
}
