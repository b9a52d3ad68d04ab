package buxom

import "fmt"

// Marker attaches presence semantics to a schema key. Required keys must be
// present in the data; Optional keys are validated only when present, which
// is also how raw unmarked keys behave. Markers may wrap other markers; the
// innermost value is the key looked up in the data.
type Marker struct {
	key      any
	required bool
}

// Required marks a schema key as mandatory. Validation fails with [Invalid]
// when the key is absent from the data.
func Required(key any) *Marker {
	return &Marker{key: key, required: true}
}

// Optional marks a schema key as explicitly optional. It carries no
// presence obligation and exists so schemas can say so out loud.
func Optional(key any) *Marker {
	return &Marker{key: key}
}

// IsRequired reports whether the marker enforces presence.
func (m *Marker) IsRequired() bool {
	return m.required
}

// Key returns the immediately wrapped key, which may itself be a Marker.
func (m *Marker) Key() any {
	return m.key
}

// Unwrap resolves the marker to its underlying key, descending through
// nested markers.
func (m *Marker) Unwrap() any {
	k, err := unwrapKey(m)
	if err != nil {
		return nil
	}
	return k
}

func (m *Marker) String() string {
	if m.required {
		return fmt.Sprintf("Required(%v)", m.key)
	}
	return fmt.Sprintf("Optional(%v)", m.key)
}

// Validate enforces the marker's presence contract against data and returns
// data unchanged. Required fails when the resolved key is missing; Optional
// never fails.
func (m *Marker) Validate(data Map) (Map, error) {
	if !m.required {
		return data, nil
	}
	key, err := unwrapKey(m)
	if err != nil {
		return nil, err
	}
	if _, ok := data[key]; !ok {
		return nil, invalidf("required key %v not found in data", key)
	}
	return data, nil
}

// unwrapKey resolves k to a non-marker key. Marker chains built through the
// public constructors cannot loop, but a loop would otherwise hang schema
// compilation, so the walk tracks visited markers and reports a SchemaError
// instead.
func unwrapKey(k any) (any, error) {
	var seen map[*Marker]bool
	for {
		m, ok := k.(*Marker)
		if !ok {
			return k, nil
		}
		if seen == nil {
			seen = make(map[*Marker]bool)
		}
		if seen[m] {
			return nil, schemaErrorf("marker chain loops back on itself")
		}
		seen[m] = true
		k = m.key
	}
}
