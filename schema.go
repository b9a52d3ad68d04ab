package buxom

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Schema validates map-shaped data against a declarative description of its
// keys. Definition keys are raw comparable values or [Required]/[Optional]
// markers; definition values are reflect.Type references, nested *Schema
// values, or [Validator] implementations. A compiled Schema is immutable
// and safe for concurrent use.
type Schema struct {
	entries []entry
	extra   bool
}

// entry is one compiled schema pair.
type entry struct {
	key    any          // resolved lookup key, markers unwrapped
	marker *Marker      // nil for unmarked keys
	typ    reflect.Type // set when the schema value is a type reference
	nested *Schema      // set when the schema value is a nested schema
	leaf   Validator    // set when the schema value is any other validator
}

// Option configures schema construction.
type Option func(*Schema)

// Extra requires the data's key set to exactly equal the schema's key set.
// Validation then fails on unknown data keys as well as on schema keys the
// data omits, whether or not they are marked Required.
func Extra() Option {
	return func(s *Schema) {
		s.extra = true
	}
}

// verifier is implemented by validators whose constructors accept
// parameters that can be wrong, such as a zero Range step. NewSchema calls
// verify so definition mistakes surface as SchemaErrors at compile time
// instead of failing on first use.
type verifier interface {
	verify() error
}

// NewSchema compiles def into a Schema. Definition mistakes are reported as
// *SchemaError: duplicate keys once markers are unwrapped, keys that cannot
// index a map, values that are not a type, nested schema, or validator, and
// validators built with bad parameters.
func NewSchema(def map[any]any, opts ...Option) (*Schema, error) {
	s := &Schema{entries: make([]entry, 0, len(def))}
	for _, opt := range opts {
		opt(s)
	}
	seen := make(map[any]bool, len(def))
	for rawKey, value := range def {
		key, err := unwrapKey(rawKey)
		if err != nil {
			return nil, err
		}
		if key != nil && !reflect.TypeOf(key).Comparable() {
			return nil, schemaErrorf("key %v (%T) cannot be used to index a map", key, key)
		}
		if seen[key] {
			return nil, schemaErrorf("duplicate key %v in schema definition", key)
		}
		seen[key] = true

		e := entry{key: key}
		if m, ok := rawKey.(*Marker); ok {
			e.marker = m
		}
		switch v := value.(type) {
		case nil:
			return nil, schemaErrorf("value for key %v is nil", key)
		case *Schema:
			if v == nil {
				return nil, schemaErrorf("value for key %v is a nil schema", key)
			}
			e.nested = v
		case Validator:
			if vf, ok := v.(verifier); ok {
				if err := vf.verify(); err != nil {
					return nil, err
				}
			}
			e.leaf = v
		case reflect.Type:
			e.typ = v
		default:
			return nil, schemaErrorf("value for key %v must be a type, a nested schema, or a validator, got %T", key, value)
		}
		s.entries = append(s.entries, e)
	}

	// Go maps have no declared order, so entries are walked in the sorted
	// order of their keys' string forms. This keeps which violation
	// Validate reports first stable across runs.
	sort.Slice(s.entries, func(i, j int) bool {
		return fmt.Sprint(s.entries[i].key) < fmt.Sprint(s.entries[j].key)
	})
	return s, nil
}

// MustSchema is like NewSchema but panics on definition errors. Use it for
// schema literals assigned to package variables.
func MustSchema(def map[any]any, opts ...Option) *Schema {
	s, err := NewSchema(def, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks data against the schema and returns data with all
// coercions and callable results written back in place. The first violation
// stops the walk. Schema keys absent from data are skipped unless marked
// Required; data keys the schema does not mention are ignored unless the
// schema was built with Extra.
func (s *Schema) Validate(data Map) (Map, error) {
	return s.validate(data, false)
}

// ValidateAll is like Validate but keeps walking after a violation and
// returns every [Invalid] found, collected into a *[MultipleInvalid].
// Errors that are not Invalid, such as a failed Coerce conversion, still
// abort immediately, as does a key-set mismatch under Extra.
func (s *Schema) ValidateAll(data Map) (Map, error) {
	return s.validate(data, true)
}

// IsValid reports whether data conforms to the schema. Coercions still
// write through into data.
func (s *Schema) IsValid(data Map) bool {
	_, err := s.Validate(data)
	return err == nil
}

func (s *Schema) validate(data Map, collect bool) (Map, error) {
	if s.extra {
		if err := s.checkExact(data); err != nil {
			return nil, err
		}
	}
	var all []*Invalid
	for _, e := range s.entries {
		err := s.validateEntry(data, e, collect)
		if err == nil {
			continue
		}
		if !collect {
			return nil, err
		}
		switch t := err.(type) {
		case *Invalid:
			all = append(all, t)
		case *MultipleInvalid:
			all = append(all, t.Errors...)
		default:
			return nil, err
		}
	}
	if len(all) > 0 {
		return nil, &MultipleInvalid{Errors: all}
	}
	return data, nil
}

func (s *Schema) validateEntry(data Map, e entry, collect bool) error {
	if e.marker != nil {
		if _, err := e.marker.Validate(data); err != nil {
			return err
		}
	}
	value, ok := data[e.key]
	if !ok {
		return nil
	}

	switch {
	case e.nested != nil:
		sub, ok := AsMap(value)
		if !ok {
			return &Invalid{
				Message: fmt.Sprintf("expected a mapping, got %T", value),
				Path:    []any{e.key},
			}
		}
		res, err := e.nested.validate(sub, collect)
		if err != nil {
			return prependPath(err, e.key)
		}
		data[e.key] = res
	case e.leaf != nil:
		res, err := e.leaf.Validate(Map{e.key: value})
		if err != nil {
			return err
		}
		if out, ok := res[e.key]; ok {
			data[e.key] = out
		}
	case e.typ != nil:
		if !instanceOf(value, e.typ) {
			return &Invalid{
				Message: fmt.Sprintf("expected %s, got %T", e.typ, value),
				Path:    []any{e.key},
			}
		}
	}
	return nil
}

// checkExact enforces Extra's strict key matching. A mismatch aborts
// validation before any entry runs, under ValidateAll as much as Validate.
func (s *Schema) checkExact(data Map) error {
	known := make(map[any]bool, len(s.entries))
	var missing []string
	for _, e := range s.entries {
		known[e.key] = true
		if _, ok := data[e.key]; !ok {
			missing = append(missing, fmt.Sprint(e.key))
		}
	}
	var unexpected []string
	for k := range data {
		if !known[k] {
			unexpected = append(unexpected, fmt.Sprint(k))
		}
	}
	if len(missing) == 0 && len(unexpected) == 0 {
		return nil
	}
	sort.Strings(unexpected)
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing keys "+strings.Join(missing, ", "))
	}
	if len(unexpected) > 0 {
		parts = append(parts, "unexpected keys "+strings.Join(unexpected, ", "))
	}
	return invalidf("data keys do not exactly match schema keys: %s", strings.Join(parts, "; "))
}

// prependPath pushes key onto the front of every Invalid path in err so
// violations inside nested schemas report where they happened.
func prependPath(err error, key any) error {
	switch t := err.(type) {
	case *Invalid:
		return t.prepend(key)
	case *MultipleInvalid:
		out := make([]*Invalid, len(t.Errors))
		for i := range t.Errors {
			out[i] = t.Errors[i].prepend(key)
		}
		return &MultipleInvalid{Errors: out}
	}
	return err
}
