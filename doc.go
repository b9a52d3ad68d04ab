// Package buxom validates nested map-shaped data against declarative
// schemas, with automatic OpenAPI 3 schema generation.
//
// Define a schema by mapping keys, optionally wrapped in [Required] or
// [Optional] markers, to type references, nested schemas, or validators:
//
//	schema := buxom.MustSchema(map[any]any{
//	    buxom.Required("name"): buxom.String,
//	    "age":                  buxom.Coerce(buxom.Int),
//	    "profile": buxom.MustSchema(map[any]any{
//	        "email": buxom.Email(),
//	    }),
//	})
//
// Then validate with a single call:
//
//	data, err := schema.Validate(buxom.Map{"name": "ada", "age": "42"})
//	// data["age"] == 42
//
// Validate stops at the first violation and reports it as an [Invalid];
// [Schema.ValidateAll] keeps going and collects every violation into a
// [MultipleInvalid]. Coercions write through into the mapping being
// validated.
//
// Compiled schemas are immutable and safe for concurrent use. The mapping
// passed to Validate is mutated in place and must not be shared across
// concurrent calls.
//
// For HTTP handlers and config files, [UnmarshalAndValidate],
// [DecodeAndValidate], and [UnmarshalYAMLAndValidate] combine decoding with
// validation in one step, and [Bind] moves a validated mapping into a
// struct. [NewSchemaRef] renders a schema as an OpenAPI 3 object schema for
// documentation.
package buxom
