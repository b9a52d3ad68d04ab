package buxom

import (
	"github.com/mitchellh/mapstructure"
)

// Bind decodes a validated mapping into target, a pointer to struct. Field
// names resolve through json tags, so the struct that shapes a response can
// also receive the validated request. Bind does no type conversion of its
// own; run the data through a schema with Coerce validators first when it
// needs any.
func Bind(data Map, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "json",
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[any]any(data))
}
