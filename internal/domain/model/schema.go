package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// RecordSchema returns the JSON schema of a serialized Record: an object with
// exactly the fixed keys, each a string.
func RecordSchema() map[string]any {
	props := make(map[string]any, len(Fields()))
	required := make([]string, 0, len(Fields()))
	for _, f := range Fields() {
		props[string(f)] = map[string]any{"type": "string"}
		required = append(required, string(f))
	}
	return map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

func compiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		b, err := json.Marshal(RecordSchema())
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("record.json", bytes.NewReader(b)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile("record.json")
	})
	return schema, schemaErr
}

// Validate checks that data is a complete serialized Record.
func Validate(data []byte) error {
	s, err := compiled()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return nil
}

// DecodeRecord validates data and decodes it into a Record.
func DecodeRecord(data []byte) (Record, error) {
	if err := Validate(data); err != nil {
		return Record{}, err
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return r, nil
}
