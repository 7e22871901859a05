// Package source ingests raw bytes into the `any` shape (map[string]any,
// []any, string, float64, bool, nil; YAML integers arrive as int) the
// interpreter's node handlers expect as raw input. It is the glue between "bytes most callers have"
// and "the value Decode/Guard/Encode consume", the same line the teacher
// draws between its byte/token Source and the values its engine parses.
package source

import (
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// JSON decodes data as JSON into the interpreter's raw-input shape.
func JSON(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// JSONReader decodes r as a single JSON value.
func JSONReader(r io.Reader) (any, error) {
	var v any
	dec := json.NewDecoder(r)
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// YAML decodes data as YAML into the interpreter's raw-input shape.
//
// yaml.v3 produces map[string]interface{} for mappings with string keys
// (unlike encoding/json's decoder, which would otherwise hand back
// map[interface{}]interface{} under some library versions), so no extra
// normalization pass is needed before handing the result to Decode.
func YAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
