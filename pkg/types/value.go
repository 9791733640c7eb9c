// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind identifies which JSON type a Value holds.
type Kind string

const (
	KindNull   Kind = "null"
	KindBool   Kind = "bool"
	KindNumber Kind = "number"
	KindString Kind = "string"
	KindArray  Kind = "array"
	KindObject Kind = "object"
)

// Value is an opaque JSON value passed through to the CMS without assuming
// a schema. The zero Value is JSON null.
//
// Numbers keep their source text (json.Number) so they are re-encoded
// exactly as written in the seed file.
type Value struct {
	v any
}

// EmptyObject returns a Value holding {}.
func EmptyObject() Value {
	return Value{v: map[string]any{}}
}

// ParseValue decodes a single JSON value from data.
func ParseValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Value{}, err
	}
	if dec.More() {
		return Value{}, fmt.Errorf("unexpected data after JSON value")
	}
	return Value{v: v}, nil
}

// Kind reports the JSON type of the value.
func (v Value) Kind() Kind {
	switch v.v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case json.Number, float64:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	default:
		return KindObject
	}
}

// Interface returns the decoded value: nil, bool, json.Number, string,
// []any, or map[string]any.
func (v Value) Interface() any {
	return v.v
}

// Object returns the value as a map when it is a JSON object.
func (v Value) Object() (map[string]any, bool) {
	m, ok := v.v.(map[string]any)
	return m, ok
}

// IsEmptyObject reports whether the value is {}.
func (v Value) IsEmptyObject() bool {
	m, ok := v.Object()
	return ok && len(m) == 0
}

// MarshalJSON encodes the value verbatim.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.v)
}

// UnmarshalJSON decodes any JSON value.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseValue(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML converts json.Number leaves to native numbers so YAML output
// does not quote them.
func (v Value) MarshalYAML() (any, error) {
	return yamlValue(v.v), nil
}

func yamlValue(in any) any {
	switch t := in.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = yamlValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = yamlValue(e)
		}
		return out
	default:
		return t
	}
}
