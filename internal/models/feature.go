// Package models contains the domain structures of the user registry:
// the user record itself, the loosely-typed feature attribute attached
// to it, and the request shapes accepted by the HTTP layer.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrInvalidFeature is returned when a feature value in a request body
// is not well-formed JSON.
var ErrInvalidFeature = errors.New("invalid feature value")

type featureKind int

const (
	featureAbsent featureKind = iota
	featureOpaque
	featureStructured
)

// Feature is the optional payload attached to a user. It is one of three
// things: a structured JSON value (object or array), an opaque piece of
// text, or absent. The stored representation is a single nullable TEXT
// column; structured values are serialized to JSON text, opaque text is
// stored verbatim, absent maps to NULL.
//
// On read the column is decoded opportunistically: text that parses as
// JSON comes back structured, anything else stays an opaque string.
type Feature struct {
	kind featureKind
	raw  json.RawMessage // valid JSON, kind == featureStructured
	text string          // kind == featureOpaque
	set  bool            // the JSON key was present in the request body
}

// StructuredFeature builds a Feature from a raw JSON value.
func StructuredFeature(raw json.RawMessage) Feature {
	return Feature{kind: featureStructured, raw: raw, set: true}
}

// OpaqueFeature builds a Feature from plain text.
func OpaqueFeature(text string) Feature {
	return Feature{kind: featureOpaque, text: text, set: true}
}

// IsAbsent reports whether the feature carries no value.
func (f Feature) IsAbsent() bool { return f.kind == featureAbsent }

// Present reports whether the feature key appeared in the request body
// at all, even as an explicit null. Partial updates need the
// distinction: a present null clears the column, a missing key leaves
// it untouched.
func (f Feature) Present() bool { return f.set }

// UnmarshalJSON accepts an object, an array, a string, null, or any
// other JSON scalar. Objects and arrays become structured values,
// strings become opaque text, null means absent. Remaining scalars
// (numbers, booleans) are kept as their literal text, which matches how
// the store persists them in a TEXT column.
func (f *Feature) UnmarshalJSON(data []byte) error {
	f.set = true
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		f.kind = featureAbsent
		return nil
	}
	switch data[0] {
	case '{', '[':
		if !json.Valid(data) {
			return ErrInvalidFeature
		}
		f.kind = featureStructured
		f.raw = append(json.RawMessage(nil), data...)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f.kind = featureOpaque
		f.text = s
	default:
		f.kind = featureOpaque
		f.text = string(data)
	}
	return nil
}

// MarshalJSON renders the variant back to the wire: structured values
// as-is, opaque text as a JSON string, absent as null.
func (f Feature) MarshalJSON() ([]byte, error) {
	switch f.kind {
	case featureStructured:
		return f.raw, nil
	case featureOpaque:
		return json.Marshal(f.text)
	default:
		return []byte("null"), nil
	}
}

// Column returns the value bound to the feature TEXT column: a string
// for structured and opaque values, nil for absent. Empty opaque text
// is stored as NULL, matching the behavior of the stored data this
// service is compatible with.
func (f Feature) Column() any {
	switch f.kind {
	case featureStructured:
		return string(f.raw)
	case featureOpaque:
		if f.text == "" {
			return nil
		}
		return f.text
	default:
		return nil
	}
}

// DecodeFeatureColumn turns a stored column value back into a Feature.
// A NULL column is absent; text that is valid JSON becomes a structured
// value; a parse failure is not an error, the text stays opaque.
func DecodeFeatureColumn(value string, valid bool) Feature {
	if !valid {
		return Feature{}
	}
	if json.Valid([]byte(value)) {
		return StructuredFeature(json.RawMessage(value))
	}
	return OpaqueFeature(value)
}
