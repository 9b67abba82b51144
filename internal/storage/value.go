package storage

import (
	"encoding/json"
	"fmt"
)

// Value is one field of a Record. Only Text, Binary, TextVec and Int
// implement it.
type Value interface {
	value()
}

// Text is a string field.
type Text string

// Binary is a raw byte field. It is persisted as an array of numbers rather
// than base64 so documents stay readable.
type Binary []byte

// TextVec is a list of strings.
type TextVec []string

// Int is a 32-bit integer field.
type Int int32

func (Text) value()    {}
func (Binary) value()  {}
func (TextVec) value() {}
func (Int) value()     {}

func (v Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Text string `json:"Text"`
	}{string(v)})
}

func (v Binary) MarshalJSON() ([]byte, error) {
	bytes := make([]int, len(v))
	for i, b := range v {
		bytes[i] = int(b)
	}
	return json.Marshal(struct {
		Binary []int `json:"Binary"`
	}{bytes})
}

func (v TextVec) MarshalJSON() ([]byte, error) {
	vals := []string(v)
	if vals == nil {
		vals = []string{}
	}
	return json.Marshal(struct {
		TextVec []string `json:"TextVec"`
	}{vals})
}

func (v Int) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Int int32 `json:"Int"`
	}{int32(v)})
}

// decodeValue parses a single tagged value such as {"Int": 3}.
func decodeValue(data []byte) (Value, error) {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return nil, fmt.Errorf("decoding value: %w", err)
	}
	if len(tagged) != 1 {
		return nil, fmt.Errorf("value must have exactly one tag, got %d", len(tagged))
	}

	for tag, raw := range tagged {
		switch tag {
		case "Text":
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return nil, fmt.Errorf("decoding Text: %w", err)
			}
			return Text(s), nil

		case "Binary":
			// A []byte target would expect base64, so go through ints.
			var ints []int
			if err := json.Unmarshal(raw, &ints); err != nil {
				return nil, fmt.Errorf("decoding Binary: %w", err)
			}
			b := make(Binary, len(ints))
			for i, n := range ints {
				if n < 0 || n > 255 {
					return nil, fmt.Errorf("decoding Binary: byte %d out of range: %d", i, n)
				}
				b[i] = byte(n)
			}
			return b, nil

		case "TextVec":
			vals := []string{}
			if err := json.Unmarshal(raw, &vals); err != nil {
				return nil, fmt.Errorf("decoding TextVec: %w", err)
			}
			if vals == nil {
				vals = []string{}
			}
			return TextVec(vals), nil

		case "Int":
			var n int32
			if err := json.Unmarshal(raw, &n); err != nil {
				return nil, fmt.Errorf("decoding Int: %w", err)
			}
			return Int(n), nil

		default:
			return nil, fmt.Errorf("unknown value tag %q", tag)
		}
	}

	return nil, fmt.Errorf("empty value")
}

// cloneValue returns a copy of v that shares no backing memory with it.
func cloneValue(v Value) Value {
	switch t := v.(type) {
	case Binary:
		return append(Binary{}, t...)
	case TextVec:
		return append(TextVec{}, t...)
	default:
		return v
	}
}
