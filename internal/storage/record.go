package storage

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/pixil98/go-errors"
)

// Meta holds the fields of a Record keyed by name.
type Meta map[string]Value

func (m Meta) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]Value(m))
}

func (m *Meta) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	meta := make(Meta, len(raw))
	for k, r := range raw {
		v, err := decodeValue(r)
		if err != nil {
			return fmt.Errorf("field %q: %w", k, err)
		}
		meta[k] = v
	}

	*m = meta
	return nil
}

// Record is the type-erased form of every entity kept in a Store.
type Record struct {
	Type string `json:"item_type"`
	Id   string `json:"item_id"`
	Meta Meta   `json:"item_meta"`
}

func NewRecord(recordType string, id string) *Record {
	return &Record{
		Type: recordType,
		Id:   id,
		Meta: Meta{},
	}
}

func (r *Record) Validate() error {
	el := errors.NewErrorList()

	if r.Type == "" {
		el.Add(fmt.Errorf("item_type must be set"))
	}

	if r.Id == "" {
		el.Add(fmt.Errorf("item_id must be set"))
	}

	for k, v := range r.Meta {
		if v == nil {
			el.Add(fmt.Errorf("field %q has no value", k))
		}
	}

	return el.Err()
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	c := &Record{
		Type: r.Type,
		Id:   r.Id,
		Meta: make(Meta, len(r.Meta)),
	}
	for k, v := range r.Meta {
		c.Meta[k] = cloneValue(v)
	}
	return c
}

// Set stores v under key, replacing any existing value.
func (r *Record) Set(key string, v Value) {
	if r.Meta == nil {
		r.Meta = Meta{}
	}
	r.Meta[key] = v
}

// Text returns the text field at key, or def if it is missing or not text.
func (r *Record) Text(key string, def string) string {
	if v, ok := r.Meta[key].(Text); ok {
		return string(v)
	}
	return def
}

// TextVec returns a copy of the list field at key, or an empty list.
func (r *Record) TextVec(key string) []string {
	if v, ok := r.Meta[key].(TextVec); ok {
		return append([]string{}, v...)
	}
	return []string{}
}

// Binary returns a copy of the binary field at key, or an empty slice.
func (r *Record) Binary(key string) []byte {
	if v, ok := r.Meta[key].(Binary); ok {
		return append([]byte{}, v...)
	}
	return []byte{}
}

// Int returns the integer field at key, or def.
func (r *Record) Int(key string, def int32) int32 {
	if v, ok := r.Meta[key].(Int); ok {
		return int32(v)
	}
	return def
}

// Records are their own view: the identity implementation of the
// Itemizer contract.

func (r *Record) ItemId() string { return r.Id }

func (r *Record) ToRecord() *Record {
	return r.Clone()
}

func (r *Record) MergeInto(dst *Record) {
	if dst.Meta == nil {
		dst.Meta = Meta{}
	}
	maps.Copy(dst.Meta, r.Clone().Meta)
}

func (r *Record) FromRecord(src *Record) bool {
	*r = *src.Clone()
	return true
}
