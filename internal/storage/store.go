package storage

import (
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/pixil98/go-errors"
)

const StoreType = "storage"

// Store owns every record of a world, keyed by record id.
type Store struct {
	id    string
	items map[string]*Record
}

// document is the persisted shape of a Store.
type document struct {
	Id    string             `json:"id"`
	Items map[string]*Record `json:"items"`
}

func NewStore(id string) *Store {
	return &Store{
		id:    id,
		items: map[string]*Record{},
	}
}

// With inserts it and returns the store, for building worlds inline.
func (s *Store) With(it Itemizer) *Store {
	s.Insert(it)
	return s
}

func (s *Store) Id() string {
	return s.id
}

func (s *Store) Len() int {
	return len(s.items)
}

// Ids returns the ids of all records in sorted order.
func (s *Store) Ids() []string {
	return slices.Sorted(maps.Keys(s.items))
}

// Insert stores it. If a record with the same id exists the entity is
// merged into it, so fields the entity does not render are kept.
func (s *Store) Insert(it Itemizer) {
	id := it.ItemId()
	if existing, ok := s.items[id]; ok {
		it.MergeInto(existing)
		return
	}

	rec := it.ToRecord()
	if rec.Meta == nil {
		rec.Meta = Meta{}
	}
	s.items[id] = rec
}

func (s *Store) Lookup(id string) (*Record, bool) {
	rec, ok := s.items[id]
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

func (s *Store) Records() iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for _, rec := range s.items {
			if !yield(rec.Clone()) {
				return
			}
		}
	}
}

// Serialize renders the whole store as a JSON document.
func (s *Store) Serialize() (string, error) {
	b, err := s.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *Store) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(document{Id: s.id, Items: s.items})
	if err != nil {
		return nil, fmt.Errorf("marshalling store: %w", err)
	}
	return b, nil
}

// Deserialize parses a document written by Serialize. Nothing is returned
// unless the entire document is valid.
func Deserialize(data string) (*Store, error) {
	return decodeStore([]byte(data))
}

func decodeStore(data []byte) (*Store, error) {
	if err := ValidateDocument(data); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshalling store: %w", err)
	}

	el := errors.NewErrorList()
	for key, rec := range doc.Items {
		if rec == nil {
			el.Add(fmt.Errorf("item %q is null", key))
			continue
		}
		if err := rec.Validate(); err != nil {
			el.Add(fmt.Errorf("item %q: %w", key, err))
			continue
		}
		if rec.Id != key {
			el.Add(fmt.Errorf("item %q: item_id %q does not match its key", key, rec.Id))
		}
	}
	if err := el.Err(); err != nil {
		return nil, fmt.Errorf("validating store: %w", err)
	}

	s := NewStore(doc.Id)
	for key, rec := range doc.Items {
		s.items[key] = rec
	}
	return s, nil
}

// A Store is itself an entity, so whole worlds can be nested inside another
// world as a single record.

func (s *Store) ItemId() string {
	return s.id
}

func (s *Store) ToRecord() *Record {
	rec := NewRecord(StoreType, s.id)
	s.MergeInto(rec)
	return rec
}

func (s *Store) MergeInto(rec *Record) {
	b, err := json.Marshal(s.items)
	if err != nil {
		// Records only hold the closed Value set, which always marshals.
		panic(fmt.Sprintf("marshalling store items: %v", err))
	}
	rec.Set("items", Text(b))
}

func (s *Store) FromRecord(rec *Record) bool {
	if rec.Type != StoreType {
		return false
	}
	raw, ok := rec.Meta["items"].(Text)
	if !ok {
		return false
	}

	var items map[string]*Record
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return false
	}
	for key, item := range items {
		if item == nil || item.Id != key || item.Validate() != nil {
			return false
		}
		if item.Meta == nil {
			item.Meta = Meta{}
		}
	}

	s.id = rec.Id
	s.items = items
	if s.items == nil {
		s.items = map[string]*Record{}
	}
	return true
}
