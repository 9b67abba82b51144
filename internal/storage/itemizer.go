package storage

import "iter"

// Itemizer is implemented by anything that can be written to a Store.
type Itemizer interface {
	// ItemId returns the identifier the entity is stored under.
	ItemId() string
	// ToRecord renders the entity as a complete record.
	ToRecord() *Record
	// MergeInto writes the entity's fields into an existing record,
	// overwriting by key and leaving every other field alone.
	MergeInto(*Record)
}

// View constrains the types that can be read back out of a Store. FromRecord
// fills the receiver from r and reports false when r is not of the view's
// type or is malformed.
type View[T any] interface {
	*T
	Itemizer
	FromRecord(r *Record) bool
}

// Reader is the read-only surface over a set of records. Returned records
// are copies; modifying them does not change the source.
type Reader interface {
	Lookup(id string) (*Record, bool)
	Records() iter.Seq[*Record]
}

// Get returns the entity stored under id as a T. It returns false if no
// record exists or the record cannot be read as a T.
func Get[T any, PT View[T]](r Reader, id string) (*T, bool) {
	rec, ok := r.Lookup(id)
	if !ok {
		return nil, false
	}

	var v T
	if !PT(&v).FromRecord(rec) {
		return nil, false
	}
	return &v, true
}

// AllOfType yields every stored entity that can be read as a T. Records of
// other types are skipped. The sequence may be ranged over any number of
// times and its order is unspecified.
func AllOfType[T any, PT View[T]](r Reader) iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for rec := range r.Records() {
			var v T
			if !PT(&v).FromRecord(rec) {
				continue
			}
			if !yield(&v) {
				return
			}
		}
	}
}
