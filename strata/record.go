package strata

import (
	"slices"

	"github.com/benbjohnson/immutable"
)

// Record is an untyped, immutable mapping from field atoms to values.
//
// Records are built by a Schema and updated with Set, which returns a new
// record sharing every other entry with the original. Hashing and equality
// come from the schema and only look at its declared fields; a record may
// also carry undeclared extension fields, which are stored and readable but
// take no part in either.
type Record struct {
	fields *immutable.Map[Atom, any]
	schema *Schema
}

func newFieldMap() *immutable.Map[Atom, any] {
	return immutable.NewMap[Atom, any](AtomHasher{})
}

// Schema returns the schema that built r, or nil for the zero Record.
func (r Record) Schema() *Schema { return r.schema }

// Len returns the number of fields that have a value, extension fields
// included.
func (r Record) Len() int {
	if r.fields == nil {
		return 0
	}
	return r.fields.Len()
}

// Has reports whether key has a value.
func (r Record) Has(key Atom) bool {
	_, ok := r.Lookup(key)
	return ok
}

// Lookup returns the value of key and whether it is set.
func (r Record) Lookup(key Atom) (any, bool) {
	if r.fields == nil {
		return nil, false
	}
	return r.fields.Get(key)
}

// Get returns the value of key. Reading an unset field fails with a
// *MissingFieldError; it never yields a default.
func (r Record) Get(key Atom) (any, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return nil, missingField(r.schema, key)
	}
	return v, nil
}

// Set returns a copy of r with key bound to v. When key is a declared field
// v must have the field's type. The receiver is left untouched.
func (r Record) Set(key Atom, v any) (Record, error) {
	if fd, ok := r.schema.Field(key); ok && !fd.accepts(v) {
		return r, fieldTypeError(r.schema, fd, v)
	}
	return r.with(key, v), nil
}

func (r Record) with(key Atom, v any) Record {
	m := r.fields
	if m == nil {
		m = newFieldMap()
	}
	return Record{fields: m.Set(key, v), schema: r.schema}
}

// Keys returns the set field atoms in atom order.
func (r Record) Keys() []Atom {
	if r.fields == nil {
		return nil
	}
	keys := make([]Atom, 0, r.fields.Len())
	itr := r.fields.Iterator()
	for !itr.Done() {
		k, _, ok := itr.Next()
		if !ok {
			break
		}
		keys = append(keys, k)
	}
	slices.SortFunc(keys, Atom.Compare)
	return keys
}

// Range calls fn for every set field in atom order until fn returns false.
func (r Record) Range(fn func(key Atom, v any) bool) {
	for _, k := range r.Keys() {
		v, _ := r.fields.Get(k)
		if !fn(k, v) {
			return
		}
	}
}

// Extensions returns the set fields the schema does not declare, in atom
// order.
func (r Record) Extensions() []Atom {
	var out []Atom
	for _, k := range r.Keys() {
		if _, ok := r.schema.Field(k); !ok {
			out = append(out, k)
		}
	}
	return out
}

// SharesStorage reports whether r and o are backed by the same field map,
// which is the case for copies of one record and never after a Set.
func (r Record) SharesStorage(o Record) bool {
	return r.fields == o.fields
}

// Hash returns the schema-generated hash of r.
func (r Record) Hash() uint64 {
	if r.schema == nil {
		return emptySchemaSeed
	}
	return r.schema.hash(r)
}

// Equal reports whether r and o come from the same schema and agree on
// every declared field.
func (r Record) Equal(o Record) bool {
	if r.schema != o.schema {
		return false
	}
	if r.fields == o.fields {
		return true
	}
	if r.schema == nil {
		return r.Len() == 0 && o.Len() == 0
	}
	return r.schema.equal(r, o)
}

// Compare orders records of one schema field by field in declaration
// order. Records of different schemas are ordered by schema tag, then by
// schema definition; they never compare as 0.
func (r Record) Compare(o Record) int {
	if r.schema != o.schema {
		if c := r.schema.Tag().Compare(o.schema.Tag()); c != 0 {
			return c
		}
		return r.schema.order(o.schema)
	}
	if r.fields == o.fields || r.schema == nil {
		return 0
	}
	return r.schema.compare(r, o)
}
