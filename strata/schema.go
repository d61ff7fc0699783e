package strata

import (
	"cmp"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
)

// FieldDesc describes one declared field of a schema. Field[T] is the only
// implementation.
type FieldDesc interface {
	Key() Atom
	TypeName() string

	accepts(v any) bool
	hashValue(v any) uint64
	equalValues(a, b any) bool
	compareValues(a, b any) int
}

// Schema is an ordered list of typed fields identified by a tag atom.
//
// A schema generates the construction, hashing, equality and ordering shared
// by every record it builds. Schemas are defined once, usually as package
// variables, and never change afterwards.
type Schema struct {
	tag    Atom
	fields []FieldDesc
	index  map[Atom]int
	seq    uint64
}

// schemaSeq numbers schemas in definition order.
var schemaSeq atomic.Uint64

// NewSchema defines a schema. Field order is significant: it is the
// argument order of Make and the fold order of the generated hash.
// Declaring the same field name twice panics.
func NewSchema(tag string, fields ...FieldDesc) *Schema {
	s := &Schema{
		tag:    NewAtom(tag),
		fields: fields,
		index:  make(map[Atom]int, len(fields)),
		seq:    schemaSeq.Add(1),
	}
	for i, fd := range fields {
		if _, dup := s.index[fd.Key()]; dup {
			panic(fmt.Sprintf("strata: schema %s declares field %s twice", tag, fd.Key()))
		}
		s.index[fd.Key()] = i
	}
	return s
}

// Tag returns the schema's tag atom.
func (s *Schema) Tag() Atom {
	if s == nil {
		return Atom{}
	}
	return s.tag
}

// Len returns the number of declared fields.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// Fields returns the declared fields in declaration order.
func (s *Schema) Fields() []FieldDesc {
	if s == nil {
		return nil
	}
	return append([]FieldDesc(nil), s.fields...)
}

// Field returns the declared field named key.
func (s *Schema) Field(key Atom) (FieldDesc, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.index[key]
	if !ok {
		return nil, false
	}
	return s.fields[i], true
}

// Make builds a record from one value per declared field, in declaration
// order, and tags it with the schema tag.
func (s *Schema) Make(values ...any) (Tagged[Record], error) {
	if len(values) != len(s.fields) {
		return Tagged[Record]{}, errors.WithStack(&ArityError{Schema: s.tag, Expected: len(s.fields), Got: len(values)})
	}
	m := newFieldMap()
	for i, fd := range s.fields {
		if !fd.accepts(values[i]) {
			return Tagged[Record]{}, fieldTypeError(s, fd, values[i])
		}
		m = m.Set(fd.Key(), values[i])
	}
	return s.wrap(Record{fields: m, schema: s}), nil
}

// MustMake is like Make but panics on error. It suits package-level
// fixtures whose shape is known to be right.
func (s *Schema) MustMake(values ...any) Tagged[Record] {
	r, err := s.Make(values...)
	if err != nil {
		panic(err)
	}
	return r
}

// Empty returns a tagged record with no field set. Fields can then be
// filled in one by one through accessors; reading a field before it is set
// fails with ErrMissingField.
func (s *Schema) Empty() Tagged[Record] {
	return s.wrap(Record{fields: newFieldMap(), schema: s})
}

// Match returns the typed view of v if v is tagged with this schema's tag.
func (s *Schema) Match(v Value) (Tagged[Record], bool) {
	return Match[Record](v, s.tag)
}

// Wrap tags r with this schema. A record built by another schema is
// rebound to this one; its values must fit the declared field types.
func (s *Schema) Wrap(r Record) (Tagged[Record], error) {
	if r.schema == s {
		return s.wrap(r), nil
	}
	for _, fd := range s.fields {
		if v, ok := r.Lookup(fd.Key()); ok && !fd.accepts(v) {
			return Tagged[Record]{}, fieldTypeError(s, fd, v)
		}
	}
	m := r.fields
	if m == nil {
		m = newFieldMap()
	}
	return s.wrap(Record{fields: m, schema: s}), nil
}

// Complete reports whether every declared field of r is set.
func (s *Schema) Complete(r Record) bool {
	for _, fd := range s.fields {
		if !r.Has(fd.Key()) {
			return false
		}
	}
	return true
}

// recordOps is shared by every tagged record: the bound functions delegate
// to the record's own schema.
var recordOps = erase(Traits[Record]{
	Hash:    Record.Hash,
	Equal:   Record.Equal,
	Compare: Record.Compare,
})

func (s *Schema) wrap(r Record) Tagged[Record] {
	return Tagged[Record]{Value{tag: s.tag, payload: r, ops: recordOps}}
}

// ============================================================
// Generated Hash, Equality, Ordering
// ============================================================

func (s *Schema) hash(r Record) uint64 {
	if len(s.fields) == 0 {
		return emptySchemaSeed
	}
	var h uint64
	for i, fd := range s.fields {
		fh := unsetFieldHash
		if v, ok := r.Lookup(fd.Key()); ok {
			fh = fd.hashValue(v)
		}
		if i == 0 {
			h = fh
			continue
		}
		h = mixField(h, fh)
	}
	return h
}

func (s *Schema) equal(a, b Record) bool {
	for _, fd := range s.fields {
		av, aok := a.Lookup(fd.Key())
		bv, bok := b.Lookup(fd.Key())
		if aok != bok {
			return false
		}
		if aok && !fd.equalValues(av, bv) {
			return false
		}
	}
	return true
}

// order ranks schemas sharing a tag: by canonical text, then by definition
// order. Distinct schemas never rank equal.
func (s *Schema) order(o *Schema) int {
	if s == o {
		return 0
	}
	if s == nil || o == nil {
		if s == nil {
			return -1
		}
		return 1
	}
	if c := strings.Compare(s.Canonical(), o.Canonical()); c != 0 {
		return c
	}
	return cmp.Compare(s.seq, o.seq)
}

func (s *Schema) compare(a, b Record) int {
	for _, fd := range s.fields {
		av, aok := a.Lookup(fd.Key())
		bv, bok := b.Lookup(fd.Key())
		switch {
		case !aok && !bok:
			continue
		case !aok:
			return -1
		case !bok:
			return 1
		}
		if c := fd.compareValues(av, bv); c != 0 {
			return c
		}
	}
	return 0
}

// ============================================================
// Canonical Schema Text
// ============================================================

// Canonical returns the schema as text, e.g.
//
//	person struct{
//	    name: string
//	    age: uint8
//	    contact: contact
//	}
func (s *Schema) Canonical() string {
	var sb strings.Builder
	writeSchema(&sb, s, "")
	return sb.String()
}

func writeSchema(sb *strings.Builder, s *Schema, indent string) {
	sb.WriteString(indent)
	sb.WriteString(s.tag.Name())
	sb.WriteString(" struct{\n")
	for _, fd := range s.fields {
		sb.WriteString(indent)
		sb.WriteString("    ")
		sb.WriteString(fd.Key().Name())
		sb.WriteString(": ")
		sb.WriteString(fd.TypeName())
		sb.WriteString("\n")
	}
	sb.WriteString(indent)
	sb.WriteString("}\n")
}
