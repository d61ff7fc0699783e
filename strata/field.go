package strata

import "github.com/pkg/errors"

// Field is a typed field descriptor: a field name plus the traits of the
// values stored under it. A Field is also an accessor over tagged records,
// reading and writing its one field.
//
// Field types are checked when a record is built or updated rather than at
// compile time. Once a record passes Make, every declared field it holds
// has the declared type.
type Field[T any] struct {
	key      Atom
	ops      *erased[T]
	typeName string
	check    func(T) bool
}

// FieldOption is a function that modifies a field definition.
type FieldOption func(*fieldConfig)

type fieldConfig struct {
	typeName string
}

// WithTypeName overrides the type name shown in canonical schema text.
func WithTypeName(name string) FieldOption {
	return func(c *fieldConfig) {
		c.typeName = name
	}
}

// NewField creates a field descriptor.
func NewField[T any](name string, traits Traits[T], opts ...FieldOption) Field[T] {
	ops := erase(traits)
	cfg := fieldConfig{typeName: ops.typeName()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return Field[T]{key: NewAtom(name), ops: ops, typeName: cfg.typeName}
}

// RecordField creates a field holding a nested record of schema s. Only
// records tagged with s's tag are accepted.
func RecordField(name string, s *Schema) Field[Tagged[Record]] {
	f := NewField(name, Records(), WithTypeName(s.Tag().Name()))
	tag := s.Tag()
	f.check = func(r Tagged[Record]) bool { return r.Tag().Equal(tag) }
	return f
}

// Key returns the field's atom.
func (f Field[T]) Key() Atom { return f.key }

// Name returns the field's name.
func (f Field[T]) Name() string { return f.key.Name() }

// TypeName returns the declared type name.
func (f Field[T]) TypeName() string { return f.typeName }

func (f Field[T]) accepts(v any) bool {
	x, ok := v.(T)
	if !ok {
		return false
	}
	return f.check == nil || f.check(x)
}

func (f Field[T]) hashValue(v any) uint64 { return f.ops.hash(v) }

func (f Field[T]) equalValues(a, b any) bool { return f.ops.equal(a, b) }

func (f Field[T]) compareValues(a, b any) int { return f.ops.compare(a, b) }

// Lookup reads the field from r. It reports false when the field is unset,
// which is normal while a record is still being filled in.
func (f Field[T]) Lookup(r Tagged[Record]) (T, bool) {
	raw, ok := r.Payload().Lookup(f.key)
	if !ok {
		var zero T
		return zero, false
	}
	v, ok := raw.(T)
	return v, ok
}

// Get reads the field from r. An unset field fails with a
// *MissingFieldError; a value of another type with a *FieldTypeError.
func (f Field[T]) Get(r Tagged[Record]) (T, error) {
	rec := r.Payload()
	raw, err := rec.Get(f.key)
	if err != nil {
		var zero T
		return zero, err
	}
	v, ok := raw.(T)
	if !ok {
		var zero T
		return zero, errors.WithStack(&FieldTypeError{
			Schema:   rec.schema.Tag(),
			Field:    f.key,
			Expected: f.typeName,
			Got:      describeType(raw),
		})
	}
	return v, nil
}

// Set returns a copy of r with the field replaced by v and the same tag.
// All other fields stay shared with r.
//
// Set panics if v does not fit the field r's schema declares under this
// name: a descriptor from another schema, or a nested record of the wrong
// schema. Lens and To report the same condition as a *FieldTypeError.
func (f Field[T]) Set(r Tagged[Record], v T) Tagged[Record] {
	out, err := f.set(r, v)
	if err != nil {
		panic(err)
	}
	return out
}

func (f Field[T]) set(r Tagged[Record], v T) (Tagged[Record], error) {
	rec := r.Payload()
	if fd, ok := rec.schema.Field(f.key); ok && !fd.accepts(v) {
		return r, fieldTypeError(rec.schema, fd, v)
	}
	ops := r.ops
	if ops == nil {
		ops = recordOps
	}
	return Tagged[Record]{Value{tag: r.tag, payload: rec.with(f.key, v), ops: ops}}, nil
}

// Modify replaces the field with fn applied to its current value.
func (f Field[T]) Modify(r Tagged[Record], fn func(T) T) (Tagged[Record], error) {
	v, err := f.Get(r)
	if err != nil {
		return r, err
	}
	return f.set(r, fn(v))
}

// To returns a setter that binds the field to v.
func (f Field[T]) To(v T) Setter[Tagged[Record]] {
	return func(r Tagged[Record]) (Tagged[Record], error) {
		return f.set(r, v)
	}
}

// Lens returns the field as a general accessor for composition.
func (f Field[T]) Lens() Lens[Tagged[Record], T] {
	return NewLens(f.Get, f.set)
}
