package strata

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors. Concrete error types below unwrap to one of these, so
// callers can test with errors.Is without caring about the details.
var (
	ErrMissingField = errors.New("missing field")
	ErrFieldType    = errors.New("field type mismatch")
	ErrArity        = errors.New("wrong number of field values")
	ErrPayloadType  = errors.New("payload type mismatch")
	ErrDuplicateTag = errors.New("duplicate schema tag")
)

// MissingFieldError reports a read of a field that has no value.
type MissingFieldError struct {
	Schema Atom // Tag of the record's schema; zero for schemaless records
	Field  Atom
}

func (e *MissingFieldError) Error() string {
	if e.Schema.IsZero() {
		return fmt.Sprintf("missing field %s", e.Field)
	}
	return fmt.Sprintf("%s: missing field %s", e.Schema, e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// FieldTypeError reports a value whose Go type differs from the field's
// declared type.
type FieldTypeError struct {
	Schema   Atom
	Field    Atom
	Expected string
	Got      string
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("%s.%s: expected %s, got %s", e.Schema, e.Field, e.Expected, e.Got)
}

func (e *FieldTypeError) Unwrap() error { return ErrFieldType }

// ArityError reports a constructor call with the wrong number of values.
type ArityError struct {
	Schema   Atom
	Expected int
	Got      int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: expected %d field values, got %d", e.Schema, e.Expected, e.Got)
}

func (e *ArityError) Unwrap() error { return ErrArity }

// PayloadTypeError reports a tagged value whose tag matched but whose
// payload has another Go type than the one requested. One tag must always
// carry one payload type; this error means that contract was broken at a
// construction site. Match panics with it.
type PayloadTypeError struct {
	Tag      Atom
	Expected string
	Got      string
}

func (e *PayloadTypeError) Error() string {
	return fmt.Sprintf("tag %s: expected payload %s, got %s", e.Tag, e.Expected, e.Got)
}

func (e *PayloadTypeError) Unwrap() error { return ErrPayloadType }

func missingField(s *Schema, field Atom) error {
	return errors.WithStack(&MissingFieldError{Schema: s.Tag(), Field: field})
}

func fieldTypeError(s *Schema, fd FieldDesc, v any) error {
	return errors.WithStack(&FieldTypeError{
		Schema:   s.Tag(),
		Field:    fd.Key(),
		Expected: fd.TypeName(),
		Got:      describeType(v),
	})
}

// describeType names v's type for error messages. Tagged values are named
// by their tag.
func describeType(v any) string {
	switch x := v.(type) {
	case Value:
		return x.Tag().Name()
	case interface{ Opaque() Value }:
		return x.Opaque().Tag().Name()
	}
	return fmt.Sprintf("%T", v)
}
