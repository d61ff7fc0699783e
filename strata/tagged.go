package strata

import "strings"

// Value is an opaque tagged value: a tag atom paired with an immutable,
// type-erased payload and the payload's hash, equality and ordering.
//
// Values of different payload types can live side by side in one container
// and are told apart by tag. The payload is shared by reference between
// copies and is never modified.
type Value struct {
	tag     Atom
	payload any
	ops     payloadOps
}

// Tagged is the typed view of a Value whose payload is a T.
// The embedded Value is the free upcast to the opaque form.
type Tagged[T any] struct {
	Value
}

// Tag boxes payload under tag. The traits are bound now and travel with
// the value; the static type is then erased.
//
// By convention a tag always carries the same payload type. Match relies
// on that convention.
func Tag[T any](tag Atom, payload T, traits Traits[T]) Tagged[T] {
	return Tagged[T]{Value{tag: tag, payload: payload, ops: erase(traits)}}
}

// Match returns the typed view of v if v carries tag. It returns false for
// any other tag and never fails on a tag mismatch.
//
// The caller owns the contract that a tag always carries payloads of type
// T. A value whose tag matches but whose payload is not a T was built in
// violation of that contract; Match panics with a *PayloadTypeError rather
// than hand out a view of the wrong type.
func Match[T any](v Value, tag Atom) (Tagged[T], bool) {
	if v.ops == nil || !v.tag.Equal(tag) {
		return Tagged[T]{}, false
	}
	if _, ok := v.payload.(T); !ok {
		panic(&PayloadTypeError{Tag: tag, Expected: typeNameOf[T](), Got: v.ops.typeName()})
	}
	return Tagged[T]{v}, true
}

// Payload returns the typed payload.
func (t Tagged[T]) Payload() T {
	p, _ := t.payload.(T)
	return p
}

// Opaque returns the untyped view. Same payload, same bound functions.
func (t Tagged[T]) Opaque() Value { return t.Value }

// Tag returns the value's tag.
func (v Value) Tag() Atom { return v.tag }

// Payload returns the type-erased payload.
func (v Value) Payload() any { return v.payload }

// IsZero reports whether v was never constructed.
func (v Value) IsZero() bool { return v.ops == nil }

// PayloadType names the Go type of the payload.
func (v Value) PayloadType() string {
	if v.ops == nil {
		return ""
	}
	return v.ops.typeName()
}

// Hash combines the tag hash with the payload hash.
func (v Value) Hash() uint64 {
	if v.ops == nil {
		return uint64(v.tag.hash)
	}
	return mixTagged(v.tag.hash, v.ops.hash(v.payload))
}

// Equal reports whether both tags and payloads are equal. Payloads are
// compared with the equality bound when v was constructed.
func (v Value) Equal(o Value) bool {
	if !v.tag.Equal(o.tag) {
		return false
	}
	if v.ops == nil || o.ops == nil {
		return v.ops == nil && o.ops == nil
	}
	if v.ops != o.ops && v.ops.typeName() != o.ops.typeName() {
		return false
	}
	return v.ops.equal(v.payload, o.payload)
}

// Compare orders values by tag first. Payloads are compared only when the
// tags match.
func (v Value) Compare(o Value) int {
	if c := v.tag.Compare(o.tag); c != 0 {
		return c
	}
	switch {
	case v.ops == nil && o.ops == nil:
		return 0
	case v.ops == nil:
		return -1
	case o.ops == nil:
		return 1
	}
	if c := strings.Compare(v.ops.typeName(), o.ops.typeName()); c != 0 {
		return c
	}
	return v.ops.compare(v.payload, o.payload)
}

// ============================================================
// Tag Dispatch
// ============================================================

// Case is one arm of Dispatch.
type Case[R any] struct {
	tag Atom
	fn  func(Value) R
}

// On builds a dispatch arm for tag whose payload is a T.
func On[T, R any](tag Atom, fn func(Tagged[T]) R) Case[R] {
	return Case[R]{
		tag: tag,
		fn: func(v Value) R {
			t, _ := Match[T](v, tag)
			return fn(t)
		},
	}
}

// Dispatch runs the first arm whose tag matches v. It reports false when
// no arm matches.
func Dispatch[R any](v Value, cases ...Case[R]) (R, bool) {
	for _, c := range cases {
		if v.ops != nil && v.tag.Equal(c.tag) {
			return c.fn(v), true
		}
	}
	var zero R
	return zero, false
}
