package strata

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Traits bundles the hash, equality and ordering of one payload type.
//
// Hash must be consistent with Equal: Equal(a, b) implies Hash(a) == Hash(b).
// Compare is optional. Without it values are ordered by hash, and unequal
// values whose hashes collide are ordered by their Go syntax representation
// so that sorted containers keep both.
type Traits[T any] struct {
	Hash    func(T) uint64
	Equal   func(a, b T) bool
	Compare func(a, b T) int
}

func (t Traits[T]) compare(a, b T) int {
	if t.Compare != nil {
		return t.Compare(a, b)
	}
	if t.Equal(a, b) {
		return 0
	}
	if c := cmp.Compare(t.Hash(a), t.Hash(b)); c != 0 {
		return c
	}
	return strings.Compare(fmt.Sprintf("%#v", a), fmt.Sprintf("%#v", b))
}

// Ordered returns traits for any ordered scalar type, including named
// types such as `type Age uint8`. Floats are normalized so that -0 hashes
// like 0 and every NaN equals every other NaN.
func Ordered[T cmp.Ordered]() Traits[T] {
	return Traits[T]{
		Hash:    hashOrdered[T],
		Equal:   func(a, b T) bool { return cmp.Compare(a, b) == 0 },
		Compare: cmp.Compare[T],
	}
}

// Strings returns traits for string payloads.
func Strings() Traits[string] { return Ordered[string]() }

// Ints returns traits for int payloads.
func Ints() Traits[int] { return Ordered[int]() }

// Floats returns traits for float64 payloads.
func Floats() Traits[float64] { return Ordered[float64]() }

// Bools returns traits for bool payloads; false sorts before true.
func Bools() Traits[bool] {
	return Traits[bool]{
		Hash: func(b bool) uint64 {
			if b {
				return hashUint(1)
			}
			return hashUint(0)
		},
		Equal: func(a, b bool) bool { return a == b },
		Compare: func(a, b bool) int {
			switch {
			case a == b:
				return 0
			case !a:
				return -1
			default:
				return 1
			}
		},
	}
}

// ByteSlices returns traits for []byte payloads compared by content.
func ByteSlices() Traits[[]byte] {
	return Traits[[]byte]{
		Hash:    xxhash.Sum64,
		Equal:   bytes.Equal,
		Compare: bytes.Compare,
	}
}

// Comparable returns traits for a comparable type using ==, with a
// caller-supplied hash and an optional ordering.
func Comparable[T comparable](hash func(T) uint64, compare func(a, b T) int) Traits[T] {
	return Traits[T]{
		Hash:    hash,
		Equal:   func(a, b T) bool { return a == b },
		Compare: compare,
	}
}

// Values returns traits for opaque tagged values.
func Values() Traits[Value] {
	return Traits[Value]{
		Hash:    Value.Hash,
		Equal:   Value.Equal,
		Compare: Value.Compare,
	}
}

// Records returns traits for tagged records, used by fields holding a
// nested record.
func Records() Traits[Tagged[Record]] {
	return Traits[Tagged[Record]]{
		Hash:    func(r Tagged[Record]) uint64 { return r.Hash() },
		Equal:   func(a, b Tagged[Record]) bool { return a.Equal(b.Value) },
		Compare: func(a, b Tagged[Record]) int { return a.Compare(b.Value) },
	}
}

func hashOrdered[T cmp.Ordered](v T) uint64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return xxhash.Sum64String(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return hashUint(uint64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return hashUint(rv.Uint())
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		switch {
		case f == 0:
			f = 0
		case math.IsNaN(f):
			f = math.NaN()
		}
		return hashUint(math.Float64bits(f))
	default:
		return 0
	}
}

// payloadOps is Traits with the payload type erased. It is bound once when
// a tagged value or field is created and shared by every copy.
type payloadOps interface {
	hash(v any) uint64
	equal(a, b any) bool
	compare(a, b any) int
	typeName() string
	accepts(v any) bool
}

type erased[T any] struct {
	traits Traits[T]
	name   string
}

func erase[T any](t Traits[T]) *erased[T] {
	return &erased[T]{traits: t, name: typeNameOf[T]()}
}

func (e *erased[T]) hash(v any) uint64 {
	x, ok := v.(T)
	if !ok {
		return unsetFieldHash
	}
	return e.traits.Hash(x)
}

func (e *erased[T]) equal(a, b any) bool {
	x, ok := a.(T)
	if !ok {
		return false
	}
	y, ok := b.(T)
	if !ok {
		return false
	}
	return e.traits.Equal(x, y)
}

func (e *erased[T]) compare(a, b any) int {
	x, xok := a.(T)
	y, yok := b.(T)
	switch {
	case xok && yok:
		return e.traits.compare(x, y)
	case xok:
		return -1
	case yok:
		return 1
	default:
		return 0
	}
}

func (e *erased[T]) typeName() string { return e.name }

func (e *erased[T]) accepts(v any) bool {
	_, ok := v.(T)
	return ok
}

func typeNameOf[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
