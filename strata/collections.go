package strata

import (
	"iter"
	"strings"

	"github.com/benbjohnson/immutable"
)

// AtomHasher lets atoms key an immutable.Map.
type AtomHasher struct{}

func (AtomHasher) Hash(a Atom) uint32 { return a.hash }
func (AtomHasher) Equal(a, b Atom) bool { return a.Equal(b) }

// AtomComparer orders atoms by name for sorted containers.
type AtomComparer struct{}

func (AtomComparer) Compare(a, b Atom) int { return a.Compare(b) }

// ValueHasher lets tagged values key unordered persistent containers.
type ValueHasher struct{}

func (ValueHasher) Hash(v Value) uint32 { return fold32(v.Hash()) }
func (ValueHasher) Equal(a, b Value) bool { return a.Equal(b) }

// ValueComparer orders tagged values by tag, then payload.
type ValueComparer struct{}

func (ValueComparer) Compare(a, b Value) int { return a.Compare(b) }

// TaggedComparer orders typed tagged values the same way ValueComparer
// orders opaque ones.
type TaggedComparer[T any] struct{}

func (TaggedComparer[T]) Compare(a, b Tagged[T]) int { return a.Compare(b.Value) }

// NewValueSet returns a deduplicating, ordered persistent set of tagged
// values. Iteration follows Value.Compare.
func NewValueSet(values ...Value) immutable.SortedSet[Value] {
	return immutable.NewSortedSet[Value](ValueComparer{}, values...)
}

// NewValueHashSet returns a deduplicating persistent set of tagged values
// with unspecified iteration order.
func NewValueHashSet(values ...Value) immutable.Set[Value] {
	return immutable.NewSet[Value](ValueHasher{}, values...)
}

// NewValueMap returns an empty persistent map keyed by tagged values.
func NewValueMap[V any]() *immutable.Map[Value, V] {
	return immutable.NewMap[Value, V](ValueHasher{})
}

// ============================================================
// Vector
// ============================================================

// Vector is an immutable, structurally shared sequence. It wraps
// immutable.List so that it can be hashed, compared and printed as a
// payload.
type Vector[T any] struct {
	list *immutable.List[T]
}

// NewVector creates a vector holding values in order.
func NewVector[T any](values ...T) Vector[T] {
	return Vector[T]{list: immutable.NewList[T](values...)}
}

// Len returns the number of elements.
func (v Vector[T]) Len() int {
	if v.list == nil {
		return 0
	}
	return v.list.Len()
}

// At returns the element at index i. It panics if i is out of range.
func (v Vector[T]) At(i int) T { return v.list.Get(i) }

// Append returns a vector with x added at the end.
func (v Vector[T]) Append(x T) Vector[T] {
	l := v.list
	if l == nil {
		l = immutable.NewList[T]()
	}
	return Vector[T]{list: l.Append(x)}
}

// SetAt returns a vector with the element at index i replaced by x.
func (v Vector[T]) SetAt(i int, x T) Vector[T] {
	return Vector[T]{list: v.list.Set(i, x)}
}

// All iterates over index, element pairs.
func (v Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if v.list == nil {
			return
		}
		itr := v.list.Iterator()
		for !itr.Done() {
			i, x := itr.Next()
			if !yield(i, x) {
				return
			}
		}
	}
}

// String renders the vector as [a b c].
func (v Vector[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, x := range v.All() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(canonAny(x))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Vectors returns traits for vectors whose elements have the given traits.
// The hash is seeded with the length and folds every element in order.
func Vectors[T any](elem Traits[T]) Traits[Vector[T]] {
	return Traits[Vector[T]]{
		Hash: func(v Vector[T]) uint64 {
			seed := uint64(v.Len())
			for _, x := range v.All() {
				seed = mixSequence(seed, elem.Hash(x))
			}
			return seed
		},
		Equal: func(a, b Vector[T]) bool {
			if a.list == b.list {
				return true
			}
			if a.Len() != b.Len() {
				return false
			}
			for i, x := range a.All() {
				if !elem.Equal(x, b.At(i)) {
					return false
				}
			}
			return true
		},
		Compare: func(a, b Vector[T]) int {
			n := min(a.Len(), b.Len())
			for i := 0; i < n; i++ {
				if c := elem.compare(a.At(i), b.At(i)); c != 0 {
					return c
				}
			}
			switch {
			case a.Len() < b.Len():
				return -1
			case a.Len() > b.Len():
				return 1
			default:
				return 0
			}
		},
	}
}
