package strata

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shoeSize uint8

// ============================================================
// Ordered Traits
// ============================================================

func TestOrdered_Ints(t *testing.T) {
	tr := Ints()

	assert.True(t, tr.Equal(4, 4))
	assert.False(t, tr.Equal(4, 5))
	assert.Equal(t, tr.Hash(4), tr.Hash(4))
	assert.NotEqual(t, tr.Hash(4), tr.Hash(5))
	assert.Equal(t, -1, tr.Compare(4, 5))
}

func TestOrdered_NamedType(t *testing.T) {
	tr := Ordered[shoeSize]()

	assert.Equal(t, tr.Hash(9), tr.Hash(shoeSize(9)))
	assert.NotEqual(t, tr.Hash(9), tr.Hash(10))
	assert.Equal(t, 1, tr.Compare(10, 9))
}

func TestOrdered_Strings(t *testing.T) {
	tr := Strings()

	assert.Equal(t, tr.Hash("67890"), tr.Hash(string([]byte("67890"))))
	assert.NotEqual(t, tr.Hash("67890"), tr.Hash("12345"))
	assert.True(t, tr.Compare("a", "b") < 0)
}

func TestOrdered_FloatNormalization(t *testing.T) {
	tr := Floats()
	negZero := math.Copysign(0, -1)

	assert.True(t, tr.Equal(0, negZero))
	assert.Equal(t, tr.Hash(0), tr.Hash(negZero))

	nan := math.NaN()
	assert.True(t, tr.Equal(nan, nan))
	assert.Equal(t, tr.Hash(nan), tr.Hash(math.Float64frombits(0x7ff8000000000001)))
}

// ============================================================
// Other Stock Traits
// ============================================================

func TestBools(t *testing.T) {
	tr := Bools()

	assert.True(t, tr.Equal(true, true))
	assert.NotEqual(t, tr.Hash(true), tr.Hash(false))
	assert.Equal(t, -1, tr.Compare(false, true))
	assert.Equal(t, 1, tr.Compare(true, false))
	assert.Equal(t, 0, tr.Compare(false, false))
}

func TestByteSlices(t *testing.T) {
	tr := ByteSlices()

	a := []byte("payload")
	b := []byte("payload")
	assert.True(t, tr.Equal(a, b))
	assert.Equal(t, tr.Hash(a), tr.Hash(b))
	assert.False(t, tr.Equal(a, []byte("other")))
}

type lyricLine struct {
	text      string
	timestamp uint16
}

func lineTraits() Traits[lyricLine] {
	return Comparable(func(l lyricLine) uint64 {
		return Strings().Hash(l.text) ^ (Ordered[uint16]().Hash(l.timestamp) << 1)
	}, nil)
}

func TestComparable_WithoutCompareOrdersByHash(t *testing.T) {
	tr := lineTraits()
	a := lyricLine{"Never gonna give you up", 22}
	b := lyricLine{"Never gonna let you down", 26}

	assert.True(t, tr.Equal(a, lyricLine{"Never gonna give you up", 22}))
	assert.False(t, tr.Equal(a, b))
	assert.Equal(t, 0, tr.compare(a, a))

	// Without Compare the order is by hash, but it is still antisymmetric.
	assert.Equal(t, -tr.compare(a, b), tr.compare(b, a))
	assert.NotZero(t, tr.compare(a, b))
}

type point struct{ x, y int }

func TestComparable_HashCollisionKeepsOrder(t *testing.T) {
	// x+y collides for {1,2} and {2,1}.
	tr := Comparable(func(p point) uint64 { return uint64(p.x + p.y) }, nil)
	a, b := point{1, 2}, point{2, 1}

	require.Equal(t, tr.Hash(a), tr.Hash(b))
	assert.False(t, tr.Equal(a, b))
	assert.NotZero(t, tr.compare(a, b))
	assert.Equal(t, -tr.compare(a, b), tr.compare(b, a))

	at := NewAtom("at")
	set := NewValueSet(Tag(at, a, tr).Opaque(), Tag(at, b, tr).Opaque(), Tag(at, a, tr).Opaque())
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, 2, NewValueHashSet(Tag(at, a, tr).Opaque(), Tag(at, b, tr).Opaque()).Len())
}

// ============================================================
// Erased Traits
// ============================================================

func TestErased_ForeignTypes(t *testing.T) {
	ops := erase(Ints())

	assert.Equal(t, "int", ops.typeName())
	assert.True(t, ops.accepts(3))
	assert.False(t, ops.accepts("3"))
	assert.False(t, ops.equal(3, "3"))
	assert.Equal(t, unsetFieldHash, ops.hash("3"))
	assert.Equal(t, -1, ops.compare(3, "3"))
	assert.Equal(t, 1, ops.compare("3", 3))
	assert.Equal(t, 0, ops.compare(3, 3))
}

func TestValues_NestedTaggedPayload(t *testing.T) {
	crate := NewAtom("crate")
	a := Tag(crate, fruit(apples, 4).Opaque(), Values())
	b := Tag(crate, fruit(apples, 4).Opaque(), Values())
	c := Tag(crate, fruit(oranges, 4).Opaque(), Values())

	assert.True(t, a.Equal(b.Value))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(c.Value))
	assert.Equal(t, -1, a.Compare(c.Value))
	assert.Equal(t, "crate(apples(4))", a.String())
}
