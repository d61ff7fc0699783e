package strata

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================
// Equality and Hashing
// ============================================================

func TestTagged_TagDiscrimination(t *testing.T) {
	fourApples := fruit(apples, 4)
	fourOranges := fruit(oranges, 4)

	assert.False(t, fourApples.Equal(fourOranges.Value))
	assert.NotEqual(t, fourApples.Hash(), fourOranges.Hash())
}

func TestTagged_TagIdentity(t *testing.T) {
	a := fruit(apples, 4)
	b := fruit(apples, 4)

	assert.True(t, a.Equal(b.Value))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, 0, a.Compare(b.Value))

	set := NewValueSet(a.Opaque(), b.Opaque())
	assert.Equal(t, 1, set.Len())
}

func TestTagged_PayloadDiffers(t *testing.T) {
	assert.False(t, fruit(apples, 4).Equal(fruit(apples, 5).Value))
}

func TestTagged_HashFormula(t *testing.T) {
	v := fruit(apples, 4)
	want := uint64(apples.Hash()) ^ (Ints().Hash(4) << 1)
	assert.Equal(t, want, v.Hash())
}

func TestTagged_SameTagDifferentPayloadType(t *testing.T) {
	a := Tag(apples, 4, Ints())
	b := Tag(apples, int64(4), Ordered[int64]())

	assert.False(t, a.Equal(b.Value))
	assert.NotEqual(t, 0, a.Compare(b.Value))
	assert.Equal(t, -b.Compare(a.Value), a.Compare(b.Value))
}

func TestTagged_Zero(t *testing.T) {
	var zero Value

	assert.True(t, zero.IsZero())
	assert.True(t, zero.Equal(Value{}))
	assert.False(t, zero.Equal(fruit(apples, 4).Value))
	assert.Equal(t, "", zero.PayloadType())
	assert.False(t, fruit(apples, 4).IsZero())
}

// ============================================================
// Ordering
// ============================================================

func TestTagged_CompareTagFirst(t *testing.T) {
	// Tag order wins over payload order.
	assert.Equal(t, -1, fruit(apples, 100).Compare(fruit(oranges, 1).Value))
	assert.Equal(t, 1, fruit(oranges, 1).Compare(fruit(apples, 100).Value))

	// Same tag: payload order.
	assert.Equal(t, -1, fruit(apples, 4).Compare(fruit(apples, 5).Value))
}

func TestTagged_CompareZeroFirst(t *testing.T) {
	v := Tag(Atom{}, 1, Ints())
	assert.Equal(t, -1, Value{}.Compare(v.Value))
	assert.Equal(t, 1, v.Compare(Value{}))
}

// ============================================================
// Match
// ============================================================

func TestMatch_WrongTagIsAbsent(t *testing.T) {
	v := fruit(apples, 4).Opaque()

	_, ok := Match[int](v, oranges)
	assert.False(t, ok)

	_, ok = Match[int](Value{}, apples)
	assert.False(t, ok)
}

func TestMatch_RightTag(t *testing.T) {
	v := fruit(apples, 4).Opaque()

	got, ok := Match[int](v, apples)
	require.True(t, ok)
	assert.Equal(t, 4, got.Payload())
	assert.True(t, got.Equal(v))
}

func TestMatch_ContractViolationPanics(t *testing.T) {
	v := Tag(apples, "four", Strings()).Opaque()

	assert.PanicsWithError(t, "tag apples: expected payload int, got string", func() {
		Match[int](v, apples)
	})
}

func TestTagged_OpaqueIsFree(t *testing.T) {
	v := fruit(apples, 4)
	o := v.Opaque()

	assert.Equal(t, v.Hash(), o.Hash())
	assert.True(t, o.Equal(v.Value))
	assert.Equal(t, 4, o.Payload())
	assert.Equal(t, "int", o.PayloadType())
}

// ============================================================
// Dispatch
// ============================================================

func fruitCount(v Value) int {
	n, _ := Dispatch(v,
		On(apples, func(t Tagged[int]) int { return t.Payload() }),
		On(oranges, func(t Tagged[int]) int { return t.Payload() }),
	)
	return n
}

func area(v Value) (float64, bool) {
	return Dispatch(v,
		On(circleSchema.Tag(), func(c Tagged[Record]) float64 {
			r, _ := radiusField.Get(c)
			return math.Pi * r * r
		}),
		On(rectangleSchema.Tag(), func(rect Tagged[Record]) float64 {
			w, _ := widthField.Get(rect)
			h, _ := heightField.Get(rect)
			return w * h
		}),
	)
}

func TestDispatch_Fruit(t *testing.T) {
	assert.Equal(t, 4, fruitCount(fruit(apples, 4).Opaque()))
	assert.Equal(t, 7, fruitCount(fruit(oranges, 7).Opaque()))
	assert.Equal(t, 0, fruitCount(fruit(NewAtom("pears"), 3).Opaque()))
}

func TestDispatch_Shapes(t *testing.T) {
	got, ok := area(rectangleSchema.MustMake(5.0, 7.0).Opaque())
	require.True(t, ok)
	assert.Equal(t, 35.0, got)

	got, ok = area(circleSchema.MustMake(3.0).Opaque())
	require.True(t, ok)
	assert.InDelta(t, 28.274, got, 0.001)

	_, ok = area(fruit(apples, 1).Opaque())
	assert.False(t, ok)
}
