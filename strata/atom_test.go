package strata

import (
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================
// Atom Tests
// ============================================================

func TestAtom_EqualAcrossConstructions(t *testing.T) {
	a := NewAtom("apples")
	b := NewAtom(string([]byte{'a', 'p', 'p', 'l', 'e', 's'}))

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, a, b)
}

func TestAtom_HashIsCRC32(t *testing.T) {
	for _, name := range []string{"apples", "telephone", "x", "Johnny Junior"} {
		assert.Equal(t, crc32.ChecksumIEEE([]byte(name)), NewAtom(name).Hash(), name)
	}
}

func TestAtom_NoNormalization(t *testing.T) {
	assert.False(t, NewAtom("Apples").Equal(NewAtom("apples")))
	assert.False(t, NewAtom("apples ").Equal(NewAtom("apples")))
}

func TestAtom_CollisionTieBreak(t *testing.T) {
	// Same hash, different names: equality must fall back to the name.
	a := Atom{name: "left", hash: 7}
	b := Atom{name: "right", hash: 7}

	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(Atom{name: "left", hash: 7}))
}

func TestAtom_Compare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"apples", "oranges", -1},
		{"oranges", "apples", 1},
		{"apples", "apples", 0},
		{"a", "ab", -1},
		{"", "a", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, NewAtom(tt.a).Compare(NewAtom(tt.b)))
		})
	}
}

func TestAtom_IsZero(t *testing.T) {
	assert.True(t, Atom{}.IsZero())
	assert.True(t, NewAtom("").IsZero())
	assert.False(t, NewAtom("x").IsZero())
}

func TestAtoms(t *testing.T) {
	got := Atoms("name", "age")
	assert.Len(t, got, 2)
	assert.Equal(t, "name", got[0].Name())
	assert.Equal(t, "age", got[1].String())
}
