package strata

import "strings"

// Atom is an interned symbolic key with a precomputed hash.
//
// Atoms name record fields and tag tagged values. Two atoms built from the
// same bytes are equal no matter where or when they were created. The hash
// is a CRC-32 of the name; hash collisions are resolved by comparing names.
type Atom struct {
	name string
	hash uint32
}

// NewAtom creates an atom from a name. The name is used as-is.
func NewAtom(name string) Atom {
	return Atom{name: name, hash: computeCRC(name)}
}

// Atoms creates one atom per name.
func Atoms(names ...string) []Atom {
	out := make([]Atom, len(names))
	for i, n := range names {
		out[i] = NewAtom(n)
	}
	return out
}

// Name returns the atom's name.
func (a Atom) Name() string { return a.name }

// Hash returns the precomputed CRC-32 of the name.
func (a Atom) Hash() uint32 { return a.hash }

// IsZero reports whether a is the zero Atom. NewAtom("") is the zero Atom.
func (a Atom) IsZero() bool { return a == Atom{} }

// Equal reports whether a and b name the same atom.
func (a Atom) Equal(b Atom) bool {
	if a.hash != b.hash {
		return false
	}
	return a.name == b.name
}

// Compare orders atoms lexicographically by name.
// It is meant for deterministic iteration, never for equality.
func (a Atom) Compare(b Atom) int {
	return strings.Compare(a.name, b.name)
}

// String returns the atom's name.
func (a Atom) String() string { return a.name }
