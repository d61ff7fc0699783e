package strata

// Lens is a composable accessor: a get and a set over one part A of a
// structure S. Set never modifies its input; it returns a new S.
//
// Both functions may fail. A lens built from a Field fails with
// ErrMissingField when the field is unset, and so does any composition
// that has to pass through that field.
type Lens[S, A any] struct {
	get func(S) (A, error)
	set func(S, A) (S, error)
}

// NewLens builds a lens from a get and a set function.
func NewLens[S, A any](get func(S) (A, error), set func(S, A) (S, error)) Lens[S, A] {
	return Lens[S, A]{get: get, set: set}
}

// Identity returns the lens that focuses on the whole structure.
func Identity[S any]() Lens[S, S] {
	return Lens[S, S]{
		get: func(s S) (S, error) { return s, nil },
		set: func(_ S, v S) (S, error) { return v, nil },
	}
}

// Get reads the focused part.
func (l Lens[S, A]) Get(s S) (A, error) { return l.get(s) }

// Lookup reads the focused part, reporting false instead of an error.
func (l Lens[S, A]) Lookup(s S) (A, bool) {
	v, err := l.get(s)
	return v, err == nil
}

// Set returns s with the focused part replaced by v.
func (l Lens[S, A]) Set(s S, v A) (S, error) { return l.set(s, v) }

// Modify replaces the focused part with fn applied to it.
func (l Lens[S, A]) Modify(s S, fn func(A) A) (S, error) {
	v, err := l.get(s)
	if err != nil {
		return s, err
	}
	return l.set(s, fn(v))
}

// To returns a setter that binds the focused part to v.
func (l Lens[S, A]) To(v A) Setter[S] {
	return func(s S) (S, error) { return l.set(s, v) }
}

// Compose chains outer, which focuses on an A inside S, with inner, which
// focuses on a B inside A.
//
//	Compose(outer, inner).Get(s)    == inner.Get(outer.Get(s))
//	Compose(outer, inner).Set(s, v) == outer.Set(s, inner.Set(outer.Get(s), v))
//
// Composition is associative. When outer's part is absent both Get and Set
// fail with outer's error.
func Compose[S, A, B any](outer Lens[S, A], inner Lens[A, B]) Lens[S, B] {
	return Lens[S, B]{
		get: func(s S) (B, error) {
			a, err := outer.get(s)
			if err != nil {
				var zero B
				return zero, err
			}
			return inner.get(a)
		},
		set: func(s S, v B) (S, error) {
			a, err := outer.get(s)
			if err != nil {
				return s, err
			}
			a, err = inner.set(a, v)
			if err != nil {
				return s, err
			}
			return outer.set(s, a)
		},
	}
}

// Compose3 is Compose(Compose(a, b), c).
func Compose3[S, A, B, C any](a Lens[S, A], b Lens[A, B], c Lens[B, C]) Lens[S, C] {
	return Compose(Compose(a, b), c)
}

// Setter is a pending update, as returned by Lens.To and Field.To.
type Setter[S any] func(S) (S, error)

// Apply runs setters over s in order. It stops at the first error and
// returns s unchanged in that case.
func Apply[S any](s S, setters ...Setter[S]) (S, error) {
	out := s
	for _, set := range setters {
		next, err := set(out)
		if err != nil {
			return s, err
		}
		out = next
	}
	return out, nil
}
