package strata

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Registry indexes schemas by tag so that opaque values can be resolved
// back to the schema that built them.
//
// Schemas themselves are immutable; the registry is the one mutable type in
// the package and is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	schemas map[Atom]*Schema
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[Atom]*Schema)}
}

// Register adds schemas. A tag can be registered once; registering a
// different schema under a known tag fails with ErrDuplicateTag and leaves
// the registry unchanged. Registering the same schema again is a no-op.
func (r *Registry) Register(schemas ...*Schema) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch := make(map[Atom]*Schema, len(schemas))
	for _, s := range schemas {
		existing, ok := r.schemas[s.tag]
		if !ok {
			existing, ok = batch[s.tag]
		}
		if ok && existing != s {
			return errors.Wrapf(ErrDuplicateTag, "register %s", s.tag)
		}
		batch[s.tag] = s
	}
	for _, s := range schemas {
		r.schemas[s.tag] = s
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(schemas ...*Schema) *Registry {
	if err := r.Register(schemas...); err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the schema registered under tag.
func (r *Registry) Lookup(tag Atom) (*Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[tag]
	return s, ok
}

// Resolve finds the schema for v's tag and returns v's typed record view.
// It reports false for values whose tag is unknown or that are not records.
func (r *Registry) Resolve(v Value) (*Schema, Tagged[Record], bool) {
	s, ok := r.Lookup(v.Tag())
	if !ok {
		return nil, Tagged[Record]{}, false
	}
	if _, isRecord := v.Payload().(Record); !isRecord {
		return nil, Tagged[Record]{}, false
	}
	rec, ok := s.Match(v)
	return s, rec, ok
}

// Schemas returns the registered schemas sorted by tag.
func (r *Registry) Schemas() []*Schema {
	r.mu.RLock()
	out := make([]*Schema, 0, len(r.schemas))
	for _, s := range r.schemas {
		out = append(out, s)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Schema) int { return a.tag.Compare(b.tag) })
	return out
}

// Len returns the number of registered schemas.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.schemas)
}

// Canonical returns the canonical text of every registered schema, sorted
// by tag.
func (r *Registry) Canonical() string {
	var sb strings.Builder
	sb.WriteString("@schema{\n")
	for _, s := range r.Schemas() {
		writeSchema(&sb, s, "  ")
	}
	sb.WriteString("}")
	return sb.String()
}

// Hash returns the first 16 bytes of the SHA-256 of Canonical, hex encoded.
// Two registries with the same schemas hash the same.
func (r *Registry) Hash() string {
	sum := sha256.Sum256([]byte(r.Canonical()))
	return hex.EncodeToString(sum[:16])
}
