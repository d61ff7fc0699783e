// Package strata implements immutable, structurally shared records with
// typed field access, composable accessors and type-erased tagged values.
//
// strata is designed to be:
//   - Immutable: no value is modified after construction
//   - Cheap to update: a field update shares every other field with the
//     original record (persistent maps, O(log n) per update)
//   - Safe to downcast: tagged values are matched by tag, never cast blindly
//   - Hashable and ordered: every value can key hashed and sorted containers
//   - Safe to share between goroutines without locking
//
// # Data Model
//
// Atom:     interned field name / type tag with a precomputed CRC-32 hash
// Record:   field atom → value, hashed and compared by its Schema
// Schema:   tag + ordered typed fields; builds records
// Field:    typed field descriptor, also an accessor
// Lens:     composable get/set pair
// Value:    opaque tag + payload box; Tagged[T] is its typed view
//
// # Example
//
//	var (
//	    telephone = strata.NewField("telephone", strata.Strings())
//	    email     = strata.NewField("email", strata.Strings())
//	    Contact   = strata.NewSchema("contact", telephone, email)
//
//	    name    = strata.NewField("name", strata.Strings())
//	    contact = strata.RecordField("contact", Contact)
//	    Person  = strata.NewSchema("person", name, contact)
//	)
//
//	john := Person.MustMake("John Smith", Contact.MustMake("67890", "j.smith@email.com"))
//	personEmail := strata.Compose(contact.Lens(), email.Lens())
//	junior, err := strata.Apply(john,
//	    name.To("Johnny Junior"),
//	    personEmail.To("junior@email.com"),
//	)
//
// # Tagged Values
//
// A tag must always carry the same payload type. Match checks the tag and
// hands back the typed view; a different tag is an ordinary miss:
//
//	if n, ok := strata.Match[int](v, apples); ok {
//	    return n.Payload()
//	}
//
// # Errors
//
// Reading an unset field fails with ErrMissingField. Tag mismatches are not
// errors. Every failure is a programming or schema-usage error: nothing is
// retried.
package strata
