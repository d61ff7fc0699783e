package strata

// Shared schemas for the package tests: a contact nested in a person, a
// company nested around a person, and two shapes.

var (
	telephoneField = NewField("telephone", Strings())
	emailField     = NewField("email", Strings())
	contactSchema  = NewSchema("contact", telephoneField, emailField)

	nameField    = NewField("name", Strings())
	ageField     = NewField("age", Ordered[uint8]())
	contactField = RecordField("contact", contactSchema)
	personSchema = NewSchema("person", nameField, ageField, contactField)

	ceoField      = RecordField("ceo", personSchema)
	titleField    = NewField("title", Strings())
	companySchema = NewSchema("company", titleField, ceoField)

	radiusField  = NewField("radius", Floats())
	circleSchema = NewSchema("circle", radiusField)

	widthField      = NewField("width", Floats())
	heightField     = NewField("height", Floats())
	rectangleSchema = NewSchema("rectangle", widthField, heightField)

	apples  = NewAtom("apples")
	oranges = NewAtom("oranges")
)

func newJohn() Tagged[Record] {
	return personSchema.MustMake(
		"John Smith",
		uint8(42),
		contactSchema.MustMake("67890", "j.smith@email.com"),
	)
}

func fruit(tag Atom, n int) Tagged[int] {
	return Tag(tag, n, Ints())
}
