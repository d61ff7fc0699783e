package main

import (
	"math"

	"github.com/Neumenon/strata/strata"
)

// Contacts and people.
var (
	telephone = strata.NewField("telephone", strata.Strings())
	email     = strata.NewField("email", strata.Strings())
	Contact   = strata.NewSchema("contact", telephone, email)

	name    = strata.NewField("name", strata.Strings())
	age     = strata.NewField("age", strata.Ordered[uint8]())
	contact = strata.RecordField("contact", Contact)
	Person  = strata.NewSchema("person", name, age, contact)

	personEmail = strata.Compose(contact.Lens(), email.Lens())
)

// Shapes.
var (
	radius = strata.NewField("radius", strata.Floats())
	Circle = strata.NewSchema("circle", radius)

	width     = strata.NewField("width", strata.Floats())
	height    = strata.NewField("height", strata.Floats())
	Rectangle = strata.NewSchema("rectangle", width, height)
)

// Songs. Lyrics are an extension field: they are carried by the record but
// do not take part in its identity.
var (
	text = strata.NewField("text", strata.Strings())
	at   = strata.NewField("at", strata.Ordered[uint16]())
	Line = strata.NewSchema("line", text, at)

	title  = strata.NewField("title", strata.Strings())
	artist = strata.NewField("artist", strata.Strings())
	Song   = strata.NewSchema("song", title, artist)

	lyrics = strata.NewField("lyrics", strata.Vectors(strata.Records()), strata.WithTypeName("list<line>"))
)

// Fruit tags. Each tag always carries an int count.
var (
	apples  = strata.NewAtom("apples")
	oranges = strata.NewAtom("oranges")
)

func fruit(tag strata.Atom, n int) strata.Value {
	return strata.Tag(tag, n, strata.Ints()).Opaque()
}

func demoRegistry() *strata.Registry {
	return strata.NewRegistry().MustRegister(Contact, Person, Circle, Rectangle, Line, Song)
}

func area(v strata.Value) (float64, bool) {
	return strata.Dispatch(v,
		strata.On(Circle.Tag(), func(c strata.Tagged[strata.Record]) float64 {
			r, _ := radius.Get(c)
			return math.Pi * r * r
		}),
		strata.On(Rectangle.Tag(), func(rect strata.Tagged[strata.Record]) float64 {
			w, _ := width.Get(rect)
			h, _ := height.Get(rect)
			return w * h
		}),
	)
}

func fruitCount(v strata.Value) (int, bool) {
	count := func(t strata.Tagged[int]) int { return t.Payload() }
	return strata.Dispatch(v, strata.On(apples, count), strata.On(oranges, count))
}
