package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Neumenon/strata/strata"
)

type demo struct {
	name string
	run  func(out io.Writer, format string) error
}

var demos = []demo{
	{"fruit", runFruit},
	{"people", runPeople},
	{"shapes", runShapes},
	{"songs", runSongs},
}

func newDemoCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:       "demo [fruit|people|shapes|songs|all]",
		Short:     "Run a demo",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"fruit", "people", "shapes", "songs", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			which := "all"
			if len(args) == 1 {
				which = args[0]
			}
			return runDemos(cmd.OutOrStdout(), which, opts.format)
		},
	}
}

func runDemos(out io.Writer, which, format string) error {
	ran := false
	for _, d := range demos {
		if which != "all" && which != d.name {
			continue
		}
		ran = true
		logrus.Debugf("running demo %s", d.name)
		writef(out, "== %s\n", d.name)
		if err := d.run(out, format); err != nil {
			return errors.Wrapf(err, "demo %s", d.name)
		}
	}
	if !ran {
		return errors.Errorf("unknown demo %q", which)
	}
	return nil
}

// runFruit keeps fruit in an ordered set: duplicates collapse, and values
// sort by tag, then count.
func runFruit(out io.Writer, _ string) error {
	basket := strata.NewValueSet(
		fruit(apples, 4),
		fruit(oranges, 4),
		fruit(apples, 5),
		fruit(apples, 4),
	)

	total := 0
	itr := basket.Iterator()
	for !itr.Done() {
		v, ok := itr.Next()
		if !ok {
			break
		}
		n, ok := fruitCount(v)
		if !ok {
			return errors.Errorf("not a fruit: %s", v)
		}
		total += n
		writef(out, "%s\n", v)
	}
	writef(out, "%d distinct, %d pieces\n", basket.Len(), total)

	if _, ok := strata.Match[int](fruit(apples, 4), oranges); !ok {
		writef(out, "apples are not oranges\n")
	}
	return nil
}

// runPeople updates a nested record and shows that the original survives
// and untouched siblings stay shared.
func runPeople(out io.Writer, format string) error {
	john := Person.MustMake("John Smith", uint8(42), Contact.MustMake("67890", "j.smith@email.com"))

	junior, err := strata.Apply(john,
		name.To("Johnny Junior"),
		age.To(12),
		personEmail.To("junior@email.com"),
	)
	if err != nil {
		return err
	}

	renamed := name.Set(john, "Jack Smith")
	before, err := contact.Get(john)
	if err != nil {
		return err
	}
	after, err := contact.Get(renamed)
	if err != nil {
		return err
	}

	people := []strata.Tagged[strata.Record]{john, junior, renamed}
	if format == formatTable {
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"name", "age", "email", "hash"})
		for _, p := range people {
			n, _ := name.Get(p)
			a, _ := age.Get(p)
			e, _ := personEmail.Get(p)
			table.Append([]string{n, strconv.Itoa(int(a)), e, fmt.Sprintf("%016x", p.Hash())})
		}
		table.Render()
	} else {
		for _, p := range people {
			writef(out, "%s\n", p)
		}
	}
	writef(out, "contact shared after rename: %t\n", before.Payload().SharesStorage(after.Payload()))

	partial := name.Set(Person.Empty(), "Nobody")
	if _, err := personEmail.Get(partial); err != nil {
		if !errors.Is(err, strata.ErrMissingField) {
			return err
		}
		logrus.Debugf("partial record: %v", err)
		writef(out, "partial: %s (%v)\n", partial, err)
	}
	return nil
}

// runShapes stores circles and rectangles in one set and computes areas by
// dispatching on the tag.
func runShapes(out io.Writer, format string) error {
	shapes := strata.NewValueSet(
		Rectangle.MustMake(5.0, 7.0).Opaque(),
		Circle.MustMake(3.0).Opaque(),
		Circle.MustMake(1.0).Opaque(),
		Rectangle.MustMake(5.0, 7.0).Opaque(),
	)

	var table *tablewriter.Table
	if format == formatTable {
		table = tablewriter.NewWriter(out)
		table.SetHeader([]string{"shape", "area"})
	}

	itr := shapes.Iterator()
	for !itr.Done() {
		v, ok := itr.Next()
		if !ok {
			break
		}
		a, ok := area(v)
		if !ok {
			return errors.Errorf("not a shape: %s", v)
		}
		if table != nil {
			table.Append([]string{v.String(), strconv.FormatFloat(a, 'f', 2, 64)})
			continue
		}
		writef(out, "%s area=%.2f\n", v, a)
	}
	if table != nil {
		table.Render()
	}
	return nil
}

// runSongs attaches lyrics as an extension field and shows they do not
// change the song's identity.
func runSongs(out io.Writer, _ string) error {
	song := Song.MustMake("Never Gonna Give You Up", "Rick Astley")

	lines := strata.NewVector(
		Line.MustMake("Never gonna give you up", uint16(22)),
		Line.MustMake("Never gonna let you down", uint16(26)),
	)
	withLyrics := lyrics.Set(song, lines)
	withLyrics = lyrics.Set(withLyrics, lines.Append(Line.MustMake("Never gonna run around", uint16(30))))

	got, err := lyrics.Get(withLyrics)
	if err != nil {
		return err
	}
	writef(out, "%s\n", withLyrics)
	writef(out, "%d lines, same song: %t\n", got.Len(), withLyrics.Equal(song.Value))

	reg := demoRegistry()
	s, rec, ok := reg.Resolve(withLyrics.Opaque())
	if !ok {
		return errors.Errorf("unregistered tag %s", withLyrics.Tag())
	}
	writef(out, "resolved %s, complete: %t\n", s.Tag(), s.Complete(rec.Payload()))
	return nil
}

func writef(out io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(out, format, args...)
}
