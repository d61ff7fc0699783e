// bench - persistent update cost runner
//
// Compares updating one field of a strata record against copying a plain
// map of the same size and setting the field on the copy:
//   - ns per update
//   - speedup of the persistent update
//
// Output: table on stdout, optional CSV
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Neumenon/strata/strata"
)

type CaseResult struct {
	Fields       int
	Iterations   int
	PersistentNs float64
	CopyNs       float64
	Speedup      float64
}

type benchOpts struct {
	fields     []int
	iterations int
	csvPath    string
	verbose    bool
}

func main() {
	if err := newBenchCmd().Execute(); err != nil {
		logrus.Errorf("bench: %v", err)
		os.Exit(1)
	}
}

func newBenchCmd() *cobra.Command {
	opts := &benchOpts{}
	cmd := &cobra.Command{
		Use:           "bench",
		Short:         "Measure the cost of persistent record updates",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			if opts.iterations <= 0 {
				return errors.Errorf("iterations must be positive, got %d", opts.iterations)
			}

			results := make([]CaseResult, 0, len(opts.fields))
			for _, n := range opts.fields {
				if n <= 0 {
					return errors.Errorf("field count must be positive, got %d", n)
				}
				logrus.Debugf("running %d fields x %d iterations", n, opts.iterations)
				results = append(results, runCase(n, opts.iterations))
			}

			writeTable(cmd.OutOrStdout(), results)

			if opts.csvPath != "" {
				if err := saveCSV(opts.csvPath, results); err != nil {
					return err
				}
				logrus.Infof("CSV written to: %s", opts.csvPath)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntSliceVar(&opts.fields, "fields", []int{4, 16, 64, 256, 1024}, "record sizes to measure")
	flags.IntVarP(&opts.iterations, "iterations", "n", 20000, "updates per case")
	flags.StringVar(&opts.csvPath, "csv", "", "also write results as CSV to this file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log each case")
	return cmd
}

// runCase builds a schema with n int fields and times single-field updates
// both ways.
func runCase(n, iterations int) CaseResult {
	fields := make([]strata.FieldDesc, n)
	values := make([]any, n)
	plain := make(map[strata.Atom]any, n)
	for i := range fields {
		f := strata.NewField(fmt.Sprintf("f%d", i), strata.Ints())
		fields[i] = f
		values[i] = i
		plain[f.Key()] = i
	}
	schema := strata.NewSchema(fmt.Sprintf("bench%d", n), fields...)
	rec := schema.MustMake(values...)
	target := fields[n/2].(strata.Field[int])

	start := time.Now()
	for i := 0; i < iterations; i++ {
		rec = target.Set(rec, i)
	}
	persistent := time.Since(start)

	start = time.Now()
	for i := 0; i < iterations; i++ {
		next := make(map[strata.Atom]any, len(plain))
		for k, v := range plain {
			next[k] = v
		}
		next[target.Key()] = i
		plain = next
	}
	copied := time.Since(start)

	res := CaseResult{
		Fields:       n,
		Iterations:   iterations,
		PersistentNs: float64(persistent.Nanoseconds()) / float64(iterations),
		CopyNs:       float64(copied.Nanoseconds()) / float64(iterations),
	}
	if res.PersistentNs > 0 {
		res.Speedup = res.CopyNs / res.PersistentNs
	}
	return res
}

func writeTable(w io.Writer, results []CaseResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"fields", "persistent ns/op", "map copy ns/op", "speedup"})
	for _, r := range results {
		table.Append([]string{
			fmt.Sprintf("%d", r.Fields),
			fmt.Sprintf("%.1f", r.PersistentNs),
			fmt.Sprintf("%.1f", r.CopyNs),
			fmt.Sprintf("%.2fx", r.Speedup),
		})
	}
	table.Render()
}

func saveCSV(path string, results []CaseResult) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create csv")
	}
	if err := writeCSV(f, results); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

func writeCSV(w io.Writer, results []CaseResult) error {
	if _, err := fmt.Fprintln(w, "fields,iterations,persistent_ns,copy_ns,speedup"); err != nil {
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%d,%d,%.1f,%.1f,%.2f\n",
			r.Fields, r.Iterations, r.PersistentNs, r.CopyNs, r.Speedup); err != nil {
			return err
		}
	}
	return nil
}
