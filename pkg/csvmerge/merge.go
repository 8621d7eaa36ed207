// Package csvmerge merges multiple CSV inputs into one output. It replaces
// the pile of near-identical one-off merge scripts with a single
// parameterized implementation.
package csvmerge

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrHeaderMismatch is returned when RequireMatchingHeaders is set and an
// input's header row differs from the first input's.
var ErrHeaderMismatch = errors.New("csv header mismatch")

// Options controls how inputs are combined.
type Options struct {
	// HasHeader treats the first row of every input as a header. The
	// header is written once, from the first input; later headers are
	// skipped.
	HasHeader bool
	// RequireMatchingHeaders rejects inputs whose header differs from the
	// first input's. Only meaningful with HasHeader.
	RequireMatchingHeaders bool
	// SkipBlankRows drops rows whose fields are all empty.
	SkipBlankRows bool
}

// Merge concatenates the CSV inputs into w in order.
func Merge(w io.Writer, opts Options, inputs ...io.Reader) error {
	if len(inputs) == 0 {
		return errors.New("no inputs")
	}

	out := csv.NewWriter(w)
	defer out.Flush()

	var header []string
	for i, input := range inputs {
		if err := mergeOne(out, opts, input, i, &header); err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
	}

	out.Flush()
	return out.Error()
}

// MergeFiles merges the named CSV files into w in order.
func MergeFiles(w io.Writer, opts Options, paths ...string) error {
	readers := make([]io.Reader, 0, len(paths))
	closers := make([]io.Closer, 0, len(paths))
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		closers = append(closers, f)
		readers = append(readers, f)
	}

	return Merge(w, opts, readers...)
}

func mergeOne(out *csv.Writer, opts Options, input io.Reader, index int, header *[]string) error {
	r := csv.NewReader(input)

	first := true
	for {
		record, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if opts.HasHeader && first {
			first = false
			if index == 0 {
				*header = record
				if err := out.Write(record); err != nil {
					return err
				}
			} else if opts.RequireMatchingHeaders && !equalFields(record, *header) {
				return fmt.Errorf("%w: got %v, want %v", ErrHeaderMismatch, record, *header)
			}
			continue
		}
		first = false

		if opts.SkipBlankRows && isBlank(record) {
			continue
		}

		if err := out.Write(record); err != nil {
			return err
		}
	}
}

func equalFields(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isBlank(record []string) bool {
	for _, field := range record {
		if field != "" {
			return false
		}
	}
	return true
}
