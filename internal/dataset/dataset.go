// Package dataset holds the immutable input of an aggregation run and splits
// it into segments.
package dataset

import (
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
)

// Sample is the built-in dataset used when no input is supplied. Each row is
// one segment.
const Sample = `86967897737416471853297327050364959
    11861322575564723963297542624962850
    70856234701860851907960690014725639
    58495327135744041048897885734297812
    69920216438980873548808413720956532
    16278424637452589860345374828574668`

// Dataset is an immutable text blob made of digit runs separated by
// whitespace. The zero value is the empty dataset.
type Dataset struct {
	text string
}

// New wraps text as a Dataset.
func New(text string) Dataset {
	return Dataset{text: text}
}

// Load reads r to the end and returns its content as a Dataset.
func Load(r io.Reader) (Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to read dataset: %w", err)
	}
	return New(string(data)), nil
}

// LoadFile reads the dataset stored at path.
func LoadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Segments returns the maximal runs of non-whitespace characters together
// with their index. The sequence is lazy and can be ranged over any number of
// times; every pass yields the same segments in the same order.
func (d Dataset) Segments() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		for segment := range strings.FieldsSeq(d.text) {
			if !yield(i, segment) {
				return
			}
			i++
		}
	}
}

// Count returns the number of segments.
func (d Dataset) Count() int {
	n := 0
	for range d.Segments() {
		n++
	}
	return n
}

// Len returns the size of the underlying text in bytes.
func (d Dataset) Len() int { return len(d.text) }
