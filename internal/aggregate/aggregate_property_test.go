package aggregate

import (
	"context"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/digitsum/internal/dataset"
)

var separators = []string{" ", "\n", "\t", "  \n\t ", "\r\n    "}

// joinSegments builds a dataset text with the separator picked by sep.
func joinSegments(segments []string, sep int) string {
	return strings.Join(segments, separators[sep%len(separators)])
}

// TestSequentialEqualsParallel_PropertyBased verifies that both strategies
// agree on every dataset made only of digits and whitespace.
func TestSequentialEqualsParallel_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	seq := NewSequential()
	par := NewParallel()
	completion := NewParallel(WithCollectOrder(CollectCompletionOrder))

	properties.Property("sequential and parallel totals are identical", prop.ForAll(
		func(segments []string, sep int) bool {
			ds := dataset.New(joinSegments(segments, sep))
			want, err := seq.Aggregate(context.Background(), ds)
			if err != nil {
				t.Logf("sequential failed: %v", err)
				return false
			}
			got, err := par.Aggregate(context.Background(), ds)
			if err != nil || got != want {
				return false
			}
			got, err = completion.Aggregate(context.Background(), ds)
			return err == nil && got == want
		},
		gen.SliceOf(gen.NumString()),
		gen.IntRange(0, len(separators)-1),
	))

	properties.TestingRun(t)
}

// TestWhitespaceInvariance_PropertyBased checks that the choice of separator
// never changes the Final Result.
func TestWhitespaceInvariance_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	par := NewParallel()

	properties.Property("separator choice does not change the total", prop.ForAll(
		func(segments []string) bool {
			var first uint64
			for i := range separators {
				got, err := par.Aggregate(context.Background(), dataset.New(joinSegments(segments, i)))
				if err != nil {
					return false
				}
				if i == 0 {
					first = got
				} else if got != first {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.NumString()),
	))

	properties.TestingRun(t)
}

// TestTotalIsDigitCount_PropertyBased compares the total against a direct
// count over the whole text.
func TestTotalIsDigitCount_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("total equals the sum of every digit in the text", prop.ForAll(
		func(segments []string) bool {
			text := joinSegments(segments, 3)
			var want uint64
			for _, c := range text {
				if c >= '0' && c <= '9' {
					want += uint64(c - '0')
				}
			}
			got, err := NewSequential().Aggregate(context.Background(), dataset.New(text))
			return err == nil && got == want
		},
		gen.SliceOf(gen.NumString()),
	))

	properties.TestingRun(t)
}
