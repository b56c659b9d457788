package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/digitsum/internal/aggregate"
	"github.com/agbru/digitsum/internal/digits"
)

// ColorProvider supplies the ANSI sequences used to highlight error output.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

type noColor struct{}

func (noColor) Red() string    { return "" }
func (noColor) Yellow() string { return "" }
func (noColor) Reset() string  { return "" }

// HandleCalculationError prints a status line for a failed aggregation and
// returns the matching exit code. A nil err yields ExitSuccess and prints
// nothing.
//
// Parameters:
//   - err: The error returned by the aggregator.
//   - duration: How long the run took before failing.
//   - out: The writer for the status line.
//   - colors: Color provider; nil disables colors.
//
// Returns:
//   - int: The process exit code.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = noColor{}
	}
	elapsed := ""
	if duration > 0 {
		elapsed = fmt.Sprintf(" after %s", duration.Round(time.Microsecond))
	}
	where := ""
	if index, ok := aggregate.FailedSegment(err); ok {
		where = fmt.Sprintf(" in segment %d", index)
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sStatus: Failure (Timeout).%s The execution limit was reached%s.\n",
			colors.Red(), colors.Reset(), elapsed)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled.%s The run was interrupted%s.\n",
			colors.Yellow(), colors.Reset(), elapsed)
		return ExitErrorCanceled
	case errors.Is(err, digits.ErrInvalidDigit):
		fmt.Fprintf(out, "%sStatus: Failure (Invalid digit%s).%s %v\n",
			colors.Red(), where, colors.Reset(), err)
		return ExitErrorInput
	case errors.Is(err, digits.ErrOverflow):
		fmt.Fprintf(out, "%sStatus: Failure (Overflow%s).%s %v\n",
			colors.Red(), where, colors.Reset(), err)
		return ExitErrorInput
	case errors.Is(err, aggregate.ErrWorkerFailure):
		fmt.Fprintf(out, "%sStatus: Failure (Worker failure%s).%s %v\n",
			colors.Red(), where, colors.Reset(), err)
		return ExitErrorGeneric
	default:
		fmt.Fprintf(out, "%sStatus: Failure.%s %v\n", colors.Red(), colors.Reset(), err)
		return ExitErrorGeneric
	}
}
