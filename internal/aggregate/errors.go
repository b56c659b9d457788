package aggregate

import (
	"errors"
	"fmt"

	"github.com/agbru/digitsum/internal/digits"
)

// ErrWorkerFailure matches any error produced by a unit of work that ended
// without delivering a partial result.
var ErrWorkerFailure = errors.New("worker failure")

// SegmentError ties a failure to the segment it occurred in.
type SegmentError struct {
	// Index is the position of the segment in the dataset.
	Index int
	// Segment is the text of the segment.
	Segment string
	// Err is the underlying cause.
	Err error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("segment %d (%q): %v", e.Index, e.Segment, e.Err)
}

func (e *SegmentError) Unwrap() error { return e.Err }

// WorkerFailureError is returned at join time when a unit of work failed or
// panicked. It wraps a *SegmentError, so both errors.Is(err, ErrWorkerFailure)
// and errors.Is(err, digits.ErrInvalidDigit) hold for a bad digit.
type WorkerFailureError struct {
	Err *SegmentError
}

func (e *WorkerFailureError) Error() string {
	return fmt.Sprintf("%v: %v", ErrWorkerFailure, e.Err)
}

func (e *WorkerFailureError) Unwrap() error { return e.Err }

// Is reports whether target is ErrWorkerFailure.
func (e *WorkerFailureError) Is(target error) bool { return target == ErrWorkerFailure }

// Index returns the index of the failed segment.
func (e *WorkerFailureError) Index() int { return e.Err.Index }

// Failure kinds used as metric labels.
const (
	KindInvalidDigit  = "invalid_digit"
	KindOverflow      = "overflow"
	KindWorkerFailure = "worker_failure"
	KindOther         = "other"
)

// ErrorKind classifies err for reporting. It returns "" for a nil error.
// The digit-level cause wins over the worker wrapper.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, digits.ErrInvalidDigit):
		return KindInvalidDigit
	case errors.Is(err, digits.ErrOverflow):
		return KindOverflow
	case errors.Is(err, ErrWorkerFailure):
		return KindWorkerFailure
	default:
		return KindOther
	}
}

// FailedSegment returns the index of the segment err refers to, if any.
func FailedSegment(err error) (int, bool) {
	var segErr *SegmentError
	if errors.As(err, &segErr) {
		return segErr.Index, true
	}
	return 0, false
}
