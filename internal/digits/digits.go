package digits

import (
	"errors"
	"fmt"
	"math/bits"
)

var (
	// ErrInvalidDigit is returned when a segment contains a character that is
	// not a decimal digit.
	ErrInvalidDigit = errors.New("invalid digit")
	// ErrOverflow is returned when a sum no longer fits in a uint64.
	ErrOverflow = errors.New("digit sum overflow")
)

// InvalidDigitError describes the first non-digit character of a segment.
type InvalidDigitError struct {
	// Char is the offending character.
	Char rune
	// Offset is the byte offset of Char within the segment.
	Offset int
}

// Error returns a message naming the offending character and its offset.
func (e *InvalidDigitError) Error() string {
	return fmt.Sprintf("invalid digit %q at offset %d", e.Char, e.Offset)
}

// Unwrap returns ErrInvalidDigit so callers can match with errors.Is.
func (e *InvalidDigitError) Unwrap() error { return ErrInvalidDigit }

// Sum returns the arithmetic sum of the decimal digits in segment.
//
// Every character must be in '0'..'9'. The first character outside that range
// aborts the computation with an *InvalidDigitError; nothing is skipped.
//
// Parameters:
//   - segment: A run of decimal digit characters.
//
// Returns:
//   - uint64: The sum of the digit values.
//   - error: An *InvalidDigitError, or ErrOverflow if the sum wraps.
func Sum(segment string) (uint64, error) {
	var total uint64
	for offset, c := range segment {
		if c < '0' || c > '9' {
			return 0, &InvalidDigitError{Char: c, Offset: offset}
		}
		next, err := Add(total, uint64(c-'0'))
		if err != nil {
			return 0, err
		}
		total = next
	}
	return total, nil
}

// Add returns a+b, or ErrOverflow instead of wrapping around.
func Add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return sum, nil
}
