package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats the duration of an aggregation run.
// Runs over a handful of segments often finish below the clock resolution,
// so anything under a microsecond reads "< 1µs" rather than "0µs".
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return "< 1µs"
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(time.Millisecond).String()
}

// FormatThroughput renders how many segments per second a run of the given
// duration processed, e.g. "12,500 segments/s". A zero duration or zero
// segments yields "n/a".
func FormatThroughput(segments int, d time.Duration) string {
	if segments <= 0 || d <= 0 {
		return "n/a"
	}
	rate := float64(segments) / d.Seconds()
	return FormatUint(uint64(rate+0.5)) + " segments/s"
}
