// Package tui implements the interactive dashboard (-tui): a live view of the
// segments of a run being scheduled and completed, with overall progress,
// a sparkline of partial results and the final comparison.
package tui
