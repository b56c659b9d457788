// Package format holds the text helpers shared by the CLI and the TUI:
// durations, grouped numbers, progress bars and completion estimates.
package format
