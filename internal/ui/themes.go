package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the ANSI escape codes of the line-oriented CLI output.
// The comparison table, the result block and the calibration report pick
// their colors through the Color* helpers rather than reading a Theme.
type Theme struct {
	// Name is "dark" or "none".
	Name string
	// Primary colors strategy names.
	Primary string
	// Secondary colors counts, sources and other configuration values.
	Secondary string
	// Success colors successful runs and the chosen crossover.
	Success string
	// Warning colors durations and timeouts.
	Warning string
	// Error colors failed runs and invalid segments.
	Error string
	// Info colors the segment count of the dataset.
	Info string
	// Bold emphasizes the Final Result.
	Bold string
	// Underline marks table headers.
	Underline string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme is the default palette, tuned for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // blue
		Secondary: "\033[38;5;245m", // grey
		Success:   "\033[38;5;82m",  // green
		Warning:   "\033[38;5;220m", // yellow
		Error:     "\033[38;5;196m", // red
		Info:      "\033[38;5;141m", // purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables every escape code. Selected when NO_COLOR is set.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// TUITheme is the dashboard palette. Besides the chrome colors it carries
// one color per segment state, shared by the segments panel, the partials
// sparkline and the status line.
type TUITheme struct {
	Bg     lipgloss.TerminalColor
	Text   lipgloss.TerminalColor
	Border lipgloss.TerminalColor
	Accent lipgloss.TerminalColor
	Dim    lipgloss.TerminalColor

	// Scheduled is a segment whose unit has not delivered yet.
	Scheduled lipgloss.TerminalColor
	// Processed is a segment with a partial result.
	Processed lipgloss.TerminalColor
	// Failed is a segment whose unit failed.
	Failed lipgloss.TerminalColor
	// Paused marks a dashboard buffering segment events.
	Paused lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the default dashboard palette.
	DarkTUITheme = TUITheme{
		Bg:        lipgloss.Color("#000000"),
		Text:      lipgloss.Color("#E0E0E0"),
		Border:    lipgloss.Color("#FF6600"),
		Accent:    lipgloss.Color("#FF8C00"),
		Dim:       lipgloss.Color("#666666"),
		Scheduled: lipgloss.Color("#4488FF"),
		Processed: lipgloss.Color("#9ECE6A"),
		Failed:    lipgloss.Color("#FF4444"),
		Paused:    lipgloss.Color("#FFB347"),
	}

	// NoColorTUITheme renders everything in the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Bg:        lipgloss.NoColor{},
		Text:      lipgloss.NoColor{},
		Border:    lipgloss.NoColor{},
		Accent:    lipgloss.NoColor{},
		Dim:       lipgloss.NoColor{},
		Scheduled: lipgloss.NoColor{},
		Processed: lipgloss.NoColor{},
		Failed:    lipgloss.NoColor{},
		Paused:    lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the dashboard palette matching the active theme.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()

	if currentTheme.Name == NoColorTheme.Name {
		return NoColorTUITheme
	}
	return DarkTUITheme
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to pin colors.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// InitTheme selects the theme for this process: NoColorTheme when noColor is
// true or NO_COLOR is present in the environment (https://no-color.org/),
// DarkTheme otherwise.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}
