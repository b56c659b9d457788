package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/digitsum/internal/ui"
)

// Style variables for the TUI dashboard.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle         lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	versionStyle       lipgloss.Style
	elapsedStyle       lipgloss.Style
	segIndexStyle      lipgloss.Style
	metricLabelStyle   lipgloss.Style
	metricValueStyle   lipgloss.Style
	sparklineStyle     lipgloss.Style
	footerKeyStyle     lipgloss.Style
	footerDescStyle    lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style

	// segmentStyles colors a segment by its state.
	segmentStyles map[segmentState]lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Background(t.Bg).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	elapsedStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	segIndexStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	segmentStyles = map[segmentState]lipgloss.Style{
		segmentPending: lipgloss.NewStyle().Foreground(t.Scheduled),
		segmentDone:    lipgloss.NewStyle().Foreground(t.Processed),
		segmentFailed:  lipgloss.NewStyle().Foreground(t.Failed),
	}

	metricLabelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	metricValueStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	sparklineStyle = lipgloss.NewStyle().
		Foreground(t.Processed)

	footerKeyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	statusRunningStyle = lipgloss.NewStyle().
		Foreground(t.Scheduled).
		Bold(true)

	statusPausedStyle = lipgloss.NewStyle().
		Foreground(t.Paused).
		Bold(true)

	statusDoneStyle = lipgloss.NewStyle().
		Foreground(t.Processed).
		Bold(true)

	statusErrorStyle = lipgloss.NewStyle().
		Foreground(t.Failed).
		Bold(true)
}
