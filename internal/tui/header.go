package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/digitsum/internal/format"
)

// HeaderModel renders the top bar: the run on the left (strategy, unit
// outcomes, throughput) and the elapsed time on the right.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	strategy  string
	finished  int
	units     int
	width     int
}

// NewHeaderModel creates a header. units is the number of outcomes the run
// delivers: one per segment and strategy.
func NewHeaderModel(version, strategy string, units int) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		strategy:  strategy,
		units:     units,
	}
}

// SetFinished records how many units have delivered an outcome.
func (h *HeaderModel) SetFinished(n int) {
	h.finished = min(n, h.units)
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset restarts the timer and the unit count for a rerun.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
	h.finished = 0
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

func (h HeaderModel) elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	title := "Digit-Sum Monitor"
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}

	elapsed := h.elapsed()
	pipe := versionStyle.Render(" | ")
	left := titleStyle.Render(title) +
		pipe + versionStyle.Render(h.strategy) +
		pipe + fmt.Sprintf("%d/%d units", h.finished, h.units) +
		pipe + format.FormatThroughput(h.finished, elapsed)
	right := elapsedStyle.Render("Elapsed: " + format.FormatExecutionDuration(elapsed))

	gap := max(h.width-2-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return headerStyle.Width(h.width).Render(left + strings.Repeat(" ", gap) + right)
}
