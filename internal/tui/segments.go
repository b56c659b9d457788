package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type segmentState int

const (
	segmentPending segmentState = iota
	segmentDone
	segmentFailed
)

// segmentRow is one line of the segments panel.
type segmentRow struct {
	index   int
	text    string
	state   segmentState
	partial uint64
	err     error
}

// SegmentsModel is the scrollable panel listing every segment of the run.
type SegmentsModel struct {
	rows   map[int]*segmentRow
	order  []int
	offset int
	width  int
	height int
}

// NewSegmentsModel creates an empty panel.
func NewSegmentsModel() SegmentsModel {
	return SegmentsModel{rows: make(map[int]*segmentRow)}
}

// SetSize updates the panel dimensions, borders included.
func (s *SegmentsModel) SetSize(w, h int) {
	s.width, s.height = w, h
	s.clampOffset()
}

// Reset clears every row.
func (s *SegmentsModel) Reset() {
	s.rows = make(map[int]*segmentRow)
	s.order = nil
	s.offset = 0
}

func (s *SegmentsModel) row(index int) *segmentRow {
	r, ok := s.rows[index]
	if !ok {
		r = &segmentRow{index: index}
		s.rows[index] = r
		i := sort.SearchInts(s.order, index)
		s.order = append(s.order, 0)
		copy(s.order[i+1:], s.order[i:])
		s.order[i] = index
	}
	return r
}

// Schedule records a scheduled segment.
func (s *SegmentsModel) Schedule(index int, text string) {
	s.row(index).text = text
}

// Complete records the outcome of a segment.
func (s *SegmentsModel) Complete(index int, partial uint64, err error) {
	r := s.row(index)
	if err != nil {
		r.state, r.err = segmentFailed, err
		return
	}
	r.state, r.partial = segmentDone, partial
}

// Len returns the number of known segments.
func (s *SegmentsModel) Len() int { return len(s.order) }

// Counts returns how many segments are done and how many failed.
func (s *SegmentsModel) Counts() (done, failed int) {
	for _, r := range s.rows {
		switch r.state {
		case segmentDone:
			done++
		case segmentFailed:
			failed++
		}
	}
	return done, failed
}

// Partials returns the partial results in segment order, zero for segments
// without one.
func (s *SegmentsModel) Partials() []float64 {
	out := make([]float64, len(s.order))
	for i, idx := range s.order {
		out[i] = float64(s.rows[idx].partial)
	}
	return out
}

func (s *SegmentsModel) visibleRows() int {
	return max(s.height-2, 1)
}

func (s *SegmentsModel) clampOffset() {
	maxOffset := max(len(s.order)-s.visibleRows(), 0)
	s.offset = min(max(s.offset, 0), maxOffset)
}

// Scroll moves the view by delta rows.
func (s *SegmentsModel) Scroll(delta int) {
	s.offset += delta
	s.clampOffset()
}

// View renders the panel.
func (s SegmentsModel) View() string {
	inner := max(s.width-2, 10)
	visible := s.visibleRows()
	lines := make([]string, 0, visible)
	end := min(s.offset+visible, len(s.order))
	for _, idx := range s.order[s.offset:end] {
		lines = append(lines, s.renderRow(s.rows[idx], inner))
	}
	for len(lines) < visible {
		lines = append(lines, "")
	}
	return panelStyle.Width(inner).Render(strings.Join(lines, "\n"))
}

func (s SegmentsModel) renderRow(r *segmentRow, width int) string {
	var status string
	switch r.state {
	case segmentPending:
		status = "running"
	case segmentDone:
		status = fmt.Sprintf("= %d", r.partial)
	case segmentFailed:
		status = "failed: " + r.err.Error()
	}
	status = segmentStyles[r.state].Render(status)
	prefix := segIndexStyle.Render(fmt.Sprintf("#%-4d", r.index))
	textWidth := max(width-lipgloss.Width(prefix)-lipgloss.Width(status)-2, 4)
	text := truncate(r.text, textWidth)
	return prefix + " " + text + strings.Repeat(" ", max(textWidth-lipgloss.Width(text), 0)) + " " + status
}

// truncate shortens s to at most n cells, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	runes := []rune(s)
	n = min(n, len(runes))
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}
