package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps completion estimates derived from very slow early progress.
const maxETA = 24 * time.Hour

// SegmentProgress tracks how many units of a run have delivered their partial
// result and estimates when the remaining ones will finish. It is safe for
// concurrent use by the units of a parallel run.
type SegmentProgress struct {
	mu        sync.Mutex
	total     int
	done      int
	startTime time.Time
	now       func() time.Time
}

// NewSegmentProgress creates a tracker for a run of total segments.
func NewSegmentProgress(total int) *SegmentProgress {
	return &SegmentProgress{total: max(total, 0), startTime: time.Now(), now: time.Now}
}

// MarkDone records one completed segment and returns the completed fraction
// and the estimated remaining time. Completions beyond total are ignored.
func (p *SegmentProgress) MarkDone() (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done < p.total {
		p.done++
	}
	return p.fractionLocked(), p.etaLocked()
}

// Done returns the number of completed segments.
func (p *SegmentProgress) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Total returns the number of segments of the run.
func (p *SegmentProgress) Total() int {
	return p.total
}

// Fraction returns the completed fraction in [0, 1]. A run of zero segments
// is complete.
func (p *SegmentProgress) Fraction() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fractionLocked()
}

// ETA returns the estimated remaining time, or 0 while no segment has
// completed yet.
func (p *SegmentProgress) ETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaLocked()
}

func (p *SegmentProgress) fractionLocked() float64 {
	if p.total == 0 {
		return 1
	}
	return float64(p.done) / float64(p.total)
}

func (p *SegmentProgress) etaLocked() time.Duration {
	if p.done == 0 || p.done >= p.total {
		return 0
	}
	elapsed := p.now().Sub(p.startTime)
	perSegment := elapsed / time.Duration(p.done)
	eta := perSegment * time.Duration(p.total-p.done)
	if eta < 0 || eta > maxETA {
		return maxETA
	}
	return eta
}

// FormatETA renders a remaining-time estimate for display.
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m := int(eta.Minutes())
		s := int(eta.Seconds()) % 60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(eta.Hours())
	m := int(eta.Minutes()) % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%dm", h, m)
}

// ProgressBar renders progress as a bar of length runes. Progress is clamped
// to [0, 1].
func ProgressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders a bracketed bar followed by the
// percentage and the remaining-time estimate.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	progress = min(max(progress, 0), 1)
	etaText := FormatETA(eta)
	if progress >= 1 {
		etaText = "done"
	}
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), progress*100, etaText)
}
