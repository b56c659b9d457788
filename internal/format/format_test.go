package format

import (
	"strings"
	"sync"
	"testing"
	"time"
)

// TestSegmentProgress verifies completion counting and fractions.
func TestSegmentProgress(t *testing.T) {
	t.Parallel()
	p := NewSegmentProgress(4)
	if p.Fraction() != 0 || p.Done() != 0 || p.Total() != 4 {
		t.Fatalf("unexpected initial state: done=%d fraction=%f", p.Done(), p.Fraction())
	}
	if eta := p.ETA(); eta != 0 {
		t.Errorf("initial ETA = %v, want 0", eta)
	}

	fraction, _ := p.MarkDone()
	if fraction != 0.25 {
		t.Errorf("fraction = %f, want 0.25", fraction)
	}
	for range 5 {
		p.MarkDone()
	}
	if p.Done() != 4 || p.Fraction() != 1 {
		t.Errorf("completions beyond total must be ignored: done=%d", p.Done())
	}
	if eta := p.ETA(); eta != 0 {
		t.Errorf("ETA of a finished run = %v, want 0", eta)
	}
}

// TestSegmentProgressEmpty verifies that an empty run counts as complete.
func TestSegmentProgressEmpty(t *testing.T) {
	t.Parallel()
	p := NewSegmentProgress(0)
	if p.Fraction() != 1 {
		t.Errorf("Fraction() = %f, want 1", p.Fraction())
	}
	if p := NewSegmentProgress(-3); p.Total() != 0 {
		t.Errorf("negative total should clamp to 0, got %d", p.Total())
	}
}

// TestSegmentProgressETA verifies the linear estimate and its cap.
func TestSegmentProgressETA(t *testing.T) {
	t.Parallel()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewSegmentProgress(10)
	p.startTime = start
	p.now = func() time.Time { return start.Add(2 * time.Second) }

	p.MarkDone()
	p.MarkDone()
	// 1s per segment, 8 remaining.
	if eta := p.ETA(); eta != 8*time.Second {
		t.Errorf("ETA = %v, want 8s", eta)
	}

	p.now = func() time.Time { return start.Add(1000 * time.Hour) }
	if eta := p.ETA(); eta != maxETA {
		t.Errorf("ETA = %v, want cap %v", eta, maxETA)
	}
}

// TestSegmentProgressConcurrent verifies MarkDone under concurrent units.
func TestSegmentProgressConcurrent(t *testing.T) {
	t.Parallel()
	const n = 200
	p := NewSegmentProgress(n)
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.MarkDone()
		}()
	}
	wg.Wait()
	if p.Done() != n {
		t.Errorf("Done() = %d, want %d", p.Done(), n)
	}
}

// TestFormatETA verifies ETA formatting.
func TestFormatETA(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		eta      time.Duration
		expected string
	}{
		{"Zero duration", 0, "calculating..."},
		{"Negative duration", -time.Second, "calculating..."},
		{"Less than a second", 500 * time.Millisecond, "< 1s"},
		{"One second", time.Second, "1s"},
		{"Multiple seconds", 45 * time.Second, "45s"},
		{"One minute", time.Minute, "1m"},
		{"Minutes and seconds", 2*time.Minute + 30*time.Second, "2m30s"},
		{"One hour", time.Hour, "1h"},
		{"Hours and minutes", time.Hour + 15*time.Minute, "1h15m"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatETA(tc.eta); got != tc.expected {
				t.Errorf("FormatETA(%v) = %q, want %q", tc.eta, got, tc.expected)
			}
		})
	}
}

// TestFormatProgressBarWithETA verifies combined progress and ETA formatting.
func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()
	got := FormatProgressBarWithETA(0.5, 30*time.Second, 10)
	for _, want := range []string{"[", "]", " 50.0%", "ETA: 30s"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatProgressBarWithETA() = %q, missing %q", got, want)
		}
	}
	if got := FormatProgressBarWithETA(1, 0, 10); !strings.Contains(got, "ETA: done") {
		t.Errorf("complete bar = %q, want done", got)
	}
}

// TestProgressBar verifies progress bar rendering.
func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		expected string
	}{
		{0.0, 10, "░░░░░░░░░░"},
		{0.5, 10, "█████░░░░░"},
		{1.0, 10, "██████████"},
		{1.2, 10, "██████████"}, // Cap at 1.0
		{-0.1, 10, "░░░░░░░░░░"},  // Floor at 0.0
	}

	for _, tt := range tests {
		if got := ProgressBar(tt.progress, tt.length); got != tt.expected {
			t.Errorf("ProgressBar(%f, %d) = %s; want %s", tt.progress, tt.length, got, tt.expected)
		}
	}
}

// TestFormatExecutionDuration verifies duration formatting.
func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "< 1µs"},
		{500 * time.Nanosecond, "< 1µs"},
		{10 * time.Microsecond, "10µs"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
		{2*time.Second + 345678*time.Microsecond, "2.346s"},
	}

	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.expected {
			t.Errorf("FormatExecutionDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}

func TestFormatThroughput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		segments int
		d        time.Duration
		expected string
	}{
		{6, 0, "n/a"},
		{0, time.Second, "n/a"},
		{6, 2 * time.Second, "3 segments/s"},
		{12500, time.Second, "12,500 segments/s"},
		{1, 3 * time.Millisecond, "333 segments/s"},
	}
	for _, tt := range tests {
		if got := FormatThroughput(tt.segments, tt.d); got != tt.expected {
			t.Errorf("FormatThroughput(%d, %v) = %q; want %q", tt.segments, tt.d, got, tt.expected)
		}
	}
}

// TestFormatNumberString verifies thousand separator formatting.
func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"1", "1"},
		{"123", "123"},
		{"1234", "1,234"},
		{"123456", "123,456"},
		{"1234567", "1,234,567"},
		{"-1234", "-1,234"},
	}

	for _, tt := range tests {
		if got := FormatNumberString(tt.input); got != tt.expected {
			t.Errorf("FormatNumberString(%q) = %q; want %q", tt.input, got, tt.expected)
		}
	}
	if got := FormatUint(1012); got != "1,012" {
		t.Errorf("FormatUint(1012) = %q, want 1,012", got)
	}
}
