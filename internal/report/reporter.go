//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks

// Package report defines the diagnostic channel shared by every unit of work
// of an aggregation run.
package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/agbru/digitsum/internal/logging"
)

// Reporter receives advisory diagnostics from an aggregation run. It is not
// part of the correctness contract.
//
// Implementations must be safe for concurrent use: the parallel aggregator
// calls SegmentProcessed and SegmentFailed from many goroutines at once.
type Reporter interface {
	// SegmentScheduled is called once per segment before its partial result
	// is computed.
	SegmentScheduled(index int, segment string)
	// SegmentProcessed is called once a segment's partial result is known.
	SegmentProcessed(index int, partial uint64)
	// SegmentFailed is called when a segment cannot be summed.
	SegmentFailed(index int, err error)
	// FinalResult is called once with the combined total.
	FinalResult(total uint64)
}

// LineReporter writes one human-readable line per event. Each line is
// written with a single Write call under a mutex, so lines from concurrent
// units never interleave.
//
// Reporter methods have no error return. The first write error is kept and
// later lines are dropped; callers check Err once the run is over.
type LineReporter struct {
	mu  sync.Mutex
	out io.Writer
	err error
}

// Verify interface compliance.
var _ Reporter = (*LineReporter)(nil)

// NewLineReporter creates a LineReporter writing to out.
func NewLineReporter(out io.Writer) *LineReporter {
	return &LineReporter{out: out}
}

// SegmentScheduled writes `data segment <i> is "<text>"`.
func (r *LineReporter) SegmentScheduled(index int, segment string) {
	r.writeLine(fmt.Sprintf("data segment %d is %q\n", index, segment))
}

// SegmentProcessed writes `processed segment <i>, result=<r>`.
func (r *LineReporter) SegmentProcessed(index int, partial uint64) {
	r.writeLine(fmt.Sprintf("processed segment %d, result=%d\n", index, partial))
}

// SegmentFailed writes `segment <i> failed: <err>`.
func (r *LineReporter) SegmentFailed(index int, err error) {
	r.writeLine(fmt.Sprintf("segment %d failed: %v\n", index, err))
}

// FinalResult writes `Final sum result: <n>`.
func (r *LineReporter) FinalResult(total uint64) {
	r.writeLine(fmt.Sprintf("Final sum result: %d\n", total))
}

func (r *LineReporter) writeLine(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	if _, err := io.WriteString(r.out, line); err != nil {
		r.err = fmt.Errorf("writing report line: %w", err)
	}
}

// Err returns the first error met while writing, or nil.
func (r *LineReporter) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// NullReporter discards every event. Useful for quiet mode, benchmarks and
// calibration.
type NullReporter struct{}

func (NullReporter) SegmentScheduled(int, string) {}
func (NullReporter) SegmentProcessed(int, uint64) {}
func (NullReporter) SegmentFailed(int, error)     {}
func (NullReporter) FinalResult(uint64)           {}

// LogReporter turns events into structured log entries. Serialization of
// entries is left to the logger backend.
type LogReporter struct {
	logger logging.Logger
}

// NewLogReporter creates a LogReporter on top of logger.
func NewLogReporter(logger logging.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

func (r *LogReporter) SegmentScheduled(index int, segment string) {
	r.logger.Debug("segment scheduled", logging.Int("segment", index), logging.String("text", segment))
}

func (r *LogReporter) SegmentProcessed(index int, partial uint64) {
	r.logger.Info("segment processed", logging.Int("segment", index), logging.Uint64("partial", partial))
}

func (r *LogReporter) SegmentFailed(index int, err error) {
	r.logger.Error("segment failed", err, logging.Int("segment", index))
}

func (r *LogReporter) FinalResult(total uint64) {
	r.logger.Info("aggregation finished", logging.Uint64("total", total))
}

// multiReporter forwards every event to each of its reporters in order.
type multiReporter []Reporter

// Multi returns a Reporter that forwards every event to all of reporters.
func Multi(reporters ...Reporter) Reporter {
	return multiReporter(reporters)
}

func (m multiReporter) SegmentScheduled(index int, segment string) {
	for _, r := range m {
		r.SegmentScheduled(index, segment)
	}
}

func (m multiReporter) SegmentProcessed(index int, partial uint64) {
	for _, r := range m {
		r.SegmentProcessed(index, partial)
	}
}

func (m multiReporter) SegmentFailed(index int, err error) {
	for _, r := range m {
		r.SegmentFailed(index, err)
	}
}

func (m multiReporter) FinalResult(total uint64) {
	for _, r := range m {
		r.FinalResult(total)
	}
}
