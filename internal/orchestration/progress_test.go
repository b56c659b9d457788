package orchestration

import (
	"context"
	"errors"
	"testing"

	"github.com/agbru/digitsum/internal/aggregate"
	"github.com/agbru/digitsum/internal/dataset"
)

func TestProgressTracker_ParallelRun(t *testing.T) {
	ds := dataset.New("12 34 56 78")
	tracker := NewProgressTracker(ds.Count())

	total, err := aggregate.NewParallel(aggregate.WithReporter(tracker)).Aggregate(context.Background(), ds)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	tracker.Close()

	var sum uint64
	seen := map[int]bool{}
	var last ProgressUpdate
	for u := range tracker.Updates() {
		seen[u.Index] = true
		sum += u.Partial
		last = u
	}
	if sum != total {
		t.Errorf("sum of partials = %d, want %d", sum, total)
	}
	if len(seen) != 4 {
		t.Errorf("saw %d distinct segments, want 4", len(seen))
	}
	if last.Total != 4 || tracker.Fraction() != 1 {
		t.Errorf("last update = %+v, fraction = %f", last, tracker.Fraction())
	}
}

func TestProgressTracker_Failure(t *testing.T) {
	tracker := NewProgressTracker(2)
	cause := errors.New("boom")
	tracker.SegmentProcessed(0, 3)
	tracker.SegmentFailed(1, cause)
	tracker.Close()

	var updates []ProgressUpdate
	for u := range tracker.Updates() {
		updates = append(updates, u)
	}
	if len(updates) != 2 {
		t.Fatalf("got %d updates, want 2", len(updates))
	}
	if updates[0].Fraction != 0.5 || updates[0].Partial != 3 {
		t.Errorf("first update = %+v", updates[0])
	}
	if !errors.Is(updates[1].Err, cause) || updates[1].Done != 2 {
		t.Errorf("second update = %+v", updates[1])
	}
}

func TestProgressTracker_NeverBlocks(t *testing.T) {
	tracker := NewProgressTracker(1)
	for i := range 10 {
		tracker.SegmentProcessed(i, 1)
	}
	tracker.Close()
	n := 0
	for range tracker.Updates() {
		n++
	}
	if n != 1 {
		t.Errorf("buffered %d updates, want 1", n)
	}
}

func TestProgressTracker_PublishAfterClose(t *testing.T) {
	t.Parallel()
	tracker := NewProgressTracker(2)
	tracker.Close()
	tracker.Close()
	tracker.SegmentProcessed(0, 1)

	if _, ok := <-tracker.Updates(); ok {
		t.Error("expected closed channel without updates")
	}
}
