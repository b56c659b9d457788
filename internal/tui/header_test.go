package tui

import (
	"strings"
	"testing"
	"time"
)

func TestHeaderModel_View(t *testing.T) {
	h := NewHeaderModel("v1.2.0", "parallel", 6)
	h.SetWidth(120)
	h.SetFinished(4)

	view := h.View()
	for _, want := range []string{"Digit-Sum Monitor v1.2.0", "parallel", "4/6 units", "segments/s", "Elapsed:"} {
		if !strings.Contains(view, want) {
			t.Errorf("header missing %q:\n%s", want, view)
		}
	}
}

func TestHeaderModel_DevVersionHidden(t *testing.T) {
	h := NewHeaderModel("dev", "auto", 1)
	h.SetWidth(80)
	if strings.Contains(h.View(), "dev") {
		t.Error("dev version should not be shown")
	}
}

func TestHeaderModel_FinishedCapsAtUnits(t *testing.T) {
	h := NewHeaderModel("", "all", 4)
	h.SetFinished(9)
	if h.finished != 4 {
		t.Errorf("finished = %d, want 4", h.finished)
	}
	h.Reset()
	if h.finished != 0 {
		t.Errorf("finished after Reset = %d, want 0", h.finished)
	}
}

func TestHeaderModel_DoneFreezesElapsed(t *testing.T) {
	h := NewHeaderModel("", "sequential", 1)
	h.SetDone()
	first := h.elapsed()
	time.Sleep(5 * time.Millisecond)
	if h.elapsed() != first {
		t.Error("elapsed should not advance after SetDone")
	}
}
