package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/digitsum/internal/aggregate"
	"github.com/agbru/digitsum/internal/config"
	"github.com/agbru/digitsum/internal/dataset"
	apperrors "github.com/agbru/digitsum/internal/errors"
	"github.com/agbru/digitsum/internal/orchestration"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.AppConfig{Strategy: aggregate.StrategyParallel, Threshold: 7}
	m := NewModel(context.Background(), dataset.New("12 34 56"), cfg, "v1.0.0")
	t.Cleanup(m.cancel)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_ViewBeforeResize(t *testing.T) {
	m := newTestModel(t)
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() = %q, want Initializing...", got)
	}
}

func TestModel_ViewAfterResize(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	m, _ = update(t, m, SegmentScheduledMsg{Index: 0, Text: "12"})
	m, _ = update(t, m, SegmentDoneMsg{Index: 0, Partial: 3, Fraction: 0.5})

	view := m.View()
	for _, want := range []string{"Digit-Sum Monitor", "Segments", "RUNNING", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_SegmentMessages(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, SegmentScheduledMsg{Index: 0, Text: "12"})
	m, _ = update(t, m, SegmentScheduledMsg{Index: 1, Text: "34"})
	m, _ = update(t, m, SegmentDoneMsg{Index: 0, Partial: 3, Fraction: 0.5})
	m, _ = update(t, m, SegmentDoneMsg{Index: 1, Err: errors.New("boom"), Fraction: 1})

	done, failed := m.segments.Counts()
	if done != 1 || failed != 1 {
		t.Errorf("Counts = (%d, %d), want (1, 1)", done, failed)
	}
	if m.fraction != 1 {
		t.Errorf("fraction = %f, want 1", m.fraction)
	}
}

func TestModel_IgnoresStaleGeneration(t *testing.T) {
	m := newTestModel(t)
	m.generation = 2
	m, _ = update(t, m, SegmentScheduledMsg{Index: 0, Text: "12", Generation: 1})
	if m.segments.Len() != 0 {
		t.Error("stale SegmentScheduledMsg should be ignored")
	}
	m, _ = update(t, m, RunCompleteMsg{ExitCode: 3, Generation: 1})
	if m.done {
		t.Error("stale RunCompleteMsg should be ignored")
	}
}

func TestModel_PauseBuffersSegmentMessages(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, runeKey("p"))
	if !m.paused {
		t.Fatal("expected paused")
	}
	m, _ = update(t, m, SegmentScheduledMsg{Index: 0, Text: "12"})
	m, _ = update(t, m, SegmentDoneMsg{Index: 0, Partial: 3})
	if m.segments.Len() != 0 {
		t.Error("segment messages should be buffered while paused")
	}

	m, _ = update(t, m, runeKey("p"))
	if m.paused {
		t.Fatal("expected resumed")
	}
	if done, _ := m.segments.Counts(); done != 1 {
		t.Errorf("done after resume = %d, want 1", done)
	}
	if len(m.pending) != 0 {
		t.Errorf("pending = %d, want 0", len(m.pending))
	}
}

func TestModel_RunComplete(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, RunCompleteMsg{ExitCode: apperrors.ExitErrorMismatch})
	if !m.done {
		t.Error("expected done")
	}
	if m.exitCode != apperrors.ExitErrorMismatch {
		t.Errorf("exitCode = %d, want %d", m.exitCode, apperrors.ExitErrorMismatch)
	}
	if _, cmd := update(t, m, TickMsg{}); cmd != nil {
		t.Error("ticks should stop once the run is done")
	}
}

func TestModel_ResultMessages(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	result := orchestration.CalculationResult{Name: "parallel", Result: 21}
	m, _ = update(t, m, ComparisonResultsMsg{Results: []orchestration.CalculationResult{result}})
	m, _ = update(t, m, FinalResultMsg{Result: result, Segments: 3})

	if !strings.Contains(m.View(), "Final sum result: 21") {
		t.Error("view missing final result")
	}

	m, _ = update(t, m, ErrorMsg{Err: errors.New("boom")})
	if m.err == nil {
		t.Error("expected error to be recorded")
	}
}

func TestModel_QuitCancelsContext(t *testing.T) {
	m := newTestModel(t)
	ctx := m.ctx
	_, cmd := update(t, m, runeKey("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if ctx.Err() == nil {
		t.Error("expected run context to be canceled")
	}
}

func TestModel_ResetStartsNewGeneration(t *testing.T) {
	m := newTestModel(t)
	oldCtx := m.ctx
	m, _ = update(t, m, SegmentScheduledMsg{Index: 0, Text: "12"})
	m, _ = update(t, m, RunCompleteMsg{ExitCode: 1})

	m, cmd := update(t, m, runeKey("r"))
	t.Cleanup(m.cancel)
	if cmd == nil {
		t.Fatal("expected restart commands")
	}
	if m.generation != 1 {
		t.Errorf("generation = %d, want 1", m.generation)
	}
	if oldCtx.Err() == nil {
		t.Error("expected previous context to be canceled")
	}
	if m.done || m.segments.Len() != 0 || m.exitCode != apperrors.ExitSuccess {
		t.Error("expected state to be cleared")
	}
}

func TestModel_ContextCancelledQuits(t *testing.T) {
	m := newTestModel(t)
	m, cmd := update(t, m, ContextCancelledMsg{Err: context.Canceled})
	if !m.done {
		t.Error("expected done")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestStartRunCmd_CompletesRun(t *testing.T) {
	cfg := config.AppConfig{Strategy: aggregate.StrategyAll, Threshold: 7}
	cmd := startRunCmd(context.Background(), &programRef{}, dataset.New("12 34 56"), cfg, nil, 4)
	msg, ok := cmd().(RunCompleteMsg)
	if !ok {
		t.Fatal("expected RunCompleteMsg")
	}
	if msg.ExitCode != apperrors.ExitSuccess || msg.Generation != 4 {
		t.Errorf("got %+v, want success for generation 4", msg)
	}
}

func TestStartRunCmd_InvalidInput(t *testing.T) {
	cfg := config.AppConfig{Strategy: aggregate.StrategySequential}
	cmd := startRunCmd(context.Background(), &programRef{}, dataset.New("12 3x"), cfg, nil, 0)
	msg := cmd().(RunCompleteMsg)
	if msg.ExitCode != apperrors.ExitErrorInput {
		t.Errorf("ExitCode = %d, want %d", msg.ExitCode, apperrors.ExitErrorInput)
	}
}

func TestSampleRuntimeStatsCmd(t *testing.T) {
	msg, ok := sampleRuntimeStatsCmd(context.Background())().(RuntimeStatsMsg)
	if !ok {
		t.Fatal("expected RuntimeStatsMsg")
	}
	if msg.Goroutines < 1 {
		t.Errorf("Goroutines = %d, want at least 1", msg.Goroutines)
	}
}

func TestModel_RerunIgnoresPreviousRunResults(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, runeKey("r"))
	t.Cleanup(m.cancel)

	// Late messages of the canceled first run.
	stale := orchestration.CalculationResult{Name: "parallel", Err: context.Canceled}
	m, _ = update(t, m, ErrorMsg{Err: context.Canceled, Generation: 0})
	m, _ = update(t, m, ComparisonResultsMsg{Results: []orchestration.CalculationResult{stale}, Generation: 0})
	m, _ = update(t, m, FinalResultMsg{Result: orchestration.CalculationResult{Name: "parallel", Result: 99}, Generation: 0})
	if m.err != nil || m.results != nil || m.final != nil {
		t.Fatal("messages of the replaced run must be dropped")
	}

	result := orchestration.CalculationResult{Name: "parallel", Result: 6}
	m, _ = update(t, m, ComparisonResultsMsg{Results: []orchestration.CalculationResult{result}, Generation: 1})
	m, _ = update(t, m, FinalResultMsg{Result: result, Segments: 1, Generation: 1})
	m, _ = update(t, m, RunCompleteMsg{ExitCode: apperrors.ExitSuccess, Generation: 1})

	view := m.View()
	if strings.Contains(view, "context canceled") {
		t.Errorf("view shows the previous run's error:\n%s", view)
	}
	if !strings.Contains(view, "Final sum result: 6") {
		t.Errorf("view missing rerun result:\n%s", view)
	}
	if m.exitCode != apperrors.ExitSuccess {
		t.Errorf("exitCode = %d, want 0", m.exitCode)
	}
}
