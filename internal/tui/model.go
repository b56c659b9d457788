package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/digitsum/internal/aggregate"
	"github.com/agbru/digitsum/internal/config"
	"github.com/agbru/digitsum/internal/dataset"
	apperrors "github.com/agbru/digitsum/internal/errors"
	"github.com/agbru/digitsum/internal/format"
	"github.com/agbru/digitsum/internal/orchestration"
	"github.com/agbru/digitsum/internal/sysmon"
)

// ExecutionState holds the execution-related fields of a TUI session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height for the main body panels.
func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight-statusHeight, minBodyHeight)
}

// segmentsWidth returns the width allocated to the segments panel.
func (l LayoutManager) segmentsWidth() int {
	return l.width * SegmentsPanelWidthPercent / 100
}

// sideWidth returns the width allocated to the side column.
func (l LayoutManager) sideWidth() int {
	return l.width - l.segmentsWidth()
}

// Layout constants for the TUI dashboard.
const (
	headerHeight              = 1
	footerHeight              = 1
	statusHeight              = 1
	minBodyHeight             = 4
	SegmentsPanelWidthPercent = 60
	rateSamples               = 30
)

// Model is the root bubbletea model for the TUI dashboard.
type Model struct {
	header   HeaderModel
	segments SegmentsModel
	bar      progress.Model
	keymap   KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	config    config.AppConfig
	opts      []aggregate.Option
	ds        dataset.Dataset
	ref       *programRef

	paused   bool
	pending  []tea.Msg
	fraction float64
	eta      time.Duration
	stats    RuntimeStatsMsg
	rate     *RingBuffer
	lastDone int
	finished int // unit outcomes of the current run
	results  []orchestration.CalculationResult
	final    *FinalResultMsg
	err      error
}

// NewModel creates a new TUI model for a run of cfg.Strategy over ds.
// opts are applied to every aggregator in addition to the dashboard reporter.
func NewModel(parentCtx context.Context, ds dataset.Dataset, cfg config.AppConfig, version string, opts ...aggregate.Option) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	header := NewHeaderModel(version, cfg.Strategy, ds.Count()*unitsPerSegment(cfg.Strategy))

	return Model{
		header:   header,
		segments: NewSegmentsModel(),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		keymap:   DefaultKeyMap(),
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		config:    cfg,
		opts:      opts,
		ds:        ds,
		ref:       &programRef{},
		rate:      NewRingBuffer(rateSamples),
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startRunCmd(m.ctx, m.ref, m.ds, m.config, m.opts, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case SegmentScheduledMsg, SegmentDoneMsg:
		if m.paused {
			m.pending = append(m.pending, msg)
			return m, nil
		}
		m.applySegmentMsg(msg)
		return m, nil

	case ComparisonResultsMsg:
		if msg.Generation == m.generation {
			m.results = msg.Results
		}
		return m, nil

	case FinalResultMsg:
		if msg.Generation == m.generation {
			m.final = &msg
		}
		return m, nil

	case ErrorMsg:
		// The canceled run of a rerun reports context.Canceled here.
		if msg.Generation == m.generation {
			m.err = msg.Err
		}
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			m.rate.Push(float64(m.finished - m.lastDone))
			m.lastDone = m.finished
			return m, tea.Batch(sampleRuntimeStatsCmd(m.ctx), tickCmd())
		}
		return m, tickCmd()

	case RuntimeStatsMsg:
		m.stats = msg
		return m, nil

	case RunCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a previous run
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.header.SetDone()
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a previous run
		}
		m.done = true
		m.header.SetDone()
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) applySegmentMsg(msg tea.Msg) {
	switch msg := msg.(type) {
	case SegmentScheduledMsg:
		if msg.Generation == m.generation {
			m.segments.Schedule(msg.Index, msg.Text)
		}
	case SegmentDoneMsg:
		if msg.Generation == m.generation {
			m.segments.Complete(msg.Index, msg.Partial, msg.Err)
			m.finished++
			m.header.SetFinished(m.finished)
			m.fraction = msg.Fraction
			m.eta = msg.ETA
		}
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		if !m.paused {
			for _, p := range m.pending {
				m.applySegmentMsg(p)
			}
			m.pending = nil
		}
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		if m.cancel != nil {
			m.cancel()
		}

		// Units of the previous run cannot be stopped; the new generation
		// makes the model ignore their remaining events.
		m.generation++
		ctx, cancel := context.WithCancel(m.parentCtx)
		m.ctx = ctx
		m.cancel = cancel

		m.header.Reset()
		m.segments.Reset()
		m.pending = nil
		m.fraction, m.eta = 0, 0
		m.rate.Reset()
		m.lastDone = 0
		m.finished = 0
		m.results, m.final, m.err = nil, nil, nil
		m.done = false
		m.paused = false
		m.exitCode = apperrors.ExitSuccess

		return m, tea.Batch(
			tickCmd(),
			startRunCmd(m.ctx, m.ref, m.ds, m.config, m.opts, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)

	case key.Matches(msg, m.keymap.Up):
		m.segments.Scroll(-1)
	case key.Matches(msg, m.keymap.Down):
		m.segments.Scroll(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.segments.Scroll(-m.segments.visibleRows())
	case key.Matches(msg, m.keymap.PageDown):
		m.segments.Scroll(m.segments.visibleRows())
	}

	return m, nil
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	side := m.sideView()
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.segments.View(), side)
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), m.statusLine(), body, m.footerView())
}

func (m Model) statusLine() string {
	bar := m.bar.ViewAs(m.fraction)
	return fmt.Sprintf(" %s %5.1f%%  ETA %s", bar, m.fraction*100, format.FormatETA(m.eta))
}

func (m Model) sideView() string {
	inner := max(m.sideWidth()-2, 10)
	done, failed := m.segments.Counts()

	metric := func(label, value string) string {
		return metricLabelStyle.Render(fmt.Sprintf("%-11s", label)) + metricValueStyle.Render(value)
	}
	lines := []string{
		metric("Segments", fmt.Sprintf("%d", m.segments.Len())),
		metric("Done", fmt.Sprintf("%d", done)),
		metric("Failed", fmt.Sprintf("%d", failed)),
		metric("Crossover", crossoverLabel(m.config.Threshold)),
		metric("Goroutines", fmt.Sprintf("%d", m.stats.Goroutines)),
		metric("Heap", fmt.Sprintf("%d KiB", m.stats.HeapAlloc/1024)),
		metric("CPU", fmt.Sprintf("%.1f%%", m.stats.CPUPercent)),
		metric("Memory", fmt.Sprintf("%.1f%%", m.stats.MemPercent)),
		"",
		metricLabelStyle.Render("Partials"),
		sparklineStyle.Render(truncate(RenderSparkline(Normalize(m.segments.Partials())), inner)),
		metricLabelStyle.Render("Completions per tick"),
		sparklineStyle.Render(RenderSparkline(Normalize(m.rate.Slice()))),
	}

	if len(m.results) > 0 {
		lines = append(lines, "", metricLabelStyle.Render("Strategies"))
		for _, r := range m.results {
			outcome := segmentStyles[segmentDone].Render(format.FormatUint(r.Result))
			if r.Err != nil {
				outcome = segmentStyles[segmentFailed].Render("failed")
			}
			lines = append(lines, fmt.Sprintf("%-11s%s %s", r.Name, outcome, format.FormatExecutionDuration(r.Duration)))
		}
	}
	if m.final != nil {
		lines = append(lines, "", statusDoneStyle.Render(fmt.Sprintf("Final sum result: %d", m.final.Result.Result)))
	}
	if m.err != nil {
		lines = append(lines, "", segmentStyles[segmentFailed].Render(truncate(m.err.Error(), inner)))
	}

	height := m.bodyHeight() - 2
	if len(lines) > height {
		lines = lines[:max(height, 0)]
	}
	return panelStyle.Width(inner).Height(max(height, 1)).Render(strings.Join(lines, "\n"))
}

func crossoverLabel(threshold int) string {
	if threshold >= aggregate.NeverParallel {
		return "never"
	}
	return fmt.Sprintf("%d", threshold)
}

func (m Model) footerView() string {
	var status string
	switch {
	case m.err != nil && m.done:
		status = statusErrorStyle.Render("FAILED")
	case m.done:
		status = statusDoneStyle.Render("DONE")
	case m.paused:
		status = statusPausedStyle.Render("PAUSED")
	default:
		status = statusRunningStyle.Render("RUNNING")
	}
	parts := []string{status}
	for _, b := range m.keymap.ShortHelp() {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	return " " + strings.Join(parts, "  ")
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.segments.SetSize(m.segmentsWidth(), m.bodyHeight())
	m.bar.Width = max(m.width-24, 10)
	m.rate.Resize(max(m.sideWidth()-4, 1))
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, ds dataset.Dataset, cfg config.AppConfig, version string, opts ...aggregate.Option) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, ds, cfg, version, opts...)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	// Inject the program reference before running so units can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return apperrors.HandleCalculationError(ctxErr, 0, io.Discard, nil)
		}
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startRunCmd returns a tea.Cmd that runs the configured strategies with a
// reporter forwarding to the dashboard.
func startRunCmd(ctx context.Context, ref *programRef, ds dataset.Dataset, cfg config.AppConfig, opts []aggregate.Option, gen uint64) tea.Cmd {
	return func() tea.Msg {
		presenter := &TUIResultPresenter{ref: ref, generation: gen}

		reporter := newTUIReporter(ref, ds.Count()*unitsPerSegment(cfg.Strategy), gen)
		runOpts := append(append([]aggregate.Option{}, opts...), aggregate.WithReporter(reporter))

		aggregators, err := orchestration.GetAggregatorsToRun(cfg, runOpts...)
		if err != nil {
			return RunCompleteMsg{ExitCode: presenter.HandleError(err, 0, io.Discard), Generation: gen}
		}
		results := orchestration.ExecuteStrategies(ctx, aggregators, ds)
		presOpts := orchestration.PresentationOptions{Segments: ds.Count(), Verbose: cfg.Verbose}
		exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, io.Discard)

		return RunCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

// unitsPerSegment returns how many units each segment gets under strategy.
func unitsPerSegment(strategy string) int {
	if strategy == aggregate.StrategyAll {
		return len(aggregate.Names())
	}
	return 1
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleRuntimeStatsCmd samples host and process counters.
func sampleRuntimeStatsCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		return RuntimeStatsMsg{Stats: sysmon.Sample(ctx)}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
