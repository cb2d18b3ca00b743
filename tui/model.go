// Package tui provides the Bubble Tea terminal UI for linkscout, displaying
// live progress for the crawl and validation phases and a styled summary of
// the final report.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/scoutlab/linkscout/crawler"
	"github.com/scoutlab/linkscout/report"
)

// Model is the Bubble Tea model for the link checker TUI.
type Model struct {
	ctx        context.Context
	cancel     context.CancelFunc
	engine     *crawler.Crawler
	spinner    spinner.Model
	progressCh <-chan crawler.Event

	phase        crawler.Phase
	pagesScanned int
	linksFound   int
	checked      int
	total        int
	current      string
	quitting     bool
	done         bool
	report       *report.Report
	err          error
	width        int
}

// NewModel creates a TUI model wired to the given engine and progress channel.
func NewModel(ctx context.Context, cancel context.CancelFunc, engine *crawler.Crawler, progressCh <-chan crawler.Event) Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		ctx:        ctx,
		cancel:     cancel,
		engine:     engine,
		spinner:    spin,
		progressCh: progressCh,
		phase:      crawler.PhaseCrawl,
	}
}

// Init starts the spinner, the engine run, and the progress listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startRun(), waitForProgress(m.progressCh))
}

// startRun returns a tea.Cmd that runs the engine and sends RunDoneMsg.
func (m Model) startRun() tea.Cmd {
	return func() tea.Msg {
		rep, err := m.engine.Run(m.ctx)
		if err != nil {
			err = fmt.Errorf("run: %w", err)
		}
		return RunDoneMsg{Report: rep, Err: err}
	}
}

// Update handles messages from the Bubble Tea runtime.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case ProgressMsg:
		m.phase = msg.Phase
		m.current = msg.URL
		switch msg.Phase {
		case crawler.PhaseCrawl:
			m.pagesScanned = msg.PagesScanned
			m.linksFound = msg.LinksFound
		case crawler.PhaseValidate:
			m.checked = msg.Checked
			m.total = msg.Total
		}
		return m, waitForProgress(m.progressCh)

	case RunDoneMsg:
		m.done = true
		m.report = msg.Report
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the current TUI state.
func (m Model) View() string {
	if m.done && m.report != nil {
		return RenderSummary(m.report)
	}
	if m.done && m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}
	if m.phase == crawler.PhaseValidate {
		return fmt.Sprintf("%s Validating links... %d/%d\n%s\n",
			m.spinner.View(), m.checked, m.total,
			dimStyle.Render("  "+m.current))
	}
	return fmt.Sprintf("%s Crawling... %d pages scanned, %d links found\n%s\n",
		m.spinner.View(), m.pagesScanned, m.linksFound,
		dimStyle.Render("  "+m.current))
}

// HasBrokenLinks reports whether the run found any broken or inactive links.
func (m Model) HasBrokenLinks() bool {
	return m.report != nil &&
		(m.report.Summary.BrokenLinks > 0 || m.report.Summary.InactiveLinks > 0)
}

// GetReport returns the final report for output formatting.
func (m Model) GetReport() *report.Report {
	return m.report
}

// GetError returns the run error, if any.
func (m Model) GetError() error {
	return m.err
}
