package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/scoutlab/linkscout/crawler"
	"github.com/scoutlab/linkscout/report"
)

// ProgressMsg reports progress for one processed page or probed link.
type ProgressMsg struct {
	Phase        crawler.Phase
	URL          string
	PagesScanned int
	LinksFound   int
	Checked      int
	Total        int
}

// RunDoneMsg signals the crawl-and-validate run has completed.
type RunDoneMsg struct {
	Report *report.Report
	Err    error
}

// waitForProgress returns a tea.Cmd that reads one event from the progress
// channel. When the channel closes, it returns a RunDoneMsg with nil Report
// (the actual report comes from startRun).
func waitForProgress(ch <-chan crawler.Event) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return RunDoneMsg{}
		}
		return ProgressMsg{
			Phase:        evt.Phase,
			URL:          evt.URL,
			PagesScanned: evt.PagesScanned,
			LinksFound:   evt.LinksFound,
			Checked:      evt.Checked,
			Total:        evt.Total,
		}
	}
}
