package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/scoutlab/linkscout/report"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true)
	successStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	categoryStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dimStyle         = lipgloss.NewStyle().Faint(true)
	urlStyle         = lipgloss.NewStyle()
	statusErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// maxSummaryRows caps how many rows of each bucket the styled summary shows.
const maxSummaryRows = 5

// RenderSummary produces a Lip Gloss styled summary of the final report.
func RenderSummary(rep *report.Report) string {
	if rep == nil {
		return errorStyle.Render("No report available.")
	}

	var builder strings.Builder
	s := rep.Summary

	if s.BrokenLinks == 0 && s.InactiveLinks == 0 && s.ErrorLinks == 0 {
		builder.WriteString(successStyle.Render("No broken links found!"))
		builder.WriteString("\n")
		builder.WriteString(dimStyle.Render(fmt.Sprintf(
			"Scanned %d pages, checked %d unique links",
			s.TotalPagesScanned, s.TotalUniqueLinks,
		)))
		builder.WriteString("\n")
		return builder.String()
	}

	renderBucket(&builder, "Broken Links (404)", rep.BrokenLinks)
	renderBucket(&builder, "Inactive Links (4xx/5xx)", rep.InactiveLinks)
	renderBucket(&builder, "Error Links", rep.ErrorLinks)

	builder.WriteString(titleStyle.Render(fmt.Sprintf(
		"Scanned %d pages: %d active, %d broken, %d inactive, %d errors out of %d unique links",
		s.TotalPagesScanned, s.ActiveLinks, s.BrokenLinks, s.InactiveLinks, s.ErrorLinks, s.TotalUniqueLinks,
	)))
	builder.WriteString("\n")

	return builder.String()
}

// renderBucket writes one categorized table, capped at maxSummaryRows rows.
func renderBucket(builder *strings.Builder, title string, links []report.LinkInfo) {
	if len(links) == 0 {
		return
	}

	builder.WriteString(categoryStyle.Render(fmt.Sprintf("## %s (%d)", title, len(links))))
	builder.WriteString("\n")

	rows := make([][]string, 0, len(links))
	for i, link := range links {
		if i >= maxSummaryRows {
			break
		}
		status := link.Error
		if link.Status != nil {
			status = fmt.Sprintf("%d", *link.Status)
		}
		foundOn := "N/A"
		if len(link.FoundOnPages) > 0 {
			foundOn = link.FoundOnPages[0]
		}
		rows = append(rows, []string{link.URL, status, foundOn, fmt.Sprintf("%d", link.TotalOccurrences)})
	}

	bucketTable := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("URL", "Status", "Found On", "Count").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 1 {
				return statusErrorStyle
			}
			return urlStyle
		}).
		Rows(rows...)

	builder.WriteString(bucketTable.Render())
	builder.WriteString("\n\n")
}
