package report

import (
	"fmt"
	"io"

	"github.com/rodaine/table"
)

// topEntries caps how many rows of each bucket the console summary shows.
const topEntries = 5

// PrintSummary writes a human-readable digest of the report to w: aggregate
// counts plus the top entries of each non-empty bucket. Everything shown here
// is derived from the report document and carries no extra state.
func PrintSummary(w io.Writer, rep *Report) {
	writef := func(format string, a ...any) { _, _ = fmt.Fprintf(w, format, a...) }

	writef("\nLink check report for %s\n", rep.SiteURL)
	writef("Generated: %s\n\n", rep.Timestamp)
	writef("Pages scanned:      %d\n", rep.Summary.TotalPagesScanned)
	writef("Total unique links: %d\n", rep.Summary.TotalUniqueLinks)
	writef("  active:    %d\n", rep.Summary.ActiveLinks)
	writef("  broken:    %d\n", rep.Summary.BrokenLinks)
	writef("  inactive:  %d\n", rep.Summary.InactiveLinks)
	writef("  errors:    %d\n", rep.Summary.ErrorLinks)
	writef("  unchecked: %d\n", rep.Summary.UncheckedLinks)

	printBucket(w, "Top broken links (404)", rep.BrokenLinks)
	printBucket(w, "Top inactive links (4xx/5xx)", rep.InactiveLinks)
	printErrorBucket(w, rep.ErrorLinks)
}

func printBucket(w io.Writer, title string, links []LinkInfo) {
	if len(links) == 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "\n%s:\n", title)
	tbl := table.New("URL", "Status", "Occurrences").WithWriter(w)
	for i, link := range links {
		if i >= topEntries {
			break
		}
		tbl.AddRow(link.URL, statusStr(link.Status), link.TotalOccurrences)
	}
	tbl.Print()
}

func printErrorBucket(w io.Writer, links []LinkInfo) {
	if len(links) == 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "\nTop error links:\n")
	tbl := table.New("URL", "Error", "Occurrences").WithWriter(w)
	for i, link := range links {
		if i >= topEntries {
			break
		}
		tbl.AddRow(link.URL, link.Error, link.TotalOccurrences)
	}
	tbl.Print()
}
