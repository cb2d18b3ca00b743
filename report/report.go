// Package report reduces the link registry into a categorized, sorted report
// and renders it as JSON, CSV, HTML, or a console summary.
package report

import (
	"sort"
	"time"
)

const (
	// MaxFoundOnPages caps the per-entry source page list in the report.
	MaxFoundOnPages = 5
	// MaxActiveSample caps the active links sample.
	MaxActiveSample = 20
)

// LinkSnapshot is the registry's view of one discovered link, handed to the
// aggregator after the validation phase. A nil Status means the check never
// resolved; FoundOnPages holds one entry per occurrence, duplicates included.
type LinkSnapshot struct {
	URL          string
	Status       *int
	Error        string
	FoundOnPages []string
}

// LinkInfo is one bucketed report entry.
type LinkInfo struct {
	URL              string   `json:"url"`
	Status           *int     `json:"status"`
	FoundOnPages     []string `json:"found_on_pages"`
	TotalOccurrences int      `json:"total_occurrences"`
	Error            string   `json:"error,omitempty"`
}

// Summary holds the aggregate counts.
type Summary struct {
	TotalPagesScanned int `json:"total_pages_scanned"`
	TotalUniqueLinks  int `json:"total_unique_links"`
	BrokenLinks       int `json:"broken_links"`
	InactiveLinks     int `json:"inactive_links"`
	ActiveLinks       int `json:"active_links"`
	ErrorLinks        int `json:"error_links"`
	UncheckedLinks    int `json:"unchecked_links"`
}

// Report is the complete output of a crawl-and-validate run.
type Report struct {
	Timestamp         string     `json:"timestamp"`
	SiteURL           string     `json:"site_url"`
	Domain            string     `json:"domain"`
	Summary           Summary    `json:"summary"`
	BrokenLinks       []LinkInfo `json:"broken_links"`
	InactiveLinks     []LinkInfo `json:"inactive_links"`
	ErrorLinks        []LinkInfo `json:"error_links"`
	ActiveLinksSample []LinkInfo `json:"active_links_sample"`
}

// Build aggregates validated link snapshots into a Report. Snapshots must be
// supplied in discovery order: the active sample keeps the first
// MaxActiveSample entries in that order, while the broken, inactive, and error
// buckets are re-sorted descending by total occurrences.
//
// Bucketing: nil status -> error, 404 -> broken, any other >=400 -> inactive,
// 200 -> active (sampled). Everything else is counted as unchecked and not
// listed. TotalOccurrences always reflects the full occurrence count even
// though FoundOnPages is truncated for display.
func Build(siteURL, domain string, pagesScanned int, links []LinkSnapshot) *Report {
	rep := &Report{
		Timestamp:         time.Now().Format(time.RFC3339),
		SiteURL:           siteURL,
		Domain:            domain,
		BrokenLinks:       []LinkInfo{},
		InactiveLinks:     []LinkInfo{},
		ErrorLinks:        []LinkInfo{},
		ActiveLinksSample: []LinkInfo{},
	}
	rep.Summary.TotalPagesScanned = pagesScanned
	rep.Summary.TotalUniqueLinks = len(links)

	for _, snap := range links {
		info := LinkInfo{
			URL:              snap.URL,
			Status:           snap.Status,
			FoundOnPages:     firstN(snap.FoundOnPages, MaxFoundOnPages),
			TotalOccurrences: len(snap.FoundOnPages),
		}

		switch {
		case snap.Status == nil:
			info.Error = snap.Error
			if info.Error == "" {
				info.Error = "Unknown error"
			}
			rep.Summary.ErrorLinks++
			rep.ErrorLinks = append(rep.ErrorLinks, info)
		case *snap.Status == 404:
			rep.Summary.BrokenLinks++
			rep.BrokenLinks = append(rep.BrokenLinks, info)
		case *snap.Status >= 400:
			rep.Summary.InactiveLinks++
			rep.InactiveLinks = append(rep.InactiveLinks, info)
		case *snap.Status == 200:
			rep.Summary.ActiveLinks++
			if len(rep.ActiveLinksSample) < MaxActiveSample {
				rep.ActiveLinksSample = append(rep.ActiveLinksSample, info)
			}
		default:
			rep.Summary.UncheckedLinks++
		}
	}

	sortByOccurrences(rep.BrokenLinks)
	sortByOccurrences(rep.InactiveLinks)
	sortByOccurrences(rep.ErrorLinks)

	return rep
}

// firstN returns a copy of the first n elements of s.
func firstN(s []string, n int) []string {
	if len(s) < n {
		n = len(s)
	}
	out := make([]string, n)
	copy(out, s[:n])
	return out
}

func sortByOccurrences(links []LinkInfo) {
	sort.SliceStable(links, func(i, j int) bool {
		return links[i].TotalOccurrences > links[j].TotalOccurrences
	})
}
