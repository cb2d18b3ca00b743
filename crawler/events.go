package crawler

// Phase identifies which stage of the run an Event belongs to.
type Phase string

const (
	// PhaseCrawl is the traversal stage that discovers pages and links.
	PhaseCrawl Phase = "crawl"
	// PhaseValidate is the stage that probes every discovered link.
	PhaseValidate Phase = "validate"
)

// Event reports progress for one processed page or probed link.
type Event struct {
	Phase        Phase
	URL          string
	PagesScanned int // crawl phase: pages visited so far
	LinksFound   int // crawl phase: unique links registered so far
	Checked      int // validation phase: links probed so far
	Total        int // validation phase: snapshot size
}
