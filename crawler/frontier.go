package crawler

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Frontier tracks URLs pending visit and URLs already visited. The pending
// collection is an unordered set, so visit order is nondeterministic; once the
// page cap is hit, which URLs never get visited is likewise arbitrary.
// Visited grows monotonically and never exceeds maxPages.
type Frontier struct {
	pending  mapset.Set[string]
	visited  mapset.Set[string]
	maxPages int
}

// NewFrontier creates a Frontier with the given visited-page cap.
func NewFrontier(maxPages int) *Frontier {
	return &Frontier{
		pending:  mapset.NewSet[string](),
		visited:  mapset.NewSet[string](),
		maxPages: maxPages,
	}
}

// Add queues a URL for visiting. Already-visited URLs are ignored, as is any
// new discovery once the visited count has reached the cap. Duplicate pending
// entries collapse into one.
func (f *Frontier) Add(url string) {
	if f.visited.Contains(url) {
		return
	}
	if f.visited.Cardinality() >= f.maxPages {
		return
	}
	f.pending.Add(url)
}

// Next removes and returns an arbitrary pending URL.
func (f *Frontier) Next() (string, bool) {
	return f.pending.Pop()
}

// Visit marks a URL as visited. Returns false when the URL was already
// visited or the cap has been reached; a false return means the caller must
// not fetch the URL.
func (f *Frontier) Visit(url string) bool {
	if f.visited.Cardinality() >= f.maxPages {
		return false
	}
	// Add reports whether the element was newly inserted.
	return f.visited.Add(url)
}

// Visited reports whether a URL has been visited.
func (f *Frontier) Visited(url string) bool {
	return f.visited.Contains(url)
}

// VisitedCount returns the number of visited pages.
func (f *Frontier) VisitedCount() int {
	return f.visited.Cardinality()
}

// PendingCount returns the number of URLs waiting to be visited.
func (f *Frontier) PendingCount() int {
	return f.pending.Cardinality()
}
