package crawler

import (
	"sync"

	"github.com/scoutlab/linkscout/report"
)

// LinkEntry accumulates everything known about one discovered URL.
type LinkEntry struct {
	// Status is the validated HTTP status, nil until the validation phase
	// resolves it (and nil forever for links that never resolved).
	Status *int
	// Error is set only when Status stays unresolved.
	Error string
	// FoundOnPages records one source page per occurrence, duplicates allowed.
	FoundOnPages []string
}

// Registry is the single map from URL to accumulated link metadata. It is the
// only structure mutated by concurrent operations (page workers appending
// occurrences, the validation phase writing statuses), so every access goes
// through the mutex.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*LinkEntry
	order   []string // keys in discovery order
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*LinkEntry)}
}

// Record registers one occurrence of linkURL on pageURL, creating the entry
// on first discovery. Each call appends exactly one occurrence.
func (r *Registry) Record(linkURL, pageURL string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[linkURL]
	if !ok {
		entry = &LinkEntry{}
		r.entries[linkURL] = entry
		r.order = append(r.order, linkURL)
	}
	entry.FoundOnPages = append(entry.FoundOnPages, pageURL)
}

// SetResult stores the validation outcome for linkURL. Only status and error
// change; occurrences are never touched here, so re-running validation leaves
// the key set and FoundOnPages intact.
func (r *Registry) SetResult(linkURL string, status *int, errMsg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[linkURL]
	if !ok {
		return
	}
	entry.Status = status
	entry.Error = errMsg
}

// URLs returns the registered URLs in discovery order. The returned slice is
// a snapshot: links recorded after the call are not included.
func (r *Registry) URLs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	urls := make([]string, len(r.order))
	copy(urls, r.order)
	return urls
}

// Len returns the number of unique registered URLs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Snapshot exports every entry in discovery order for aggregation. Slices are
// copied so the report cannot observe later mutation.
func (r *Registry) Snapshot() []report.LinkSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]report.LinkSnapshot, 0, len(r.order))
	for _, u := range r.order {
		entry := r.entries[u]
		pages := make([]string, len(entry.FoundOnPages))
		copy(pages, entry.FoundOnPages)
		out = append(out, report.LinkSnapshot{
			URL:          u,
			Status:       entry.Status,
			Error:        entry.Error,
			FoundOnPages: pages,
		})
	}
	return out
}
