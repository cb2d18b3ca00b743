package crawler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/scoutlab/linkscout/crawler"
	"github.com/scoutlab/linkscout/report"
)

// newFixtureSite serves the given path -> HTML map. Unknown paths return 404.
// GET requests per path are counted so tests can assert single-visit behavior.
func newFixtureSite(pages map[string]string) (*httptest.Server, func(path string) int) {
	var mu sync.Mutex
	gets := make(map[string]int)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			mu.Lock()
			gets[r.URL.Path]++
			mu.Unlock()
		}
		body, ok := pages[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))

	return server, func(path string) int {
		mu.Lock()
		defer mu.Unlock()
		return gets[path]
	}
}

func newEngine(t *testing.T, seedURL string) *crawler.Crawler {
	t.Helper()
	cfg := crawler.DefaultConfig(seedURL)
	cfg.MaxRetries = 2
	cfg.RetryDelay = 5 * time.Millisecond
	cfg.RequestTimeout = 40 * time.Millisecond
	c, err := crawler.New(cfg, zerolog.Nop(), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func findLink(links []report.LinkInfo, url string) (report.LinkInfo, bool) {
	for _, l := range links {
		if l.URL == url {
			return l, true
		}
	}
	return report.LinkInfo{}, false
}

func TestRunFullSite(t *testing.T) {
	var slowMu sync.Mutex
	slowHits := 0
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `<html><body>
			<a href="/about">About</a>
			<a href="/missing">Missing</a>
			<a href="/slow">Slow</a>
		</body></html>`)
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><a href="/">Home</a></body></html>`)
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		slowMu.Lock()
		slowHits++
		slowMu.Unlock()
		time.Sleep(200 * time.Millisecond)
	})

	c := newEngine(t, server.URL)
	rep, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Seed, /about, /missing, and /slow are all internal pages. The two
	// failing fetches still count as visited pages with zero links.
	if got := rep.Summary.TotalPagesScanned; got != 4 {
		t.Errorf("TotalPagesScanned = %d, want 4", got)
	}
	if got := rep.Summary.TotalUniqueLinks; got != 4 {
		t.Errorf("TotalUniqueLinks = %d, want 4", got)
	}

	if got := rep.Summary.ActiveLinks; got != 2 {
		t.Errorf("ActiveLinks = %d, want 2 (/about and /)", got)
	}
	if got := rep.Summary.BrokenLinks; got != 1 {
		t.Errorf("BrokenLinks = %d, want 1", got)
	}
	if got := rep.Summary.InactiveLinks; got != 1 {
		t.Errorf("InactiveLinks = %d, want 1 (timeout becomes 408)", got)
	}

	if broken, ok := findLink(rep.BrokenLinks, server.URL+"/missing"); !ok {
		t.Error("missing link not in broken bucket")
	} else if broken.Status == nil || *broken.Status != http.StatusNotFound {
		t.Errorf("broken status = %v, want 404", broken.Status)
	}

	if slow, ok := findLink(rep.InactiveLinks, server.URL+"/slow"); !ok {
		t.Error("slow link not in inactive bucket")
	} else if slow.Status == nil || *slow.Status != http.StatusRequestTimeout {
		t.Errorf("slow status = %v, want 408", slow.Status)
	}

	// Partition completeness over unique links.
	s := rep.Summary
	if sum := s.BrokenLinks + s.InactiveLinks + s.ActiveLinks + s.ErrorLinks + s.UncheckedLinks; sum != s.TotalUniqueLinks {
		t.Errorf("bucket counts sum to %d, want %d", sum, s.TotalUniqueLinks)
	}
}

func TestRunCountsEveryOccurrence(t *testing.T) {
	pages := map[string]string{
		"/shared": `<html><body>fin</body></html>`,
	}
	seedLinks := ""
	for i := 1; i <= 7; i++ {
		path := fmt.Sprintf("/p%d", i)
		pages[path] = `<html><body><a href="/shared">Shared</a></body></html>`
		seedLinks += fmt.Sprintf(`<a href="%s">p</a>`, path)
	}
	pages["/"] = "<html><body>" + seedLinks + "</body></html>"

	server, _ := newFixtureSite(pages)
	defer server.Close()

	c := newEngine(t, server.URL)
	rep, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	shared, ok := findLink(rep.ActiveLinksSample, server.URL+"/shared")
	if !ok {
		t.Fatal("shared link not in active sample")
	}
	if shared.TotalOccurrences != 7 {
		t.Errorf("TotalOccurrences = %d, want 7", shared.TotalOccurrences)
	}
	if got := len(shared.FoundOnPages); got != report.MaxFoundOnPages {
		t.Errorf("FoundOnPages has %d entries, want %d", got, report.MaxFoundOnPages)
	}
}

func TestRunVisitsEachPageOnce(t *testing.T) {
	pages := map[string]string{
		"/": `<html><body>
			<a href="/a">A</a>
			<a href="/b">B</a>
			<a href="/common">C</a>
		</body></html>`,
		"/a":      `<html><body><a href="/common">C</a></body></html>`,
		"/b":      `<html><body><a href="/common">C</a><a href="/a">A</a></body></html>`,
		"/common": `<html><body>leaf</body></html>`,
	}

	server, getCount := newFixtureSite(pages)
	defer server.Close()

	c := newEngine(t, server.URL)
	rep, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, path := range []string{"/", "/a", "/b", "/common"} {
		if got := getCount(path); got != 1 {
			t.Errorf("page %s fetched %d times, want 1", path, got)
		}
	}
	if got := rep.Summary.TotalPagesScanned; got != 4 {
		t.Errorf("TotalPagesScanned = %d, want 4", got)
	}

	common, ok := findLink(rep.ActiveLinksSample, server.URL+"/common")
	if !ok {
		t.Fatal("common link not in active sample")
	}
	if common.TotalOccurrences != 3 {
		t.Errorf("TotalOccurrences = %d, want 3", common.TotalOccurrences)
	}
}

func TestRunExternalLinksNotCrawled(t *testing.T) {
	external, externalGets := newFixtureSite(map[string]string{
		"/lib": `<html><body><a href="/never-crawled">x</a></body></html>`,
	})
	defer external.Close()

	pages := map[string]string{
		"/": fmt.Sprintf(`<html><body><a href="%s/lib">Lib</a></body></html>`, external.URL),
	}
	server, _ := newFixtureSite(pages)
	defer server.Close()

	c := newEngine(t, server.URL)
	rep, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := externalGets("/lib"); got != 0 {
		t.Errorf("external page fetched %d times with GET, want 0 (HEAD only)", got)
	}
	if got := rep.Summary.TotalPagesScanned; got != 1 {
		t.Errorf("TotalPagesScanned = %d, want 1", got)
	}
	if _, ok := findLink(rep.ActiveLinksSample, external.URL+"/lib"); !ok {
		t.Error("external link missing from active sample")
	}
}

func TestRunEmitsProgressEvents(t *testing.T) {
	pages := map[string]string{
		"/":  `<html><body><a href="/a">A</a></body></html>`,
		"/a": `<html><body>leaf</body></html>`,
	}
	server, _ := newFixtureSite(pages)
	defer server.Close()

	progressCh := make(chan crawler.Event, 64)
	cfg := crawler.DefaultConfig(server.URL)
	cfg.RequestTimeout = 40 * time.Millisecond
	cfg.RetryDelay = 5 * time.Millisecond
	c, err := crawler.New(cfg, zerolog.Nop(), progressCh)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	close(progressCh)

	var crawlEvents, validateEvents int
	for evt := range progressCh {
		switch evt.Phase {
		case crawler.PhaseCrawl:
			crawlEvents++
		case crawler.PhaseValidate:
			validateEvents++
		}
	}
	if crawlEvents != 2 {
		t.Errorf("got %d crawl events, want 2", crawlEvents)
	}
	if validateEvents != 1 {
		t.Errorf("got %d validate events, want 1", validateEvents)
	}
}

func TestRunCanceledContext(t *testing.T) {
	server, _ := newFixtureSite(map[string]string{"/": `<html></html>`})
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newEngine(t, server.URL)
	if _, err := c.Run(ctx); err == nil {
		t.Error("Run() error = nil with canceled context, want error")
	}
}
