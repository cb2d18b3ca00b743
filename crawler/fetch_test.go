package crawler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// newTestCrawler builds a Crawler with fast retry timing for fixture servers.
func newTestCrawler(t *testing.T, seedURL string) *Crawler {
	t.Helper()
	cfg := DefaultConfig(seedURL)
	cfg.RetryDelay = 5 * time.Millisecond
	cfg.RequestTimeout = 250 * time.Millisecond
	c, err := New(cfg, zerolog.Nop(), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestFetchPageSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		_, _ = w.Write([]byte("<html>hello</html>"))
	}))
	defer server.Close()

	c := newTestCrawler(t, server.URL)

	body, err := c.fetchPage(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("fetchPage() error = %v", err)
	}
	if body != "<html>hello</html>" {
		t.Errorf("fetchPage() = %q, want page body", body)
	}
}

func TestFetchPageSetsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
	}))
	defer server.Close()

	c := newTestCrawler(t, server.URL)
	if _, err := c.fetchPage(context.Background(), server.URL); err != nil {
		t.Fatalf("fetchPage() error = %v", err)
	}
	if gotUA != defaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, defaultUserAgent)
	}
}

func TestFetchPageNon200NoRetry(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := newTestCrawler(t, server.URL)

	_, err := c.fetchPage(context.Background(), server.URL)
	var se *statusError
	if !errors.As(err, &se) || se.code != http.StatusNotFound {
		t.Errorf("fetchPage() error = %v, want status error 404", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1 (non-200 is terminal)", got)
	}
}

func TestFetchPageTimeoutRetriesThenFails(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	c := newTestCrawler(t, server.URL)
	c.cfg.RequestTimeout = 30 * time.Millisecond
	c.policy = RetryPolicy{MaxAttempts: 3, Delay: 5 * time.Millisecond}

	_, err := c.fetchPage(context.Background(), server.URL)
	if err == nil {
		t.Fatal("fetchPage() error = nil, want timeout")
	}
	if !isTimeout(err) {
		t.Errorf("fetchPage() error = %v, want a timeout", err)
	}
	if got := hits.Load(); got != 3 {
		t.Errorf("server hit %d times, want 3", got)
	}
}

func TestFetchPageTransientErrorRecovers(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			time.Sleep(300 * time.Millisecond)
			return
		}
		_, _ = w.Write([]byte("recovered"))
	}))
	defer server.Close()

	c := newTestCrawler(t, server.URL)
	c.cfg.RequestTimeout = 50 * time.Millisecond

	body, err := c.fetchPage(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("fetchPage() error = %v, want recovery on second attempt", err)
	}
	if body != "recovered" {
		t.Errorf("fetchPage() = %q, want %q", body, "recovered")
	}
}
