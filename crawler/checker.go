package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// StatusTimeout is the sentinel status recorded when a liveness probe times
// out on every attempt.
const StatusTimeout = http.StatusRequestTimeout

// CheckAll runs the validation phase against the current registry contents.
// Run invokes it automatically; it is exposed so a caller can re-validate
// links without re-crawling. Re-running only rewrites status and error
// fields: keys and occurrences are untouched.
func (c *Crawler) CheckAll(ctx context.Context) {
	c.checkAllLinks(ctx)
}

// checkAllLinks validates the liveness of every registered link. The key set
// is snapshotted up front; it runs strictly after the crawl phase, so nothing
// is discovered while probes are in flight. Probes share the crawl phase's
// admission gate and retry discipline. Every outcome is recorded on the
// entry; nothing propagates.
func (c *Crawler) checkAllLinks(ctx context.Context) {
	urls := c.registry.URLs()
	total := len(urls)
	c.log.Info().Int("links", total).Msg("checking link status")

	var checked int
	results := make(chan string, c.cfg.MaxConcurrent)

	g, gctx := errgroup.WithContext(ctx)
	for _, u := range urls {
		u := u
		g.Go(func() error {
			status, errMsg := c.checkLink(gctx, u)
			c.registry.SetResult(u, status, errMsg)
			results <- u
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(results)
		close(done)
	}()

	for u := range results {
		checked++
		c.emit(Event{Phase: PhaseValidate, URL: u, Checked: checked, Total: total})
		if checked%(c.cfg.MaxConcurrent*5) == 0 {
			c.log.Info().Int("checked", checked).Int("total", total).Msg("status check progress")
		}
	}
	<-done

	c.log.Info().Msg("link status check complete")
}

// checkLink probes one URL with a lightweight no-body request. Outcomes:
// a response maps to its numeric status code; a timeout that survives every
// retry maps to StatusTimeout; any other unresolved failure maps to a nil
// status plus the captured error message.
func (c *Crawler) checkLink(ctx context.Context, linkURL string) (*int, string) {
	if err := c.gate.Acquire(ctx, 1); err != nil {
		return nil, fmt.Sprintf("acquire check slot: %v", err)
	}
	defer c.gate.Release(1)

	// Every probe failure is transient until retries run out.
	retryable := func(error) bool { return true }

	status, err := retry(ctx, c.policy, retryable, func(ctx context.Context) (int, error) {
		return c.headOnce(ctx, linkURL)
	})
	if err != nil {
		if isTimeout(err) {
			timeout := StatusTimeout
			return &timeout, ""
		}
		return nil, err.Error()
	}
	return &status, ""
}

// headOnce performs a single HEAD attempt with its own deadline. Any response
// counts as resolution, whatever its status code.
func (c *Crawler) headOnce(ctx context.Context, linkURL string) (int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodHead, linkURL, nil)
	if err != nil {
		return 0, fmt.Errorf("build request for %s: %w", linkURL, err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("head %s: %w", linkURL, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	return resp.StatusCode, nil
}
