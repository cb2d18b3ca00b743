package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// fetchPage retrieves the body of pageURL. The admission gate is held for the
// whole retry sequence, so at most MaxConcurrent logical fetches are in
// flight. Each attempt gets an independent timeout; a non-200 response is
// unresolved immediately, while timeouts and transport errors are retried
// after a fixed delay. The returned error is informational only: a failed
// fetch never aborts the crawl.
func (c *Crawler) fetchPage(ctx context.Context, pageURL string) (string, error) {
	if err := c.gate.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("acquire fetch slot: %w", err)
	}
	defer c.gate.Release(1)

	retryable := func(err error) bool {
		var se *statusError
		return !errors.As(err, &se)
	}

	return retry(ctx, c.policy, retryable, func(ctx context.Context) (string, error) {
		return c.getOnce(ctx, pageURL)
	})
}

// getOnce performs a single GET attempt with its own deadline.
func (c *Crawler) getOnce(ctx context.Context, pageURL string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", pageURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", pageURL, err)
	}
	return string(body), nil
}
