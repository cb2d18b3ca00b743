// Package crawler implements the crawl-and-validate engine: a bounded-
// concurrency site traversal that discovers every internal page and every
// link-like reference, followed by a liveness check of every discovered link.
// The two phases run strictly sequentially and share one link registry.
package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/scoutlab/linkscout/report"
	"github.com/scoutlab/linkscout/urlutil"
)

// Crawler coordinates the crawl and validation phases against one site.
type Crawler struct {
	cfg      Config
	policy   RetryPolicy
	client   *http.Client
	gate     *semaphore.Weighted
	frontier *Frontier
	registry *Registry
	log      zerolog.Logger

	seedURL string
	domain  string

	progressCh chan<- Event
}

// New creates a Crawler for cfg.SeedURL. The seed is normalized to carry a
// scheme before anything else happens; its host becomes the crawl domain that
// extracted links are classified against. The progressCh parameter is
// optional; pass nil to disable progress events.
func New(cfg Config, logger zerolog.Logger, progressCh chan<- Event) (*Crawler, error) {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 10
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 5
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultConfig("").RetryDelay
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	seed, err := urlutil.Normalize(urlutil.EnsureScheme(cfg.SeedURL))
	if err != nil {
		return nil, fmt.Errorf("invalid seed URL %q: %w", cfg.SeedURL, err)
	}
	domain, err := urlutil.Domain(seed)
	if err != nil {
		return nil, fmt.Errorf("invalid seed URL %q: %w", cfg.SeedURL, err)
	}

	// Root path consistency: "http://host" and "http://host/" must dedup.
	if parsed, parseErr := url.Parse(seed); parseErr == nil && parsed.Path == "" {
		parsed.Path = "/"
		seed = parsed.String()
	}

	return &Crawler{
		cfg:        cfg,
		policy:     RetryPolicy{MaxAttempts: cfg.MaxRetries, Delay: cfg.RetryDelay},
		client:     &http.Client{},
		gate:       semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		frontier:   NewFrontier(MaxPages),
		registry:   NewRegistry(),
		log:        logger,
		seedURL:    seed,
		domain:     domain,
		progressCh: progressCh,
	}, nil
}

// Registry exposes the link registry, mainly for tests and re-validation.
func (c *Crawler) Registry() *Registry {
	return c.registry
}

// PagesScanned returns the number of pages visited so far.
func (c *Crawler) PagesScanned() int {
	return c.frontier.VisitedCount()
}

// Run executes the full engine: crawl until the frontier drains or the page
// cap is reached, then validate every registered link, then aggregate. The
// only errors returned are context cancellation; per-page and per-link
// failures are recorded in the report instead.
func (c *Crawler) Run(ctx context.Context) (*report.Report, error) {
	c.log.Info().Str("url", c.seedURL).Msg("starting crawl")
	if err := c.crawlSite(ctx); err != nil {
		return nil, err
	}
	c.log.Info().
		Int("pages", c.frontier.VisitedCount()).
		Int("links", c.registry.Len()).
		Msg("crawl complete")

	c.checkAllLinks(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return report.Build(c.seedURL, c.domain, c.frontier.VisitedCount(), c.registry.Snapshot()), nil
}

// pageResult carries one crawled page back to the coordinator.
type pageResult struct {
	page  string
	links []linkRef
	err   error // fetch failure; the page stays visited with zero links
}

// linkRef is one link occurrence in document order.
type linkRef struct {
	url      string
	internal bool
}

// crawlSite drains the frontier with a pool of page workers. The coordinator
// goroutine owns the frontier: it dispatches pending URLs to the workers and
// folds their results back into the registry, so frontier state is never
// mutated concurrently. Worker count matches the admission gate, which is
// what actually bounds in-flight requests.
func (c *Crawler) crawlSite(ctx context.Context) error {
	maxInflight := c.cfg.MaxConcurrent * 2
	jobs := make(chan string, maxInflight)
	results := make(chan pageResult, maxInflight)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < c.cfg.MaxConcurrent; i++ {
		g.Go(func() error {
			for pageURL := range jobs {
				results <- c.crawlPage(gctx, pageURL)
			}
			return nil
		})
	}

	c.frontier.Add(c.seedURL)

	inflight := 0
	dispatch := func() {
		for inflight < maxInflight {
			next, ok := c.frontier.Next()
			if !ok {
				return
			}
			if !c.frontier.Visit(next) {
				continue
			}
			inflight++
			jobs <- next
		}
	}

	dispatch()
	for inflight > 0 {
		res := <-results
		inflight--
		c.recordPage(res)
		if ctx.Err() == nil {
			dispatch()
		}
	}
	close(jobs)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("wait for page workers: %w", err)
	}
	return ctx.Err()
}

// crawlPage fetches one page and extracts its links. Fetch and parse failures
// degrade to an empty link list.
func (c *Crawler) crawlPage(ctx context.Context, pageURL string) pageResult {
	c.log.Debug().Str("url", pageURL).Msg("crawling page")

	body, err := c.fetchPage(ctx, pageURL)
	if err != nil {
		return pageResult{page: pageURL, err: err}
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return pageResult{page: pageURL, err: fmt.Errorf("parse page URL: %w", err)}
	}

	internal, external := ExtractLinks(base, strings.NewReader(body), c.domain)
	links := make([]linkRef, 0, len(internal)+len(external))
	for _, u := range internal {
		links = append(links, linkRef{url: u, internal: true})
	}
	for _, u := range external {
		links = append(links, linkRef{url: u, internal: false})
	}
	return pageResult{page: pageURL, links: links}
}

// recordPage folds one page result into the registry and frontier.
func (c *Crawler) recordPage(res pageResult) {
	if res.err != nil {
		c.log.Warn().Str("url", res.page).Err(res.err).Msg("could not fetch page")
	}

	for _, link := range res.links {
		c.registry.Record(link.url, res.page)
	}
	for _, link := range res.links {
		if link.internal {
			c.frontier.Add(link.url)
		}
	}

	scanned := c.frontier.VisitedCount()
	if scanned%10 == 0 {
		c.log.Info().
			Int("pages", scanned).
			Int("links", c.registry.Len()).
			Msg("crawl progress")
	}
	c.emit(Event{
		Phase:        PhaseCrawl,
		URL:          res.page,
		PagesScanned: scanned,
		LinksFound:   c.registry.Len(),
	})
}

func (c *Crawler) emit(evt Event) {
	if c.progressCh != nil {
		c.progressCh <- evt
	}
}
