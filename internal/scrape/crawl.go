package scrape

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"golang.org/x/sync/errgroup"

	"jobsift/internal/domain"
	"jobsift/internal/fetch"
)

// Query describes the paginated search to walk: a base origin, a search
// term, and a page-size stride iterated up to MaxOffset (exclusive).
type Query struct {
	BaseURL   string
	Term      string
	Stride    int
	MaxOffset int
}

// PageURLs expands the query into the fixed sequence of results-page URLs.
func (q Query) PageURLs() []string {
	stride := q.Stride
	if stride <= 0 {
		stride = 10
	}
	var urls []string
	for off := 0; off < q.MaxOffset; off += stride {
		urls = append(urls, fmt.Sprintf("%s/jobs?q=%s&start=%d",
			q.BaseURL, url.QueryEscape(q.Term), off))
	}
	return urls
}

// Crawler drives the fetcher+extractor pair over a query's pages.
type Crawler struct {
	Fetcher     fetch.Fetcher
	Selectors   Selectors
	Concurrency int // <=1 means strictly sequential
}

// Crawl fetches every page of q and folds the per-page extractions into one
// collection in page order. A failed page is logged and skipped; it never
// aborts the remaining offsets. Only context cancellation ends the crawl
// early, and then with the error.
func (c *Crawler) Crawl(ctx context.Context, q Query) ([]domain.Candidate, error) {
	pages := q.PageURLs()
	perPage := make([][]domain.Candidate, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	limit := c.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, pageURL := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := c.Fetcher.Fetch(gctx, pageURL)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Printf("[crawl] skipping page url=%s err=%v", pageURL, err)
				return nil
			}
			perPage[i] = Extract(doc, pageURL, c.Selectors)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// fold in input order so parallel fetches cannot reorder the output
	var all []domain.Candidate
	for _, cands := range perPage {
		all = append(all, cands...)
	}
	return all, nil
}
