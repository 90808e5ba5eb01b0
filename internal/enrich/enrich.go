package enrich

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"jobsift/internal/domain"
	"jobsift/internal/fetch"
)

// DefaultSelector matches Indeed-style detail pages.
const DefaultSelector = "div#jobDescriptionText"

// Enricher fills in full descriptions from each listing's detail page.
// This is the stage whose cost scales with the deduplicated count, so it
// holds nothing across iterations beyond the shared fetcher.
type Enricher struct {
	Fetcher     fetch.Fetcher
	Selector    string
	Concurrency int // <=1 means strictly sequential
}

// Describe fetches every listing's detail link and sets its description.
// Failures are per-record: the listing gets the unavailable sentinel and
// its siblings are untouched. The returned slice preserves input order
// regardless of concurrency, and failed counts the sentinels set. Only
// context cancellation aborts the batch.
func (e *Enricher) Describe(ctx context.Context, listings []domain.Listing) (out []domain.Listing, failed int, err error) {
	out = make([]domain.Listing, len(listings))
	copy(out, listings)

	sel := e.Selector
	if sel == "" {
		sel = DefaultSelector
	}

	g, gctx := errgroup.WithContext(ctx)
	limit := e.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	failures := make([]bool, len(out))
	for i := range out {
		g.Go(func() error {
			if cerr := gctx.Err(); cerr != nil {
				return cerr
			}
			l := &out[i]
			if l.DetailLink == "" {
				l.Description = domain.DescriptionUnavailable
				failures[i] = true
				return nil
			}
			doc, ferr := e.Fetcher.Fetch(gctx, l.DetailLink)
			if ferr != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Printf("[enrich] description unavailable url=%s err=%v", l.DetailLink, ferr)
				l.Description = domain.DescriptionUnavailable
				failures[i] = true
				return nil
			}
			text := cleanBlock(doc.Find(sel).First().Text())
			if text == "" {
				l.Description = domain.DescriptionUnavailable
				failures[i] = true
				return nil
			}
			l.Description = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	for _, f := range failures {
		if f {
			failed++
		}
	}
	return out, failed, nil
}
