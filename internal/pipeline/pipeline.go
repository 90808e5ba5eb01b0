package pipeline

import (
	"context"
	"fmt"
	"log"

	"jobsift/internal/config"
	"jobsift/internal/dedup"
	"jobsift/internal/enrich"
	"jobsift/internal/fetch"
	"jobsift/internal/scrape"
	"jobsift/internal/store"
)

// Stats audits each stage's loss for one run.
type Stats struct {
	CandidatesSeen int
	AfterDedup     int
	EnrichFailures int
	Inserted       int
}

func (s Stats) String() string {
	return fmt.Sprintf("candidates=%d deduped=%d enrich_failures=%d inserted=%d",
		s.CandidatesSeen, s.AfterDedup, s.EnrichFailures, s.Inserted)
}

// Pipeline is one crawl-dedupe-enrich-sync run. The store handle is owned
// by the caller; the pipeline only touches it in the final sync stage, so
// an abort mid-crawl persists nothing.
type Pipeline struct {
	Fetcher fetch.Fetcher
	DB      *store.DB
	Cfg     config.Config
}

// Run executes the batch pipeline to completion. Page and detail failures
// are absorbed by their stages; only context cancellation and store errors
// surface here.
func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	crawler := &scrape.Crawler{
		Fetcher:     p.Fetcher,
		Selectors:   p.Cfg.Selectors,
		Concurrency: p.Cfg.Fetch.Concurrency,
	}
	q := scrape.Query{
		BaseURL:   p.Cfg.Search.BaseURL,
		Term:      p.Cfg.Search.Term,
		Stride:    p.Cfg.Search.Stride,
		MaxOffset: p.Cfg.Search.MaxOffset,
	}

	cands, err := crawler.Crawl(ctx, q)
	if err != nil {
		return stats, err
	}
	stats.CandidatesSeen = len(cands)

	listings := dedup.Collapse(cands)
	stats.AfterDedup = len(listings)
	log.Printf("[pipeline] candidates=%d deduped=%d", stats.CandidatesSeen, stats.AfterDedup)

	enricher := &enrich.Enricher{
		Fetcher:     p.Fetcher,
		Selector:    p.Cfg.Description,
		Concurrency: p.Cfg.Fetch.Concurrency,
	}
	listings, failed, err := enricher.Describe(ctx, listings)
	if err != nil {
		return stats, err
	}
	stats.EnrichFailures = failed

	inserted, err := p.DB.Sync(ctx, listings)
	if err != nil {
		return stats, fmt.Errorf("pipeline: %w", err)
	}
	stats.Inserted = inserted

	return stats, nil
}
