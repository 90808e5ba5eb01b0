package retry

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobsift/internal/fetch"
)

// Fetcher decorates a fetch.Fetcher with exponential backoff on transient
// failures. The wrapped signature is unchanged, so it can be dropped in
// front of the page crawler or the detail enricher without either noticing.
type Fetcher struct {
	inner      fetch.Fetcher
	maxRetries int
	baseDelay  time.Duration
}

func New(inner fetch.Fetcher, maxRetries int, baseDelay time.Duration) *Fetcher {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = time.Second
	}
	return &Fetcher{inner: inner, maxRetries: maxRetries, baseDelay: baseDelay}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	doc, err := f.inner.Fetch(ctx, url)
	if err == nil || !isRetryable(err) {
		return doc, err
	}

	lastErr := err
	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		delay := f.backoffDelay(attempt)
		log.Printf("[retry] attempt %d/%d in %s url=%s err=%v",
			attempt, f.maxRetries, delay.Round(time.Millisecond), url, lastErr)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}

		doc, err = f.inner.Fetch(ctx, url)
		if err == nil || !isRetryable(err) {
			return doc, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// backoffDelay doubles the base delay per attempt with ±30% jitter.
func (f *Fetcher) backoffDelay(attempt int) time.Duration {
	delay := f.baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}
	jitter := float64(delay) * 0.3
	return time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var fe *fetch.FetchError
	if errors.As(err, &fe) {
		if fe.StatusCode == 0 {
			// transport-level failure, worth another try
			return true
		}
		return fe.StatusCode == 429 || fe.StatusCode >= 500
	}

	// a parse failure will not fix itself
	var pe *fetch.ParseError
	return !errors.As(err, &pe)
}
