package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher retrieves a remote document. Callers decide whether a failure is
// fatal (results pages) or tolerable (detail pages); decorators such as
// retry.Fetcher wrap this without changing the signature.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// FetchError is a failed retrieval: either a transport error (Err set) or a
// non-2xx response (StatusCode set).
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError is a response body that could not be parsed as a document.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

const defaultUserAgent = "jobsift/1.0 (+local)"

// Client is the sole network I/O primitive. Requests are throttled per host
// by the limiter, which doubles as the courtesy delay between fetches.
type Client struct {
	hc      *http.Client
	limiter *HostLimiter
	ua      string
}

func NewClient(timeout time.Duration, reqPerSec float64) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		hc:      &http.Client{Timeout: timeout},
		limiter: NewHostLimiter(reqPerSec, 1),
		ua:      defaultUserAgent,
	}
}

func (c *Client) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	if err := c.limiter.WaitURL(ctx, url); err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.ua)

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: res.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, &ParseError{URL: url, Err: err}
	}
	return doc, nil
}
