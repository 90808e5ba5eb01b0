package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchParsesDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, defaultUserAgent, r.Header.Get("User-Agent"))
		fmt.Fprint(w, `<html><body><h1>Data Scientist</h1></body></html>`)
	}))
	defer srv.Close()

	c := NewClient(0, 1000)
	doc, err := c.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Data Scientist", doc.Find("h1").Text())
}

func TestFetchNon2xxIsTypedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(0, 1000)
	_, err := c.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusNotFound, fe.StatusCode)
	assert.Equal(t, srv.URL, fe.URL)
}

func TestFetchTransportErrorWraps(t *testing.T) {
	c := NewClient(50*time.Millisecond, 1000)
	_, err := c.Fetch(context.Background(), "http://127.0.0.1:1/nothing-here")
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Zero(t, fe.StatusCode)
	assert.Error(t, fe.Err)
}

func TestHostLimiterThrottlesPerHost(t *testing.T) {
	hl := NewHostLimiter(20, 1)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, hl.WaitURL(ctx, "https://a.test/x"))
	require.NoError(t, hl.WaitURL(ctx, "https://a.test/y"))
	elapsed := time.Since(start)

	// second request to the same host waits for the 50ms refill
	assert.GreaterOrEqual(t, elapsed, 40*time.Millisecond)

	// a different host has its own bucket and is not delayed
	start = time.Now()
	require.NoError(t, hl.WaitURL(ctx, "https://b.test/x"))
	assert.Less(t, time.Since(start), 40*time.Millisecond)
}

func TestHostLimiterCancelled(t *testing.T) {
	hl := NewHostLimiter(0.01, 1)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, hl.WaitURL(ctx, "https://a.test/x"))
	cancel()
	assert.Error(t, hl.WaitURL(ctx, "https://a.test/y"))
}
