package fetch

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"
)

const (
	// Hard ceiling for a single request, redirects included.
	requestTimeout = 15 * time.Second

	defaultUserAgent = "zalgiris-matches-service/1.0"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// cacheEntry keeps the conditional-request validators and the last good body
// for one URL.
type cacheEntry struct {
	etag         string
	lastModified string
	body         string
}

// Client retrieves pages with conditional-request caching. When the server
// answers 304 the previously cached body is returned, so downstream parsing
// stays deterministic without a re-transfer.
type Client struct {
	httpClient httpDoer
	userAgent  string

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// Config controls client construction.
type Config struct {
	HTTPClient *http.Client
	UserAgent  string
}

// NewClient constructs a fetch client with the provided configuration.
func NewClient(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: requestTimeout}
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		httpClient: hc,
		userAgent:  ua,
		entries:    make(map[string]cacheEntry),
	}
}

// Result is one fetched page. NotModified reports that the server answered
// 304 and Body was served from the validator cache.
type Result struct {
	Body        string
	NotModified bool
}

// FetchText retrieves url as text.
func (c *Client) FetchText(ctx context.Context, url string) (string, error) {
	res, err := c.Fetch(ctx, url)
	return res.Body, err
}

// Fetch retrieves url. A single attempt, no retries: transient failure is
// the caller's signal to report the cycle and move on.
func (c *Client) Fetch(ctx context.Context, url string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{}, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	cached, hasCached := c.entry(url)
	if cached.etag != "" {
		req.Header.Set("If-None-Match", cached.etag)
	}
	if cached.lastModified != "" {
		req.Header.Set("If-Modified-Since", cached.lastModified)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		if hasCached {
			return Result{Body: cached.body, NotModified: true}, nil
		}
		// 304 without anything cached cannot produce a body.
		return Result{}, &FetchError{URL: url, Status: resp.StatusCode}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, &FetchError{URL: url, Status: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, &FetchError{URL: url, Err: err}
	}
	body := string(raw)

	c.store(url, cacheEntry{
		etag:         resp.Header.Get("ETag"),
		lastModified: resp.Header.Get("Last-Modified"),
		body:         body,
	})
	return Result{Body: body}, nil
}

func (c *Client) entry(url string) (cacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[url]
	return e, ok
}

func (c *Client) store(url string, e cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A success without validators still refreshes the body; keep the old
	// validators only if the server stopped sending them.
	prev := c.entries[url]
	if e.etag == "" {
		e.etag = prev.etag
	}
	if e.lastModified == "" {
		e.lastModified = prev.lastModified
	}
	c.entries[url] = e
}
