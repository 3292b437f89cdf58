package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/baxromumarov/offer-sync/internal/logging"
	"github.com/baxromumarov/offer-sync/internal/observability"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/97.0.4692.99 Safari/537.36"

// EmptyPayload is what Fetch hands back on any failure. Extractors yield zero
// offers for it, so a dead source never aborts a run.
var EmptyPayload = []byte(`{}`)

type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch error (status %d)", e.Status)
	}
	return fmt.Sprintf("fetch error (status %d): %v", e.Status, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) StatusCode() int {
	return e.Status
}

// PayloadCache stores raw payloads keyed by source×company so frequent
// scheduled runs don't hammer the boards.
type PayloadCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte)
}

// Client issues exactly one request per Fetch call: no retries, best effort.
// Per-host rate limiting keeps bursts over many companies polite.
type Client struct {
	http  *http.Client
	cache PayloadCache
	log   *logging.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewClient(log *logging.Logger, cache PayloadCache) *Client {
	return &Client{
		http:     &http.Client{Timeout: 15 * time.Second},
		cache:    cache,
		log:      log,
		limiters: map[string]*rate.Limiter{},
	}
}

// Fetch calls the board described by spec for one company and returns the raw
// payload. Transport errors and non-2xx statuses are logged and counted, and
// EmptyPayload is returned in their place.
func (c *Client) Fetch(ctx context.Context, spec Spec, company string) []byte {
	observability.IncFetch(spec.Name)

	target := strings.ReplaceAll(spec.URL, companyToken, url.QueryEscape(company))

	cacheKey := spec.Name + ":" + company
	if c.cache != nil {
		if payload, ok := c.cache.Get(ctx, cacheKey); ok {
			return payload
		}
	}

	req, err := c.buildRequest(ctx, spec, target, company)
	if err != nil {
		c.warn(spec, company, err)
		return EmptyPayload
	}

	if u, perr := url.Parse(target); perr == nil {
		_ = c.limiterFor(u.Host).Wait(ctx)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.warn(spec, company, err)
		observability.IncError(observability.ErrorNetwork)
		return EmptyPayload
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ferr := &FetchError{Status: resp.StatusCode}
		c.warn(spec, company, ferr)
		observability.IncError(observability.ClassifyFetchError(ferr))
		return EmptyPayload
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.warn(spec, company, err)
		observability.IncError(observability.ErrorNetwork)
		return EmptyPayload
	}

	if c.cache != nil {
		c.cache.Set(ctx, cacheKey, payload)
	}
	return payload
}

func (c *Client) buildRequest(ctx context.Context, spec Spec, target, company string) (*http.Request, error) {
	var body io.Reader
	if spec.Body != nil {
		encoded, err := json.Marshal(spec.Body(company))
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, spec.Method, target, body)
	if err != nil {
		return nil, err
	}

	if len(spec.Query) > 0 {
		q := req.URL.Query()
		for key, vals := range spec.Query {
			for _, v := range vals {
				q.Add(key, v)
			}
		}
		req.URL.RawQuery = q.Encode()
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) limiterFor(host string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()
	if l, ok := c.limiters[host]; ok {
		return l
	}
	l := rate.NewLimiter(rate.Every(time.Second), 2) // 1 req/s, burst 2
	c.limiters[host] = l
	return l
}

func (c *Client) warn(spec Spec, company string, err error) {
	if c.log == nil {
		return
	}
	c.log.Warn("fetch failed", "source", spec.Name, "company", company, "error", err)
}
