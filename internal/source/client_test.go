package source

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

type mapCache struct {
	entries map[string][]byte
	sets    int
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string][]byte{}}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool) {
	payload, ok := c.entries[key]
	return payload, ok
}

func (c *mapCache) Set(_ context.Context, key string, payload []byte) {
	c.entries[key] = payload
	c.sets++
}

func TestFetchSubstitutesCompanyToken(t *testing.T) {
	var gotQuery url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	client := NewClient(nil, nil)
	spec := Spec{
		Name:   "TestBoard",
		Method: http.MethodGet,
		URL:    ts.URL + "?company_names[]=" + companyToken,
	}

	payload := client.Fetch(context.Background(), spec, "Acme Sp. z o.o.")
	if !bytes.Equal(payload, []byte(`[]`)) {
		t.Errorf("payload = %q, want the server body", payload)
	}
	if got := gotQuery.Get("company_names[]"); got != "Acme Sp. z o.o." {
		t.Errorf("company query = %q, want unescaped company name", got)
	}
}

func TestFetchSendsBodyAndQuery(t *testing.T) {
	var gotBody map[string]any
	var gotQuery url.Values
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotUA = r.Header.Get("User-Agent")
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		w.Write([]byte(`{"postings":[]}`))
	}))
	defer ts.Close()

	client := NewClient(nil, nil)
	spec := Spec{
		Name:   "TestBoard",
		Method: http.MethodPost,
		URL:    ts.URL,
		Query:  url.Values{"region": {"pl"}},
		Body: func(company string) any {
			return map[string]any{"rawSearch": company, "page": 1}
		},
	}

	client.Fetch(context.Background(), spec, "Acme")
	if gotBody["rawSearch"] != "Acme" {
		t.Errorf("body rawSearch = %v, want Acme", gotBody["rawSearch"])
	}
	if gotQuery.Get("region") != "pl" {
		t.Errorf("region query = %q, want pl", gotQuery.Get("region"))
	}
	if gotUA != userAgent {
		t.Errorf("User-Agent = %q, want the pinned agent", gotUA)
	}
}

func TestFetchReturnsEmptyPayloadOnServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewClient(nil, nil)
	payload := client.Fetch(context.Background(), Spec{Name: "TestBoard", Method: http.MethodGet, URL: ts.URL}, "Acme")
	if !bytes.Equal(payload, EmptyPayload) {
		t.Errorf("payload = %q, want EmptyPayload", payload)
	}
}

func TestFetchReturnsEmptyPayloadOnUnreachableHost(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused from here on

	client := NewClient(nil, nil)
	payload := client.Fetch(context.Background(), Spec{Name: "TestBoard", Method: http.MethodGet, URL: ts.URL}, "Acme")
	if !bytes.Equal(payload, EmptyPayload) {
		t.Errorf("payload = %q, want EmptyPayload", payload)
	}
}

func TestFetchUsesCache(t *testing.T) {
	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`[{"id":"1"}]`))
	}))
	defer ts.Close()

	cache := newMapCache()
	client := NewClient(nil, cache)
	spec := Spec{Name: "TestBoard", Method: http.MethodGet, URL: ts.URL}

	first := client.Fetch(context.Background(), spec, "Acme")
	second := client.Fetch(context.Background(), spec, "Acme")

	if hits != 1 {
		t.Errorf("server hits = %d, want 1 (second fetch served from cache)", hits)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("cached payload differs: %q vs %q", first, second)
	}
	if cache.sets != 1 {
		t.Errorf("cache writes = %d, want 1", cache.sets)
	}
}

func TestFetchDoesNotCacheFailures(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	cache := newMapCache()
	client := NewClient(nil, cache)
	client.Fetch(context.Background(), Spec{Name: "TestBoard", Method: http.MethodGet, URL: ts.URL}, "Acme")

	if cache.sets != 0 {
		t.Errorf("cache writes = %d, want 0 for a failed fetch", cache.sets)
	}
}
