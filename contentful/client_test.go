package contentful

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const entriesFixture = `{
  "sys": {"type": "Array"},
  "total": 1, "skip": 0, "limit": 1,
  "items": [{
    "sys": {"id": "abc123", "type": "Entry", "contentType": {"sys": {"id": "article"}}},
    "fields": {"slug": "sample-post", "title": "Hello"}
  }],
  "includes": {
    "Asset": [{
      "sys": {"id": "img1", "type": "Asset"},
      "fields": {"title": "Cover", "description": "cover", "file": {"url": "//images.ctfassets.net/img.jpg", "contentType": "image/jpeg"}}
    }]
  }
}`

func newTestClient(t *testing.T, url string, breaker BreakerConfig) *Client {
	t.Helper()
	c, err := New(Config{
		SpaceID:     "space1",
		AccessToken: "token1",
		BaseURL:     url,
		Breaker:     breaker,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewRequiresCredentials(t *testing.T) {
	if _, err := New(Config{AccessToken: "x"}); err == nil {
		t.Error("expected error without SpaceID")
	}
	if _, err := New(Config{SpaceID: "x"}); err == nil {
		t.Error("expected error without AccessToken")
	}
}

func TestParamsValues(t *testing.T) {
	p := Params{
		ContentType: "article",
		Limit:       1,
		Include:     1,
		Fields:      map[string]string{"slug": "sample-post"},
	}
	got := p.Values().Encode()
	want := "content_type=article&fields.slug=sample-post&include=1&limit=1"
	if got != want {
		t.Errorf("Values() = %q, want %q", got, want)
	}
}

func TestEntriesSendsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/spaces/space1/environments/master/entries" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token1" {
			t.Errorf("Authorization = %q", got)
		}
		q := r.URL.Query()
		if q.Get("content_type") != "article" || q.Get("limit") != "1" || q.Get("fields.slug") != "sample-post" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(entriesFixture))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, BreakerConfig{})
	col, err := c.Entries(context.Background(), Params{
		ContentType: "article",
		Limit:       1,
		Fields:      map[string]string{"slug": "sample-post"},
	})
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(col.Items) != 1 || col.Items[0].Sys.ID != "abc123" {
		t.Fatalf("Items = %+v", col.Items)
	}
	asset, ok := col.Asset("img1")
	if !ok {
		t.Fatal("expected included asset img1")
	}
	if asset.Fields.Description != "cover" {
		t.Errorf("Description = %q, want %q", asset.Fields.Description, "cover")
	}
	if _, ok := col.Asset("nope"); ok {
		t.Error("unexpected asset for unknown id")
	}
	if got := col.Assets(); len(got) != 1 || got["img1"].Fields.Description != "cover" {
		t.Errorf("Assets() = %+v, want img1 only", got)
	}
}

func TestEntriesDecodesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"sys":{"type":"Error","id":"AccessTokenInvalid"},"message":"The access token you sent could not be found or is invalid.","requestId":"req-1"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, BreakerConfig{})
	_, err := c.Entries(context.Background(), Params{ContentType: "article"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.ID != "AccessTokenInvalid" || apiErr.RequestID != "req-1" {
		t.Errorf("APIError = %+v", apiErr)
	}
	if apiErr.Temporary() {
		t.Error("401 should not be temporary")
	}
}

func TestEntriesBreakerOpensOnServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, BreakerConfig{
		Name:             "test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      2,
	})
	for i := 0; i < 2; i++ {
		if _, err := c.Entries(context.Background(), Params{}); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}
	_, err := c.Entries(context.Background(), Params{})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if n := hits.Load(); n != 2 {
		t.Errorf("server hits = %d, want 2", n)
	}
}

func TestEntriesClientErrorsDoNotTripBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, BreakerConfig{
		Name:             "test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      1,
	})
	for i := 0; i < 3; i++ {
		_, err := c.Entries(context.Background(), Params{})
		if errors.Is(err, ErrUnavailable) {
			t.Fatalf("call %d: breaker opened on client errors", i)
		}
	}
}

func TestEntriesCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(entriesFixture))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, BreakerConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Entries(ctx, Params{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
