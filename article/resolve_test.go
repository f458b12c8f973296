package article

import (
	"context"
	"errors"
	"testing"
)

func staticSource(entries []Entry, err error, got *Query) Source {
	return SourceFunc(func(ctx context.Context, q Query) ([]Entry, error) {
		if got != nil {
			*got = q
		}
		return entries, err
	})
}

func TestResolveSendsArticleQuery(t *testing.T) {
	var q Query
	if _, err := Resolve(context.Background(), staticSource([]Entry{{ID: "1"}}, nil, &q), "sample-post"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := Query{ContentType: "article", Limit: 1, SlugEquals: "sample-post"}
	if q != want {
		t.Errorf("query = %+v, want %+v", q, want)
	}
}

func TestResolveTakesFirstResult(t *testing.T) {
	src := staticSource([]Entry{{ID: "first"}, {ID: "second"}}, nil, nil)
	e, err := Resolve(context.Background(), src, "dup")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if e.ID != "first" {
		t.Errorf("ID = %q, want %q", e.ID, "first")
	}
}

func TestResolveNotFound(t *testing.T) {
	_, err := Resolve(context.Background(), staticSource(nil, nil, nil), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveEmptySlug(t *testing.T) {
	called := false
	src := SourceFunc(func(ctx context.Context, q Query) ([]Entry, error) {
		called = true
		return nil, nil
	})
	for _, slug := range []string{"", "   "} {
		if _, err := Resolve(context.Background(), src, slug); !errors.Is(err, ErrEmptySlug) {
			t.Errorf("Resolve(%q): expected ErrEmptySlug, got %v", slug, err)
		}
	}
	if called {
		t.Error("source should not be queried for an empty slug")
	}
}

func TestResolvePropagatesSourceError(t *testing.T) {
	cause := &TransportError{Err: errors.New("connection refused")}
	_, err := Resolve(context.Background(), staticSource(nil, cause, nil), "x")
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{nil, OutcomeLoaded},
		{ErrNotFound, OutcomeNotFound},
		{&MalformedEntryError{Field: "title"}, OutcomeMalformed},
		{&TransportError{Err: errors.New("boom")}, OutcomeTransport},
		{&TransportError{Err: context.Canceled}, OutcomeCanceled},
	}
	for _, tt := range tests {
		if got := Outcome(tt.err); got != tt.expected {
			t.Errorf("Outcome(%v) = %q, want %q", tt.err, got, tt.expected)
		}
	}
}

func TestStateFor(t *testing.T) {
	tests := []struct {
		err    error
		status Status
	}{
		{nil, StatusLoaded},
		{ErrNotFound, StatusNotFound},
		{ErrEmptySlug, StatusNotFound},
		{&TransportError{Err: errors.New("boom")}, StatusFailed},
		{&MalformedEntryError{Field: "body"}, StatusFailed},
	}
	for _, tt := range tests {
		st := StateFor("s", Entry{ID: "1"}, tt.err)
		if st.Status != tt.status {
			t.Errorf("StateFor(%v).Status = %v, want %v", tt.err, st.Status, tt.status)
		}
		if st.Slug != "s" {
			t.Errorf("Slug = %q, want %q", st.Slug, "s")
		}
		if tt.status == StatusFailed && st.Err != tt.err {
			t.Errorf("Err = %v, want %v", st.Err, tt.err)
		}
	}
}
