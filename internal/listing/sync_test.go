package listing

import (
	"context"
	"errors"
	"sync"
	"testing"

	"tablepad/cli/internal/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetchFunc func(ctx context.Context) ([]backend.ResourceEntry, error)

func (f fetchFunc) ListResources(ctx context.Context) ([]backend.ResourceEntry, error) {
	return f(ctx)
}

func staticFetch(entries []backend.ResourceEntry, err error) Fetcher {
	return fetchFunc(func(context.Context) ([]backend.ResourceEntry, error) { return entries, err })
}

func viewLink(file string) string { return "http://pad/csvview/" + file }

type recorder struct {
	mu      sync.Mutex
	renders [][]Link
}

func (r *recorder) Render(links []Link) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renders = append(r.renders, links)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.renders)
}

func TestRefresh(t *testing.T) {
	tests := []struct {
		name    string
		entries []backend.ResourceEntry
		want    []Link
	}{
		{name: "empty", entries: []backend.ResourceEntry{}, want: []Link{}},
		{
			name:    "single",
			entries: []backend.ResourceEntry{{Table: "orders", File: "orders.csv"}},
			want:    []Link{{Label: "orders", Href: "http://pad/csvview/orders.csv", File: "orders.csv"}},
		},
		{
			name: "backend order kept",
			entries: []backend.ResourceEntry{
				{Table: "zeta", File: "zeta.csv"},
				{Table: "alpha", File: "alpha.csv"},
				{Table: "mid", File: "mid.csv"},
			},
			want: []Link{
				{Label: "zeta", Href: "http://pad/csvview/zeta.csv", File: "zeta.csv"},
				{Label: "alpha", Href: "http://pad/csvview/alpha.csv", File: "alpha.csv"},
				{Label: "mid", Href: "http://pad/csvview/mid.csv", File: "mid.csv"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			s := New(staticFetch(tt.entries, nil), viewLink, rec)

			require.NoError(t, s.Refresh(context.Background()))

			require.Equal(t, 1, rec.count())
			assert.Equal(t, tt.want, rec.renders[0])
			assert.Len(t, rec.renders[0], len(tt.entries))
			assert.Equal(t, tt.want, s.Links())
		})
	}
}

func TestRefreshReplacesNotMerges(t *testing.T) {
	entries := []backend.ResourceEntry{{Table: "a", File: "a.csv"}, {Table: "b", File: "b.csv"}}
	s := New(fetchFunc(func(context.Context) ([]backend.ResourceEntry, error) { return entries, nil }), viewLink, nil)
	require.NoError(t, s.Refresh(context.Background()))

	entries = []backend.ResourceEntry{{Table: "c", File: "c.csv"}}
	require.NoError(t, s.Refresh(context.Background()))

	assert.Equal(t, []Link{{Label: "c", Href: "http://pad/csvview/c.csv", File: "c.csv"}}, s.Links())
}

func TestRefreshFailureKeepsPreviousListing(t *testing.T) {
	fail := false
	s := New(fetchFunc(func(context.Context) ([]backend.ResourceEntry, error) {
		if fail {
			return nil, errors.New("connection refused")
		}
		return []backend.ResourceEntry{{Table: "orders", File: "orders.csv"}}, nil
	}), viewLink, nil)
	rec := &recorder{}
	s.renderer = rec

	require.NoError(t, s.Refresh(context.Background()))
	fail = true
	require.Error(t, s.Refresh(context.Background()))

	assert.Equal(t, 1, rec.count(), "renderer must not run on failure")
	assert.Equal(t, []Link{{Label: "orders", Href: "http://pad/csvview/orders.csv", File: "orders.csv"}}, s.Links())
}

func TestRefreshIsIdempotent(t *testing.T) {
	rec := &recorder{}
	s := New(staticFetch([]backend.ResourceEntry{{Table: "orders", File: "orders.csv"}}, nil), viewLink, rec)

	require.NoError(t, s.Refresh(context.Background()))
	require.NoError(t, s.Refresh(context.Background()))

	require.Equal(t, 2, rec.count())
	assert.Equal(t, rec.renders[0], rec.renders[1])
}

func TestOvertakenRefreshIsDropped(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	calls := 0
	var mu sync.Mutex
	s := New(fetchFunc(func(context.Context) ([]backend.ResourceEntry, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(started)
			<-release
			return []backend.ResourceEntry{{Table: "old", File: "old.csv"}}, nil
		}
		return []backend.ResourceEntry{{Table: "new", File: "new.csv"}}, nil
	}), viewLink, nil)

	done := make(chan error, 1)
	go func() { done <- s.Refresh(context.Background()) }()
	<-started

	require.NoError(t, s.Refresh(context.Background()))
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, []Link{{Label: "new", Href: "http://pad/csvview/new.csv", File: "new.csv"}}, s.Links())
}

func TestLookupAndClear(t *testing.T) {
	rec := &recorder{}
	s := New(staticFetch([]backend.ResourceEntry{
		{Table: "orders", File: "orders.csv"},
		{Table: "users", File: "users.csv"},
	}, nil), viewLink, rec)
	require.NoError(t, s.Refresh(context.Background()))

	l, ok := s.Lookup("users")
	require.True(t, ok)
	assert.Equal(t, "http://pad/csvview/users.csv", l.Href)

	_, ok = s.Lookup("missing")
	assert.False(t, ok)

	s.Clear()
	assert.Empty(t, s.Links())
	assert.Equal(t, 1, rec.count())
}

func TestLinksReturnsCopy(t *testing.T) {
	s := New(staticFetch([]backend.ResourceEntry{{Table: "orders", File: "orders.csv"}}, nil), viewLink, nil)
	require.NoError(t, s.Refresh(context.Background()))

	links := s.Links()
	links[0].Label = "mutated"
	assert.Equal(t, "orders", s.Links()[0].Label)
}
