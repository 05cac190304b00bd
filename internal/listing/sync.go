// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package listing keeps the rendered list of backend-held resources in step with
// the backend. Every successful refresh replaces the whole list; a failed refresh
// leaves the previous one in place.
package listing

import (
	"context"
	"sync"

	"tablepad/cli/internal/backend"
)

// Link is one rendered listing entry. File is the resource the link points at.
type Link struct {
	Label string
	Href  string
	File  string
}

// Fetcher returns the current listing in backend order. backend.API satisfies it.
type Fetcher interface {
	ListResources(ctx context.Context) ([]backend.ResourceEntry, error)
}

// Renderer draws a full listing. It always receives the complete set of links.
type Renderer interface {
	Render(links []Link)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(links []Link)

// Render calls f(links).
func (f RendererFunc) Render(links []Link) { f(links) }

// LinkFunc derives a viewer destination from a resource file.
type LinkFunc func(file string) string

// Sync fetches and renders the resource listing.
type Sync struct {
	fetch    Fetcher
	link     LinkFunc
	renderer Renderer

	mu    sync.Mutex
	gen   uint64
	links []Link
}

// New returns a Sync with an empty listing. renderer may be nil.
func New(fetch Fetcher, link LinkFunc, renderer Renderer) *Sync {
	return &Sync{fetch: fetch, link: link, renderer: renderer}
}

// Refresh fetches the listing and, on success, replaces and re-renders it.
// A refresh that was overtaken by a newer Refresh or Clear is dropped silently.
// On error nothing changes; the error is only meant for logging.
func (s *Sync) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	entries, err := s.fetch.ListResources(ctx)
	if err != nil {
		return err
	}

	links := make([]Link, 0, len(entries))
	for _, e := range entries {
		links = append(links, Link{Label: e.Table, Href: s.link(e.File), File: e.File})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return nil
	}
	s.links = links
	if s.renderer != nil {
		s.renderer.Render(cloneLinks(links))
	}
	return nil
}

// Links returns a snapshot of the current listing.
func (s *Sync) Links() []Link {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLinks(s.links)
}

// Lookup finds the link labelled table.
func (s *Sync) Lookup(table string) (Link, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.links {
		if l.Label == table {
			return l, true
		}
	}
	return Link{}, false
}

// Clear drops the listing and invalidates any refresh still in flight.
// The renderer is not called.
func (s *Sync) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.links = nil
}

func cloneLinks(links []Link) []Link {
	out := make([]Link, len(links))
	copy(out, links)
	return out
}
