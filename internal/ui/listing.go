// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

package ui

import (
	"context"
	"strings"
	"time"

	"tablepad/cli/internal/listing"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
)

// ListingView renders the resource listing as a bullet list of
// "table → viewer URL". It implements listing.Renderer.
type ListingView struct {
	p *Printer
}

// NewListingView returns a ListingView printing to p.
func NewListingView(p *Printer) *ListingView {
	return &ListingView{p: p}
}

// Render prints the full listing.
func (v *ListingView) Render(links []listing.Link) {
	v.p.Print(FormatListing(links))
}

// FormatListing renders links as a titled bullet list.
func FormatListing(links []listing.Link) string {
	title := pterm.NewStyle(pterm.FgLightCyan, pterm.Bold).Sprint("Tables")
	if len(links) == 0 {
		return title + "\n" + pterm.NewStyle(pterm.FgGray).Sprint("  (no tables uploaded)")
	}
	items := make([]pterm.BulletListItem, 0, len(links))
	for _, l := range links {
		items = append(items, pterm.BulletListItem{
			Level: 0,
			Text:  pterm.NewStyle(pterm.Bold).Sprint(l.Label) + " → " + pterm.NewStyle(pterm.FgLightBlue).Sprint(l.Href),
		})
	}
	list, err := pterm.DefaultBulletList.WithItems(items).Srender()
	if err != nil {
		var b strings.Builder
		for _, l := range links {
			b.WriteString("  • " + l.Label + " → " + l.Href + "\n")
		}
		list = b.String()
	}
	return title + "\n" + strings.TrimRight(list, "\n")
}

// WatchListing keeps a live area showing the listing, calling refresh every
// interval until ctx is done. The cursor is hidden while the area is live.
func WatchListing(ctx context.Context, interval time.Duration, refresh func(context.Context) []listing.Link) error {
	cursor.Hide()
	defer cursor.Show()

	area, err := pterm.DefaultArea.WithRemoveWhenDone(false).Start()
	if err != nil {
		return err
	}
	defer func() { _ = area.Stop() }()

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		links := refresh(ctx)
		stamp := pterm.NewStyle(pterm.FgGray).Sprint("updated " + time.Now().Format("15:04:05") + " · Ctrl+C to stop")
		area.Update(FormatListing(links) + "\n\n" + stamp)

		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}
