// Package feed reads candidate threat items from a syndication feed.
package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// ErrFeedUnreachable means the feed source could not be fetched or parsed.
var ErrFeedUnreachable = errors.New("feed source unreachable")

// Entry is one candidate item from the feed.
type Entry struct {
	Title   string
	Summary string
}

// Fetcher is the interface for reading the latest feed entries.
type Fetcher interface {
	// Latest returns up to limit entries in feed order (newest first).
	Latest(ctx context.Context, limit int) ([]Entry, error)
}

// RSSFetcher implements Fetcher over an RSS/Atom feed URL using gofeed.
type RSSFetcher struct {
	url    string
	parser *gofeed.Parser
}

// NewRSSFetcher creates a fetcher for the given feed URL.
func NewRSSFetcher(url string) *RSSFetcher {
	return &RSSFetcher{url: url, parser: gofeed.NewParser()}
}

func (f *RSSFetcher) Latest(ctx context.Context, limit int) ([]Entry, error) {
	parsed, err := f.parser.ParseURLWithContext(f.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnreachable, err)
	}

	items := parsed.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, Entry{
			Title:   item.Title,
			Summary: item.Description,
		})
	}
	return entries, nil
}

// Compile-time check that RSSFetcher implements Fetcher.
var _ Fetcher = (*RSSFetcher)(nil)
