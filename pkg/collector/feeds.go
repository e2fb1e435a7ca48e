package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
)

// FeedFetcher fetches RSS/Atom feeds via HTTP
type FeedFetcher struct {
	parser  *gofeed.Parser
	timeout time.Duration
}

// NewFeedFetcher creates a new feed fetcher
func NewFeedFetcher(timeout time.Duration) *FeedFetcher {
	return &FeedFetcher{
		parser:  gofeed.NewParser(),
		timeout: timeout,
	}
}

// Fetch retrieves and parses a feed from the given URL, normalizing
// entries into raw articles
func (f *FeedFetcher) Fetch(ctx context.Context, feedURL, feedName string) ([]Article, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	articles := make([]Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		a := Article{
			Source:      feedName,
			Title:       item.Title,
			Description: item.Description,
			URL:         item.Link,
		}

		// prefer publish time, fall back to update time
		if item.PublishedParsed != nil {
			a.PublishedAt = item.PublishedParsed.UTC().Format(time.RFC3339)
		} else if item.UpdatedParsed != nil {
			a.PublishedAt = item.UpdatedParsed.UTC().Format(time.RFC3339)
		}

		articles = append(articles, a)
	}

	return articles, nil
}
