package collector

import (
	"context"
	"strings"
	"sync"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/inteldash/pkg/config"
)

//go:generate moq -out mocks/news_source.go -pkg mocks -skip-ensure -fmt goimports . NewsSource
//go:generate moq -out mocks/feed_source.go -pkg mocks -skip-ensure -fmt goimports . FeedSource
//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor

// NewsSource fetches raw articles from a news API
type NewsSource interface {
	Fetch(ctx context.Context) ([]Article, error)
}

// FeedSource fetches raw articles from an RSS/Atom feed
type FeedSource interface {
	Fetch(ctx context.Context, feedURL, feedName string) ([]Article, error)
}

// Extractor extracts full text from an article URL
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// Collector gathers raw articles from the configured sources and prepares
// them for classification: HTML stripped, optionally full text extracted.
type Collector struct {
	cfg       config.CollectorConfig
	extCfg    config.ExtractionConfig
	newsAPI   NewsSource
	feeds     FeedSource
	extractor Extractor
	sanitizer *bluemonday.Policy
}

// New creates a collector. newsAPI may be nil when no access key is
// configured, extractor may be nil when extraction is disabled.
func New(cfg config.CollectorConfig, extCfg config.ExtractionConfig, newsAPI NewsSource, feeds FeedSource, extractor Extractor) *Collector {
	return &Collector{
		cfg:       cfg,
		extCfg:    extCfg,
		newsAPI:   newsAPI,
		feeds:     feeds,
		extractor: extractor,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Collect fetches articles from all sources. Source failures are logged and
// skipped, a single dead feed should not kill the run.
func (c *Collector) Collect(ctx context.Context) []Article {
	var mu sync.Mutex
	var articles []Article

	var wg sync.WaitGroup

	if c.newsAPI != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fetched, err := c.newsAPI.Fetch(ctx)
			if err != nil {
				lgr.Printf("[WARN] news api fetch failed: %v", err)
				return
			}
			lgr.Printf("[INFO] fetched %d articles from news api", len(fetched))
			mu.Lock()
			articles = append(articles, fetched...)
			mu.Unlock()
		}()
	}

	if c.feeds != nil {
		for _, f := range c.cfg.Feeds {
			wg.Add(1)
			go func(f config.Feed) {
				defer wg.Done()
				name := f.Name
				if name == "" {
					name = f.URL
				}
				fetched, err := c.feeds.Fetch(ctx, f.URL, name)
				if err != nil {
					lgr.Printf("[WARN] feed %s fetch failed: %v", name, err)
					return
				}
				lgr.Printf("[INFO] fetched %d articles from feed %s", len(fetched), name)
				mu.Lock()
				articles = append(articles, fetched...)
				mu.Unlock()
			}(f)
		}
	}

	wg.Wait()

	// strip markup from titles and descriptions before they reach the prompt
	for i := range articles {
		articles[i].Title = c.sanitize(articles[i].Title)
		articles[i].Description = c.sanitize(articles[i].Description)
	}

	if c.extCfg.Enabled && c.extractor != nil {
		c.extractAll(ctx, articles)
	}

	return articles
}

// extractAll fills article content with full text, bounded concurrency
func (c *Collector) extractAll(ctx context.Context, articles []Article) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.extCfg.MaxConcurrent)

	for i := range articles {
		g.Go(func() error {
			if articles[i].URL == "" {
				return nil
			}
			text, err := c.extractor.Extract(ctx, articles[i].URL)
			if err != nil {
				lgr.Printf("[DEBUG] extraction failed for %s: %v", articles[i].URL, err)
				return nil // extraction is best-effort
			}
			if len(text) >= c.extCfg.MinTextLength {
				articles[i].Content = text
			}
			return nil
		})
	}

	_ = g.Wait() // workers never return errors
}

// sanitize strips all HTML and collapses the result
func (c *Collector) sanitize(s string) string {
	return strings.TrimSpace(c.sanitizer.Sanitize(s))
}
