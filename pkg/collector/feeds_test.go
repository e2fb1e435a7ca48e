package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedFetcher_Fetch(t *testing.T) {
	t.Run("valid rss feed", func(t *testing.T) {
		rssContent := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>Test Feed</title>
		<link>https://example.com</link>
		<description>Test feed description</description>
		<item>
			<title>Sanctions announced</title>
			<link>https://example.com/article1</link>
			<description>New export controls</description>
			<guid>article1</guid>
			<pubDate>Mon, 18 Nov 2024 15:04:05 -0700</pubDate>
		</item>
		<item>
			<title>Port strike continues</title>
			<link>https://example.com/article2</link>
			<description>Shipping delays expected</description>
			<guid>article2</guid>
			<pubDate>Tue, 19 Nov 2024 15:04:05 -0700</pubDate>
		</item>
	</channel>
</rss>`

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/rss+xml")
			w.Write([]byte(rssContent))
		}))
		defer server.Close()

		fetcher := NewFeedFetcher(5 * time.Second)
		articles, err := fetcher.Fetch(context.Background(), server.URL, "TestFeed")
		require.NoError(t, err)
		require.Len(t, articles, 2)

		assert.Equal(t, "TestFeed", articles[0].Source)
		assert.Equal(t, "Sanctions announced", articles[0].Title)
		assert.Equal(t, "https://example.com/article1", articles[0].URL)
		assert.Equal(t, "New export controls", articles[0].Description)
		assert.NotEmpty(t, articles[0].PublishedAt)

		assert.Equal(t, "TestFeed", articles[1].Source)
		assert.Equal(t, "Port strike continues", articles[1].Title)
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		fetcher := NewFeedFetcher(10 * time.Millisecond)
		articles, err := fetcher.Fetch(context.Background(), server.URL, "TimeoutFeed")
		require.Error(t, err)
		assert.Nil(t, articles)
	})

	t.Run("invalid url", func(t *testing.T) {
		fetcher := NewFeedFetcher(5 * time.Second)
		articles, err := fetcher.Fetch(context.Background(), "not-a-valid-url", "InvalidFeed")
		require.Error(t, err)
		assert.Nil(t, articles)
	})
}
