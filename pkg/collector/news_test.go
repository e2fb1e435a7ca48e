package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/inteldash/pkg/config"
)

func TestNewsAPIClient_Fetch(t *testing.T) {
	t.Run("valid response", func(t *testing.T) {
		var gotQuery map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = map[string]string{
				"access_key": r.URL.Query().Get("access_key"),
				"countries":  r.URL.Query().Get("countries"),
				"keywords":   r.URL.Query().Get("keywords"),
				"limit":      r.URL.Query().Get("limit"),
				"sort":       r.URL.Query().Get("sort"),
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data": [
				{"source": "reuters", "title": "Title 1", "description": "Desc 1",
				 "url": "https://example.com/1", "country": "us", "published_at": "2024-11-18T10:00:00+00:00"},
				{"source": "bbc", "title": "Title 2", "description": "Desc 2",
				 "url": "https://example.com/2", "country": "gb", "published_at": "2024-11-18T09:00:00+00:00"}
			]}`))
		}))
		defer server.Close()

		client := NewNewsAPIClient(config.NewsAPIConfig{
			URL:       server.URL,
			AccessKey: "test-key",
			Countries: "us,gb",
			Keywords:  "sanction,tariff",
			Limit:     25,
			Sort:      "published_desc",
		}, 5*time.Second)

		articles, err := client.Fetch(context.Background())
		require.NoError(t, err)
		require.Len(t, articles, 2)

		assert.Equal(t, "reuters", articles[0].Source)
		assert.Equal(t, "Title 1", articles[0].Title)
		assert.Equal(t, "https://example.com/1", articles[0].URL)
		assert.Equal(t, "us", articles[0].Country)
		assert.Equal(t, "2024-11-18T10:00:00+00:00", articles[0].PublishedAt)
		assert.Equal(t, "bbc", articles[1].Source)

		// query parameters passed through
		assert.Equal(t, "test-key", gotQuery["access_key"])
		assert.Equal(t, "us,gb", gotQuery["countries"])
		assert.Equal(t, "sanction,tariff", gotQuery["keywords"])
		assert.Equal(t, "25", gotQuery["limit"])
		assert.Equal(t, "published_desc", gotQuery["sort"])
	})

	t.Run("api error payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error": {"code": "invalid_access_key", "message": "bad key"}}`))
		}))
		defer server.Close()

		client := NewNewsAPIClient(config.NewsAPIConfig{URL: server.URL, Limit: 25}, 5*time.Second)
		articles, err := client.Fetch(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid_access_key")
		assert.Nil(t, articles)
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewNewsAPIClient(config.NewsAPIConfig{URL: server.URL, Limit: 25}, 5*time.Second)
		_, err := client.Fetch(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 429")
	})

	t.Run("malformed json", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := NewNewsAPIClient(config.NewsAPIConfig{URL: server.URL, Limit: 25}, 5*time.Second)
		_, err := client.Fetch(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode news response")
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		client := NewNewsAPIClient(config.NewsAPIConfig{URL: server.URL, Limit: 25}, 10*time.Millisecond)
		_, err := client.Fetch(context.Background())
		require.Error(t, err)
	})
}
