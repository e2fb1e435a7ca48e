package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/inteldash/pkg/collector"
	"github.com/umputun/inteldash/pkg/config"
)

// mockLLMServer returns an OpenAI-compatible server replying with the given content
func mockLLMServer(t *testing.T, handler func(callNum int) string) *httptest.Server {
	t.Helper()
	calls := 0
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		resp := map[string]interface{}{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"choices": []map[string]interface{}{
				{
					"index": 0,
					"message": map[string]interface{}{
						"role":    "assistant",
						"content": handler(calls),
					},
					"finish_reason": "stop",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encode mock response: %v", err)
		}
	}))
}

func testArticles() []collector.Article {
	return []collector.Article{
		{Source: "reuters", Title: "Sanctions expanded", Description: "New export controls announced", Country: "us", PublishedAt: "2024-11-18T10:00:00Z"},
		{Source: "bbc", Title: "Local bake sale", Description: "Village raises funds"},
	}
}

func TestClassifier_Classify(t *testing.T) {
	t.Run("valid response with irrelevant filtered", func(t *testing.T) {
		server := mockLLMServer(t, func(int) string {
			return `[
				{"type": "high priority", "category": "Economic Warfare & Control", "country": "US",
				 "date": "2024-11-18", "headline": "Sanctions expanded", "body": "Summary of implications."},
				{"type": "irrelevant", "category": "n/a", "country": "GB",
				 "date": "2024-11-18", "headline": "Local bake sale", "body": "Not a risk event."}
			]`
		})
		defer server.Close()

		classifier := NewClassifier(config.LLMConfig{
			Endpoint: server.URL + "/v1",
			APIKey:   "test",
			Model:    "gpt-4o-mini",
		})

		records, err := classifier.Classify(context.Background(), testArticles())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "high priority", records[0].Type)
		assert.Equal(t, "Economic Warfare & Control", records[0].Category)
		assert.Equal(t, "US", records[0].Country)
		assert.Equal(t, "2024-11-18", records[0].Date)
		assert.Equal(t, "Sanctions expanded", records[0].Headline)
	})

	t.Run("json array wrapped in prose", func(t *testing.T) {
		server := mockLLMServer(t, func(int) string {
			return "Here is the result:\n[{\"type\": \"strategic watch\", \"category\": \"Security & Technology Threat\", \"country\": \"US\", \"date\": \"2024-11-10\", \"headline\": \"Intrusion campaign\", \"body\": \"Summary.\"}]\nDone."
		})
		defer server.Close()

		classifier := NewClassifier(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test", Model: "m"})
		records, err := classifier.Classify(context.Background(), testArticles())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Intrusion campaign", records[0].Headline)
	})

	t.Run("retries on invalid json then succeeds", func(t *testing.T) {
		server := mockLLMServer(t, func(call int) string {
			if call < 3 {
				return "sorry, no json here"
			}
			return `[{"type": "medium priority", "category": "Geopolitical Instability", "country": "UA", "date": "2024-11-18", "headline": "Escalation", "body": "Summary."}]`
		})
		defer server.Close()

		classifier := NewClassifier(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test", Model: "m"})
		records, err := classifier.Classify(context.Background(), testArticles())
		require.NoError(t, err)
		require.Len(t, records, 1)
	})

	t.Run("fails after 3 invalid attempts", func(t *testing.T) {
		server := mockLLMServer(t, func(int) string { return "still no json" })
		defer server.Close()

		classifier := NewClassifier(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test", Model: "m"})
		records, err := classifier.Classify(context.Background(), testArticles())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed after 3 attempts")
		assert.Nil(t, records)
	})

	t.Run("empty input", func(t *testing.T) {
		classifier := NewClassifier(config.LLMConfig{APIKey: "test", Model: "m"})
		records, err := classifier.Classify(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		classifier := NewClassifier(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test", Model: "m"})
		_, err := classifier.Classify(context.Background(), testArticles())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "llm request failed")
	})
}

func TestParseResponse(t *testing.T) {
	t.Run("records without headline dropped", func(t *testing.T) {
		records, err := parseResponse(`[{"type": "high priority", "headline": ""}, {"type": "forecast alert", "headline": "Kept"}]`)
		require.NoError(t, err)
		filtered := filterRelevant(records)
		require.Len(t, filtered, 1)
		assert.Equal(t, "Kept", filtered[0].Headline)
	})

	t.Run("no array", func(t *testing.T) {
		_, err := parseResponse("just text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no json array found")
	})

	t.Run("broken array", func(t *testing.T) {
		_, err := parseResponse(`[{"type": "high priority",]`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse json array")
	})
}

func TestClassifier_buildPrompt(t *testing.T) {
	classifier := NewClassifier(config.LLMConfig{APIKey: "test", Model: "m"})
	articles := []collector.Article{
		{Source: "reuters", Title: "T1", Description: "D1", Country: "us", PublishedAt: "2024-11-18"},
		{Title: "T2", Content: "some extracted text"},
	}

	prompt := classifier.buildPrompt(articles)
	assert.Contains(t, prompt, "RAW NEWS ARTICLES")
	assert.Contains(t, prompt, "1. Title: T1")
	assert.Contains(t, prompt, "Source: reuters")
	assert.Contains(t, prompt, "2. Title: T2")
	assert.Contains(t, prompt, "Content: some extracted text")
	assert.Contains(t, prompt, "JSON array")
}

func TestClassifier_buildPrompt_longContentTruncated(t *testing.T) {
	classifier := NewClassifier(config.LLMConfig{APIKey: "test", Model: "m"})
	long := ""
	for i := 0; i < 200; i++ {
		long += fmt.Sprintf("word%d ", i)
	}
	for len(long) < 2000 {
		long += long
	}
	prompt := classifier.buildPrompt([]collector.Article{{Title: "T", Content: long}})
	assert.Contains(t, prompt, "...")
	assert.Less(t, len(prompt), len(long))
}
