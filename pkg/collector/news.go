package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/umputun/inteldash/pkg/config"
)

// NewsAPIClient fetches raw articles from a Mediastack-style news API
type NewsAPIClient struct {
	cfg    config.NewsAPIConfig
	client *http.Client
}

// NewNewsAPIClient creates a news API client
func NewNewsAPIClient(cfg config.NewsAPIConfig, timeout time.Duration) *NewsAPIClient {
	return &NewsAPIClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// newsAPIResponse is the wire format of the news API
type newsAPIResponse struct {
	Data []struct {
		Source      string `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Country     string `json:"country"`
		PublishedAt string `json:"published_at"`
	} `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Fetch retrieves the latest articles matching the configured countries and keywords
func (c *NewsAPIClient) Fetch(ctx context.Context) ([]Article, error) {
	u, err := url.Parse(c.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse news api url: %w", err)
	}

	q := u.Query()
	q.Set("access_key", c.cfg.AccessKey)
	if c.cfg.Countries != "" {
		q.Set("countries", c.cfg.Countries)
	}
	if c.cfg.Keywords != "" {
		q.Set("keywords", c.cfg.Keywords)
	}
	q.Set("limit", strconv.Itoa(c.cfg.Limit))
	q.Set("sort", c.cfg.Sort)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news api returned status %d", resp.StatusCode)
	}

	var apiResp newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode news response: %w", err)
	}
	if apiResp.Error != nil {
		return nil, fmt.Errorf("news api error %s: %s", apiResp.Error.Code, apiResp.Error.Message)
	}

	articles := make([]Article, 0, len(apiResp.Data))
	for _, d := range apiResp.Data {
		articles = append(articles, Article{
			Source:      d.Source,
			Title:       d.Title,
			Description: d.Description,
			URL:         d.URL,
			Country:     d.Country,
			PublishedAt: d.PublishedAt,
		})
	}

	return articles, nil
}
