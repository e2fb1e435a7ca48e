package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/inteldash/pkg/collector"
	"github.com/umputun/inteldash/pkg/config"
	"github.com/umputun/inteldash/pkg/domain"
)

// Classifier turns raw news articles into intelligence records using an
// OpenAI-compatible LLM
type Classifier struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
}

// NewClassifier creates a new LLM classifier
func NewClassifier(cfg config.LLMConfig) *Classifier {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	// use custom system prompt if provided, otherwise use default
	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	return &Classifier{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
	}
}

// default system prompt for record extraction
const defaultSystemPrompt = `You are a senior geopolitical risk analyst. Your task is to extract key information from raw news articles and format it as a strict JSON array of records with fields: type, category, country, date, headline, body.

CRITICAL RULES:
1. You MUST extract the publication date in ISO 8601 format (YYYY-MM-DD).
2. You MUST identify the most relevant country and set it as an ISO 3166 alpha-2 code in the country field.
3. The body must be a concise, 3-4 sentence summary of the event and its risk implications, written for a consultancy client.
4. If an article is not relevant to geopolitical or systemic risk (e.g. a local crime story), you MUST classify its type as 'irrelevant'.

TYPE CHOICES (select ONE): ['high priority', 'medium priority', 'forecast alert', 'strategic watch', 'irrelevant']

CATEGORY DEFINITIONS (select ONE, use 'n/a' for irrelevant articles):
1. Economic Warfare & Control: policy actions using economic means (sanctions, tariffs) for geopolitical pressure.
2. Geopolitical Instability: risks from political conflict, social unrest, wars, or government collapses.
3. Regulatory & Policy Shift: major governmental changes shaping markets and supply chains.
4. Structural & Environmental Risk: systemic threats to infrastructure, resources, or continuity.
5. Security & Technology Threat: high-impact risks where the primary vector is digital or emerging technology.
6. n/a: use this category only for articles with type 'irrelevant'.

Your FINAL OUTPUT MUST be a valid JSON array. DO NOT include any text, headers, or explanations outside the JSON array itself.`

// Classify sends raw articles to the LLM and parses the resulting records.
// Records typed irrelevant are dropped from the result.
func (c *Classifier) Classify(ctx context.Context, articles []collector.Article) ([]domain.Record, error) {
	if len(articles) == 0 {
		return []domain.Record{}, nil
	}

	prompt := c.buildPrompt(articles)

	// retry up to 3 times if we get invalid JSON
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		chatReq := openai.ChatCompletionRequest{
			Model:       c.config.Model,
			Temperature: float32(c.config.Temperature),
			MaxTokens:   c.config.MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: c.systemMsg,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		}

		resp, err := c.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return nil, fmt.Errorf("llm request failed: %w", err)
		}

		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("no response from llm")
		}

		records, err := parseResponse(resp.Choices[0].Message.Content)
		if err == nil {
			return filterRelevant(records), nil
		}

		lastErr = err
	}

	return nil, fmt.Errorf("failed after 3 attempts: %w", lastErr)
}

// buildPrompt creates the user prompt for the LLM
func (c *Classifier) buildPrompt(articles []collector.Article) string {
	var sb strings.Builder
	sb.WriteString("RAW NEWS ARTICLES:\n\n")

	for i, a := range articles {
		sb.WriteString(fmt.Sprintf("%d. Title: %s\n", i+1, a.Title))
		if a.Source != "" {
			sb.WriteString(fmt.Sprintf("   Source: %s\n", a.Source))
		}
		if a.Country != "" {
			sb.WriteString(fmt.Sprintf("   Country: %s\n", a.Country))
		}
		if a.PublishedAt != "" {
			sb.WriteString(fmt.Sprintf("   Published: %s\n", a.PublishedAt))
		}
		if a.Description != "" {
			sb.WriteString(fmt.Sprintf("   Description: %s\n", a.Description))
		}
		if a.Content != "" {
			// limit content to first 1500 chars
			content := a.Content
			if len(content) > 1500 {
				content = content[:1500] + "..."
			}
			sb.WriteString(fmt.Sprintf("   Content: %s\n", content))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Respond with a JSON array of record objects.")
	return sb.String()
}

// parseResponse extracts the JSON array of records from the LLM reply
func parseResponse(content string) ([]domain.Record, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || start >= end {
		return nil, fmt.Errorf("no json array found in response")
	}

	var records []domain.Record
	if err := json.Unmarshal([]byte(content[start:end+1]), &records); err != nil {
		return nil, fmt.Errorf("failed to parse json array response: %w", err)
	}

	return records, nil
}

// filterRelevant drops records the model marked irrelevant or left without a headline
func filterRelevant(records []domain.Record) []domain.Record {
	result := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if r.Type == domain.TypeIrrelevant || r.Headline == "" {
			continue
		}
		result = append(result, r)
	}
	return result
}
