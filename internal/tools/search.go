// In file: internal/tools/search.go
package tools

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const duckDuckGoURL = "https://api.duckduckgo.com/"

// SearchTool answers web queries through the DuckDuckGo instant-answer API.
type SearchTool struct {
	client  *resty.Client
	baseURL string
}

var _ Tool = (*SearchTool)(nil)

func NewSearchTool() *SearchTool {
	return &SearchTool{client: newToolClient(), baseURL: duckDuckGoURL}
}

func (t *SearchTool) Name() string     { return "search" }
func (t *SearchTool) Category() string { return "information" }

func (t *SearchTool) Describe() Description {
	return Description{
		Description: "Search the web for information using DuckDuckGo",
		Parameters: JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"query": {
					Type:        "string",
					Description: "Search query or question",
				},
			},
			Required: []string{"query"},
		},
	}
}

type duckDuckGoResponse struct {
	AbstractText   string `json:"AbstractText"`
	AbstractSource string `json:"AbstractSource"`
	AbstractURL    string `json:"AbstractURL"`
	RelatedTopics  []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

func (t *SearchTool) Execute(ctx context.Context, params map[string]any) (any, error) {
	query := stringParam(params, "latest news", "query", "q")

	var payload duckDuckGoResponse
	resp, err := t.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":             query,
			"format":        "json",
			"no_html":       "1",
			"skip_disambig": "1",
		}).
		SetResult(&payload).
		Get(t.baseURL)
	if err == nil && resp.IsSuccess() {
		// Prefer the instant answer, then the first related topic.
		if payload.AbstractText != "" {
			source := payload.AbstractSource
			if source == "" {
				source = "DuckDuckGo"
			}
			return map[string]any{
				"query":  query,
				"result": payload.AbstractText,
				"source": source,
				"url":    payload.AbstractURL,
				"type":   "instant_answer",
			}, nil
		}
		if len(payload.RelatedTopics) > 0 && payload.RelatedTopics[0].Text != "" {
			return map[string]any{
				"query":  query,
				"result": payload.RelatedTopics[0].Text,
				"source": "DuckDuckGo",
				"url":    payload.RelatedTopics[0].FirstURL,
				"type":   "related_topic",
			}, nil
		}
	}

	return t.demoData(query), nil
}

func (t *SearchTool) demoData(query string) map[string]any {
	return map[string]any{
		"query": query,
		"result": fmt.Sprintf("Search results for '%s': This is a demonstration search result. In production, "+
			"this would contain actual search results from DuckDuckGo API with relevant information, links, and sources.", query),
		"source": "DuckDuckGo (demo)",
		"type":   "demo_result",
		"status": "demo_data",
	}
}
