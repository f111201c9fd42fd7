// In file: internal/tools/wiki.go
package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

const wikipediaURL = "https://en.wikipedia.org/api/rest_v1/page/summary"

// maxSummaryLength caps the extract spliced into answers.
const maxSummaryLength = 500

// WikiTool fetches article summaries from the Wikipedia REST API.
type WikiTool struct {
	client  *resty.Client
	baseURL string
}

var _ Tool = (*WikiTool)(nil)

func NewWikiTool() *WikiTool {
	return &WikiTool{client: newToolClient(), baseURL: wikipediaURL}
}

func (t *WikiTool) Name() string     { return "wiki" }
func (t *WikiTool) Category() string { return "information" }

func (t *WikiTool) Describe() Description {
	return Description{
		Description: "Get Wikipedia summary and information about any topic",
		Parameters: JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"topic": {
					Type:        "string",
					Description: "Topic to search on Wikipedia",
				},
			},
			Required: []string{"topic"},
		},
	}
}

type wikiSummaryResponse struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

func (t *WikiTool) Execute(ctx context.Context, params map[string]any) (any, error) {
	topic := stringParam(params, "Artificial Intelligence", "topic", "query")

	var payload wikiSummaryResponse
	resp, err := t.client.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(fmt.Sprintf("%s/%s", t.baseURL, strings.ReplaceAll(topic, " ", "_")))
	if err == nil && resp.IsSuccess() && payload.Extract != "" {
		extract := payload.Extract
		if len(extract) > maxSummaryLength {
			extract = extract[:maxSummaryLength] + "..."
		}
		return map[string]any{
			"title":   payload.Title,
			"summary": extract,
			"url":     payload.ContentURLs.Desktop.Page,
			"source":  "Wikipedia",
		}, nil
	}

	return t.demoData(topic), nil
}

func (t *WikiTool) demoData(topic string) map[string]any {
	return map[string]any{
		"title": topic,
		"summary": fmt.Sprintf("This is a demonstration summary for '%s'. In production, this would contain "+
			"the actual Wikipedia extract with comprehensive information about the topic, including key facts, "+
			"history, and relevant details.", topic),
		"url":    fmt.Sprintf("https://en.wikipedia.org/wiki/%s", strings.ReplaceAll(topic, " ", "_")),
		"source": "Wikipedia (demo)",
		"status": "demo_data",
	}
}
