// In file: internal/tools/news.go
package tools

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const newsAPIURL = "https://newsapi.org/v2/everything"

// maxArticles bounds how many headlines one call returns.
const maxArticles = 3

// NewsTool fetches recent headlines from NewsAPI.org.
type NewsTool struct {
	client  *resty.Client
	apiKey  string
	baseURL string
}

var _ Tool = (*NewsTool)(nil)

func NewNewsTool(apiKey string) *NewsTool {
	return &NewsTool{
		client:  newToolClient(),
		apiKey:  apiKey,
		baseURL: newsAPIURL,
	}
}

func (t *NewsTool) Name() string     { return "news" }
func (t *NewsTool) Category() string { return "information" }

func (t *NewsTool) Describe() Description {
	return Description{
		Description: "Get latest news articles on any topic",
		Parameters: JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"topic": {
					Type:        "string",
					Description: "News topic or keyword to search for",
				},
			},
			Required: []string{"topic"},
		},
	}
}

type newsAPIResponse struct {
	TotalResults int `json:"totalResults"`
	Articles     []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (t *NewsTool) Execute(ctx context.Context, params map[string]any) (any, error) {
	topic := stringParam(params, "technology", "topic", "query")

	var payload newsAPIResponse
	resp, err := t.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":        topic,
			"apiKey":   t.apiKey,
			"language": "en",
			"sortBy":   "publishedAt",
			"pageSize": fmt.Sprintf("%d", maxArticles),
		}).
		SetResult(&payload).
		Get(t.baseURL)
	if err == nil && resp.IsSuccess() && len(payload.Articles) > 0 {
		articles := make([]map[string]any, 0, maxArticles)
		for i, article := range payload.Articles {
			if i == maxArticles {
				break
			}
			articles = append(articles, map[string]any{
				"title":       article.Title,
				"description": article.Description,
				"source":      article.Source.Name,
				"url":         article.URL,
				"published":   article.PublishedAt,
			})
		}
		return map[string]any{
			"topic":         topic,
			"articles":      articles,
			"total_results": payload.TotalResults,
		}, nil
	}

	return t.demoData(topic), nil
}

func (t *NewsTool) demoData(topic string) map[string]any {
	return map[string]any{
		"topic": topic,
		"articles": []map[string]any{
			{
				"title": fmt.Sprintf("Latest developments in %s", topic),
				"description": fmt.Sprintf("This is a demonstration news article about %s. In production, "+
					"this would show real headlines and summaries from NewsAPI.org.", topic),
				"source":    "Demo News",
				"url":       "https://example.com/news",
				"published": "2024-01-15T10:00:00Z",
			},
		},
		"total_results": 1,
		"status":        "demo_data",
	}
}
