// In file: internal/tools/joke.go
package tools

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/go-resty/resty/v2"
)

const jokeAPIURL = "https://v2.jokeapi.dev/joke"

// fallbackJokes are served when JokeAPI is unreachable.
var fallbackJokes = []string{
	"Why do programmers prefer dark mode? Because light attracts bugs! 🐛",
	"Why don't scientists trust atoms? Because they make up everything! ⚛️",
	"How do you organize a space party? You planet! 🚀",
	"Why did the scarecrow win an award? He was outstanding in his field! 🌾",
	"What do you call a fake noodle? An impasta! 🍝",
}

// JokeTool fetches a clean joke from JokeAPI. Its result is a plain string
// rather than a structured mapping.
type JokeTool struct {
	client  *resty.Client
	baseURL string
}

var _ Tool = (*JokeTool)(nil)

func NewJokeTool() *JokeTool {
	return &JokeTool{client: newToolClient(), baseURL: jokeAPIURL}
}

func (t *JokeTool) Name() string     { return "joke" }
func (t *JokeTool) Category() string { return "entertainment" }

func (t *JokeTool) Describe() Description {
	return Description{
		Description: "Get a random clean joke for entertainment",
		Parameters: JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"category": {
					Type:        "string",
					Description: "Joke category (Programming, Miscellaneous, Dark, Pun, Spooky, Christmas)",
				},
			},
		},
	}
}

type jokeAPIResponse struct {
	Type     string `json:"type"`
	Joke     string `json:"joke"`
	Setup    string `json:"setup"`
	Delivery string `json:"delivery"`
}

func (t *JokeTool) Execute(ctx context.Context, params map[string]any) (any, error) {
	category := stringParam(params, "Any", "category")

	var payload jokeAPIResponse
	resp, err := t.client.R().
		SetContext(ctx).
		SetQueryParam("blacklistFlags", "nsfw,religious,political,racist,sexist,explicit").
		SetResult(&payload).
		Get(fmt.Sprintf("%s/%s", t.baseURL, category))
	if err == nil && resp.IsSuccess() {
		if payload.Type == "single" && payload.Joke != "" {
			return payload.Joke, nil
		}
		if payload.Setup != "" {
			return fmt.Sprintf("%s %s", payload.Setup, payload.Delivery), nil
		}
	}

	return fallbackJokes[rand.Intn(len(fallbackJokes))], nil
}
