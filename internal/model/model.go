// In file: internal/model/model.go

// Package model abstracts the text-generation backend. The MCP engine treats
// the model as a black box producing a string that may embed tool-call tokens;
// this package provides that black box in two flavors: a keyword-driven
// pattern generator (always available) and a Gemini-backed generator used when
// an API key is configured.
package model

import (
	"context"
	"strings"
)

// Generation is one model output: the raw text (possibly containing tool-call
// tokens) plus accounting metadata.
type Generation struct {
	Text           string         `json:"text"`
	ModelInfo      map[string]any `json:"model_info"`
	TokensUsed     int            `json:"tokens_used"`
	GenerationTime float64        `json:"generation_time"`
	DetectedTools  []string       `json:"detected_tools"`
}

// Options tune a single generation request.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// Generator produces model text for a prompt. Implementations must be safe
// for concurrent use.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts Options) (*Generation, error)
	// Status reports backend health/details for the status endpoint.
	Status() map[string]any
}

// toolKeywords maps each tool name to prompt keywords that suggest it.
var toolKeywords = map[string][]string{
	"weather": {"weather", "temperature", "forecast", "climate", "rain", "sunny", "cloudy"},
	"crypto":  {"price", "crypto", "bitcoin", "ethereum", "btc", "eth", "coin", "cryptocurrency"},
	"wiki":    {"wikipedia", "wiki", "information about", "tell me about", "summary", "explain"},
	"search":  {"search", "find", "look up", "who won", "latest", "recent", "google"},
	"joke":    {"joke", "funny", "humor", "laugh", "amusing", "comedy"},
	"news":    {"news", "headlines", "current events", "breaking", "latest news"},
}

// detectionOrder keeps tool detection deterministic across runs.
var detectionOrder = []string{"weather", "crypto", "wiki", "search", "joke", "news"}

// DetectTools returns the tools suggested by the prompt's keywords, in a
// fixed order. A prompt matching nothing defaults to search.
func DetectTools(prompt string) []string {
	lower := strings.ToLower(prompt)
	var detected []string
	for _, tool := range detectionOrder {
		for _, keyword := range toolKeywords[tool] {
			if strings.Contains(lower, keyword) {
				detected = append(detected, tool)
				break
			}
		}
	}
	if len(detected) == 0 {
		detected = append(detected, "search")
	}
	return detected
}

// approximateTokens is the whitespace-split token count used when the backend
// does not report usage.
func approximateTokens(text string) int {
	return len(strings.Fields(text))
}
