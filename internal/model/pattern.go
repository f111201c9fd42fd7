// In file: internal/model/pattern.go
package model

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// patternResponses are the canned preambles emitted when exactly one tool is
// detected for a prompt.
var patternResponses = map[string]string{
	"weather": "Let me check the weather information for you. <tool>weather</tool>",
	"crypto":  "I'll get the latest cryptocurrency prices. <tool>crypto</tool>",
	"wiki":    "Let me search Wikipedia for that information. <tool>wiki</tool>",
	"search":  "I'll search for the latest information on that. <tool>search</tool>",
	"joke":    "Here's a joke for you! <tool>joke</tool>",
	"news":    "Let me get the latest news on that topic. <tool>news</tool>",
}

// PatternGenerator is the keyword-driven generation backend. It never calls
// out to a real model: it detects likely tools from prompt keywords and emits
// a canned preamble with the matching tool-call tokens. It serves both as the
// default backend and as the fallback when no model API key is configured.
type PatternGenerator struct{}

var _ Generator = (*PatternGenerator)(nil)

func NewPatternGenerator() *PatternGenerator {
	return &PatternGenerator{}
}

func (g *PatternGenerator) Generate(_ context.Context, prompt string, opts Options) (*Generation, error) {
	start := time.Now()
	detected := DetectTools(prompt)

	var text string
	if len(detected) == 1 {
		response, ok := patternResponses[detected[0]]
		if !ok {
			response = "Let me help you with that. <tool>search</tool>"
		}
		text = response
	} else {
		tokens := make([]string, 0, len(detected))
		for _, tool := range detected {
			tokens = append(tokens, fmt.Sprintf("<tool>%s</tool>", tool))
		}
		text = "I'll help you with that by using multiple tools. " + strings.Join(tokens, " ")
	}

	return &Generation{
		Text: text,
		ModelInfo: map[string]any{
			"name":        "pattern-matcher",
			"temperature": opts.Temperature,
			"max_tokens":  opts.MaxTokens,
		},
		TokensUsed:     approximateTokens(text),
		GenerationTime: time.Since(start).Seconds(),
		DetectedTools:  detected,
	}, nil
}

func (g *PatternGenerator) Status() map[string]any {
	return map[string]any{
		"model_name":      "pattern-matcher",
		"is_loaded":       true,
		"available_tools": detectionOrder,
	}
}
