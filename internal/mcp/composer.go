// In file: internal/mcp/composer.go
package mcp

import (
	"encoding/json"
	"fmt"
	"strings"
)

// fillerThought stands in when the model produced a tool call with no
// preamble at all.
const fillerThought = "Let me help you with that."

// Compose assembles the final response: it extracts the reasoning preamble,
// substitutes every tool-call token with its rendered result (or an inline
// error marker), and aggregates a summary.
//
// Substitution is by exact raw-token text. If the same token (identical name
// and argument text) occurs more than once, every occurrence receives the
// first matching call's rendering; distinct calls behind identical tokens are
// not disambiguated.
func (e *Engine) Compose(originalText string, results []ToolResult) ComposedResponse {
	finalAnswer := originalText
	for _, r := range results {
		if r.RawCall == "" {
			continue
		}
		var replacement string
		if r.Success {
			replacement = FormatToolResult(r)
		} else {
			replacement = fmt.Sprintf("[Error: %s]", failureMessage(r))
		}
		finalAnswer = strings.ReplaceAll(finalAnswer, r.RawCall, replacement)
	}

	return ComposedResponse{
		Thought:     ExtractThought(originalText),
		FinalAnswer: finalAnswer,
		ToolCalls:   results,
		Summary:     summarize(results),
	}
}

// ExtractThought returns the text preceding the first tool-call token,
// trimmed. An empty preamble becomes a generic filler; text with no tool call
// at all is returned whole.
func ExtractThought(text string) string {
	loc := toolCallPattern.FindStringIndex(text)
	if loc == nil {
		return text
	}
	thought := strings.TrimSpace(text[:loc[0]])
	if thought == "" {
		return fillerThought
	}
	return thought
}

// FormatToolResult renders a successful result for splicing into the answer.
// Structured results get tool-specific renderings; everything else is
// stringified.
func FormatToolResult(r ToolResult) string {
	fields, ok := r.Result.(map[string]any)
	if !ok {
		return stringify(r.Result)
	}

	switch r.Tool {
	case "weather":
		return fmt.Sprintf("Weather: %s, %s", fieldOr(fields, "N/A", "description"), fieldOr(fields, "N/A", "temperature"))
	case "crypto":
		return fmt.Sprintf("Price: %s", fieldOr(fields, "N/A", "price_usd", "price"))
	default:
		return stringify(r.Result)
	}
}

// failureMessage prefers the human-readable message recorded in Result and
// falls back to the raw error text.
func failureMessage(r ToolResult) string {
	if s, ok := r.Result.(string); ok && s != "" {
		return s
	}
	return r.Error
}

func summarize(results []ToolResult) ToolSummary {
	summary := ToolSummary{
		TotalTools: len(results),
		ToolsUsed:  make([]string, 0, len(results)),
	}
	var totalTime float64
	for _, r := range results {
		if r.Success {
			summary.Successful++
		} else {
			summary.Failed++
		}
		totalTime += r.ExecutionTime
		summary.ToolsUsed = append(summary.ToolsUsed, r.Tool)
	}
	summary.TotalExecutionTime = roundMillis(totalTime)
	return summary
}

// fieldOr returns the first present, non-empty string field among keys.
func fieldOr(fields map[string]any, fallback string, keys ...string) string {
	for _, key := range keys {
		if v, ok := fields[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return fallback
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any, []any:
		if b, err := json.Marshal(t); err == nil {
			return string(b)
		}
	}
	return fmt.Sprintf("%v", v)
}
