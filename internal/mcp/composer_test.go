// In file: internal/mcp/composer_test.go
package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_WeatherFlow(t *testing.T) {
	exec := executorFunc(func(_ context.Context, name string, params map[string]any) (any, error) {
		require.Equal(t, "weather", name)
		require.Equal(t, "Paris", params["location"])
		return map[string]any{"description": "clear", "temperature": "19°C"}, nil
	})
	e := newTestEngine(exec, Config{})

	text := "Let's check it. <tool>weather(Paris)</tool>"
	results := e.Process(context.Background(), text, nil)
	composed := e.Compose(text, results)

	assert.Equal(t, "Let's check it.", composed.Thought)
	assert.Equal(t, "Let's check it. Weather: clear, 19°C", composed.FinalAnswer)
	assert.Equal(t, 1, composed.Summary.TotalTools)
	assert.Equal(t, 1, composed.Summary.Successful)
	assert.Equal(t, 0, composed.Summary.Failed)
	assert.Equal(t, []string{"weather"}, composed.Summary.ToolsUsed)
}

func TestCompose_UnknownToolErrorMarker(t *testing.T) {
	exec := executorFunc(func(context.Context, string, map[string]any) (any, error) {
		return nil, errors.New("tool not found: unknowntool")
	})
	e := newTestEngine(exec, Config{})

	text := "Trying <tool>unknowntool</tool> here."
	results := e.Process(context.Background(), text, nil)
	composed := e.Compose(text, results)

	assert.Equal(t, "Trying [Error: Tool execution error: tool not found: unknowntool] here.", composed.FinalAnswer)
	assert.Equal(t, 1, composed.Summary.Failed)
}

func TestCompose_NoToolCalls(t *testing.T) {
	e := newTestEngine(executorFunc(nil), Config{})
	text := "A direct answer with no tool usage."
	composed := e.Compose(text, nil)

	assert.Equal(t, text, composed.Thought)
	assert.Equal(t, text, composed.FinalAnswer)
	assert.Empty(t, composed.ToolCalls)
	assert.Equal(t, 0, composed.Summary.TotalTools)
}

func TestCompose_FillerThoughtWhenNoPreamble(t *testing.T) {
	e := newTestEngine(executorFunc(func(context.Context, string, map[string]any) (any, error) {
		return "ha", nil
	}), Config{})

	text := "<tool>joke</tool>"
	results := e.Process(context.Background(), text, nil)
	composed := e.Compose(text, results)

	assert.Equal(t, "Let me help you with that.", composed.Thought)
	assert.Equal(t, "ha", composed.FinalAnswer)
}

func TestCompose_DuplicateTokensShareRendering(t *testing.T) {
	e := newTestEngine(executorFunc(func(context.Context, string, map[string]any) (any, error) {
		return "ha", nil
	}), Config{})

	text := "<tool>joke</tool> and <tool>joke</tool>"
	results := e.Process(context.Background(), text, nil)
	composed := e.Compose(text, results)

	assert.Equal(t, "ha and ha", composed.FinalAnswer)
	assert.Equal(t, 2, composed.Summary.TotalTools)
}

func TestExtractThought(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"with preamble", "Checking the weather. <tool>weather(Paris)</tool>", "Checking the weather."},
		{"no preamble", "<tool>weather</tool> rest", "Let me help you with that."},
		{"no tool call", "Plain answer.", "Plain answer."},
		{"whitespace preamble", "   <tool>joke</tool>", "Let me help you with that."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractThought(tt.text))
		})
	}
}

func TestFormatToolResult(t *testing.T) {
	tests := []struct {
		name   string
		result ToolResult
		want   string
	}{
		{
			"weather fields",
			ToolResult{Tool: "weather", Result: map[string]any{"description": "cloudy", "temperature": "12°C"}},
			"Weather: cloudy, 12°C",
		},
		{
			"weather missing fields",
			ToolResult{Tool: "weather", Result: map[string]any{}},
			"Weather: N/A, N/A",
		},
		{
			"crypto price_usd",
			ToolResult{Tool: "crypto", Result: map[string]any{"price_usd": "$45,230"}},
			"Price: $45,230",
		},
		{
			"crypto legacy price key",
			ToolResult{Tool: "crypto", Result: map[string]any{"price": "$45,230"}},
			"Price: $45,230",
		},
		{
			"plain string",
			ToolResult{Tool: "joke", Result: "Why do programmers prefer dark mode?"},
			"Why do programmers prefer dark mode?",
		},
		{
			"generic map stringified",
			ToolResult{Tool: "wiki", Result: map[string]any{"summary": "Go is a language."}},
			`{"summary":"Go is a language."}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatToolResult(tt.result))
		})
	}
}

func TestSummarize_Totals(t *testing.T) {
	results := []ToolResult{
		{Tool: "weather", Success: true, ExecutionTime: 0.1234},
		{Tool: "crypto", Success: false, ExecutionTime: 0.2},
		{Tool: "weather", Success: true, ExecutionTime: 0.0766},
	}
	summary := summarize(results)

	assert.Equal(t, 3, summary.TotalTools)
	assert.Equal(t, 2, summary.Successful)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0.4, summary.TotalExecutionTime)
	assert.Equal(t, []string{"weather", "crypto", "weather"}, summary.ToolsUsed)
}
