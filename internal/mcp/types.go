// In file: internal/mcp/types.go

// Package mcp implements the Model Context Protocol engine: it parses tool-call
// tokens out of model-generated text, resolves their parameters, executes the
// referenced tools concurrently against a registry, and splices the results back
// into a final answer.
//
// The notation a model uses to request a tool is a fixed textual token:
//
//	<tool>NAME</tool>
//	<tool>NAME(ARGS)</tool>
//
// Everything else in the generated text is treated as prose and passed through.
package mcp

import "math"

// ToolCall is a single parsed tool invocation, produced by the parser and
// consumed by the dispatcher. It is immutable once produced.
type ToolCall struct {
	// Tool is the registry name of the capability to invoke.
	Tool string `json:"tool"`
	// RawArgs is the argument text exactly as it appeared between the
	// parentheses, before any resolution.
	RawArgs string `json:"-"`
	// Params is the resolved parameter mapping for the call.
	Params map[string]any `json:"params"`
	// RawCall is the complete token as matched in the source text. It must
	// match the original substring exactly so the composer can substitute it.
	RawCall string `json:"-"`
}

// ToolResult is the outcome of exactly one ToolCall. The dispatcher produces
// one result per call, at the same index as the call in the input sequence.
type ToolResult struct {
	Tool   string         `json:"tool"`
	Params map[string]any `json:"params"`
	// Result holds the tool's return value on success, or a human-readable
	// failure message on error (mirrored into the composed answer).
	Result  any  `json:"result"`
	Success bool `json:"success"`
	// ExecutionTime is wall-clock seconds. On timeout it equals the
	// configured per-call timeout, not the measured elapsed time.
	ExecutionTime float64 `json:"execution_time"`
	Error         string  `json:"error,omitempty"`
	RawCall       string  `json:"-"`
}

// ToolSummary aggregates the outcomes of all tool calls in one request.
type ToolSummary struct {
	TotalTools         int     `json:"total_tools"`
	Successful         int     `json:"successful"`
	Failed             int     `json:"failed"`
	TotalExecutionTime float64 `json:"total_execution_time"`
	// ToolsUsed lists tool names in call order, duplicates included.
	ToolsUsed []string `json:"tools_used"`
}

// ComposedResponse is the final assembled answer for one request.
type ComposedResponse struct {
	// Thought is the text preceding the first tool-call token, the model's
	// stated reasoning preamble.
	Thought string `json:"thought"`
	// FinalAnswer is the original text with every tool-call token replaced by
	// its rendered result or an inline error marker.
	FinalAnswer string       `json:"final_answer"`
	ToolCalls   []ToolResult `json:"tool_calls"`
	Summary     ToolSummary  `json:"tool_summary"`
}

// roundMillis rounds a duration in seconds to millisecond precision.
func roundMillis(seconds float64) float64 {
	return math.Round(seconds*1000) / 1000
}
