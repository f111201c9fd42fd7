// In file: internal/tools/tool.go

// Package tools defines the capability interface for externally-backed tools
// (weather, crypto prices, encyclopedia lookups, ...) and the registry that
// owns them. Tools are registered once at startup from an enumerated list of
// constructors; there is no runtime discovery.
package tools

import "context"

// Tool is the standard interface for any capability the MCP engine can
// dispatch to.
//
// By having all tools implement this interface, the system can manage and
// execute them in a plug-and-play fashion without knowing the specific details
// of each tool's implementation.
type Tool interface {
	// Name is the unique registry key, as referenced by tool-call tokens.
	Name() string

	// Category groups the tool for status reporting (e.g. "information",
	// "finance", "entertainment").
	Category() string

	// Describe returns the tool's human-readable description and the JSON
	// Schema of its parameters.
	Describe() Description

	// Execute runs the tool with the resolved parameter mapping. The context
	// carries the per-call deadline; tools doing network I/O must honor it.
	Execute(ctx context.Context, params map[string]any) (any, error)
}

// Description is what a tool reports about itself to callers and, ultimately,
// to the model.
type Description struct {
	Description string     `json:"description"`
	Parameters  JSONSchema `json:"parameters"`
}

// JSONSchema is a structured, type-safe representation of the JSON Schema
// used for defining tool parameters. Using this struct instead of
// map[string]interface{} keeps tool definitions clear and statically checked.
type JSONSchema struct {
	// Type is the data type for a schema node (e.g. "object", "string").
	// For the top-level parameters object this is always "object".
	Type string `json:"type"`
	// Description explains what a specific parameter is for.
	Description string `json:"description,omitempty"`
	// Properties describes an object's parameters, keyed by parameter name.
	Properties map[string]*JSONSchema `json:"properties,omitempty"`
	// Required lists the parameter names that are mandatory.
	Required []string `json:"required,omitempty"`
}

// stringParam returns the first present, non-empty string value among keys,
// or fallback. Tools use it to accept both their canonical parameter name and
// common aliases (e.g. "location" and "city").
func stringParam(params map[string]any, fallback string, keys ...string) string {
	for _, key := range keys {
		if v, ok := params[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return fallback
}
