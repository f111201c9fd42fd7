// In file: internal/mcp/params.go
package mcp

import (
	"encoding/json"
	"strings"
)

// ResolveParams turns raw argument text into a parameter mapping. The first
// rule that applies wins:
//
//  1. empty/whitespace-only text            -> tool defaults
//  2. JSON object literal ({...})           -> parsed as-is (bad JSON falls to 4)
//  3. text containing '='                   -> comma-separated key=value pairs
//  4. anything else                         -> single positional value mapped to
//     the tool's canonical parameter name
//
// Resolution never returns an error: any failure, including a panic, falls
// back to the tool's default mapping.
func ResolveParams(toolName, rawArgs string) (params map[string]any) {
	defer func() {
		if recover() != nil {
			params = DefaultParams(toolName)
		}
	}()

	trimmed := strings.TrimSpace(rawArgs)
	if trimmed == "" {
		return DefaultParams(toolName)
	}

	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		var parsed map[string]any
		if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
			return parsed
		}
		// Malformed literal: treat the whole text as a positional value.
		return positionalParams(toolName, trimQuotes(trimmed))
	}

	if strings.Contains(trimmed, "=") {
		params = make(map[string]any)
		for _, pair := range strings.Split(trimmed, ",") {
			key, value, found := strings.Cut(pair, "=")
			if !found {
				continue
			}
			params[trimQuotes(strings.TrimSpace(key))] = trimQuotes(strings.TrimSpace(value))
		}
		return params
	}

	return positionalParams(toolName, trimQuotes(trimmed))
}

// DefaultParams returns the default parameter mapping for a tool. A fresh map
// is returned on every call so callers can mutate their copy freely; resolving
// the same tool twice yields identical mappings. Unknown tools get an empty
// mapping.
func DefaultParams(toolName string) map[string]any {
	switch toolName {
	case "weather":
		return map[string]any{"location": "London"}
	case "crypto":
		return map[string]any{"symbol": "bitcoin"}
	case "wiki":
		return map[string]any{"topic": "artificial intelligence"}
	case "search":
		return map[string]any{"query": "latest news"}
	case "news":
		return map[string]any{"topic": "technology"}
	case "joke":
		return map[string]any{}
	default:
		return map[string]any{}
	}
}

// positionalParams maps a single positional value to the tool's canonical
// parameter name. Unknown tools map the value to a generic "query" key.
func positionalParams(toolName, value string) map[string]any {
	switch toolName {
	case "weather":
		return map[string]any{"location": value}
	case "crypto":
		return map[string]any{"symbol": value}
	case "wiki":
		return map[string]any{"topic": value}
	case "search":
		return map[string]any{"query": value}
	case "news":
		return map[string]any{"topic": value}
	case "joke":
		return map[string]any{}
	default:
		return map[string]any{"query": value}
	}
}

func trimQuotes(s string) string {
	return strings.Trim(s, `"'`)
}
