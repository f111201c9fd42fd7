// In file: internal/mcp/parser.go
package mcp

import (
	"regexp"
	"slices"
)

// toolCallPattern matches the tool-call notation. Group 1 is the tool name,
// group 2 the optional argument text. The argument text may not contain ')',
// so an unbalanced token simply fails to match rather than erroring.
var toolCallPattern = regexp.MustCompile(`<tool>(\w+)(?:\(([^)]*)\))?</tool>`)

// ParseToolCalls extracts every tool-call token from the generated text, in
// left-to-right order of occurrence. Text with no tokens yields an empty
// sequence, never an error. When allowed is non-empty, calls referencing tools
// outside the list are silently dropped.
func ParseToolCalls(text string, allowed []string) []ToolCall {
	matches := toolCallPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	calls := make([]ToolCall, 0, len(matches))
	for _, m := range matches {
		name, rawArgs := m[1], m[2]
		if len(allowed) > 0 && !slices.Contains(allowed, name) {
			continue
		}
		calls = append(calls, ToolCall{
			Tool:    name,
			RawArgs: rawArgs,
			Params:  ResolveParams(name, rawArgs),
			RawCall: m[0],
		})
	}
	return calls
}
