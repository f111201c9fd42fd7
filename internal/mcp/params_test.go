// In file: internal/mcp/params_test.go
package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveParams_EmptyUsesDefaults(t *testing.T) {
	tests := []struct {
		tool string
		want map[string]any
	}{
		{"weather", map[string]any{"location": "London"}},
		{"crypto", map[string]any{"symbol": "bitcoin"}},
		{"wiki", map[string]any{"topic": "artificial intelligence"}},
		{"search", map[string]any{"query": "latest news"}},
		{"news", map[string]any{"topic": "technology"}},
		{"joke", map[string]any{}},
		{"unknown", map[string]any{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveParams(tt.tool, ""), "tool %s", tt.tool)
		assert.Equal(t, tt.want, ResolveParams(tt.tool, "   "), "tool %s (whitespace)", tt.tool)
	}
}

func TestResolveParams_JSONLiteral(t *testing.T) {
	params := ResolveParams("weather", `{"location": "Tokyo", "units": "metric"}`)
	assert.Equal(t, map[string]any{"location": "Tokyo", "units": "metric"}, params)
}

func TestResolveParams_MalformedJSONFallsToPositional(t *testing.T) {
	params := ResolveParams("weather", `{broken json}`)
	assert.Equal(t, map[string]any{"location": "{broken json}"}, params)
}

func TestResolveParams_KeyValuePairs(t *testing.T) {
	params := ResolveParams("news", `topic=science, limit=5`)
	assert.Equal(t, map[string]any{"topic": "science", "limit": "5"}, params)
}

func TestResolveParams_KeyValueStripsQuotes(t *testing.T) {
	params := ResolveParams("weather", `location="New York"`)
	assert.Equal(t, map[string]any{"location": "New York"}, params)

	params = ResolveParams("weather", `location='Paris'`)
	assert.Equal(t, map[string]any{"location": "Paris"}, params)
}

func TestResolveParams_Positional(t *testing.T) {
	tests := []struct {
		tool string
		raw  string
		want map[string]any
	}{
		{"weather", "Paris", map[string]any{"location": "Paris"}},
		{"crypto", "ethereum", map[string]any{"symbol": "ethereum"}},
		{"wiki", "golang", map[string]any{"topic": "golang"}},
		{"search", "go generics", map[string]any{"query": "go generics"}},
		{"news", "sports", map[string]any{"topic": "sports"}},
		{"joke", "anything", map[string]any{}},
		{"unknown", "value", map[string]any{"query": "value"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveParams(tt.tool, tt.raw), "tool %s", tt.tool)
	}
}

func TestResolveParams_PositionalStripsQuotes(t *testing.T) {
	assert.Equal(t, map[string]any{"location": "Paris"}, ResolveParams("weather", `"Paris"`))
}

func TestDefaultParams_FreshMapPerCall(t *testing.T) {
	first := DefaultParams("weather")
	first["location"] = "mutated"
	assert.Equal(t, map[string]any{"location": "London"}, DefaultParams("weather"))
}

func TestResolveParams_Deterministic(t *testing.T) {
	a := ResolveParams("crypto", "")
	b := ResolveParams("crypto", "")
	assert.Equal(t, a, b)
}
