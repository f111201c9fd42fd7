// In file: internal/mcp/engine.go
package mcp

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Executor is the slice of the tool registry the engine depends on. The
// registry in internal/tools satisfies it; tests substitute stubs.
type Executor interface {
	// Execute runs the named tool with the given parameters. It returns an
	// error for unknown or disabled tools without attempting a dispatch.
	Execute(ctx context.Context, name string, params map[string]any) (any, error)
}

// Config bounds the engine's concurrency and per-call execution time.
type Config struct {
	// MaxConcurrentTools caps simultaneous in-flight tool calls per request.
	MaxConcurrentTools int
	// ToolTimeout bounds each individual tool call.
	ToolTimeout time.Duration
}

const (
	defaultMaxConcurrentTools = 5
	defaultToolTimeout        = 30 * time.Second
)

// Engine orchestrates one request's tool calls: parse, dispatch, compose.
// It is stateless across requests; the registry is its only collaborator and
// is injected explicitly rather than reached through package globals.
type Engine struct {
	registry      Executor
	maxConcurrent int64
	timeout       time.Duration
	log           zerolog.Logger
}

// NewEngine creates an engine bound to the given registry. Zero config fields
// fall back to the defaults (5 concurrent calls, 30s per call).
func NewEngine(registry Executor, cfg Config, log zerolog.Logger) *Engine {
	if cfg.MaxConcurrentTools <= 0 {
		cfg.MaxConcurrentTools = defaultMaxConcurrentTools
	}
	if cfg.ToolTimeout <= 0 {
		cfg.ToolTimeout = defaultToolTimeout
	}
	return &Engine{
		registry:      registry,
		maxConcurrent: int64(cfg.MaxConcurrentTools),
		timeout:       cfg.ToolTimeout,
		log:           log.With().Str("component", "mcp-engine").Logger(),
	}
}

// Process parses tool calls out of the model text and executes them. The
// returned sequence has one result per recognized call, in source order. Text
// without tool tokens yields an empty sequence.
func (e *Engine) Process(ctx context.Context, modelText string, allowedTools []string) []ToolResult {
	calls := ParseToolCalls(modelText, allowedTools)
	if len(calls) == 0 {
		return nil
	}

	e.log.Info().Int("tool_calls", len(calls)).Msg("Executing tool calls")
	return e.dispatch(ctx, calls)
}
