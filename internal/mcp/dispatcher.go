// In file: internal/mcp/dispatcher.go
package mcp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// dispatch executes all calls concurrently, bounded by the engine's
// concurrency ceiling, and returns one result per call at the matching index.
// Completion order is unconstrained; sequence order is not. A failure or
// timeout in one call never aborts or delays its siblings beyond their own
// execution.
func (e *Engine) dispatch(ctx context.Context, calls []ToolCall) []ToolResult {
	results := make([]ToolResult, len(calls))
	sem := semaphore.NewWeighted(e.maxConcurrent)

	var wg sync.WaitGroup
	for i, call := range calls {
		wg.Add(1)
		go func(i int, call ToolCall) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				results[i] = e.failedResult(call, "Tool execution failed: "+err.Error(), err.Error(), 0)
				return
			}
			defer sem.Release(1)
			results[i] = e.executeOne(ctx, call)
		}(i, call)
	}
	wg.Wait()

	return results
}

// outcome carries a tool's return value across the timeout boundary.
type outcome struct {
	value any
	err   error
}

// executeOne runs a single tool call with a per-call timeout. Panics and
// errors inside the tool are converted to a failed result; they never escape
// to the dispatcher.
func (e *Engine) executeOne(ctx context.Context, call ToolCall) ToolResult {
	start := time.Now()
	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	// The tool runs in its own goroutine so a capability that ignores its
	// context cannot hold up the dispatch past the timeout. The channel is
	// buffered: a late result after timeout is dropped, not leaked on.
	ch := make(chan outcome, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				ch <- outcome{err: fmt.Errorf("panic: %v", p)}
			}
		}()
		value, err := e.registry.Execute(callCtx, call.Tool, call.Params)
		ch <- outcome{value: value, err: err}
	}()

	select {
	case <-callCtx.Done():
		if ctx.Err() != nil {
			// The request itself was cancelled, not this call's timer.
			return e.failedResult(call, "Tool execution failed: "+ctx.Err().Error(), ctx.Err().Error(), time.Since(start).Seconds())
		}
		e.log.Warn().Str("tool", call.Tool).Dur("timeout", e.timeout).Msg("Tool call timed out")
		return e.failedResult(call,
			fmt.Sprintf("Tool execution timed out after %gs", e.timeout.Seconds()),
			"timeout",
			e.timeout.Seconds())

	case out := <-ch:
		if out.err != nil {
			e.log.Error().Str("tool", call.Tool).Err(out.err).Msg("Tool execution error")
			return e.failedResult(call, "Tool execution error: "+out.err.Error(), out.err.Error(), time.Since(start).Seconds())
		}
		return ToolResult{
			Tool:          call.Tool,
			Params:        call.Params,
			Result:        out.value,
			Success:       true,
			ExecutionTime: time.Since(start).Seconds(),
			RawCall:       call.RawCall,
		}
	}
}

func (e *Engine) failedResult(call ToolCall, message, errText string, seconds float64) ToolResult {
	return ToolResult{
		Tool:          call.Tool,
		Params:        call.Params,
		Result:        message,
		Success:       false,
		ExecutionTime: seconds,
		Error:         errText,
		RawCall:       call.RawCall,
	}
}
