// In file: internal/mcp/dispatcher_test.go
package mcp

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// executorFunc adapts a function to the Executor interface for tests.
type executorFunc func(ctx context.Context, name string, params map[string]any) (any, error)

func (f executorFunc) Execute(ctx context.Context, name string, params map[string]any) (any, error) {
	return f(ctx, name, params)
}

func newTestEngine(exec Executor, cfg Config) *Engine {
	return NewEngine(exec, cfg, zerolog.Nop())
}

func TestEngine_DefaultConfig(t *testing.T) {
	e := newTestEngine(executorFunc(nil), Config{})
	assert.Equal(t, int64(5), e.maxConcurrent)
	assert.Equal(t, 30*time.Second, e.timeout)
}

func TestProcess_NoTokens(t *testing.T) {
	e := newTestEngine(executorFunc(func(context.Context, string, map[string]any) (any, error) {
		t.Fatal("executor must not be called")
		return nil, nil
	}), Config{})

	assert.Empty(t, e.Process(context.Background(), "plain text, no tools", nil))
}

func TestProcess_ResultsInSourceOrder(t *testing.T) {
	exec := executorFunc(func(_ context.Context, name string, _ map[string]any) (any, error) {
		// Finish out of order to prove results stay index-stable.
		if name == "weather" {
			time.Sleep(30 * time.Millisecond)
		}
		return "result of " + name, nil
	})
	e := newTestEngine(exec, Config{})

	results := e.Process(context.Background(), "<tool>weather(Paris)</tool> <tool>joke</tool>", nil)
	require.Len(t, results, 2)
	assert.Equal(t, "weather", results[0].Tool)
	assert.Equal(t, "result of weather", results[0].Result)
	assert.Equal(t, "joke", results[1].Tool)
	assert.Equal(t, "result of joke", results[1].Result)
	for _, r := range results {
		assert.True(t, r.Success)
		assert.GreaterOrEqual(t, r.ExecutionTime, 0.0)
		assert.NotEmpty(t, r.RawCall)
	}
}

func TestProcess_FailureIsolation(t *testing.T) {
	exec := executorFunc(func(_ context.Context, name string, _ map[string]any) (any, error) {
		if name == "crypto" {
			return nil, errors.New("upstream unavailable")
		}
		return "ok", nil
	})
	e := newTestEngine(exec, Config{})

	results := e.Process(context.Background(), "<tool>crypto(bitcoin)</tool> <tool>joke</tool>", nil)
	require.Len(t, results, 2)

	assert.False(t, results[0].Success)
	assert.Equal(t, "upstream unavailable", results[0].Error)
	assert.Equal(t, "Tool execution error: upstream unavailable", results[0].Result)

	assert.True(t, results[1].Success)
	assert.Equal(t, "ok", results[1].Result)
}

func TestProcess_PanicIsolatedToOneResult(t *testing.T) {
	exec := executorFunc(func(_ context.Context, name string, _ map[string]any) (any, error) {
		if name == "weather" {
			panic("nil map write")
		}
		return "ok", nil
	})
	e := newTestEngine(exec, Config{})

	results := e.Process(context.Background(), "<tool>weather</tool> <tool>joke</tool>", nil)
	require.Len(t, results, 2)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "panic")
	assert.True(t, results[1].Success)
}

func TestProcess_TimeoutReportsConfiguredDuration(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	exec := executorFunc(func(_ context.Context, _ string, _ map[string]any) (any, error) {
		// Ignores its context entirely.
		<-release
		return "late", nil
	})
	e := newTestEngine(exec, Config{ToolTimeout: 50 * time.Millisecond})

	start := time.Now()
	results := e.Process(context.Background(), "<tool>weather(Paris)</tool>", nil)
	elapsed := time.Since(start)

	require.Len(t, results, 1)
	r := results[0]
	assert.False(t, r.Success)
	assert.Equal(t, "timeout", r.Error)
	assert.Equal(t, 0.05, r.ExecutionTime)
	assert.Equal(t, "Tool execution timed out after 0.05s", r.Result)
	assert.Less(t, elapsed, 500*time.Millisecond, "dispatch must not wait for the stuck tool")
}

func TestProcess_ConcurrencyCeiling(t *testing.T) {
	var inFlight, peak atomic.Int64
	exec := executorFunc(func(_ context.Context, _ string, _ map[string]any) (any, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		return "ok", nil
	})
	e := newTestEngine(exec, Config{MaxConcurrentTools: 2})

	var text string
	for range 6 {
		text += "<tool>joke</tool> "
	}
	results := e.Process(context.Background(), text, nil)
	require.Len(t, results, 6)
	assert.LessOrEqual(t, peak.Load(), int64(2))
}

func TestProcess_RequestCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	exec := executorFunc(func(ctx context.Context, _ string, _ map[string]any) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	e := newTestEngine(exec, Config{})

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	results := e.Process(ctx, "<tool>weather</tool>", nil)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, context.Canceled.Error())
}

func TestProcess_DisabledToolSurfacesError(t *testing.T) {
	sentinel := fmt.Errorf("tool disabled: weather")
	exec := executorFunc(func(context.Context, string, map[string]any) (any, error) {
		return nil, sentinel
	})
	e := newTestEngine(exec, Config{})

	results := e.Process(context.Background(), "<tool>weather(Paris)</tool>", nil)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "tool disabled")
}
