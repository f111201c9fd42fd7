// In file: internal/tools/registry.go
package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Sentinel errors for registry lookups. Use errors.Is to check.
var (
	ErrToolNotFound = errors.New("tool not found")
	ErrToolDisabled = errors.New("tool is disabled")
)

// Observer is notified after every tool execution. The gateway wires it to
// Prometheus; tests leave it nil.
type Observer func(tool string, duration time.Duration, success bool)

// Info is a snapshot of one registry entry.
type Info struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  JSONSchema `json:"parameters"`
	Category    string     `json:"category"`
	Enabled     bool       `json:"enabled"`
}

// Stats tracks per-tool execution counters.
type Stats struct {
	Executions       int     `json:"executions"`
	Successes        int     `json:"successes"`
	Failures         int     `json:"failures"`
	AvgExecutionTime float64 `json:"avg_execution_time"`
}

// registration pairs a tool with its registry-owned mutable state. The
// enabled flag lives here, not on the tool, so toggling is atomic relative to
// concurrent dispatch.
type registration struct {
	tool    Tool
	enabled bool
	stats   Stats
	total   time.Duration
}

// Registry holds all registered tools. It is read-mostly after startup:
// enable/disable toggles and stats updates are the only post-init mutations,
// all guarded by the mutex. Execution itself happens outside the lock.
type Registry struct {
	mu       sync.RWMutex
	tools    map[string]*registration
	observer Observer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*registration)}
}

// SetObserver installs the post-execution hook. Call before serving traffic.
func (r *Registry) SetObserver(fn Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observer = fn
}

// Register adds a tool, enabled, replacing any previous tool of the same name.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Name()] = &registration{tool: t, enabled: true}
}

// Execute runs a tool by name. Unknown and disabled tools fail immediately
// with a descriptive error and no dispatch attempt. The enabled flag is
// checked under the lock, so a concurrent toggle lets in-flight calls finish
// but blocks new dispatches.
func (r *Registry) Execute(ctx context.Context, name string, params map[string]any) (any, error) {
	r.mu.RLock()
	reg, ok := r.tools[name]
	if !ok {
		r.mu.RUnlock()
		return nil, fmt.Errorf("%w: %q", ErrToolNotFound, name)
	}
	if !reg.enabled {
		r.mu.RUnlock()
		return nil, fmt.Errorf("%w: %q", ErrToolDisabled, name)
	}
	tool := reg.tool
	observer := r.observer
	r.mu.RUnlock()

	start := time.Now()
	result, err := tool.Execute(ctx, params)
	elapsed := time.Since(start)

	r.recordExecution(name, elapsed, err == nil)
	if observer != nil {
		observer(name, elapsed, err == nil)
	}
	return result, err
}

func (r *Registry) recordExecution(name string, elapsed time.Duration, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.tools[name]
	if !ok {
		return
	}
	reg.stats.Executions++
	if success {
		reg.stats.Successes++
	} else {
		reg.stats.Failures++
	}
	reg.total += elapsed
	reg.stats.AvgExecutionTime = reg.total.Seconds() / float64(reg.stats.Executions)
}

// Toggle flips a tool's enabled flag and returns the new state.
func (r *Registry) Toggle(name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.tools[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrToolNotFound, name)
	}
	reg.enabled = !reg.enabled
	return reg.enabled, nil
}

// Get returns a snapshot of one registry entry.
func (r *Registry) Get(name string) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.tools[name]
	if !ok {
		return Info{}, false
	}
	return infoOf(reg), true
}

// List returns snapshots of all registered tools, sorted by name for
// deterministic output.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]Info, 0, len(r.tools))
	for _, reg := range r.tools {
		infos = append(infos, infoOf(reg))
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Status reports aggregate registry state for the status endpoint.
func (r *Registry) Status() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	enabled := 0
	stats := make(map[string]Stats, len(r.tools))
	categories := make(map[string]struct{})
	for name, reg := range r.tools {
		if reg.enabled {
			enabled++
		}
		stats[name] = reg.stats
		categories[reg.tool.Category()] = struct{}{}
	}
	categoryList := make([]string, 0, len(categories))
	for c := range categories {
		categoryList = append(categoryList, c)
	}
	sort.Strings(categoryList)

	return map[string]any{
		"total_tools":    len(r.tools),
		"enabled_tools":  enabled,
		"disabled_tools": len(r.tools) - enabled,
		"tool_stats":     stats,
		"categories":     categoryList,
	}
}

func infoOf(reg *registration) Info {
	desc := reg.tool.Describe()
	return Info{
		Name:        reg.tool.Name(),
		Description: desc.Description,
		Parameters:  desc.Parameters,
		Category:    reg.tool.Category(),
		Enabled:     reg.enabled,
	}
}
