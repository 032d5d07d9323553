package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Registry maps tool names to tools. Registration order is preserved for
// listing and description output; re-registering a name overwrites the tool
// but keeps its original position.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register inserts or overwrites a tool by name. It has no failure mode.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := t.Name()
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = t
}

// Get returns the named tool, or nil and false when absent.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[name]
	return t, ok
}

// List returns the registered tool names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Description returns one "- name: description" line per tool, for
// augmenting an LLM system prompt.
func (r *Registry) Description() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lines := make([]string, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		lines = append(lines, fmt.Sprintf("- %s: %s", t.Name(), t.Description()))
	}
	return strings.Join(lines, "\n")
}

// ToParams converts every registered tool into the function-calling schema
// shape consumed by LLM APIs, in registration order.
func (r *Registry) ToParams() []map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	params := make([]map[string]any, 0, len(r.order))
	for _, name := range r.order {
		params = append(params, ToParam(r.tools[name]))
	}
	return params
}

// Execute looks up and runs a tool by name. It is the uniform
// error-absorption boundary between arbitrary tool code and the caller:
// an absent tool, a tool-raised error, and a panic inside a tool all come
// back as a failure Result, never as an error or a re-panic.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (result *Result) {
	t, ok := r.Get(name)
	if !ok {
		return Failf("Tool '%s' not found. Available tools: %s", name, strings.Join(r.List(), ", "))
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = Failf("Error executing tool '%s': %v", name, rec)
		}
	}()

	res, err := t.Execute(ctx, args)
	if err != nil {
		var terr *Error
		if errors.As(err, &terr) {
			return Fail(terr.Message)
		}
		return Failf("Error executing tool '%s': %s", name, err)
	}
	if res == nil {
		return Failf("Error executing tool '%s': tool returned no result", name)
	}
	return res
}
