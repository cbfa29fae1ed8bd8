// Package tools maps tool names to their executors.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// HandlerFunc executes a tool call. It never returns an error: failures are
// encoded into the returned JSON string so the run can always be unblocked
// with a structured value.
type HandlerFunc func(ctx context.Context, args json.RawMessage) string

// Registry stores tool handlers keyed by tool name.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]HandlerFunc),
	}
}

// Register adds a handler for a tool name.
func (r *Registry) Register(name string, handler HandlerFunc) error {
	if name == "" {
		return fmt.Errorf("tool name is required")
	}
	if handler == nil {
		return fmt.Errorf("handler is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("handler already registered for %s", name)
	}
	r.handlers[name] = handler
	return nil
}

// MustRegister adds a handler or panics. Used for wiring at startup.
func (r *Registry) MustRegister(name string, handler HandlerFunc) {
	if err := r.Register(name, handler); err != nil {
		panic(err)
	}
}

// Lookup returns the handler for a tool name, if one is registered.
func (r *Registry) Lookup(name string) (HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.handlers[name]
	return handler, ok
}
