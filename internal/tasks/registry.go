// Package tasks runs deferred work: it submits named tasks, keeps the handler
// for each task name and drives a polling worker pool over the task store.
package tasks

import (
	"context"
	"fmt"
	"sync"
)

// Handler executes one task name.
type Handler interface {
	Name() string
	Run(ctx context.Context, params map[string]string) error
}

type handlerFunc struct {
	name string
	fn   func(ctx context.Context, params map[string]string) error
}

func (h handlerFunc) Name() string { return h.name }

func (h handlerFunc) Run(ctx context.Context, params map[string]string) error {
	return h.fn(ctx, params)
}

// HandlerFunc adapts fn into a Handler for name.
func HandlerFunc(name string, fn func(ctx context.Context, params map[string]string) error) Handler {
	return handlerFunc{name: name, fn: fn}
}

// Registry maps task names to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

func (r *Registry) Register(h Handler) error {
	if h == nil {
		return fmt.Errorf("nil handler")
	}
	name := h.Name()
	if name == "" {
		return fmt.Errorf("handler Name() is empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("handler already registered for task=%s", name)
	}
	r.handlers[name] = h
	return nil
}

func (r *Registry) Get(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

type missingHandlerError struct{ Name string }

func (e *missingHandlerError) Error() string { return "no handler registered for task=" + e.Name }
