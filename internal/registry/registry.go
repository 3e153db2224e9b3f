package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/specialistvlad/graphvalidator/internal/classpath"
)

// Invocation carries everything a handler needs for a single call.
type Invocation struct {
	// Args is the forwarded argument vector, unmodified.
	Args []string
	// GraphDir is the absolute graph directory derived from Args.
	GraphDir  string
	Classpath *classpath.Classpath
	// Env is the process environment merged with per-graph .env files.
	Env    map[string]string
	Stdout io.Writer
	Stderr io.Writer
}

// Handler is a Go implementation of a manifest export.
type Handler func(ctx context.Context, inv *Invocation) error

// Module is the interface that all core modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds all the registered handlers for a single application instance.
type Registry struct {
	handlers map[string]Handler
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// RegisterHandler registers a Go function under the name manifests use to
// refer to it.
func (r *Registry) RegisterHandler(name string, handler Handler) {
	if name == "" {
		panic("handler name must not be empty")
	}
	if handler == nil {
		panic(fmt.Sprintf("handler '%s' is nil", name))
	}
	if _, exists := r.handlers[name]; exists {
		panic(fmt.Sprintf("handler with name '%s' already registered", name))
	}
	slog.Debug("Registering handler.", "name", name)
	r.handlers[name] = handler
}

// Handler returns the handler registered under name.
func (r *Registry) Handler(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Names returns the registered handler names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	return len(r.handlers)
}
