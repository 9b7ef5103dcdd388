package exec

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Hook is a named post-generation command, e.g. formatting the tree
// after a scaffold run.
type Hook interface {
	Name() string
	Description() string
	Run(ctx context.Context, runner *Runner) error
}

// Registry holds the hooks a generator invocation may trigger.
type Registry struct {
	mu    sync.RWMutex
	hooks map[string]Hook
}

// NewRegistry creates an empty hook registry.
func NewRegistry() *Registry {
	return &Registry{hooks: make(map[string]Hook)}
}

// Register adds a hook; duplicate names are an error.
func (r *Registry) Register(h Hook) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.hooks[h.Name()]; ok {
		return fmt.Errorf("hook %q already registered", h.Name())
	}
	r.hooks[h.Name()] = h
	return nil
}

// Get retrieves a hook by name.
func (r *Registry) Get(name string) (Hook, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.hooks[name]
	return h, ok
}

// Names lists registered hooks, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.hooks))
	for name := range r.hooks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes a registered hook.
func (r *Registry) Run(ctx context.Context, name string, runner *Runner) error {
	h, ok := r.Get(name)
	if !ok {
		return fmt.Errorf("unknown hook %q (available: %v)", name, r.Names())
	}
	return h.Run(ctx, runner)
}

// GoFmt is the default hook: it formats the generated tree.
type GoFmt struct{}

func (GoFmt) Name() string        { return "gofmt" }
func (GoFmt) Description() string { return "run go fmt over the project" }

func (GoFmt) Run(ctx context.Context, runner *Runner) error {
	return WithSpinner("go fmt ./...", func() error {
		return runner.Run(ctx, "go", "fmt", "./...")
	})
}
