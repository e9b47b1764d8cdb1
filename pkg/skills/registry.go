// Package skills registers skill handlers and runs them against session state.
package skills

import (
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	skilltypes "github.com/jingkaihe/hrskills/pkg/types/skills"
)

// Registry holds skill handlers keyed by their metadata ID
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]skilltypes.Handler
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]skilltypes.Handler)}
}

// Register adds handler under its metadata ID. Empty and duplicate IDs are rejected.
func (r *Registry) Register(handler skilltypes.Handler) error {
	if handler == nil {
		return errors.New("cannot register a nil skill handler")
	}
	id := handler.Metadata().ID
	if id == "" {
		return errors.New("skill handler has no ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[id]; exists {
		return errors.Errorf("skill %s is already registered", id)
	}
	r.handlers[id] = handler
	return nil
}

// RegisterAll registers every handler and reports all failures together
func (r *Registry) RegisterAll(handlers ...skilltypes.Handler) error {
	var result error
	for _, h := range handlers {
		if err := r.Register(h); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result
}

// Get returns the handler registered under id
func (r *Registry) Get(id string) (skilltypes.Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[id]
	return h, ok
}

// List returns the metadata of every registered skill sorted by ID
func (r *Registry) List() []skilltypes.Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]skilltypes.Metadata, 0, len(r.handlers))
	for _, h := range r.handlers {
		out = append(out, h.Metadata())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
