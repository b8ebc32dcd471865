package effect

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jo-hoe/rokkastyle/internal/stack"
)

// Registry maps effect ids to their builders
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]Builder),
	}
}

// NewDefaultRegistry returns a registry with every built-in effect registered
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	builtins := map[string]Builder{
		IDRotate:       RotateBuilder{},
		IDResize:       ResizeBuilder{},
		IDScale:        ScaleBuilder{},
		IDCrop:         CropBuilder{},
		IDScaleAndCrop: ScaleAndCropBuilder{},
		IDDesaturate:   DesaturateBuilder{},
	}
	for id, builder := range builtins {
		if err := registry.Register(id, builder); err != nil {
			panic(err)
		}
	}
	return registry
}

// Register adds a builder for the given effect id
func (r *Registry) Register(id string, builder Builder) error {
	if id == "" {
		return fmt.Errorf("effect id cannot be empty")
	}
	if builder == nil {
		return fmt.Errorf("builder for effect %s cannot be nil", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.builders[id]; exists {
		return fmt.Errorf("effect %s is already registered", id)
	}
	r.builders[id] = builder
	return nil
}

// Build dispatches the configuration to the builder registered for id
func (r *Registry) Build(id string, config Configuration) ([]stack.Operation, error) {
	r.mu.RLock()
	builder, exists := r.builders[id]
	r.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEffect, id)
	}

	operations, err := builder.Build(config)
	if err != nil {
		return nil, fmt.Errorf("failed to build effect %s: %w", id, err)
	}
	return operations, nil
}

// IsRegistered checks if a builder is registered for id
func (r *Registry) IsRegistered(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.builders[id]
	return exists
}

// RegisteredIDs returns all registered effect ids in sorted order
func (r *Registry) RegisteredIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.builders))
	for id := range r.builders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
