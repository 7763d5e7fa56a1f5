package fetcher

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"portal/internal/domain"
	models "portal/internal/domain/models/docsystem"
	docsysSvc "portal/internal/domain/services/docsystem"
)

// Factory builds a fetcher from its raw JSON configuration.
// Factories validate the configuration and report problems as plain errors.
type Factory func(configuration json.RawMessage) (docsysSvc.Fetcher, error)

var _ docsysSvc.FetcherResolver = (*Registry)(nil)

// Registry maps a source type id to the factory building its fetcher.
//
// Thread-safe for concurrent access during request handling.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register associates a source type with its factory, replacing any previous one
func (r *Registry) Register(sourceType string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[sourceType] = factory
}

// Resolve builds the fetcher for a page source.
// Unknown types and invalid configurations are validation errors.
func (r *Registry) Resolve(source *models.PageSource) (docsysSvc.Fetcher, error) {
	if source == nil || source.Type == "" {
		return nil, fmt.Errorf("%w: source type is required", domain.ErrValidation)
	}

	r.mu.RLock()
	factory, ok := r.factories[source.Type]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: unknown source type %q", domain.ErrValidation, source.Type)
	}

	configuration := source.Configuration
	if len(configuration) == 0 {
		configuration = json.RawMessage("{}")
	}

	f, err := factory(configuration)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s configuration: %v", domain.ErrValidation, source.Type, err)
	}
	return f, nil
}

// Types returns the registered source types, sorted
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
