package registry

import (
	"fmt"
	"sync"

	"github.com/ledmatrix/scorebug/pkg/contracts"
)

// LeagueRegistry manages the registered sport adapters.
type LeagueRegistry struct {
	leagues map[string]contracts.SportAdapter
	mu      sync.RWMutex
}

// NewLeagueRegistry creates an empty registry.
func NewLeagueRegistry() *LeagueRegistry {
	return &LeagueRegistry{
		leagues: make(map[string]contracts.SportAdapter),
	}
}

// Register adds a sport adapter to the registry.
func (r *LeagueRegistry) Register(adapter contracts.SportAdapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := adapter.LeagueKey()
	if _, exists := r.leagues[key]; exists {
		return fmt.Errorf("league %s is already registered", key)
	}

	r.leagues[key] = adapter
	return nil
}

// Get retrieves a sport adapter by league key.
func (r *LeagueRegistry) Get(key string) (contracts.SportAdapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adapter, exists := r.leagues[key]
	return adapter, exists
}

// GetAll returns all registered adapters.
func (r *LeagueRegistry) GetAll() []contracts.SportAdapter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adapters := make([]contracts.SportAdapter, 0, len(r.leagues))
	for _, a := range r.leagues {
		adapters = append(adapters, a)
	}
	return adapters
}

// Count returns the number of registered leagues.
func (r *LeagueRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.leagues)
}
