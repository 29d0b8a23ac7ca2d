// Package registry provides a global registry for policy factories.
// Policies register themselves in init() functions, allowing the CLI and
// runners to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/flappy-gym/internal/games/flappy"
)

// Policy chooses an action for every tick of an episode.
// Policies see both the encoded observation and the full state; learned
// policies should only use the observation.
type Policy interface {
	// Name returns the registry ID (e.g., "heuristic").
	Name() string

	// Description returns a one-line summary for listings.
	Description() string

	// Act picks the action for the next tick.
	Act(obs flappy.Observation, st flappy.State) flappy.Action
}

// PolicyInfo contains metadata about a registered policy.
type PolicyInfo struct {
	Name        string
	Description string
}

// Factory creates a policy for an environment with the given rules.
// seed drives any randomness the policy uses.
type Factory func(rules flappy.Rules, seed int64) Policy

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a policy factory to the registry.
// Panics if a policy with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: policy %q already registered", name))
	}

	factories[name] = f

	// Get description by creating a temporary instance
	descriptions[name] = f(flappy.Rules{}, 0).Description()
}

// List returns information about all registered policies, sorted by name.
func List() []PolicyInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PolicyInfo, 0, len(factories))
	for name := range factories {
		result = append(result, PolicyInfo{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a new policy by name.
func Create(name string, rules flappy.Rules, seed int64) (Policy, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown policy %q", name)
	}

	return f(rules, seed), nil
}

// Exists checks if a policy with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
