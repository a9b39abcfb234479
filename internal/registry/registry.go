// Package registry provides a global registry for environment factories.
// Environments register themselves in init() functions, allowing the CLI
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/asteroids-pilot/internal/config"
	"github.com/vovakirdan/asteroids-pilot/internal/pilot"
	"github.com/vovakirdan/asteroids-pilot/internal/vision"
)

// Observation is what an environment hands the pilot each tick.
type Observation struct {
	Frame  *vision.Frame
	Reward float64 // points earned this tick; the pilot ignores it
	Done   bool
	Lives  int
}

// Env is the game the pilot plays. Environments own frame rendering,
// physics, scoring and life accounting.
type Env interface {
	// ID returns a unique identifier (e.g., "asteroids").
	// Used for CLI commands and result storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a new episode and returns the first observation.
	Reset(seed int64) (Observation, error)

	// Step applies one action and advances the environment by one tick.
	Step(a pilot.Action) (Observation, error)

	// Score returns the score accumulated in the current episode.
	Score() int
}

// Options carries everything a factory may need to build an environment.
type Options struct {
	Config    config.PilotConfig
	FramesDir string // frame directory for replay environments
}

// EnvInfo contains metadata about a registered environment.
type EnvInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of an environment.
type Factory func(opts Options) (Env, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds an environment factory to the registry.
// Typically called from an init() function.
// Panics if an environment with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: env %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered environments, sorted by ID.
func List() []EnvInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]EnvInfo, 0, len(factories))
	for id := range factories {
		result = append(result, EnvInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new environment by its ID.
// Returns an error if the ID is not registered or the factory fails.
func Create(id string, opts Options) (Env, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown env %q", id)
	}

	env, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: cannot create %q: %w", id, err)
	}
	return env, nil
}

// Exists checks if an environment with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
