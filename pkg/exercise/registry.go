package exercise

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry manages the collection of exercise configurations.
// Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	exercises map[string]Exercise
}

// NewRegistry creates an empty registry. Call LoadBuiltIn to seed the
// standard exercises.
func NewRegistry() *Registry {
	return &Registry{
		exercises: make(map[string]Exercise),
	}
}

// LoadBuiltIn registers the built-in exercises.
func (r *Registry) LoadBuiltIn() {
	for _, e := range BuiltIn() {
		r.Register(e)
	}
}

// Register inserts or overwrites a configuration under its lowercase id.
// Landmark names are uppercased and trimmed before storage. Thresholds,
// mode, and landmark resolvability are not checked here: dynamically
// generated configs are accepted as-is and validated per frame, so a
// partial config can still be inspected and edited.
func (r *Registry) Register(e Exercise) {
	e = e.normalize()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exercises[e.ID] = e
}

// Unregister removes a configuration by id (case-insensitive).
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.exercises, strings.ToLower(strings.TrimSpace(id)))
}

// Get retrieves a configuration by id (case-insensitive).
func (r *Registry) Get(id string) (Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.exercises[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Exercise{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, nil
}

// List returns all registered exercise ids, sorted alphabetically.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.exercises))
	for id := range r.exercises {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns every registered configuration, sorted by id.
func (r *Registry) All() []Exercise {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Exercise, 0, len(r.exercises))
	for _, e := range r.exercises {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of registered exercises.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.exercises)
}
