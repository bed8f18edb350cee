// Package codegen turns a validated graph into source code for a target
// language. Generators are looked up by language tag through a Registry.
package codegen

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gyaneshwarpardhi/blueprint/internal/graph"
)

// Generator renders a whole graph into one source file.
type Generator interface {
	// Language returns the tag the generator is registered under, e.g. "cpp".
	Language() string
	// Generate walks the execution flow from the Start node and returns the
	// complete source text.
	Generate(g *graph.Graph) (string, error)
}

// Registry maps language tags to their generators.
// It is safe for concurrent reads; Register should only be called at startup.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]Generator
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{generators: make(map[string]Generator)}
}

// DefaultRegistry returns a registry with the built-in generators.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CppGenerator{})
	return r
}

// Register adds a generator. Panics on duplicate language to surface
// misconfiguration early.
func (r *Registry) Register(g Generator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.generators[g.Language()]; exists {
		panic(fmt.Sprintf("codegen registry: duplicate language %q", g.Language()))
	}
	r.generators[g.Language()] = g
}

// Get returns the generator for the given language tag.
func (r *Registry) Get(language string) (Generator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.generators[language]
	if !ok {
		return nil, fmt.Errorf("no generator registered for language %q", language)
	}
	return g, nil
}

// Languages returns all registered language tags, sorted.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.generators))
	for k := range r.generators {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
