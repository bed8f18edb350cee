// Package factory instantiates graph nodes from registered kind templates and
// owns the process-wide node and port id counters.
package factory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gyaneshwarpardhi/blueprint/internal/graph"
)

// PortTemplate describes one port a kind stamps onto every new instance.
type PortTemplate struct {
	Name      string
	Direction graph.Direction
	Kind      graph.DataKind
	TypeName  string
}

// PropertyTemplate is a property key plus its default value.
type PropertyTemplate struct {
	Key     string
	Default graph.PropertyValue
}

// KindSpec is the full template for a node kind.
type KindSpec struct {
	Name        string
	DisplayName string
	Description string
	Category    string
	Ports       []PortTemplate
	Properties  []PropertyTemplate
}

// Catalog maps kind names to their specs.
// It is safe for concurrent reads; Register should only be called at startup.
type Catalog struct {
	mu    sync.RWMutex
	specs map[string]KindSpec
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{specs: make(map[string]KindSpec)}
}

// Register adds a kind spec. Panics on duplicate name to surface
// misconfiguration early.
func (c *Catalog) Register(spec KindSpec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.specs[spec.Name]; exists {
		panic(fmt.Sprintf("kind catalog: duplicate kind %q", spec.Name))
	}
	c.specs[spec.Name] = spec
}

// Get returns the spec for the given kind name.
func (c *Catalog) Get(kind string) (KindSpec, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	spec, ok := c.specs[kind]
	if !ok {
		return KindSpec{}, fmt.Errorf("no spec registered for node kind %q", kind)
	}
	return spec, nil
}

// Has reports whether a kind is registered.
func (c *Catalog) Has(kind string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.specs[kind]
	return ok
}

// Kinds returns all registered kind names, sorted.
func (c *Catalog) Kinds() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.specs))
	for k := range c.specs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
