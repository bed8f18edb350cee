package factory

import (
	"fmt"

	"github.com/gyaneshwarpardhi/blueprint/internal/graph"
	"github.com/gyaneshwarpardhi/blueprint/internal/ids"
)

// Factory stamps out nodes from catalog templates. Node and port ids come
// from its counters, so every port id is unique across the process even when
// nodes live in different graphs.
type Factory struct {
	catalog *Catalog
	nodeIDs *ids.Counter
	portIDs *ids.Counter
}

// New creates a factory over the given catalog, starting both counters at 1.
func New(catalog *Catalog) *Factory {
	return &Factory{
		catalog: catalog,
		nodeIDs: ids.NewCounter(1),
		portIDs: ids.NewCounter(1),
	}
}

// Catalog returns the catalog the factory instantiates from.
func (f *Factory) Catalog() *Catalog { return f.catalog }

// NewNode instantiates a kind with a freshly minted node id.
func (f *Factory) NewNode(kind, instanceName string) (*graph.Node, error) {
	return f.NewNodeWithID(ids.NodeID(f.nodeIDs.Next()), kind, instanceName)
}

// NewNodeWithID instantiates a kind under an explicit node id, advancing the
// node counter past it. Undo stacks use this to rebuild a deleted node under
// its original id.
func (f *Factory) NewNodeWithID(id ids.NodeID, kind, instanceName string) (*graph.Node, error) {
	if !id.IsValid() {
		return nil, fmt.Errorf("node id must be non-zero")
	}
	spec, err := f.catalog.Get(kind)
	if err != nil {
		return nil, err
	}
	f.nodeIDs.AdvanceTo(uint64(id) + 1)

	node := graph.NewNode(id, spec.Name, instanceName)
	node.SetDisplayName(spec.DisplayName)
	node.SetDescription(spec.Description)

	for _, tmpl := range spec.Ports {
		port := node.AddPort(graph.NewPort(
			ids.PortID(f.portIDs.Next()), tmpl.Direction, tmpl.Kind, tmpl.Name))
		if tmpl.TypeName != "" {
			if err := port.SetTypeName(tmpl.TypeName); err != nil {
				return nil, fmt.Errorf("kind %q port %q: %w", kind, tmpl.Name, err)
			}
		}
	}
	for _, prop := range spec.Properties {
		node.SetProperty(prop.Key, prop.Default)
	}
	return node, nil
}

// SynchronizeIDs raises both counters past the given maxima. Deserialization
// calls this after restoring a document so future mints cannot collide with
// persisted ids.
func (f *Factory) SynchronizeIDs(maxNode ids.NodeID, maxPort ids.PortID) {
	f.nodeIDs.AdvanceTo(uint64(maxNode) + 1)
	f.portIDs.AdvanceTo(uint64(maxPort) + 1)
}

// NextNodeID returns the node id the next NewNode call would use.
func (f *Factory) NextNodeID() ids.NodeID { return ids.NodeID(f.nodeIDs.Peek()) }

// NextPortID returns the port id the next minted port would use.
func (f *Factory) NextPortID() ids.PortID { return ids.PortID(f.portIDs.Peek()) }
