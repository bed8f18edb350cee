package graph

import "github.com/gyaneshwarpardhi/blueprint/internal/ids"

// Node is a single element of the graph: an ordered set of ports plus typed
// properties. The id and kind are immutable after construction; the graph
// owns the node exclusively once added. Safe for concurrent reads, mutations
// need external synchronization.
type Node struct {
	id           ids.NodeID
	kind         string // registered node kind, e.g. "core.flow.start"
	instanceName string

	displayName string
	description string
	ports       []Port
	properties  map[string]PropertyValue
	metadata    map[string]string

	hasExecFlow bool
}

// NewNode creates a bare node. Ports are attached afterwards, normally by the
// factory's kind template.
func NewNode(id ids.NodeID, kind, instanceName string) *Node {
	return &Node{
		id:           id,
		kind:         kind,
		instanceName: instanceName,
		properties:   make(map[string]PropertyValue),
		metadata:     make(map[string]string),
	}
}

func (n *Node) ID() ids.NodeID       { return n.id }
func (n *Node) Kind() string         { return n.kind }
func (n *Node) InstanceName() string { return n.instanceName }
func (n *Node) Description() string  { return n.description }

// DisplayName falls back to the instance name when no display name is set.
func (n *Node) DisplayName() string {
	if n.displayName == "" {
		return n.instanceName
	}
	return n.displayName
}

func (n *Node) SetDisplayName(name string) { n.displayName = name }
func (n *Node) SetDescription(desc string) { n.description = desc }

// HasExecutionFlow reports whether any port carries control flow.
func (n *Node) HasExecutionFlow() bool { return n.hasExecFlow }

// Ports returns the ordered port list. The slice is shared; callers must not
// modify it.
func (n *Node) Ports() []Port { return n.ports }

// AddPort appends a fully-constructed port. Used by the factory templates and
// by deserialization.
func (n *Node) AddPort(p Port) *Port {
	n.ports = append(n.ports, p)
	if p.IsExecution() {
		n.hasExecFlow = true
	}
	return &n.ports[len(n.ports)-1]
}

// FindPort returns the port with the given id, or nil.
func (n *Node) FindPort(id ids.PortID) *Port {
	for i := range n.ports {
		if n.ports[i].id == id {
			return &n.ports[i]
		}
	}
	return nil
}

// PortByName returns the first port with the given name and direction, or nil.
func (n *Node) PortByName(name string, direction Direction) *Port {
	for i := range n.ports {
		if n.ports[i].name == name && n.ports[i].direction == direction {
			return &n.ports[i]
		}
	}
	return nil
}

// InputPorts returns all input ports in declaration order.
func (n *Node) InputPorts() []*Port {
	var out []*Port
	for i := range n.ports {
		if n.ports[i].direction == DirInput {
			out = append(out, &n.ports[i])
		}
	}
	return out
}

// OutputPorts returns all output ports in declaration order.
func (n *Node) OutputPorts() []*Port {
	var out []*Port
	for i := range n.ports {
		if n.ports[i].direction == DirOutput {
			out = append(out, &n.ports[i])
		}
	}
	return out
}

// ExecInputs returns the execution input ports.
func (n *Node) ExecInputs() []*Port {
	var out []*Port
	for i := range n.ports {
		if n.ports[i].direction == DirInput && n.ports[i].IsExecution() {
			out = append(out, &n.ports[i])
		}
	}
	return out
}

// ExecOutputs returns the execution output ports.
func (n *Node) ExecOutputs() []*Port {
	var out []*Port
	for i := range n.ports {
		if n.ports[i].direction == DirOutput && n.ports[i].IsExecution() {
			out = append(out, &n.ports[i])
		}
	}
	return out
}

// SetProperty stores a typed property value under key.
func (n *Node) SetProperty(key string, value PropertyValue) {
	n.properties[key] = value
}

// Property returns the raw property value for key.
func (n *Node) Property(key string) (PropertyValue, bool) {
	v, ok := n.properties[key]
	return v, ok
}

// Properties returns the property map. Callers must not modify it.
func (n *Node) Properties() map[string]PropertyValue { return n.properties }

// StringProperty returns the string property for key; false on absence or
// kind mismatch.
func (n *Node) StringProperty(key string) (string, bool) {
	if v, ok := n.properties[key]; ok {
		return v.AsString()
	}
	return "", false
}

// IntProperty returns the int property for key; false on absence or kind
// mismatch.
func (n *Node) IntProperty(key string) (int64, bool) {
	if v, ok := n.properties[key]; ok {
		return v.AsInt()
	}
	return 0, false
}

// FloatProperty returns the float property for key; false on absence or kind
// mismatch.
func (n *Node) FloatProperty(key string) (float64, bool) {
	if v, ok := n.properties[key]; ok {
		return v.AsFloat()
	}
	return 0, false
}

// BoolProperty returns the bool property for key; false on absence or kind
// mismatch.
func (n *Node) BoolProperty(key string) (bool, bool) {
	if v, ok := n.properties[key]; ok {
		return v.AsBool()
	}
	return false, false
}

// SetMetadata stores a string metadata pair.
func (n *Node) SetMetadata(key, value string) { n.metadata[key] = value }

// Metadata returns the metadata value for key.
func (n *Node) Metadata(key string) (string, bool) {
	v, ok := n.metadata[key]
	return v, ok
}

// AllMetadata returns the metadata map. Callers must not modify it.
func (n *Node) AllMetadata() map[string]string { return n.metadata }
