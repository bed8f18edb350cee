// Package graph implements the program model of the visual editor: typed
// nodes and ports, validated connections, adjacency bookkeeping, and the
// ordering/consistency algorithms the code generator depends on.
//
// A Graph is not internally synchronized. Concurrent reads are safe; any
// mutation requires external exclusion.
package graph

import "github.com/gyaneshwarpardhi/blueprint/internal/ids"

// Variable is a named, typed slot in the graph's scope, consumed by the
// variable get/set node kinds and declared in the generated preamble.
type Variable struct {
	Name string
	Kind DataKind
}

// Graph owns all nodes and connections. Node iteration order is insertion
// order; connection order carries no meaning (disconnect swap-removes).
type Graph struct {
	id   ids.GraphID
	name string

	nodes      []*Node
	nodeLookup map[ids.NodeID]*Node

	connections []Connection
	connLookup  map[ids.ConnectionID]int

	// Adjacency indices, maintained redundantly with connection storage:
	// adjOut[n] holds exactly the ids of connections leaving n, adjIn[n]
	// exactly those entering n.
	adjOut map[ids.NodeID][]ids.ConnectionID
	adjIn  map[ids.NodeID][]ids.ConnectionID

	metadata  map[string]string
	variables []Variable

	nextConnectionID ids.ConnectionID
}

// New creates an empty named graph.
func New(name string) *Graph {
	return NewWithID(ids.GraphID(1), name)
}

// NewWithID creates an empty graph with an explicit id (used when restoring
// a persisted graph).
func NewWithID(id ids.GraphID, name string) *Graph {
	if name == "" {
		name = "Untitled Graph"
	}
	return &Graph{
		id:               id,
		name:             name,
		nodeLookup:       make(map[ids.NodeID]*Node),
		connLookup:       make(map[ids.ConnectionID]int),
		adjOut:           make(map[ids.NodeID][]ids.ConnectionID),
		adjIn:            make(map[ids.NodeID][]ids.ConnectionID),
		metadata:         make(map[string]string),
		nextConnectionID: 1,
	}
}

func (g *Graph) ID() ids.GraphID      { return g.id }
func (g *Graph) Name() string         { return g.name }
func (g *Graph) SetName(name string)  { g.name = name }
func (g *Graph) NodeCount() int       { return len(g.nodes) }
func (g *Graph) ConnectionCount() int { return len(g.connections) }
func (g *Graph) Empty() bool          { return len(g.nodes) == 0 }

// -----------------------------------------------------------------------
// Nodes
// -----------------------------------------------------------------------

// AddNode transfers ownership of node into the graph.
func (g *Graph) AddNode(node *Node) (ids.NodeID, error) {
	if node == nil {
		return 0, Errorf(CodeNodeNotFound, "cannot add nil node")
	}
	if !node.id.IsValid() {
		return 0, Errorf(CodeNodeNotFound, "cannot add node with invalid id")
	}
	if _, exists := g.nodeLookup[node.id]; exists {
		return 0, Errorf(CodeDuplicateNode, "node %d already exists", node.id)
	}

	g.nodeLookup[node.id] = node
	g.nodes = append(g.nodes, node)
	g.adjOut[node.id] = nil
	g.adjIn[node.id] = nil
	return node.id, nil
}

// RemoveNode deletes the node and every connection touching it, in either
// direction, keeping both adjacency indices consistent.
func (g *Graph) RemoveNode(id ids.NodeID) error {
	if _, ok := g.nodeLookup[id]; !ok {
		return Errorf(CodeNodeNotFound, "node %d does not exist", id)
	}

	// Collect first: Disconnect mutates the adjacency lists we iterate.
	var incident []ids.ConnectionID
	incident = append(incident, g.adjOut[id]...)
	incident = append(incident, g.adjIn[id]...)
	for _, cid := range incident {
		if err := g.Disconnect(cid); err != nil {
			return err
		}
	}

	delete(g.nodeLookup, id)
	delete(g.adjOut, id)
	delete(g.adjIn, id)

	for i, node := range g.nodes {
		if node.id == id {
			g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
			break
		}
	}
	return nil
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id ids.NodeID) *Node {
	return g.nodeLookup[id]
}

// HasNode reports whether a node with the given id exists.
func (g *Graph) HasNode(id ids.NodeID) bool {
	_, ok := g.nodeLookup[id]
	return ok
}

// Nodes returns all nodes in insertion order. Callers must not modify the
// slice.
func (g *Graph) Nodes() []*Node { return g.nodes }

// -----------------------------------------------------------------------
// Connections
// -----------------------------------------------------------------------

// Connect validates and creates a connection from an output port on one node
// to an input port on another. The connection kind is derived from the source
// port: execution ports make Execution edges, everything else Data edges.
func (g *Graph) Connect(fromNode ids.NodeID, fromPort ids.PortID, toNode ids.NodeID, toPort ids.PortID) (ids.ConnectionID, error) {
	from, to, err := g.resolveEndpoints(fromNode, fromPort, toNode, toPort)
	if err != nil {
		return 0, err
	}
	if fromNode == toNode {
		return 0, Errorf(CodeSelfReference,
			"cannot connect node %d to itself", fromNode)
	}
	if !from.CanConnectTo(to) {
		return 0, Errorf(CodeTypeMismatch,
			"port %q (%s) cannot connect to port %q (%s)",
			from.name, from.kind, to.name, to.kind)
	}
	if g.hasEdge(fromNode, fromPort, toNode, toPort) {
		return 0, Errorf(CodeDuplicateConnection,
			"connection %d:%d -> %d:%d already exists", fromNode, fromPort, toNode, toPort)
	}

	kind := ConnData
	if from.IsExecution() {
		kind = ConnExecution
	}

	id := g.nextConnectionID
	g.nextConnectionID++

	g.storeConnection(Connection{
		ID:       id,
		FromNode: fromNode,
		FromPort: fromPort,
		ToNode:   toNode,
		ToPort:   toPort,
		Kind:     kind,
	})
	return id, nil
}

// AppendConnection restores a connection from persistence. It re-runs the
// same validation as Connect, additionally rejects duplicate connection ids,
// and advances the connection-id counter past the restored id.
func (g *Graph) AppendConnection(conn Connection) error {
	if !conn.ID.IsValid() {
		return Errorf(CodeInvalidConnection, "connection id must be non-zero")
	}
	if _, exists := g.connLookup[conn.ID]; exists {
		return Errorf(CodeDuplicateConnection, "connection id %d already exists", conn.ID)
	}

	from, to, err := g.resolveEndpoints(conn.FromNode, conn.FromPort, conn.ToNode, conn.ToPort)
	if err != nil {
		return err
	}
	if conn.FromNode == conn.ToNode {
		return Errorf(CodeSelfReference,
			"cannot connect node %d to itself", conn.FromNode)
	}
	if !from.CanConnectTo(to) {
		return Errorf(CodeTypeMismatch,
			"port %q (%s) cannot connect to port %q (%s)",
			from.name, from.kind, to.name, to.kind)
	}
	if g.hasEdge(conn.FromNode, conn.FromPort, conn.ToNode, conn.ToPort) {
		return Errorf(CodeDuplicateConnection,
			"connection %d:%d -> %d:%d already exists",
			conn.FromNode, conn.FromPort, conn.ToNode, conn.ToPort)
	}

	wantKind := ConnData
	if from.IsExecution() {
		wantKind = ConnExecution
	}
	if conn.Kind != wantKind {
		return Errorf(CodeTypeMismatch,
			"connection %d declared %s but source port %q is %s",
			conn.ID, conn.Kind, from.name, wantKind)
	}

	g.storeConnection(conn)
	if conn.ID >= g.nextConnectionID {
		g.nextConnectionID = conn.ID + 1
	}
	return nil
}

// Disconnect removes a connection from storage and both adjacency lists.
func (g *Graph) Disconnect(id ids.ConnectionID) error {
	index, ok := g.connLookup[id]
	if !ok {
		return Errorf(CodeConnectionNotFound, "connection %d not found", id)
	}

	conn := g.connections[index]
	g.adjOut[conn.FromNode] = removeID(g.adjOut[conn.FromNode], id)
	g.adjIn[conn.ToNode] = removeID(g.adjIn[conn.ToNode], id)
	delete(g.connLookup, id)

	// Swap with the last entry and pop; connection order is not meaningful.
	last := len(g.connections) - 1
	if index < last {
		g.connections[index] = g.connections[last]
		g.connLookup[g.connections[index].ID] = index
	}
	g.connections = g.connections[:last]
	return nil
}

// Connection returns the connection with the given id, or nil.
func (g *Graph) Connection(id ids.ConnectionID) *Connection {
	if index, ok := g.connLookup[id]; ok {
		return &g.connections[index]
	}
	return nil
}

// HasConnection reports whether a connection with the given id exists.
func (g *Graph) HasConnection(id ids.ConnectionID) bool {
	_, ok := g.connLookup[id]
	return ok
}

// Connections returns all connections. Callers must not modify the slice.
func (g *Graph) Connections() []Connection { return g.connections }

// ConnectionsFrom returns the ids of connections leaving node.
func (g *Graph) ConnectionsFrom(node ids.NodeID) []ids.ConnectionID {
	return g.adjOut[node]
}

// ConnectionsTo returns the ids of connections entering node.
func (g *Graph) ConnectionsTo(node ids.NodeID) []ids.ConnectionID {
	return g.adjIn[node]
}

// -----------------------------------------------------------------------
// Variables & metadata
// -----------------------------------------------------------------------

// AddVariable declares a graph-scope variable.
func (g *Graph) AddVariable(name string, kind DataKind) error {
	if name == "" {
		return Errorf(CodeInvalidPropertyValue, "variable name cannot be empty")
	}
	for _, v := range g.variables {
		if v.Name == name {
			return Errorf(CodeInvalidPropertyValue, "variable %q already exists", name)
		}
	}
	g.variables = append(g.variables, Variable{Name: name, Kind: kind})
	return nil
}

// Variable returns the declared variable with the given name, or nil.
func (g *Graph) Variable(name string) *Variable {
	for i := range g.variables {
		if g.variables[i].Name == name {
			return &g.variables[i]
		}
	}
	return nil
}

// Variables returns all declared variables in declaration order.
func (g *Graph) Variables() []Variable { return g.variables }

// SetMetadata stores a string metadata pair on the graph.
func (g *Graph) SetMetadata(key, value string) { g.metadata[key] = value }

// Metadata returns the metadata value for key.
func (g *Graph) Metadata(key string) (string, bool) {
	v, ok := g.metadata[key]
	return v, ok
}

// AllMetadata returns the graph metadata map. Callers must not modify it.
func (g *Graph) AllMetadata() map[string]string { return g.metadata }

// -----------------------------------------------------------------------
// Internal helpers
// -----------------------------------------------------------------------

func (g *Graph) resolveEndpoints(fromNode ids.NodeID, fromPort ids.PortID, toNode ids.NodeID, toPort ids.PortID) (*Port, *Port, error) {
	fromN, ok := g.nodeLookup[fromNode]
	if !ok {
		return nil, nil, Errorf(CodeNodeNotFound, "source node %d does not exist", fromNode)
	}
	toN, ok := g.nodeLookup[toNode]
	if !ok {
		return nil, nil, Errorf(CodeNodeNotFound, "target node %d does not exist", toNode)
	}

	from := fromN.FindPort(fromPort)
	if from == nil {
		return nil, nil, Errorf(CodeSourcePortNotFound,
			"source port %d does not exist on node %d", fromPort, fromNode)
	}
	to := toN.FindPort(toPort)
	if to == nil {
		return nil, nil, Errorf(CodeTargetPortNotFound,
			"target port %d does not exist on node %d", toPort, toNode)
	}
	return from, to, nil
}

func (g *Graph) hasEdge(fromNode ids.NodeID, fromPort ids.PortID, toNode ids.NodeID, toPort ids.PortID) bool {
	for _, cid := range g.adjOut[fromNode] {
		conn := g.Connection(cid)
		if conn != nil && conn.FromPort == fromPort && conn.ToNode == toNode && conn.ToPort == toPort {
			return true
		}
	}
	return false
}

func (g *Graph) storeConnection(conn Connection) {
	g.connLookup[conn.ID] = len(g.connections)
	g.connections = append(g.connections, conn)
	g.adjOut[conn.FromNode] = append(g.adjOut[conn.FromNode], conn.ID)
	g.adjIn[conn.ToNode] = append(g.adjIn[conn.ToNode], conn.ID)
}

func removeID(list []ids.ConnectionID, id ids.ConnectionID) []ids.ConnectionID {
	for i, v := range list {
		if v == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
