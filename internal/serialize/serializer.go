package serialize

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/gyaneshwarpardhi/blueprint/internal/factory"
	"github.com/gyaneshwarpardhi/blueprint/internal/graph"
	"github.com/gyaneshwarpardhi/blueprint/internal/ids"
)

// Serializer converts between graphs and documents. It holds the factory so
// restoring a document can advance the shared id counters past every
// persisted id.
type Serializer struct {
	factory *factory.Factory
}

// New creates a serializer bound to the given factory.
func New(f *factory.Factory) *Serializer {
	return &Serializer{factory: f}
}

// Marshal renders the graph as an indented JSON document. Each call mints a
// fresh document id.
func (s *Serializer) Marshal(g *graph.Graph) ([]byte, error) {
	doc := Document{
		Schema: Schema{
			Version: SchemaVersion,
			CoreMin: 1,
			CoreMax: CoreVersion,
		},
		ID:      uuid.NewString(),
		SavedAt: time.Now().UTC(),
		Graph:   encodeGraph(g),
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Unmarshal parses and validates a document, returning a fully restored
// graph. The factory's id counters are advanced past every restored id.
func (s *Serializer) Unmarshal(data []byte) (*graph.Graph, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, graph.Errorf(graph.CodeInvalidDocument, "malformed document: %v", err)
	}
	return s.Restore(&doc)
}

// Restore rebuilds a graph from an already parsed document.
func (s *Serializer) Restore(doc *Document) (*graph.Graph, error) {
	if doc.Schema.Version != SchemaVersion {
		return nil, graph.Errorf(graph.CodeInvalidSchemaVersion,
			"unsupported schema version %d, want %d", doc.Schema.Version, SchemaVersion)
	}
	if CoreVersion < doc.Schema.CoreMin || CoreVersion > doc.Schema.CoreMax {
		return nil, graph.Errorf(graph.CodeInvalidSchemaVersion,
			"document requires core version %d..%d, this core is %d",
			doc.Schema.CoreMin, doc.Schema.CoreMax, CoreVersion)
	}

	g := graph.NewWithID(ids.GraphID(doc.Graph.ID), doc.Graph.Name)
	for k, v := range doc.Graph.Metadata {
		g.SetMetadata(k, v)
	}

	for _, v := range doc.Graph.Variables {
		kind, ok := graph.ParseDataKind(v.Kind)
		if !ok {
			return nil, graph.Errorf(graph.CodeInvalidEnum,
				"variable %q: unknown data kind %q", v.Name, v.Kind)
		}
		if err := g.AddVariable(v.Name, kind); err != nil {
			return nil, err
		}
	}

	var maxNode ids.NodeID
	var maxPort ids.PortID
	for i := range doc.Graph.Nodes {
		node, err := s.decodeNode(&doc.Graph.Nodes[i])
		if err != nil {
			return nil, err
		}
		if _, err := g.AddNode(node); err != nil {
			return nil, err
		}
		if node.ID() > maxNode {
			maxNode = node.ID()
		}
		for _, p := range node.Ports() {
			if p.ID() > maxPort {
				maxPort = p.ID()
			}
		}
	}

	for i, cd := range doc.Graph.Connections {
		kind, ok := graph.ParseConnectionKind(cd.Kind)
		if !ok {
			return nil, graph.Errorf(graph.CodeInvalidEnum,
				"connection %d: unknown kind %q", i, cd.Kind)
		}
		err := g.AppendConnection(graph.Connection{
			ID:       ids.ConnectionID(cd.ID),
			FromNode: ids.NodeID(cd.FromNode),
			FromPort: ids.PortID(cd.FromPort),
			ToNode:   ids.NodeID(cd.ToNode),
			ToPort:   ids.PortID(cd.ToPort),
			Kind:     kind,
		})
		if err != nil {
			return nil, graph.Errorf(graph.CodeInvalidConnection,
				"connection %d: %v", i, err)
		}
	}

	if s.factory != nil {
		s.factory.SynchronizeIDs(maxNode, maxPort)
	}
	return g, nil
}

func encodeGraph(g *graph.Graph) GraphDoc {
	doc := GraphDoc{
		ID:       uint64(g.ID()),
		Name:     g.Name(),
		Metadata: g.AllMetadata(),
	}
	for _, v := range g.Variables() {
		doc.Variables = append(doc.Variables, VariableDoc{Name: v.Name, Kind: v.Kind.String()})
	}
	for _, node := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, encodeNode(node))
	}
	for _, conn := range g.Connections() {
		doc.Connections = append(doc.Connections, ConnectionDoc{
			ID:       uint64(conn.ID),
			FromNode: uint64(conn.FromNode),
			FromPort: uint64(conn.FromPort),
			ToNode:   uint64(conn.ToNode),
			ToPort:   uint64(conn.ToPort),
			Kind:     conn.Kind.String(),
		})
	}
	return doc
}

func encodeNode(node *graph.Node) NodeDoc {
	doc := NodeDoc{
		ID:           uint64(node.ID()),
		Kind:         node.Kind(),
		InstanceName: node.InstanceName(),
		DisplayName:  node.DisplayName(),
		Description:  node.Description(),
	}
	for _, p := range node.Ports() {
		doc.Ports = append(doc.Ports, PortDoc{
			ID:        uint64(p.ID()),
			Name:      p.Name(),
			Direction: p.Direction().String(),
			Kind:      p.Kind().String(),
			TypeName:  p.TypeName(),
		})
	}
	if props := node.Properties(); len(props) > 0 {
		doc.Properties = make(map[string]PropertyDoc, len(props))
		for key, value := range props {
			doc.Properties[key] = encodeProperty(value)
		}
	}
	if meta := node.AllMetadata(); len(meta) > 0 {
		doc.Metadata = meta
	}
	return doc
}

func encodeProperty(v graph.PropertyValue) PropertyDoc {
	switch v.Kind() {
	case graph.PropString:
		s, _ := v.AsString()
		return PropertyDoc{Type: "string", String: s}
	case graph.PropInt:
		i, _ := v.AsInt()
		return PropertyDoc{Type: "int", Int: i}
	case graph.PropFloat:
		f, _ := v.AsFloat()
		return PropertyDoc{Type: "float", Float: f}
	default:
		b, _ := v.AsBool()
		return PropertyDoc{Type: "bool", Bool: b}
	}
}

func (s *Serializer) decodeNode(doc *NodeDoc) (*graph.Node, error) {
	if doc.ID == 0 {
		return nil, graph.Errorf(graph.CodeMissingField, "node is missing an id")
	}
	if doc.Kind == "" {
		return nil, graph.Errorf(graph.CodeMissingField, "node %d is missing a kind", doc.ID)
	}
	if s.factory != nil && !s.factory.Catalog().Has(doc.Kind) {
		return nil, graph.Errorf(graph.CodeInvalidEnum,
			"node %d: unknown node kind %q", doc.ID, doc.Kind)
	}

	node := graph.NewNode(ids.NodeID(doc.ID), doc.Kind, doc.InstanceName)
	node.SetDisplayName(doc.DisplayName)
	node.SetDescription(doc.Description)

	for _, pd := range doc.Ports {
		if pd.ID == 0 {
			return nil, graph.Errorf(graph.CodeMissingField,
				"node %d: port %q is missing an id", doc.ID, pd.Name)
		}
		direction, ok := graph.ParseDirection(pd.Direction)
		if !ok || direction == graph.DirInOut {
			return nil, graph.Errorf(graph.CodeInvalidEnum,
				"node %d port %q: direction %q is not Input or Output",
				doc.ID, pd.Name, pd.Direction)
		}
		kind, ok := graph.ParseDataKind(pd.Kind)
		if !ok {
			return nil, graph.Errorf(graph.CodeInvalidEnum,
				"node %d port %q: unknown data kind %q", doc.ID, pd.Name, pd.Kind)
		}
		port := node.AddPort(graph.NewPort(ids.PortID(pd.ID), direction, kind, pd.Name))
		if pd.TypeName != "" {
			if err := port.SetTypeName(pd.TypeName); err != nil {
				return nil, err
			}
		}
	}

	for key, pd := range doc.Properties {
		value, err := decodeProperty(pd)
		if err != nil {
			return nil, graph.Errorf(graph.CodeInvalidPropertyValue,
				"node %d property %q: %v", doc.ID, key, err)
		}
		node.SetProperty(key, value)
	}
	for k, v := range doc.Metadata {
		node.SetMetadata(k, v)
	}
	return node, nil
}

func decodeProperty(doc PropertyDoc) (graph.PropertyValue, error) {
	switch doc.Type {
	case "string":
		return graph.StringValue(doc.String), nil
	case "int":
		return graph.IntValue(doc.Int), nil
	case "float":
		return graph.FloatValue(doc.Float), nil
	case "bool":
		return graph.BoolValue(doc.Bool), nil
	default:
		return graph.PropertyValue{}, graph.Errorf(graph.CodeInvalidEnum,
			"unknown property type %q", doc.Type)
	}
}
