package serialize

import (
	"strings"
	"testing"

	"github.com/gyaneshwarpardhi/blueprint/internal/factory"
	"github.com/gyaneshwarpardhi/blueprint/internal/graph"
)

func sampleGraph(t *testing.T, f *factory.Factory) *graph.Graph {
	t.Helper()
	g := graph.New("sample")
	g.SetMetadata("author", "tester")
	if err := g.AddVariable("count", graph.KindInt64); err != nil {
		t.Fatalf("AddVariable: %v", err)
	}

	add := func(kind string) *graph.Node {
		node, err := f.NewNode(kind, kind)
		if err != nil {
			t.Fatalf("NewNode(%s): %v", kind, err)
		}
		if _, err := g.AddNode(node); err != nil {
			t.Fatalf("AddNode(%s): %v", kind, err)
		}
		return node
	}

	start := add(graph.KindNameStart)
	print := add(graph.KindNamePrintString)
	lit := add(graph.KindNameStringLit)
	lit.SetProperty("value", graph.StringValue("hello"))

	connect := func(from *graph.Node, fp string, to *graph.Node, tp string) {
		fromPort := from.PortByName(fp, graph.DirOutput)
		toPort := to.PortByName(tp, graph.DirInput)
		if _, err := g.Connect(from.ID(), fromPort.ID(), to.ID(), toPort.ID()); err != nil {
			t.Fatalf("Connect: %v", err)
		}
	}
	connect(start, "out_exec", print, "in_exec")
	connect(lit, "value", print, "value")
	return g
}

func TestRoundTrip(t *testing.T) {
	f := factory.New(factory.DefaultCatalog())
	s := New(f)
	g := sampleGraph(t, f)

	data, err := s.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	restored, err := s.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if restored.Name() != g.Name() {
		t.Errorf("Name() = %q, want %q", restored.Name(), g.Name())
	}
	if restored.NodeCount() != g.NodeCount() {
		t.Errorf("NodeCount() = %d, want %d", restored.NodeCount(), g.NodeCount())
	}
	if restored.ConnectionCount() != g.ConnectionCount() {
		t.Errorf("ConnectionCount() = %d, want %d", restored.ConnectionCount(), g.ConnectionCount())
	}
	if v, _ := restored.Metadata("author"); v != "tester" {
		t.Errorf("metadata author = %q", v)
	}
	if v := restored.Variable("count"); v == nil || v.Kind != graph.KindInt64 {
		t.Errorf("variable count = %+v", v)
	}

	if result := restored.Validate(); len(result.Errors) != 0 {
		// The sample has no End node but must be structurally clean.
		for _, e := range result.Errors {
			if e.Code >= graph.CodeBrokenNodeReference && e.Code <= graph.CodeAdjacencyMismatch {
				t.Errorf("structural violation after restore: %v", e)
			}
		}
	}

	// Properties survive with their types.
	for _, node := range restored.Nodes() {
		if node.Kind() != graph.KindNameStringLit {
			continue
		}
		if v, ok := node.StringProperty("value"); !ok || v != "hello" {
			t.Errorf("restored literal value = %q, %v", v, ok)
		}
	}
}

func TestRestoreSynchronizesCounters(t *testing.T) {
	writer := factory.New(factory.DefaultCatalog())
	s := New(writer)
	data, err := s.Marshal(sampleGraph(t, writer))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	reader := factory.New(factory.DefaultCatalog())
	restored, err := New(reader).Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	node, err := reader.NewNode(graph.KindNameEnd, "end")
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}
	if restored.HasNode(node.ID()) {
		t.Errorf("fresh node id %d collides with a restored node", node.ID())
	}
	for _, p := range node.Ports() {
		for _, existing := range restored.Nodes() {
			if existing.FindPort(p.ID()) != nil {
				t.Errorf("fresh port id %d collides with a restored port", p.ID())
			}
		}
	}
}

func TestUnmarshalRejections(t *testing.T) {
	s := New(factory.New(factory.DefaultCatalog()))

	tests := []struct {
		name     string
		doc      string
		wantCode int
	}{
		{
			name:     "malformed json",
			doc:      `{"schema":`,
			wantCode: graph.CodeInvalidDocument,
		},
		{
			name:     "unsupported schema version",
			doc:      `{"schema":{"version":99,"core_min":1,"core_max":1},"graph":{"nodes":[],"connections":[]}}`,
			wantCode: graph.CodeInvalidSchemaVersion,
		},
		{
			name:     "core version outside window",
			doc:      `{"schema":{"version":1,"core_min":5,"core_max":9},"graph":{"nodes":[],"connections":[]}}`,
			wantCode: graph.CodeInvalidSchemaVersion,
		},
		{
			name: "node without id",
			doc: `{"schema":{"version":1,"core_min":1,"core_max":1},"graph":{"nodes":[
				{"kind":"core.flow.start","instance_name":"s","ports":[]}],"connections":[]}}`,
			wantCode: graph.CodeMissingField,
		},
		{
			name: "node without kind",
			doc: `{"schema":{"version":1,"core_min":1,"core_max":1},"graph":{"nodes":[
				{"id":1,"instance_name":"s","ports":[]}],"connections":[]}}`,
			wantCode: graph.CodeMissingField,
		},
		{
			name: "unknown node kind",
			doc: `{"schema":{"version":1,"core_min":1,"core_max":1},"graph":{"nodes":[
				{"id":1,"kind":"core.flow.teleport","instance_name":"s","ports":[]}],"connections":[]}}`,
			wantCode: graph.CodeInvalidEnum,
		},
		{
			name: "inout direction rejected on the wire",
			doc: `{"schema":{"version":1,"core_min":1,"core_max":1},"graph":{"nodes":[
				{"id":1,"kind":"core.flow.start","instance_name":"s","ports":[
					{"id":1,"name":"p","direction":"InOut","kind":"int32"}]}],"connections":[]}}`,
			wantCode: graph.CodeInvalidEnum,
		},
		{
			name: "unknown data kind",
			doc: `{"schema":{"version":1,"core_min":1,"core_max":1},"graph":{"nodes":[
				{"id":1,"kind":"core.flow.start","instance_name":"s","ports":[
					{"id":1,"name":"p","direction":"Input","kind":"quaternion"}]}],"connections":[]}}`,
			wantCode: graph.CodeInvalidEnum,
		},
		{
			name: "unknown property type",
			doc: `{"schema":{"version":1,"core_min":1,"core_max":1},"graph":{"nodes":[
				{"id":1,"kind":"core.literal.string","instance_name":"s","ports":[],
				 "properties":{"value":{"type":"complex"}}}],"connections":[]}}`,
			wantCode: graph.CodeInvalidPropertyValue,
		},
		{
			name: "type name on primitive port",
			doc: `{"schema":{"version":1,"core_min":1,"core_max":1},"graph":{"nodes":[
				{"id":1,"kind":"core.flow.start","instance_name":"s","ports":[
					{"id":1,"name":"p","direction":"Input","kind":"int32","type_name":"int"}]}],"connections":[]}}`,
			wantCode: graph.CodeInvalidTypeName,
		},
		{
			name: "unknown connection kind",
			doc: `{"schema":{"version":1,"core_min":1,"core_max":1},"graph":{"nodes":[],
				"connections":[{"id":1,"from_node":1,"from_port":1,"to_node":2,"to_port":2,"kind":"Quantum"}]}}`,
			wantCode: graph.CodeInvalidEnum,
		},
		{
			name: "connection to missing node",
			doc: `{"schema":{"version":1,"core_min":1,"core_max":1},"graph":{"nodes":[],
				"connections":[{"id":1,"from_node":1,"from_port":1,"to_node":2,"to_port":2,"kind":"Data"}]}}`,
			wantCode: graph.CodeInvalidConnection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Unmarshal([]byte(tt.doc))
			if graph.CodeOf(err) != tt.wantCode {
				t.Errorf("Unmarshal err = %v, want code %d", err, tt.wantCode)
			}
		})
	}
}

// A broken connection must be reported with its index in the document.
func TestInvalidConnectionNamesIndex(t *testing.T) {
	s := New(factory.New(factory.DefaultCatalog()))
	doc := `{"schema":{"version":1,"core_min":1,"core_max":1},"graph":{"nodes":[
		{"id":1,"kind":"core.flow.start","instance_name":"s","ports":[
			{"id":1,"name":"out_exec","direction":"Output","kind":"execution"}]},
		{"id":2,"kind":"core.flow.end","instance_name":"e","ports":[
			{"id":2,"name":"in_exec","direction":"Input","kind":"execution"}]}],
		"connections":[
			{"id":1,"from_node":1,"from_port":1,"to_node":2,"to_port":2,"kind":"Execution"},
			{"id":2,"from_node":1,"from_port":1,"to_node":9,"to_port":9,"kind":"Execution"}]}}`

	_, err := s.Unmarshal([]byte(doc))
	if graph.CodeOf(err) != graph.CodeInvalidConnection {
		t.Fatalf("Unmarshal err = %v, want code %d", err, graph.CodeInvalidConnection)
	}
	if !strings.Contains(err.Error(), "connection 1:") {
		t.Errorf("error does not name the offending index: %v", err)
	}
}
