// Package serialize persists graphs as versioned JSON documents and restores
// them with strict validation, so a corrupted or incompatible file is
// rejected with a coded error instead of producing a half-loaded graph.
package serialize

import "time"

// Wire format versioning. A document carries the schema version it was
// written with plus the window of core versions able to load it.
const (
	SchemaVersion = 1
	CoreVersion   = 1
)

// Document is the top-level persisted form.
type Document struct {
	Schema  Schema    `json:"schema"`
	ID      string    `json:"id"`
	SavedAt time.Time `json:"saved_at"`
	Graph   GraphDoc  `json:"graph"`
}

// Schema declares compatibility: a core whose version falls outside
// [CoreMin, CoreMax] must refuse the document.
type Schema struct {
	Version int `json:"version"`
	CoreMin int `json:"core_min"`
	CoreMax int `json:"core_max"`
}

type GraphDoc struct {
	ID          uint64            `json:"id"`
	Name        string            `json:"name"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Variables   []VariableDoc     `json:"variables,omitempty"`
	Nodes       []NodeDoc         `json:"nodes"`
	Connections []ConnectionDoc   `json:"connections"`
}

type VariableDoc struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type NodeDoc struct {
	ID           uint64                 `json:"id"`
	Kind         string                 `json:"kind"`
	InstanceName string                 `json:"instance_name"`
	DisplayName  string                 `json:"display_name,omitempty"`
	Description  string                 `json:"description,omitempty"`
	Ports        []PortDoc              `json:"ports"`
	Properties   map[string]PropertyDoc `json:"properties,omitempty"`
	Metadata     map[string]string      `json:"metadata,omitempty"`
}

// PortDoc persists a port. Direction is restricted to "Input" and "Output" on
// the wire; bidirectional ports do not round-trip.
type PortDoc struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Direction string `json:"direction"`
	Kind      string `json:"kind"`
	TypeName  string `json:"type_name,omitempty"`
}

// PropertyDoc is a tagged property value; Type selects which field is live.
type PropertyDoc struct {
	Type   string  `json:"type"`
	String string  `json:"string,omitempty"`
	Int    int64   `json:"int,omitempty"`
	Float  float64 `json:"float,omitempty"`
	Bool   bool    `json:"bool,omitempty"`
}

type ConnectionDoc struct {
	ID       uint64 `json:"id"`
	FromNode uint64 `json:"from_node"`
	FromPort uint64 `json:"from_port"`
	ToNode   uint64 `json:"to_node"`
	ToPort   uint64 `json:"to_port"`
	Kind     string `json:"kind"`
}
