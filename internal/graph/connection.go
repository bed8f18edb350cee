package graph

import "github.com/gyaneshwarpardhi/blueprint/internal/ids"

// ConnectionKind separates control-flow edges from data edges.
type ConnectionKind uint8

const (
	ConnExecution ConnectionKind = iota
	ConnData
)

func (k ConnectionKind) String() string {
	if k == ConnExecution {
		return "Execution"
	}
	return "Data"
}

// ParseConnectionKind resolves a wire-format connection kind name.
func ParseConnectionKind(name string) (ConnectionKind, bool) {
	switch name {
	case "Execution":
		return ConnExecution, true
	case "Data":
		return ConnData, true
	}
	return ConnData, false
}

// Connection is a directed edge between two ports. Pure value: validated at
// creation and never mutated in place.
type Connection struct {
	ID       ids.ConnectionID
	FromNode ids.NodeID
	FromPort ids.PortID
	ToNode   ids.NodeID
	ToPort   ids.PortID
	Kind     ConnectionKind
}
