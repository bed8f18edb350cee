package graph

import (
	"errors"

	"go.uber.org/multierr"

	"github.com/gyaneshwarpardhi/blueprint/internal/ids"
)

// ValidationResult aggregates every violation found in one pass, so a caller
// can report all broken connections in a corrupted document at once.
type ValidationResult struct {
	Errors   []*Error
	Warnings []*Error
}

// IsValid reports whether no errors were found. Warnings do not invalidate.
func (r *ValidationResult) IsValid() bool { return len(r.Errors) == 0 }

// Err combines all errors into a single error value, or nil when valid.
func (r *ValidationResult) Err() error {
	var combined error
	for _, e := range r.Errors {
		combined = multierr.Append(combined, e)
	}
	return combined
}

// HasCode reports whether any collected error carries the given code.
func (r *ValidationResult) HasCode(code int) bool {
	for _, e := range r.Errors {
		if e.Code == code {
			return true
		}
	}
	return false
}

func (r *ValidationResult) addf(code int, format string, args ...any) {
	r.Errors = append(r.Errors, Errorf(code, format, args...))
}

// Validate runs the non-mutating consistency and soundness check: structural
// invariants (connection endpoints resolve, kinds match ports, lookup and
// adjacency indices exactly mirror storage) plus program-shape rules (exactly
// one Start node, acyclic execution flow, reachability from Start).
func (g *Graph) Validate() *ValidationResult {
	result := &ValidationResult{}

	g.validateConnections(result)
	g.validateLookup(result)
	g.validateAdjacency(result)
	g.validateShape(result)

	return result
}

func (g *Graph) validateConnections(result *ValidationResult) {
	for _, conn := range g.connections {
		fromNode := g.Node(conn.FromNode)
		toNode := g.Node(conn.ToNode)

		if fromNode == nil {
			result.addf(CodeBrokenNodeReference,
				"connection %d references missing source node %d", conn.ID, conn.FromNode)
		}
		if toNode == nil {
			result.addf(CodeBrokenNodeReference,
				"connection %d references missing target node %d", conn.ID, conn.ToNode)
		}
		if fromNode == nil || toNode == nil {
			continue
		}

		fromPort := fromNode.FindPort(conn.FromPort)
		toPort := toNode.FindPort(conn.ToPort)
		if fromPort == nil {
			result.addf(CodeBrokenPortReference,
				"connection %d references missing source port %d on node %d",
				conn.ID, conn.FromPort, conn.FromNode)
		}
		if toPort == nil {
			result.addf(CodeBrokenPortReference,
				"connection %d references missing target port %d on node %d",
				conn.ID, conn.ToPort, conn.ToNode)
		}
		if fromPort == nil || toPort == nil {
			continue
		}

		// The stored kind must match the actual execution-ness of the ports.
		execEdge := conn.Kind == ConnExecution
		if execEdge != fromPort.IsExecution() || execEdge != toPort.IsExecution() {
			result.addf(CodeConnectionTypeError,
				"connection %d is %s but links port %q (%s) to port %q (%s)",
				conn.ID, conn.Kind, fromPort.name, fromPort.kind, toPort.name, toPort.kind)
		}
	}
}

func (g *Graph) validateLookup(result *ValidationResult) {
	if len(g.connLookup) != len(g.connections) {
		result.addf(CodeLookupMismatch,
			"connection lookup has %d entries for %d connections",
			len(g.connLookup), len(g.connections))
	}
	for id, index := range g.connLookup {
		if index < 0 || index >= len(g.connections) {
			result.addf(CodeLookupMismatch,
				"connection %d lookup index %d is out of range", id, index)
			continue
		}
		if g.connections[index].ID != id {
			result.addf(CodeLookupMismatch,
				"connection %d lookup points at connection %d", id, g.connections[index].ID)
		}
	}
}

// validateAdjacency checks both indices against primary storage: every stored
// connection appears exactly once under its endpoints, and every indexed id
// resolves to a stored connection whose endpoint matches the indexing node.
func (g *Graph) validateAdjacency(result *ValidationResult) {
	outSeen := make(map[ids.ConnectionID]int)
	inSeen := make(map[ids.ConnectionID]int)

	for node, list := range g.adjOut {
		for _, cid := range list {
			outSeen[cid]++
			conn := g.Connection(cid)
			if conn == nil {
				result.addf(CodeAdjacencyMismatch,
					"out-index of node %d holds dangling connection %d", node, cid)
				continue
			}
			if conn.FromNode != node {
				result.addf(CodeAdjacencyMismatch,
					"connection %d is indexed under node %d but starts at node %d",
					cid, node, conn.FromNode)
			}
		}
	}
	for node, list := range g.adjIn {
		for _, cid := range list {
			inSeen[cid]++
			conn := g.Connection(cid)
			if conn == nil {
				result.addf(CodeAdjacencyMismatch,
					"in-index of node %d holds dangling connection %d", node, cid)
				continue
			}
			if conn.ToNode != node {
				result.addf(CodeAdjacencyMismatch,
					"connection %d is indexed under node %d but ends at node %d",
					cid, node, conn.ToNode)
			}
		}
	}

	for _, conn := range g.connections {
		if outSeen[conn.ID] != 1 {
			result.addf(CodeAdjacencyMismatch,
				"connection %d appears %d times in the out-index, want 1",
				conn.ID, outSeen[conn.ID])
		}
		if inSeen[conn.ID] != 1 {
			result.addf(CodeAdjacencyMismatch,
				"connection %d appears %d times in the in-index, want 1",
				conn.ID, inSeen[conn.ID])
		}
	}
}

// validateShape enforces the program-shape rules: exactly one Start node, an
// acyclic execution flow, and (once any connections exist) every other node
// reachable from Start.
func (g *Graph) validateShape(result *ValidationResult) {
	if len(g.nodes) == 0 {
		return
	}

	var start *Node
	for _, node := range g.nodes {
		if node.kind != KindNameStart {
			continue
		}
		if start != nil {
			result.addf(CodeMissingStart,
				"graph has more than one Start node (%d and %d)", start.id, node.id)
			continue
		}
		start = node
	}
	if start == nil {
		result.addf(CodeMissingStart, "graph has no Start node")
	}

	if _, err := g.TopologicalSort(); err != nil {
		var coded *Error
		if errors.As(err, &coded) {
			result.Errors = append(result.Errors, coded)
		} else {
			result.addf(CodeExecutionCycle, "execution flow contains a cycle")
		}
	}

	if start != nil && len(g.connections) > 0 {
		reachable := g.FindReachable(start.id)
		// Value producers (literals, variable reads) hang off the flow by
		// outgoing data edges only. A node counts as part of the program when
		// it feeds one that is, transitively.
		for changed := true; changed; {
			changed = false
			for _, conn := range g.connections {
				if reachable[conn.ToNode] && !reachable[conn.FromNode] {
					reachable[conn.FromNode] = true
					changed = true
				}
			}
		}
		for _, node := range g.nodes {
			if !reachable[node.id] {
				result.addf(CodeUnreachableNode,
					"node %d (%s) is not reachable from the Start node", node.id, node.kind)
			}
		}
	}
}
