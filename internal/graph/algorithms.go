package graph

import "github.com/gyaneshwarpardhi/blueprint/internal/ids"

type visitColor uint8

const (
	colorWhite visitColor = iota // unvisited
	colorGrey                    // on the traversal stack
	colorBlack                   // finished
)

// TopologicalSort orders nodes so that every execution-connected predecessor
// comes before its successors. Only Execution edges participate; data edges
// do not constrain statement order. Disconnected components are covered by
// starting a traversal from every unvisited node, in insertion order, which
// keeps the result deterministic.
//
// Fails with CodeExecutionCycle when the execution flow contains a cycle.
func (g *Graph) TopologicalSort() ([]ids.NodeID, error) {
	color := make(map[ids.NodeID]visitColor, len(g.nodes))
	order := make([]ids.NodeID, 0, len(g.nodes))

	for _, root := range g.nodes {
		if color[root.id] != colorWhite {
			continue
		}
		if err := g.execPostOrder(root.id, color, &order); err != nil {
			return nil, err
		}
	}

	// Post-order reversed is execution order.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, nil
}

// HasCycles reports whether the execution flow contains a cycle.
func (g *Graph) HasCycles() bool {
	_, err := g.TopologicalSort()
	return err != nil
}

// execPostOrder runs an iterative DFS over execution edges from start,
// appending finished nodes in post-order. An explicit work stack keeps the
// depth bounded by node count rather than goroutine stack size.
func (g *Graph) execPostOrder(start ids.NodeID, color map[ids.NodeID]visitColor, order *[]ids.NodeID) error {
	type frame struct {
		node ids.NodeID
		next int // index into the node's outgoing connection list
	}

	stack := []frame{{node: start}}
	color[start] = colorGrey

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		out := g.adjOut[top.node]

		advanced := false
		for top.next < len(out) {
			conn := g.Connection(out[top.next])
			top.next++
			if conn == nil || conn.Kind != ConnExecution {
				continue
			}
			switch color[conn.ToNode] {
			case colorGrey:
				return Errorf(CodeExecutionCycle,
					"execution flow contains a cycle through node %d", conn.ToNode)
			case colorWhite:
				color[conn.ToNode] = colorGrey
				stack = append(stack, frame{node: conn.ToNode})
				advanced = true
			}
			if advanced {
				break
			}
		}

		if !advanced && top.next >= len(out) {
			color[top.node] = colorBlack
			*order = append(*order, top.node)
			stack = stack[:len(stack)-1]
		}
	}
	return nil
}

// FindReachable returns the set of nodes reachable from start over all
// outgoing edges, execution and data alike. The start node itself is
// included.
func (g *Graph) FindReachable(start ids.NodeID) map[ids.NodeID]bool {
	reachable := make(map[ids.NodeID]bool)
	if !g.HasNode(start) {
		return reachable
	}

	stack := []ids.NodeID{start}
	reachable[start] = true

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, cid := range g.adjOut[current] {
			conn := g.Connection(cid)
			if conn == nil || reachable[conn.ToNode] {
				continue
			}
			reachable[conn.ToNode] = true
			stack = append(stack, conn.ToNode)
		}
	}
	return reachable
}
