package layout

import "github.com/matzehuels/bpmnlayout/pkg/bpmn"

// VisitedSet records node IDs that have been placed on a grid.
type VisitedSet map[string]bool

// Add marks id as visited.
func (v VisitedSet) Add(id string) { v[id] = true }

// Has reports whether id was visited.
func (v VisitedSet) Has(id string) bool { return v[id] }

// AddToGrid places the unvisited targets of node relative to it and returns
// them for further traversal, most recently placed first.
//
// Targets of a non-gateway node all go right of the node. For a gateway the
// first placed target goes right of the gateway and every further target goes
// one row below the previously placed one, so branches share a column.
//
// A merge point whose predecessors are not all visited is deferred while
// there is something else to explore, unless it closes a loop through node.
// When node has several outgoing flows, gateway targets are returned first.
//
// AddToGrid keeps no state of its own; grid and visited are updated in place
// and stack is only inspected.
func AddToGrid(node *bpmn.FlowNode, grid *Grid, visited VisitedSet, stack []*bpmn.FlowNode) []*bpmn.FlowNode {
	var (
		next     []*bpmn.FlowNode
		previous *bpmn.FlowNode
	)
	for _, target := range node.Targets() {
		if visited.Has(target.ID) {
			continue
		}
		if (previous != nil || len(stack) > 0) &&
			isFutureIncoming(target, visited) &&
			!closesLoop(target, node, visited) {
			continue
		}

		switch {
		case !node.IsGateway() || previous == nil:
			grid.AddAfter(node.ID, target.ID)
		default:
			grid.AddBelow(previous.ID, target.ID)
		}

		previous = target
		visited.Add(target.ID)
		next = append([]*bpmn.FlowNode{target}, next...)
	}

	if len(node.Outgoing) > 1 {
		next = gatewaysFirst(next)
	}
	return next
}

// isFutureIncoming reports whether n merges several flows and at least one
// of its predecessors has not been visited yet.
func isFutureIncoming(n *bpmn.FlowNode, visited VisitedSet) bool {
	if len(n.Incoming) <= 1 {
		return false
	}
	return firstUnvisitedSource(n, visited) != nil
}

func firstUnvisitedSource(n *bpmn.FlowNode, visited VisitedSet) *bpmn.FlowNode {
	for _, src := range n.Sources() {
		if !visited.Has(src.ID) {
			return src
		}
	}
	return nil
}

// closesLoop reports whether pending can reach current, or the first
// predecessor of pending that is still unvisited.
func closesLoop(pending, current *bpmn.FlowNode, visited VisitedSet) bool {
	if Reachable(pending, current) {
		return true
	}
	return Reachable(pending, firstUnvisitedSource(pending, visited))
}

func gatewaysFirst(nodes []*bpmn.FlowNode) []*bpmn.FlowNode {
	out := make([]*bpmn.FlowNode, 0, len(nodes))
	for _, n := range nodes {
		if n.IsGateway() {
			out = append(out, n)
		}
	}
	for _, n := range nodes {
		if !n.IsGateway() {
			out = append(out, n)
		}
	}
	return out
}
