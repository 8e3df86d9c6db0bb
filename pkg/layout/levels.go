package layout

import "github.com/matzehuels/bpmnlayout/pkg/bpmn"

// BuildLevels ranks nodes into levels for left-to-right placement.
//
// Level 0 holds every node without incoming flows. Each following level holds
// the targets of the previous level whose predecessors all sit in earlier
// levels. When a pass ranks nothing while nodes remain (a cycle without a
// resolved entry, or a component without a start node), the first unranked
// node in input order is forced into a new level. Every node ends up in
// exactly one level.
func BuildLevels(nodes []*bpmn.FlowNode, topo *Topology) [][]*bpmn.FlowNode {
	if len(nodes) == 0 {
		return nil
	}

	byID := make(map[string]*bpmn.FlowNode, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	rank := make(map[string]int, len(nodes))
	var levels [][]*bpmn.FlowNode

	var current []*bpmn.FlowNode
	for _, n := range nodes {
		if len(topo.Incoming[n.ID]) == 0 {
			current = append(current, n)
			rank[n.ID] = 0
		}
	}
	if len(current) > 0 {
		levels = append(levels, current)
	}

	for len(rank) < len(nodes) {
		depth := len(levels)
		var next []*bpmn.FlowNode
		for _, n := range current {
			for _, id := range topo.Outgoing[n.ID] {
				target, ok := byID[id]
				if _, done := rank[id]; !ok || done || !rankedBefore(topo.Incoming[id], rank, depth) {
					continue
				}
				rank[id] = depth
				next = append(next, target)
			}
		}

		if len(next) == 0 {
			for _, n := range nodes {
				if _, done := rank[n.ID]; !done {
					rank[n.ID] = depth
					next = append(next, n)
					break
				}
			}
		}

		levels = append(levels, next)
		current = next
	}
	return levels
}

// rankedBefore reports whether every id has a rank below depth.
func rankedBefore(ids []string, rank map[string]int, depth int) bool {
	for _, id := range ids {
		if r, ok := rank[id]; !ok || r >= depth {
			return false
		}
	}
	return true
}
