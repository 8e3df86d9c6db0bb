package layout

import "github.com/matzehuels/bpmnlayout/pkg/bpmn"

// Reachable reports whether to can be reached from from by following one or
// more outgoing flows. The search is an iterative depth-first walk with a
// visited set, so it terminates on cyclic graphs.
func Reachable(from, to *bpmn.FlowNode) bool {
	if from == nil || to == nil {
		return false
	}
	seen := make(map[*bpmn.FlowNode]bool)
	stack := from.Targets()
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == to {
			return true
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		stack = append(stack, n.Targets()...)
	}
	return false
}
