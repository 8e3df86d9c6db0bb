package layout

import "github.com/matzehuels/bpmnlayout/pkg/bpmn"

// Topology holds the adjacency of a process by node ID. Both maps list
// neighbours in flow order; a node without neighbours has no entry.
type Topology struct {
	Incoming map[string][]string
	Outgoing map[string][]string
}

// ExtractTopology builds the adjacency maps in one pass over flows. Flows
// with an unresolved endpoint are skipped.
func ExtractTopology(flows []*bpmn.SequenceFlow) *Topology {
	t := &Topology{
		Incoming: make(map[string][]string),
		Outgoing: make(map[string][]string),
	}
	for _, f := range flows {
		if !f.Resolved() {
			continue
		}
		src, dst := f.Source.ID, f.Target.ID
		t.Outgoing[src] = append(t.Outgoing[src], dst)
		t.Incoming[dst] = append(t.Incoming[dst], src)
	}
	return t
}
