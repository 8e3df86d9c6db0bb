package bpmn

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidElementID is returned when an element is added with an empty ID.
	ErrInvalidElementID = errors.New("element ID must not be empty")

	// ErrDuplicateElementID is returned when a node or flow ID is already used
	// within the same process, or a process ID within the same definitions.
	ErrDuplicateElementID = errors.New("duplicate element ID")
)

// Common element types, named by their local XML name.
const (
	TypeStartEvent        = "startEvent"
	TypeEndEvent          = "endEvent"
	TypeTask              = "task"
	TypeUserTask          = "userTask"
	TypeServiceTask       = "serviceTask"
	TypeSubProcess        = "subProcess"
	TypeExclusiveGateway  = "exclusiveGateway"
	TypeParallelGateway   = "parallelGateway"
	TypeInclusiveGateway  = "inclusiveGateway"
	TypeEventBasedGateway = "eventBasedGateway"
)

// FlowNode is an activity, event or gateway.
type FlowNode struct {
	ID   string
	Name string
	Type string // local XML name, e.g. "userTask"

	// Incoming and Outgoing list resolved sequence flows in document order.
	Incoming []*SequenceFlow
	Outgoing []*SequenceFlow
}

// IsGateway reports whether the node branches or merges flow.
func (n *FlowNode) IsGateway() bool { return strings.HasSuffix(strings.ToLower(n.Type), "gateway") }

// IsExclusiveGateway reports whether the node is an exclusive (XOR) gateway.
func (n *FlowNode) IsExclusiveGateway() bool { return n.Type == TypeExclusiveGateway }

// IsEvent reports whether the node is an event of any kind.
func (n *FlowNode) IsEvent() bool { return strings.HasSuffix(strings.ToLower(n.Type), "event") }

// Targets returns the target nodes of the outgoing flows, in flow order.
func (n *FlowNode) Targets() []*FlowNode {
	out := make([]*FlowNode, 0, len(n.Outgoing))
	for _, f := range n.Outgoing {
		out = append(out, f.Target)
	}
	return out
}

// Sources returns the source nodes of the incoming flows, in flow order.
func (n *FlowNode) Sources() []*FlowNode {
	out := make([]*FlowNode, 0, len(n.Incoming))
	for _, f := range n.Incoming {
		out = append(out, f.Source)
	}
	return out
}

// SequenceFlow is a directed edge between two flow nodes of the same process.
type SequenceFlow struct {
	ID        string
	Name      string
	SourceRef string
	TargetRef string

	// Source and Target are nil when the reference did not resolve.
	Source *FlowNode
	Target *FlowNode
}

// Resolved reports whether both endpoints are known nodes.
func (f *SequenceFlow) Resolved() bool { return f.Source != nil && f.Target != nil }

// Lane is a named horizontal partition of a process.
type Lane struct {
	ID           string
	Name         string
	FlowNodeRefs []string
}

// LaneSet groups lanes.
type LaneSet struct {
	ID    string
	Lanes []*Lane
}

// Process is one executable flow graph.
type Process struct {
	ID       string
	Name     string
	Nodes    []*FlowNode
	Flows    []*SequenceFlow
	LaneSets []*LaneSet

	nodes map[string]*FlowNode
	flows map[string]bool
}

// NewProcess creates an empty process.
func NewProcess(id, name string) *Process {
	return &Process{
		ID:    id,
		Name:  name,
		nodes: make(map[string]*FlowNode),
		flows: make(map[string]bool),
	}
}

// AddNode appends a flow node. Incoming and Outgoing on n are ignored; they
// are maintained by [Process.AddFlow].
func (p *Process) AddNode(n FlowNode) error {
	if n.ID == "" {
		return ErrInvalidElementID
	}
	if _, exists := p.nodes[n.ID]; exists {
		return ErrDuplicateElementID
	}
	n.Incoming, n.Outgoing = nil, nil
	node := &n
	p.nodes[node.ID] = node
	p.Nodes = append(p.Nodes, node)
	return nil
}

// AddFlow appends a sequence flow and resolves its endpoints against the
// nodes added so far. A flow with an unknown endpoint is kept but stays
// unresolved; this is not an error.
func (p *Process) AddFlow(f SequenceFlow) error {
	if f.ID == "" {
		return ErrInvalidElementID
	}
	if p.flows[f.ID] {
		return ErrDuplicateElementID
	}
	flow := &f
	flow.Source = p.nodes[f.SourceRef]
	flow.Target = p.nodes[f.TargetRef]
	if flow.Resolved() {
		flow.Source.Outgoing = append(flow.Source.Outgoing, flow)
		flow.Target.Incoming = append(flow.Target.Incoming, flow)
	}
	p.flows[f.ID] = true
	p.Flows = append(p.Flows, flow)
	return nil
}

// AddLane appends a lane to the process's last lane set, creating a lane
// set when there is none yet.
func (p *Process) AddLane(l Lane) error {
	if l.ID == "" {
		return ErrInvalidElementID
	}
	if len(p.LaneSets) == 0 {
		p.LaneSets = append(p.LaneSets, &LaneSet{ID: "LaneSet_" + p.ID})
	}
	set := p.LaneSets[len(p.LaneSets)-1]
	lane := l
	set.Lanes = append(set.Lanes, &lane)
	return nil
}

// Node returns the node with the given ID.
func (p *Process) Node(id string) (*FlowNode, bool) {
	n, ok := p.nodes[id]
	return n, ok
}

// Lanes returns every lane of every lane set, in document order.
func (p *Process) Lanes() []*Lane {
	var lanes []*Lane
	for _, ls := range p.LaneSets {
		lanes = append(lanes, ls.Lanes...)
	}
	return lanes
}

// NodeCount returns the number of flow nodes.
func (p *Process) NodeCount() int { return len(p.Nodes) }

// FlowCount returns the number of sequence flows, resolved or not.
func (p *Process) FlowCount() int { return len(p.Flows) }

// StartNodes returns nodes without resolved incoming flows, in node order.
func (p *Process) StartNodes() []*FlowNode {
	var out []*FlowNode
	for _, n := range p.Nodes {
		if len(n.Incoming) == 0 {
			out = append(out, n)
		}
	}
	return out
}

// Participant is a pool in a collaboration.
type Participant struct {
	ID         string
	Name       string
	ProcessRef string
	Process    *Process // nil when ProcessRef does not resolve
}

// Collaboration groups participants.
type Collaboration struct {
	ID           string
	Name         string
	Participants []*Participant
}

// Definitions is the root of a BPMN document.
type Definitions struct {
	ID            string
	Processes     []*Process
	Collaboration *Collaboration
}

// AddProcess appends a process.
func (d *Definitions) AddProcess(p *Process) error {
	if p.ID == "" {
		return ErrInvalidElementID
	}
	if _, exists := d.Process(p.ID); exists {
		return ErrDuplicateElementID
	}
	d.Processes = append(d.Processes, p)
	return nil
}

// Process returns the process with the given ID.
func (d *Definitions) Process(id string) (*Process, bool) {
	for _, p := range d.Processes {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// SetCollaboration attaches c and resolves each participant's ProcessRef
// against the processes added so far.
func (d *Definitions) SetCollaboration(c *Collaboration) {
	for _, part := range c.Participants {
		part.Process, _ = d.Process(part.ProcessRef)
	}
	d.Collaboration = c
}

// IsEmpty reports whether there is nothing to lay out.
func (d *Definitions) IsEmpty() bool { return d.Collaboration == nil && len(d.Processes) == 0 }
