// Package bpmn provides the semantic process model consumed by the layout
// core, together with the XML reader and writer around it.
//
// # Overview
//
// A [Definitions] holds one or more [Process] values and an optional
// [Collaboration]. Each process owns its flow nodes (activities, events,
// gateways), its sequence flows, and its lane sets. Sequence flows are
// resolved against the nodes of their own process: a flow whose source or
// target does not resolve keeps its raw reference but has a nil endpoint and
// is left out of every node's Incoming/Outgoing list.
//
// # Building a Model
//
// Models are usually parsed from XML with [Parse] or [ParseFile], but can
// also be built directly:
//
//	p := bpmn.NewProcess("Process_1", "")
//	_ = p.AddNode(bpmn.FlowNode{ID: "start", Type: bpmn.TypeStartEvent})
//	_ = p.AddNode(bpmn.FlowNode{ID: "work", Type: bpmn.TypeTask})
//	_ = p.AddFlow(bpmn.SequenceFlow{ID: "f1", SourceRef: "start", TargetRef: "work"})
//
// Nodes must be added before the flows that reference them; a flow added
// before its endpoints stays unresolved.
//
// # Diagram Interchange
//
// [Parse] ignores any BPMNDiagram already present in the document, so a
// layout run always starts from scratch. [Export] writes freshly computed
// diagrams back into the original document bytes, replacing the old ones and
// leaving the semantic part untouched.
package bpmn
