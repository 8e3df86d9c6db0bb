// Package di holds the diagram interchange records produced by a layout run.
//
// # Overview
//
// BPMN keeps geometry apart from semantics: a BPMNShape carries the bounds of
// one flow node, lane or pool, and a BPMNEdge carries the waypoints of one
// sequence flow. Both point back at their semantic element by ID only, so
// the records in this package never reference the [bpmn] model directly.
//
// Shapes and edges are created through a [Factory]. The layout core calls
// the factory and keeps the returned pointers; it never looks inside them
// beyond the bounds it needs to route connectors. [NewFactory] returns the
// default implementation, which assigns IDs of the form "<element>_di" when
// the caller does not choose one.
//
// # Default Sizes
//
// [DefaultSize] returns the presentation size for a BPMN element type.
// Gateways and events are small squares, activities are larger rectangles.
// These values match what common BPMN modelers draw by default and are a
// presentation constant, not a computed property.
//
// [bpmn]: github.com/matzehuels/bpmnlayout/pkg/bpmn
package di
