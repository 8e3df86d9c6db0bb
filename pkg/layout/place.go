package layout

import (
	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/bpmn/di"
)

// PlacedNode is a node with its computed bounds.
type PlacedNode struct {
	Node   *bpmn.FlowNode
	Bounds di.Bounds
}

// AssignCoordinates turns levels into bounds inside frame.
//
// A horizontal cursor starts at the frame's left edge plus the left margin.
// Within a level nodes are grouped by lane and stacked top to bottom from
// their band's top plus the lane inset, each node one height plus the
// vertical spacing below the previous one. After a level the cursor moves by
// the widest node of that level plus the horizontal spacing. Nodes without a
// lane, or whose lane has no band, stack in the frame's default band.
//
// The result lists nodes in level order.
func AssignCoordinates(levels [][]*bpmn.FlowNode, frame Frame, cfg Config) []PlacedNode {
	bandOf := make(map[string]di.Bounds, len(frame.Lanes))
	for _, lb := range frame.Lanes {
		bandOf[lb.Lane.ID] = lb.Bounds
	}

	if frame.Default == (di.Bounds{}) {
		frame.Default = frame.Bounds
	}

	var out []PlacedNode
	x := frame.Bounds.X + cfg.LeftMargin
	for _, level := range levels {
		offset := make(map[string]float64)
		maxWidth := 0.0
		for _, n := range level {
			size := cfg.SizeOf(n.Type)

			group := ""
			band := frame.Default
			if lane, ok := frame.LaneOf[n.ID]; ok {
				if b, ok := bandOf[lane.ID]; ok {
					group, band = lane.ID, b
				}
			}

			y := band.Y + cfg.LaneInset + offset[group]
			offset[group] += size.Height + cfg.VerticalSpacing

			out = append(out, PlacedNode{
				Node:   n,
				Bounds: di.Bounds{X: x, Y: y, Width: size.Width, Height: size.Height},
			})
			if size.Width > maxWidth {
				maxWidth = size.Width
			}
		}
		x += maxWidth + cfg.HorizontalSpacing
	}
	return out
}
