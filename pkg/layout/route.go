package layout

import (
	"math"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/bpmn/di"
)

// Route returns the waypoints of a connector from src to dst.
//
// The connector leaves src at its right-centre and enters dst at its
// left-centre. When dst's entry point is level with or right of the exit
// point the route is a straight two-point line. Otherwise it is a six-point
// detour that leaves to the right, climbs above both shapes by the detour
// clearance, runs left and drops into the entry point.
func Route(src, dst di.Bounds, cfg Config) []di.Point {
	exit := src.RightCenter()
	entry := dst.LeftCenter()
	if entry.X >= exit.X {
		return []di.Point{exit, entry}
	}

	top := math.Min(src.Y, dst.Y) - cfg.DetourClearance
	right := exit.X + cfg.DetourOffset
	left := entry.X - cfg.DetourOffset
	return []di.Point{
		exit,
		{X: right, Y: exit.Y},
		{X: right, Y: top},
		{X: left, Y: top},
		{X: left, Y: entry.Y},
		entry,
	}
}

// RouteFlows creates one edge per flow whose endpoints both have a shape.
// Other flows are skipped and counted in dropped.
func RouteFlows(flows []*bpmn.SequenceFlow, shapes map[string]*di.Shape, f di.Factory, cfg Config) (edges []*di.Edge, dropped int) {
	for _, flow := range flows {
		src, ok := shapes[flow.SourceRef]
		if !ok || flow.Source == nil {
			dropped++
			continue
		}
		dst, ok := shapes[flow.TargetRef]
		if !ok || flow.Target == nil {
			dropped++
			continue
		}
		wps := Route(src.Bounds, dst.Bounds, cfg)
		edges = append(edges, f.CreateEdge(flow.ID, wps, di.EdgeOptions{ID: flow.ID + "_di"}))
	}
	return edges, dropped
}
