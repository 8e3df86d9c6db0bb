package layout

import (
	"math"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/bpmn/di"
)

// LaneBand is the horizontal strip reserved for one lane.
type LaneBand struct {
	Lane   *bpmn.Lane
	Bounds di.Bounds
}

// BuildLaneMap maps node IDs to their lane, visiting lane sets and lanes in
// document order. A node listed by several lanes belongs to the last one.
func BuildLaneMap(p *bpmn.Process) map[string]*bpmn.Lane {
	out := make(map[string]*bpmn.Lane)
	for _, lane := range p.Lanes() {
		for _, ref := range lane.FlowNodeRefs {
			out[ref] = lane
		}
	}
	return out
}

// LaneBands splits band into equal-height strips, one per lane, in
// declaration order.
func LaneBands(lanes []*bpmn.Lane, band di.Bounds) []LaneBand {
	if len(lanes) == 0 {
		return nil
	}
	h := band.Height / float64(len(lanes))
	out := make([]LaneBand, len(lanes))
	for i, lane := range lanes {
		out[i] = LaneBand{
			Lane: lane,
			Bounds: di.Bounds{
				X:      band.X,
				Y:      band.Y + float64(i)*h,
				Width:  band.Width,
				Height: h,
			},
		}
	}
	return out
}

// PoolHeight returns the height of a pool holding laneCount lanes.
func PoolHeight(laneCount int, cfg Config) float64 {
	return math.Max(cfg.MinPoolHeight, float64(laneCount)*cfg.LaneHeight)
}

// PoolBands stacks one pool per entry of laneCounts from the top of the page,
// separated by the pool margin.
func PoolBands(laneCounts []int, cfg Config) []di.Bounds {
	out := make([]di.Bounds, len(laneCounts))
	y := cfg.PoolY
	for i, n := range laneCounts {
		h := PoolHeight(n, cfg)
		out[i] = di.Bounds{X: cfg.PoolX, Y: y, Width: cfg.PoolWidth, Height: h}
		y += h + cfg.PoolMargin
	}
	return out
}
