package layout

import (
	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/bpmn/di"
	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
)

// Frame is the area a strategy places one process into.
type Frame struct {
	Bounds di.Bounds
	Lanes  []LaneBand
	LaneOf map[string]*bpmn.Lane
	// Default is the band of nodes outside every lane.
	Default di.Bounds
}

// NewFrame builds the frame of p inside band, splitting it into lane strips.
// When p has lanes and some node belongs to none of them, the bottom strip
// is kept free of lanes and becomes the default band.
func NewFrame(p *bpmn.Process, band di.Bounds) Frame {
	fr := Frame{Bounds: band, LaneOf: BuildLaneMap(p), Default: band}
	lanes := p.Lanes()
	if len(lanes) == 0 {
		return fr
	}
	laneArea := band
	if hasLaneless(p, fr.LaneOf) {
		h := band.Height / float64(len(lanes)+1)
		laneArea.Height -= h
		fr.Default = di.Bounds{X: band.X, Y: laneArea.Bottom(), Width: band.Width, Height: h}
	}
	fr.Lanes = LaneBands(lanes, laneArea)
	return fr
}

func hasLaneless(p *bpmn.Process, laneOf map[string]*bpmn.Lane) bool {
	for _, n := range p.Nodes {
		if _, ok := laneOf[n.ID]; !ok {
			return true
		}
	}
	return false
}

// Placement is the output of a strategy for one process.
type Placement struct {
	// Shapes lists flow node shapes in placement order.
	Shapes []*di.Shape
	// ByNode indexes Shapes by node ID.
	ByNode map[string]*di.Shape
	// Ranks is the number of levels, or grid columns for the grid strategy.
	Ranks int
}

func newPlacement() *Placement {
	return &Placement{ByNode: make(map[string]*di.Shape)}
}

func (pl *Placement) add(f di.Factory, n *bpmn.FlowNode, b di.Bounds) {
	s := f.CreateShape(n.ID, b, di.ShapeOptions{
		ID:              n.ID + "_di",
		Type:            n.Type,
		IsMarkerVisible: n.IsExclusiveGateway(),
	})
	pl.Shapes = append(pl.Shapes, s)
	pl.ByNode[n.ID] = s
}

// Strategy places the flow nodes of one process.
type Strategy interface {
	Name() string
	Place(p *bpmn.Process, frame Frame, f di.Factory) *Placement
}

// StrategyByName returns the strategy registered under name. An empty name
// selects the level strategy.
func StrategyByName(name string, cfg Config) (Strategy, error) {
	switch name {
	case "", StrategyLevels:
		return LevelStrategy{Config: cfg}, nil
	case StrategyGrid:
		return GridStrategy{Config: cfg}, nil
	}
	return nil, errs.New(errs.ErrCodeInvalidStrategy, "unknown layout strategy %q (want %s or %s)", name, StrategyLevels, StrategyGrid)
}

// StrategyNames lists the available strategies.
func StrategyNames() []string { return []string{StrategyLevels, StrategyGrid} }

// LevelStrategy ranks the whole process at once and places levels left to
// right, stacking nodes of one level within their lane.
type LevelStrategy struct {
	Config Config
}

func (LevelStrategy) Name() string { return StrategyLevels }

func (s LevelStrategy) Place(p *bpmn.Process, frame Frame, f di.Factory) *Placement {
	levels := BuildLevels(p.Nodes, ExtractTopology(p.Flows))
	pl := newPlacement()
	pl.Ranks = len(levels)
	for _, pn := range AssignCoordinates(levels, frame, s.Config) {
		pl.add(f, pn.Node, pn.Bounds)
	}
	return pl
}

// GridStrategy walks the process depth first from its start nodes and places
// each node on a grid relative to the node it was reached from. Lanes are
// not taken into account.
type GridStrategy struct {
	Config Config
}

func (GridStrategy) Name() string { return StrategyGrid }

func (s GridStrategy) Place(p *bpmn.Process, frame Frame, f di.Factory) *Placement {
	grid := Traverse(p)
	pl := newPlacement()
	pl.Ranks = grid.Cols()

	type cell struct {
		node *bpmn.FlowNode
		pos  Position
		size di.Size
	}
	var cells []cell
	for _, c := range grid.Cells() {
		n, ok := p.Node(c.ID)
		if !ok {
			continue
		}
		cells = append(cells, cell{n, c.Position, s.Config.SizeOf(n.Type)})
	}

	widths := make([]float64, grid.Cols())
	heights := make([]float64, grid.Rows())
	for i := range widths {
		widths[i] = s.Config.CellWidth
	}
	for i := range heights {
		heights[i] = s.Config.CellHeight
	}
	for _, c := range cells {
		widths[c.pos.Col] = max(widths[c.pos.Col], c.size.Width)
		heights[c.pos.Row] = max(heights[c.pos.Row], c.size.Height)
	}
	tr := newTracks(frame.Bounds.X+s.Config.LeftMargin, widths, frame.Bounds.Y, heights)

	for _, c := range cells {
		pl.add(f, c.node, tr.cellBounds(c.pos, c.size))
	}
	return pl
}

// tracks holds the offsets and extents of grid columns and rows. A column is
// at least CellWidth wide and grows to its widest node; rows likewise.
type tracks struct {
	colX, colW []float64
	rowY, rowH []float64
}

func newTracks(x0 float64, widths []float64, y0 float64, heights []float64) tracks {
	t := tracks{colW: widths, rowH: heights}
	t.colX = offsets(x0, widths)
	t.rowY = offsets(y0, heights)
	return t
}

func offsets(start float64, extents []float64) []float64 {
	out := make([]float64, len(extents))
	for i, e := range extents {
		out[i] = start
		start += e
	}
	return out
}

// cellBounds centres a node of the given size in its cell.
func (t tracks) cellBounds(pos Position, size di.Size) di.Bounds {
	return di.Bounds{
		X:      t.colX[pos.Col] + (t.colW[pos.Col]-size.Width)/2,
		Y:      t.rowY[pos.Row] + (t.rowH[pos.Row]-size.Height)/2,
		Width:  size.Width,
		Height: size.Height,
	}
}

// Traverse places every node of p on a new grid. Start nodes seed the walk,
// each on its own row. When the walk ends with nodes left over, the first of
// them in node order seeds a further row.
func Traverse(p *bpmn.Process) *Grid {
	grid := NewGrid()
	visited := make(VisitedSet, p.NodeCount())

	var stack []*bpmn.FlowNode
	for _, n := range p.StartNodes() {
		grid.Add(n.ID)
		visited.Add(n.ID)
		stack = append(stack, n)
	}

	for {
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack = append(stack, AddToGrid(n, grid, visited, stack)...)
		}

		var seed *bpmn.FlowNode
		for _, n := range p.Nodes {
			if !visited.Has(n.ID) {
				seed = n
				break
			}
		}
		if seed == nil {
			return grid
		}
		grid.Add(seed.ID)
		visited.Add(seed.ID)
		stack = append(stack, seed)
	}
}
