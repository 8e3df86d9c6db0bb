package layout

import (
	"encoding/json"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/bpmn/di"
)

// Layouter computes diagram interchange for BPMN definitions.
//
// A Layouter holds only configuration. Each call to [Layouter.Layout]
// allocates its own lookups, so one Layouter may serve several goroutines.
type Layouter struct {
	cfg      Config
	strategy Strategy
	factory  di.Factory
	logger   *log.Logger
}

// Option configures a Layouter.
type Option func(*Layouter)

// WithConfig replaces the layout constants. The strategy named in cfg is
// used unless WithStrategy is also given.
func WithConfig(cfg Config) Option {
	return func(l *Layouter) { l.cfg = cfg }
}

// WithStrategy sets the placement strategy.
func WithStrategy(s Strategy) Option {
	return func(l *Layouter) { l.strategy = s }
}

// WithFactory sets the shape and edge factory.
func WithFactory(f di.Factory) Option {
	return func(l *Layouter) { l.factory = f }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(l *Layouter) { l.logger = logger }
}

// New returns a Layouter. It fails when the configuration is invalid.
func New(opts ...Option) (*Layouter, error) {
	l := &Layouter{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(l)
	}
	if err := l.cfg.Validate(); err != nil {
		return nil, err
	}
	if l.strategy == nil {
		s, err := StrategyByName(l.cfg.Strategy, l.cfg)
		if err != nil {
			return nil, err
		}
		l.strategy = s
	}
	if l.factory == nil {
		l.factory = di.NewFactory()
	}
	if l.logger == nil {
		l.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return l, nil
}

// Config returns the layout constants in use.
func (l *Layouter) Config() Config { return l.cfg }

// Strategy returns the placement strategy in use.
func (l *Layouter) Strategy() Strategy { return l.strategy }

// Stats summarises one layout run.
type Stats struct {
	Pools        int `json:"pools"`
	Lanes        int `json:"lanes"`
	NodesPlaced  int `json:"nodes_placed"`
	EdgesRouted  int `json:"edges_routed"`
	EdgesDropped int `json:"edges_dropped"`
	Levels       int `json:"levels"`
}

// Result is the outcome of a layout run.
type Result struct {
	Strategy string        `json:"strategy"`
	Diagrams []*di.Diagram `json:"diagrams"`
	Stats    Stats         `json:"stats"`
}

// JSON encodes the result.
func (r *Result) JSON() ([]byte, error) { return json.MarshalIndent(r, "", "  ") }

// Layout computes one diagram for defs. A collaboration yields a diagram with
// a pool per participant that references a process. Without a collaboration
// the first process is laid out on its own. Definitions with neither give an
// empty result.
//
// Layout never fails. Flows whose endpoints have no shape are left out and
// counted in [Stats.EdgesDropped].
func (l *Layouter) Layout(defs *bpmn.Definitions) *Result {
	res := &Result{Strategy: l.strategy.Name()}
	switch {
	case defs == nil || defs.IsEmpty():
		l.logger.Debug("nothing to lay out")
	case defs.Collaboration != nil:
		res.Diagrams = append(res.Diagrams, l.layoutCollaboration(defs.Collaboration, &res.Stats))
	case len(defs.Processes) > 0:
		res.Diagrams = append(res.Diagrams, l.layoutProcess(defs.Processes[0], &res.Stats))
	}
	for _, d := range res.Diagrams {
		l.logger.Debug("diagram ready", "diagram", d.ID, "shapes", d.ShapeCount(), "edges", d.EdgeCount())
	}
	return res
}

func (l *Layouter) layoutCollaboration(c *bpmn.Collaboration, st *Stats) *di.Diagram {
	d := di.NewDiagram(c.ID)

	var parts []*bpmn.Participant
	var laneCounts []int
	for _, part := range c.Participants {
		if part.Process == nil {
			l.logger.Debug("skipping participant without process", "participant", part.ID)
			continue
		}
		parts = append(parts, part)
		laneCounts = append(laneCounts, len(part.Process.Lanes()))
	}

	for i, band := range PoolBands(laneCounts, l.cfg) {
		part := parts[i]
		d.Plane.Shapes = append(d.Plane.Shapes, l.factory.CreateShape(part.ID, band, di.ShapeOptions{
			ID:           part.ID + "_di",
			Type:         "participant",
			IsHorizontal: true,
		}))
		st.Pools++
		l.placeProcess(d.Plane, part.Process, band, st)
	}
	return d
}

func (l *Layouter) layoutProcess(p *bpmn.Process, st *Stats) *di.Diagram {
	d := di.NewDiagram(p.ID)
	l.placeProcess(d.Plane, p, l.cfg.ProcessBounds, st)
	return d
}

// placeProcess appends lane shapes, node shapes and edges of p to plane.
func (l *Layouter) placeProcess(plane *di.Plane, p *bpmn.Process, band di.Bounds, st *Stats) {
	frame := NewFrame(p, band)
	for _, lb := range frame.Lanes {
		plane.Shapes = append(plane.Shapes, l.factory.CreateShape(lb.Lane.ID, lb.Bounds, di.ShapeOptions{
			ID:           lb.Lane.ID + "_di",
			Type:         "lane",
			IsHorizontal: true,
		}))
	}
	st.Lanes += len(frame.Lanes)

	pl := l.strategy.Place(p, frame, l.factory)
	plane.Shapes = append(plane.Shapes, pl.Shapes...)

	edges, dropped := RouteFlows(p.Flows, pl.ByNode, l.factory, l.cfg)
	plane.Edges = append(plane.Edges, edges...)

	st.NodesPlaced += len(pl.Shapes)
	st.EdgesRouted += len(edges)
	st.EdgesDropped += dropped
	st.Levels += pl.Ranks

	l.logger.Debug("laid out process",
		"process", p.ID,
		"strategy", l.strategy.Name(),
		"nodes", len(pl.Shapes),
		"flows", p.FlowCount(),
		"edges", len(edges),
		"dropped", dropped,
		"ranks", pl.Ranks)
}
