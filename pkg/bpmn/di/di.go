package di

// Shape is a placed BPMNShape.
type Shape struct {
	ID      string `json:"id"`
	Element string `json:"element"`        // ID of the semantic element
	Type    string `json:"type,omitempty"` // local name of the semantic element type
	Bounds  Bounds `json:"bounds"`

	IsHorizontal    bool `json:"is_horizontal,omitempty"`
	IsMarkerVisible bool `json:"is_marker_visible,omitempty"`
}

// Edge is a routed BPMNEdge.
type Edge struct {
	ID        string  `json:"id"`
	Element   string  `json:"element"`
	Waypoints []Point `json:"waypoints"`
}

// Plane holds the shapes and edges drawn for one process or collaboration.
// Shapes are kept in emission order: pools, then lanes, then flow nodes.
type Plane struct {
	ID      string   `json:"id"`
	Element string   `json:"element"`
	Shapes  []*Shape `json:"shapes"`
	Edges   []*Edge  `json:"edges"`
}

// Diagram is a BPMNDiagram wrapping exactly one plane.
type Diagram struct {
	ID    string `json:"id"`
	Plane *Plane `json:"plane"`
}

// NewDiagram creates a diagram and its plane for the given root element
// (a process or collaboration), using the conventional
// "BPMNDiagram_<id>" and "BPMNPlane_<id>" identifiers.
func NewDiagram(element string) *Diagram {
	return &Diagram{
		ID: "BPMNDiagram_" + element,
		Plane: &Plane{
			ID:      "BPMNPlane_" + element,
			Element: element,
		},
	}
}

// ShapeCount returns the number of shapes on the plane.
func (d *Diagram) ShapeCount() int { return len(d.Plane.Shapes) }

// EdgeCount returns the number of edges on the plane.
func (d *Diagram) EdgeCount() int { return len(d.Plane.Edges) }

// ShapeOptions carries the caller-chosen identifier and rendering hints for
// [Factory.CreateShape].
type ShapeOptions struct {
	ID              string
	Type            string
	IsHorizontal    bool
	IsMarkerVisible bool
}

// EdgeOptions carries the caller-chosen identifier for [Factory.CreateEdge].
type EdgeOptions struct {
	ID string
}

// Factory creates shape and edge records.
type Factory interface {
	CreateShape(element string, b Bounds, opts ShapeOptions) *Shape
	CreateEdge(element string, waypoints []Point, opts EdgeOptions) *Edge
}

// DefaultFactory is the stock [Factory].
type DefaultFactory struct{}

// NewFactory returns the default factory.
func NewFactory() Factory { return DefaultFactory{} }

// CreateShape returns a new shape. The ID defaults to element+"_di".
func (DefaultFactory) CreateShape(element string, b Bounds, opts ShapeOptions) *Shape {
	id := opts.ID
	if id == "" {
		id = element + "_di"
	}
	return &Shape{
		ID:              id,
		Element:         element,
		Type:            opts.Type,
		Bounds:          b,
		IsHorizontal:    opts.IsHorizontal,
		IsMarkerVisible: opts.IsMarkerVisible,
	}
}

// CreateEdge returns a new edge owning a copy of waypoints.
// The ID defaults to element+"_di".
func (DefaultFactory) CreateEdge(element string, waypoints []Point, opts EdgeOptions) *Edge {
	id := opts.ID
	if id == "" {
		id = element + "_di"
	}
	return &Edge{
		ID:        id,
		Element:   element,
		Waypoints: append([]Point(nil), waypoints...),
	}
}

var _ Factory = DefaultFactory{}
