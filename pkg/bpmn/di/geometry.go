package di

// Point is one waypoint of a routed connector.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bounds is an axis-aligned rectangle. Y grows downward, as in BPMN DI.
type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (b Bounds) Right() float64 { return b.X + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b Bounds) Bottom() float64 { return b.Y + b.Height }

// CenterY returns the vertical center of the rectangle.
func (b Bounds) CenterY() float64 { return b.Y + b.Height/2 }

// RightCenter is where an outgoing connector leaves the shape.
func (b Bounds) RightCenter() Point { return Point{X: b.Right(), Y: b.CenterY()} }

// LeftCenter is where an incoming connector enters the shape.
func (b Bounds) LeftCenter() Point { return Point{X: b.X, Y: b.CenterY()} }

// Overlaps reports whether b and o share any interior area.
// Rectangles that only touch along an edge do not overlap.
func (b Bounds) Overlaps(o Bounds) bool {
	return b.X < o.Right() && o.X < b.Right() && b.Y < o.Bottom() && o.Y < b.Bottom()
}

// Size is a width and height pair.
type Size struct {
	Width  float64 `json:"width" toml:"width" yaml:"width"`
	Height float64 `json:"height" toml:"height" yaml:"height"`
}
