// Package diagram renders computed BPMN diagram interchange as SVG.
//
// Shapes are drawn at their exact bounds: pools and lanes as outlined
// bands, events as circles, gateways as diamonds, everything else as
// rounded rectangles. Connectors are drawn as polylines through their
// waypoints with an arrow head at the target.
package diagram

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn/di"
)

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	labels  map[string]string
	padding float64
}

// WithLabels sets display names by element ID. Elements without a label
// show their ID.
func WithLabels(labels map[string]string) Option {
	return func(r *renderer) { r.labels = labels }
}

// WithPadding sets the blank margin around the drawing.
func WithPadding(p float64) Option {
	return func(r *renderer) { r.padding = p }
}

// RenderSVG draws d.
func RenderSVG(d *di.Diagram, opts ...Option) []byte {
	r := renderer{padding: 20}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := extent(d.Plane)
	w += r.padding
	h += r.padding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	buf.WriteString(`  <defs><marker id="arrow" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="8" markerHeight="8" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="#333"/></marker></defs>` + "\n")
	buf.WriteString(`  <rect width="100%" height="100%" fill="white"/>` + "\n")

	for _, s := range d.Plane.Shapes {
		if isContainer(s) {
			r.container(&buf, s)
		}
	}
	for _, e := range d.Plane.Edges {
		edge(&buf, e)
	}
	for _, s := range d.Plane.Shapes {
		if !isContainer(s) {
			r.node(&buf, s)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func extent(p *di.Plane) (w, h float64) {
	for _, s := range p.Shapes {
		w = math.Max(w, s.Bounds.Right())
		h = math.Max(h, s.Bounds.Bottom())
	}
	for _, e := range p.Edges {
		for _, wp := range e.Waypoints {
			w = math.Max(w, wp.X)
			h = math.Max(h, wp.Y)
		}
	}
	return w, h
}

func isContainer(s *di.Shape) bool {
	return s.Type == "participant" || s.Type == "lane"
}

func (r renderer) label(s *di.Shape) string {
	if l, ok := r.labels[s.Element]; ok && l != "" {
		return l
	}
	return s.Element
}

func (r renderer) container(buf *bytes.Buffer, s *di.Shape) {
	b := s.Bounds
	fmt.Fprintf(buf, `  <g id="%s" class="%s">`+"\n", esc(s.ID), esc(s.Type))
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#666" stroke-width="1.5"/>`+"\n",
		b.X, b.Y, b.Width, b.Height)
	// Vertical title along the left edge.
	cx, cy := b.X+12, b.Y+b.Height/2
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" transform="rotate(-90 %.1f %.1f)" text-anchor="middle" font-family="sans-serif" font-size="12">%s</text>`+"\n",
		cx, cy, cx, cy, esc(r.label(s)))
	buf.WriteString("  </g>\n")
}

func (r renderer) node(buf *bytes.Buffer, s *di.Shape) {
	b := s.Bounds
	cx, cy := b.X+b.Width/2, b.Y+b.Height/2
	t := strings.ToLower(s.Type)

	fmt.Fprintf(buf, `  <g id="%s" class="%s">`+"\n", esc(s.ID), esc(s.Type))
	switch {
	case strings.HasSuffix(t, "event"):
		width := 1.5
		if strings.HasPrefix(t, "end") {
			width = 3
		}
		fmt.Fprintf(buf, `    <circle cx="%.1f" cy="%.1f" r="%.1f" fill="white" stroke="#333" stroke-width="%.1f"/>`+"\n",
			cx, cy, math.Min(b.Width, b.Height)/2, width)
		label(buf, cx, b.Bottom()+14, r.label(s))
	case strings.HasSuffix(t, "gateway"):
		fmt.Fprintf(buf, `    <polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="white" stroke="#333" stroke-width="1.5"/>`+"\n",
			cx, b.Y, b.Right(), cy, cx, b.Bottom(), b.X, cy)
		if s.IsMarkerVisible {
			d := b.Width / 5
			fmt.Fprintf(buf, `    <path d="M %.1f %.1f L %.1f %.1f M %.1f %.1f L %.1f %.1f" stroke="#333" stroke-width="3"/>`+"\n",
				cx-d, cy-d, cx+d, cy+d, cx+d, cy-d, cx-d, cy+d)
		}
		label(buf, cx, b.Bottom()+14, r.label(s))
	default:
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="10" fill="white" stroke="#333" stroke-width="1.5"/>`+"\n",
			b.X, b.Y, b.Width, b.Height)
		label(buf, cx, cy+4, r.label(s))
	}
	buf.WriteString("  </g>\n")
}

func label(buf *bytes.Buffer, x, y float64, text string) {
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="12">%s</text>`+"\n",
		x, y, esc(text))
}

func edge(buf *bytes.Buffer, e *di.Edge) {
	if len(e.Waypoints) < 2 {
		return
	}
	pts := make([]string, len(e.Waypoints))
	for i, p := range e.Waypoints {
		pts[i] = fmt.Sprintf("%.1f,%.1f", p.X, p.Y)
	}
	fmt.Fprintf(buf, `  <polyline id="%s" points="%s" fill="none" stroke="#333" stroke-width="1.5" marker-end="url(#arrow)"/>`+"\n",
		esc(e.ID), strings.Join(pts, " "))
}

func esc(s string) string { return html.EscapeString(s) }
