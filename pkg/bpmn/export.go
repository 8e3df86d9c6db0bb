package bpmn

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn/di"
	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
)

// Namespace URIs of the BPMN diagram interchange vocabularies.
const (
	NamespaceBPMNDI = "http://www.omg.org/spec/BPMN/20100524/DI"
	NamespaceDC     = "http://www.omg.org/spec/DD/20100524/DC"
	NamespaceDI     = "http://www.omg.org/spec/DD/20100524/DI"
)

type xmlOutDiagram struct {
	XMLName  xml.Name    `xml:"bpmndi:BPMNDiagram"`
	NSBPMNDI string      `xml:"xmlns:bpmndi,attr"`
	NSDC     string      `xml:"xmlns:dc,attr"`
	NSDI     string      `xml:"xmlns:di,attr"`
	ID       string      `xml:"id,attr"`
	Plane    xmlOutPlane `xml:"bpmndi:BPMNPlane"`
}

type xmlOutPlane struct {
	ID      string        `xml:"id,attr"`
	Element string        `xml:"bpmnElement,attr"`
	Shapes  []xmlOutShape `xml:"bpmndi:BPMNShape"`
	Edges   []xmlOutEdge  `xml:"bpmndi:BPMNEdge"`
}

type xmlOutShape struct {
	ID              string       `xml:"id,attr"`
	Element         string       `xml:"bpmnElement,attr"`
	IsHorizontal    bool         `xml:"isHorizontal,attr,omitempty"`
	IsMarkerVisible bool         `xml:"isMarkerVisible,attr,omitempty"`
	Bounds          xmlOutBounds `xml:"dc:Bounds"`
}

type xmlOutBounds struct {
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
}

type xmlOutEdge struct {
	ID        string        `xml:"id,attr"`
	Element   string        `xml:"bpmnElement,attr"`
	Waypoints []xmlOutPoint `xml:"di:waypoint"`
}

type xmlOutPoint struct {
	X float64 `xml:"x,attr"`
	Y float64 `xml:"y,attr"`
}

// Export returns src with every top-level BPMNDiagram removed and the given
// diagrams inserted before the closing tag of the root element. The rest of
// the document is copied byte for byte.
func Export(src []byte, diagrams []*di.Diagram) ([]byte, error) {
	spans, rootEnd, err := scanDiagrams(src)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidDocument, err, "scan BPMN XML")
	}

	var buf bytes.Buffer
	last := 0
	for _, s := range spans {
		buf.Write(src[last:s[0]])
		last = s[1]
	}
	buf.Write(src[last:rootEnd])
	if !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		buf.WriteByte('\n')
	}

	for _, d := range diagrams {
		out, err := xml.MarshalIndent(toXMLDiagram(d), "  ", "  ")
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode diagram %s", d.ID)
		}
		buf.WriteString("  ")
		buf.Write(bytes.TrimLeft(out, " "))
		buf.WriteByte('\n')
	}

	buf.Write(src[rootEnd:])
	return buf.Bytes(), nil
}

// scanDiagrams returns the byte ranges of top-level BPMNDiagram elements and
// the offset at which the root end tag starts.
func scanDiagrams(src []byte) (spans [][2]int, rootEnd int, err error) {
	dec := xml.NewDecoder(bytes.NewReader(src))
	depth := 0
	start := -1
	rootEnd = -1

	for {
		off := int(dec.InputOffset())
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 && t.Name.Local == "BPMNDiagram" {
				start = trimLineStart(src, off)
			}
		case xml.EndElement:
			if depth == 2 && start >= 0 && t.Name.Local == "BPMNDiagram" {
				spans = append(spans, [2]int{start, int(dec.InputOffset())})
				start = -1
			}
			if depth == 1 {
				rootEnd = off
			}
			depth--
		}
	}
	if rootEnd < 0 {
		return nil, 0, errors.New("missing root element")
	}
	return spans, rootEnd, nil
}

// trimLineStart moves off back over indentation and the preceding newline so
// that removing an element does not leave a blank line behind.
func trimLineStart(src []byte, off int) int {
	for off > 0 && (src[off-1] == ' ' || src[off-1] == '\t') {
		off--
	}
	if off > 0 && src[off-1] == '\n' {
		off--
		if off > 0 && src[off-1] == '\r' {
			off--
		}
	}
	return off
}

func toXMLDiagram(d *di.Diagram) xmlOutDiagram {
	out := xmlOutDiagram{
		NSBPMNDI: NamespaceBPMNDI,
		NSDC:     NamespaceDC,
		NSDI:     NamespaceDI,
		ID:       d.ID,
		Plane: xmlOutPlane{
			ID:      d.Plane.ID,
			Element: d.Plane.Element,
		},
	}
	for _, s := range d.Plane.Shapes {
		out.Plane.Shapes = append(out.Plane.Shapes, xmlOutShape{
			ID:              s.ID,
			Element:         s.Element,
			IsHorizontal:    s.IsHorizontal,
			IsMarkerVisible: s.IsMarkerVisible,
			Bounds: xmlOutBounds{
				X:      s.Bounds.X,
				Y:      s.Bounds.Y,
				Width:  s.Bounds.Width,
				Height: s.Bounds.Height,
			},
		})
	}
	for _, e := range d.Plane.Edges {
		xe := xmlOutEdge{ID: e.ID, Element: e.Element}
		for _, p := range e.Waypoints {
			xe.Waypoints = append(xe.Waypoints, xmlOutPoint{X: p.X, Y: p.Y})
		}
		out.Plane.Edges = append(out.Plane.Edges, xe)
	}
	return out
}
