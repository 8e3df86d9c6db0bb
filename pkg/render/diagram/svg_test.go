package diagram

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn/di"
)

func testDiagram() *di.Diagram {
	f := di.NewFactory()
	d := di.NewDiagram("P")
	d.Plane.Shapes = []*di.Shape{
		f.CreateShape("Lane_1", di.Bounds{X: 50, Y: 50, Width: 800, Height: 300}, di.ShapeOptions{Type: "lane", IsHorizontal: true}),
		f.CreateShape("Start", di.Bounds{X: 150, Y: 100, Width: 36, Height: 36}, di.ShapeOptions{Type: "startEvent"}),
		f.CreateShape("Check", di.Bounds{X: 386, Y: 100, Width: 100, Height: 80}, di.ShapeOptions{Type: "task"}),
		f.CreateShape("OK", di.Bounds{X: 686, Y: 100, Width: 50, Height: 50}, di.ShapeOptions{Type: "exclusiveGateway", IsMarkerVisible: true}),
	}
	d.Plane.Edges = []*di.Edge{
		f.CreateEdge("F1", []di.Point{{X: 186, Y: 118}, {X: 386, Y: 140}}, di.EdgeOptions{}),
		f.CreateEdge("F0", []di.Point{{X: 186, Y: 118}}, di.EdgeOptions{}),
	}
	return d
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testDiagram(), WithLabels(map[string]string{"Check": "Check <order>"})))

	if err := xml.Unmarshal([]byte(svg), new(struct{})); err != nil {
		t.Fatalf("output is not well-formed XML: %v", err)
	}
	checks := []string{
		`viewBox="0 0 870.0 370.0"`,
		`<g id="Lane_1_di" class="lane">`,
		`<circle cx="168.0" cy="118.0" r="18.0"`,
		`<polygon points="711.0,100.0 736.0,125.0 711.0,150.0 686.0,125.0"`,
		`<polyline id="F1_di" points="186.0,118.0 386.0,140.0"`,
		`Check &lt;order&gt;`,
		`stroke-width="3"/>`,
	}
	for _, want := range checks {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() missing %q", want)
		}
	}
	if strings.Contains(svg, `id="F0_di"`) {
		t.Error("single-point edge rendered")
	}
}

func TestRenderSVGPadding(t *testing.T) {
	svg := string(RenderSVG(testDiagram(), WithPadding(0)))
	if !strings.Contains(svg, `viewBox="0 0 850.0 350.0"`) {
		t.Errorf("RenderSVG() viewBox wrong: %s", svg[:120])
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	svg := string(RenderSVG(di.NewDiagram("P")))
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Errorf("RenderSVG(empty) = %q", svg)
	}
}
