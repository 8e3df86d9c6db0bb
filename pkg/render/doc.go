// Package render turns laid-out BPMN diagrams into images.
//
// # Overview
//
//   - [diagram] draws the computed diagram interchange as SVG: pools, lanes,
//     flow nodes and routed connectors at their exact coordinates.
//   - [nodelink] draws the semantic sequence-flow graph with Graphviz,
//     independent of the computed layout. It is useful to compare the
//     layout against a general-purpose graph drawing.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg):
//
//	svg := diagram.RenderSVG(d)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [diagram]: github.com/matzehuels/bpmnlayout/pkg/render/diagram
// [nodelink]: github.com/matzehuels/bpmnlayout/pkg/render/nodelink
package render
