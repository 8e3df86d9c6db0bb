// Package nodelink renders the sequence-flow graph of a BPMN process as a
// Graphviz node-link diagram.
//
// # Usage
//
//	dot := nodelink.ToDOT(process, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The generated DOT uses left-to-right layout (rankdir=LR) so it can be
// compared with the level layout. Events are circles, gateways diamonds and
// activities rounded boxes. With [Options.Lanes] set, nodes are grouped into
// one cluster per lane.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package nodelink
