package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
)

// Options configures DOT generation.
type Options struct {
	// Lanes groups nodes into one cluster per lane.
	Lanes bool
	// Detailed adds the element type under each label.
	Detailed bool
}

// ToDOT converts the resolved flows of p to Graphviz DOT.
func ToDOT(p *bpmn.Process, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=12, style=filled, fillcolor=white];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n\n")

	inLane := make(map[string]bool)
	if opts.Lanes {
		for i, lane := range p.Lanes() {
			fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
			fmt.Fprintf(&buf, "    label=%q;\n", laneLabel(lane))
			for _, ref := range lane.FlowNodeRefs {
				n, ok := p.Node(ref)
				if !ok || inLane[ref] {
					continue
				}
				inLane[ref] = true
				fmt.Fprintf(&buf, "    %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts), ", "))
			}
			buf.WriteString("  }\n")
		}
	}
	for _, n := range p.Nodes {
		if inLane[n.ID] {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts), ", "))
	}

	buf.WriteString("\n")
	for _, f := range p.Flows {
		if !f.Resolved() {
			continue
		}
		if f.Name != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", f.Source.ID, f.Target.ID, f.Name)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", f.Source.ID, f.Target.ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func laneLabel(l *bpmn.Lane) string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

func nodeAttrs(n *bpmn.FlowNode, opts Options) []string {
	label := n.ID
	if n.Name != "" {
		label = n.Name
	}
	if opts.Detailed {
		label += "\n" + n.Type
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case n.IsEvent():
		attrs = append(attrs, "shape=circle", "fixedsize=false")
		if strings.HasPrefix(n.Type, "end") {
			attrs = append(attrs, "penwidth=3")
		}
	case n.IsGateway():
		attrs = append(attrs, "shape=diamond")
	default:
		attrs = append(attrs, "shape=box", "style=\"rounded,filled\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
