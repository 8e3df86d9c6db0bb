package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/bpmn/di"
	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
	"github.com/matzehuels/bpmnlayout/pkg/observability"
	"github.com/matzehuels/bpmnlayout/pkg/render"
	"github.com/matzehuels/bpmnlayout/pkg/render/diagram"
	"github.com/matzehuels/bpmnlayout/pkg/render/nodelink"
)

// Parse decodes input, reporting to the pipeline hooks.
func Parse(ctx context.Context, input []byte) (*bpmn.Definitions, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, len(input))
	start := time.Now()

	defs, err := bpmn.Parse(bytes.NewReader(input))
	nodes := 0
	if err == nil {
		nodes = nodeCount(defs)
	}
	hooks.OnParseComplete(ctx, nodes, time.Since(start), err)
	return defs, err
}

// Layout runs the layouter configured by opts.
func Layout(ctx context.Context, defs *bpmn.Definitions, opts Options, logger *log.Logger) (*layout.Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	l, err := layout.New(layout.WithConfig(opts.Layout), layout.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, l.Strategy().Name(), nodeCount(defs))
	start := time.Now()
	res := l.Layout(defs)
	hooks.OnLayoutComplete(ctx, res.Strategy, res.Stats.NodesPlaced, res.Stats.EdgesDropped, time.Since(start))
	return res, nil
}

// Export writes res in opts.Format. input is the original document, which
// the bpmn format copies around the new diagram.
func Export(ctx context.Context, input []byte, defs *bpmn.Definitions, res *layout.Result, opts Options) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, opts.Format)
	start := time.Now()

	data, err := export(ctx, input, defs, res, opts)
	hooks.OnExportComplete(ctx, opts.Format, len(data), time.Since(start), err)
	return data, err
}

func export(ctx context.Context, input []byte, defs *bpmn.Definitions, res *layout.Result, opts Options) ([]byte, error) {
	switch opts.Format {
	case FormatBPMN:
		return bpmn.Export(input, res.Diagrams)
	case FormatJSON:
		return res.JSON()
	case FormatSVG:
		return drawing(defs, res), nil
	case FormatPDF:
		return render.ToPDF(ctx, drawing(defs, res))
	case FormatPNG:
		return render.ToPNG(ctx, drawing(defs, res), opts.Scale)
	case FormatDOT, FormatGraph:
		p := flowProcess(defs)
		if p == nil {
			return nil, errs.New(errs.ErrCodeInvalidDocument, "document has no process")
		}
		dot := nodelink.ToDOT(p, nodelink.Options{Lanes: opts.Lanes, Detailed: opts.Detailed})
		if opts.Format == FormatDOT {
			return []byte(dot), nil
		}
		return nodelink.RenderSVG(ctx, dot)
	default:
		return nil, ValidateFormat(opts.Format)
	}
}

func drawing(defs *bpmn.Definitions, res *layout.Result) []byte {
	d := di.NewDiagram(defs.ID)
	if len(res.Diagrams) > 0 {
		d = res.Diagrams[0]
	}
	return diagram.RenderSVG(d, diagram.WithLabels(labels(defs)))
}

// flowProcess returns the process the flow-graph formats draw: the first
// participant's process, or the first process.
func flowProcess(defs *bpmn.Definitions) *bpmn.Process {
	if c := defs.Collaboration; c != nil {
		for _, part := range c.Participants {
			if part.Process != nil {
				return part.Process
			}
		}
	}
	if len(defs.Processes) > 0 {
		return defs.Processes[0]
	}
	return nil
}

// labels maps element IDs to display names.
func labels(defs *bpmn.Definitions) map[string]string {
	out := make(map[string]string)
	for _, p := range defs.Processes {
		for _, n := range p.Nodes {
			if n.Name != "" {
				out[n.ID] = n.Name
			}
		}
		for _, l := range p.Lanes() {
			if l.Name != "" {
				out[l.ID] = l.Name
			}
		}
	}
	if c := defs.Collaboration; c != nil {
		for _, part := range c.Participants {
			if part.Name != "" {
				out[part.ID] = part.Name
			}
		}
	}
	return out
}

func nodeCount(defs *bpmn.Definitions) int {
	n := 0
	for _, p := range defs.Processes {
		n += p.NodeCount()
	}
	return n
}
