// Package pipeline provides the parse → layout → export pipeline shared by
// the CLI and the HTTP API.
//
// By centralizing this logic both entry points apply the same defaults,
// produce byte-identical output and share one cache.
//
// # Stages
//
//  1. Parse: decode the BPMN document ([bpmn.Parse])
//  2. Layout: compute diagram interchange ([layout.Layouter])
//  3. Export: write the requested output format
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, input, pipeline.Options{Format: "bpmn"})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(res.Data)
package pipeline

import (
	"fmt"
	"slices"
	"strings"

	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
)

// Output formats.
const (
	FormatBPMN  = "bpmn"  // input document with BPMNDiagram replaced
	FormatJSON  = "json"  // layout result with stats
	FormatSVG   = "svg"   // drawing of the computed diagram
	FormatPDF   = "pdf"   // SVG converted with rsvg-convert
	FormatPNG   = "png"   // SVG converted with rsvg-convert
	FormatDOT   = "dot"   // Graphviz source of the flow graph
	FormatGraph = "graph" // Graphviz rendering of the flow graph as SVG
)

// DefaultFormat is used when Options.Format is empty.
const DefaultFormat = FormatBPMN

var validFormats = []string{FormatBPMN, FormatJSON, FormatSVG, FormatPDF, FormatPNG, FormatDOT, FormatGraph}

// Formats returns every supported output format.
func Formats() []string { return slices.Clone(validFormats) }

// ValidateFormat checks that format is supported. Formats are case-sensitive.
func ValidateFormat(format string) error {
	if !slices.Contains(validFormats, format) {
		return errs.New(errs.ErrCodeInvalidFormat, "unknown format %q (want one of %s)",
			format, strings.Join(validFormats, ", "))
	}
	return nil
}

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	switch format {
	case FormatBPMN:
		return "application/xml"
	case FormatJSON:
		return "application/json"
	case FormatSVG, FormatGraph:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	case FormatPNG:
		return "image/png"
	case FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/octet-stream"
	}
}

// Extension returns the file extension for format, including the dot.
func Extension(format string) string {
	switch format {
	case FormatGraph:
		return ".svg"
	case FormatDOT:
		return ".gv"
	default:
		return "." + format
	}
}

// Options configures one pipeline run.
type Options struct {
	Format string `json:"format"`
	// Strategy overrides Layout.Strategy when set.
	Strategy string `json:"strategy,omitempty"`
	// Layout is used as given. The zero Config selects layout.DefaultConfig.
	Layout layout.Config `json:"layout"`
	// Scale is the PNG resolution factor.
	Scale float64 `json:"scale,omitempty"`
	// Refresh skips the cache lookup but still stores the result.
	Refresh bool `json:"refresh,omitempty"`
	// Lanes groups flow-graph nodes by lane in the dot and graph formats.
	Lanes bool `json:"lanes,omitempty"`
	// Detailed adds each node's element type to its flow-graph label.
	Detailed bool `json:"detailed,omitempty"`

	validated bool
}

// DefaultOptions returns options that produce BPMN with the default layout.
func DefaultOptions() Options {
	return Options{Format: DefaultFormat, Layout: layout.DefaultConfig(), Scale: 1}
}

// ValidateAndSetDefaults fills empty fields and validates the result.
// It is safe to call more than once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Layout.IsZero() {
		o.Layout = layout.DefaultConfig()
	}
	if o.Strategy != "" {
		o.Layout.Strategy = o.Strategy
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if err := o.Layout.Validate(); err != nil {
		return fmt.Errorf("layout config: %w", err)
	}
	o.validated = true
	return nil
}
