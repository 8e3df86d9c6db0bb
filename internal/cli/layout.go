package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
	"github.com/matzehuels/bpmnlayout/pkg/pipeline"
)

type layoutFlags struct {
	output  string
	noCache bool
	opts    pipeline.Options
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var f layoutFlags

	cmd := &cobra.Command{
		Use:   "layout [file.bpmn|-]",
		Short: "Compute diagram layout for a BPMN document",
		Long: `Compute diagram layout for a BPMN document.

Every flow node, lane and pool of the document is given coordinates and
every sequence flow is routed. The default output is the input document
with its BPMNDiagram section replaced; use -f to write the layout as JSON,
an SVG/PDF/PNG drawing, or a Graphviz view of the flow graph.

Read from stdin with "-". Write to stdout with -o -.

Results are cached locally for faster subsequent runs.`,
		Example: `  bpmnlayout layout order.bpmn
  bpmnlayout layout order.bpmn -f svg -o order.svg
  cat order.bpmn | bpmnlayout layout - --strategy grid -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], f, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", `output file, "-" for stdout (default: <input>.layout.<ext>)`)
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.opts.Refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().StringVarP(&f.opts.Format, "format", "f", pipeline.DefaultFormat,
		"output format: "+strings.Join(pipeline.Formats(), ", "))
	cmd.Flags().StringVarP(&f.opts.Strategy, "strategy", "s", "", "placement strategy: levels (default), grid")
	cmd.Flags().Float64Var(&f.opts.Scale, "scale", 1, "PNG resolution factor")
	cmd.Flags().BoolVar(&f.opts.Lanes, "lanes", false, "cluster nodes by lane (dot, graph)")
	cmd.Flags().BoolVar(&f.opts.Detailed, "detailed", false, "show element types in node labels (dot, graph)")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input string, f layoutFlags, stdin io.Reader, stdout io.Writer) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	data, err := readInput(input, stdin)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := f.opts
	opts.Layout = cfg.Layout

	prog := newProgress(c.Logger)
	toStdout := f.output == "-"
	var sp *spinner
	if !toStdout {
		sp = newSpinner(ctx, "Computing layout...")
		sp.start()
	}

	res, err := runner.Execute(ctx, data, opts)
	if sp != nil {
		if err != nil {
			sp.fail("Layout failed")
		} else {
			sp.stop()
		}
		if sp.interrupted() {
			return ctx.Err()
		}
	}
	if err != nil {
		return err
	}
	prog.done("laid out " + input)

	if toStdout {
		_, err := stdout.Write(res.Data)
		return err
	}

	path := f.output
	if path == "" {
		path = outputPath(input, res.Format)
	}
	if err := os.WriteFile(path, res.Data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	printSuccess("Layout complete")
	printFile(path)
	printStats(res.Stats, res.CacheHit)
	if res.Stats.EdgesDropped > 0 {
		printWarning("%d sequence flows skipped (unknown source or target)", res.Stats.EdgesDropped)
	}
	if res.Format == pipeline.FormatBPMN {
		printNextStep("Preview", "bpmnlayout layout "+input+" -f svg")
	}
	return nil
}

func readInput(input string, stdin io.Reader) ([]byte, error) {
	if input == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(input)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "input %s not found", input)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", input, err)
	}
	return data, nil
}

// outputPath derives "<dir>/<base>.layout.<ext>" from input. Stdin input
// writes to the working directory.
func outputPath(input, format string) string {
	base := "stdin"
	if input != "-" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}
	return base + ".layout" + pipeline.Extension(format)
}
