package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/legalcanvas/pkg/errors"
	"github.com/matzehuels/legalcanvas/pkg/pipeline"
	"github.com/matzehuels/legalcanvas/pkg/suite"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output directory
	formats     []string // "svg", "png", "graph", "json"
	sheets      []string // sheet ids; empty renders all
	detailed    bool     // show details in graph artifacts
	width       float64  // canvas width; 0 uses the config
	rasterizer  string   // overrides the configured backend
	concurrency int      // parallel sheet renders
}

// renderCommand creates the render command, which renders a stored suite to
// files.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{output: "."}

	cmd := &cobra.Command{
		Use:   "render [suite.json]",
		Short: "Render the sheets of a suite to SVG, PNG, graph or JSON files",
		Long: `Render draws every sheet of a suite (or the sheets chosen with --sheet) and
writes one file per sheet and format into the output directory:

  svg    the sheet canvas
  png    the canvas rasterized at 2.5x on white
  graph  the connection graph as a Graphviz diagram
  json   the sheet as a one-sheet suite`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output directory")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, graph, json (comma-separated)")
	cmd.Flags().StringSliceVarP(&opts.sheets, "sheet", "s", nil, "sheet id to render (repeatable; default all)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show details, roles and impact in graph output")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width in pixels (default from config)")
	cmd.Flags().StringVar(&opts.rasterizer, "rasterizer", "", "png backend: rsvg or rod (default from config)")
	cmd.Flags().IntVarP(&opts.concurrency, "jobs", "j", 0, "sheets rendered in parallel (default GOMAXPROCS)")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	for _, id := range opts.sheets {
		if err := errors.ValidateSheetID(id); err != nil {
			return err
		}
	}

	cfg, err := c.config()
	if err != nil {
		return err
	}
	if opts.rasterizer != "" {
		cfg.Rasterizer = opts.rasterizer
	}
	if opts.width > 0 {
		cfg.CanvasWidth = opts.width
	}

	s, err := suite.ReadFile(path)
	if err != nil {
		return err
	}

	r, err := newRasterizer(cfg)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	runner := pipeline.NewRunner(r, logger)
	res, err := runner.Execute(ctx, s, pipeline.Options{
		Formats:     opts.formats,
		Width:       cfg.CanvasWidth,
		Detailed:    opts.detailed,
		Sheets:      opts.sheets,
		Concurrency: opts.concurrency,
	})
	if err != nil {
		printError("Render failed: %v", err)
		return err
	}

	paths, err := pipeline.Write(opts.output, res)
	if err != nil {
		return err
	}

	printSuccess("Rendered %d sheets of %s", res.Stats.SheetCount, StyleHighlight.Render(res.Project))
	for _, p := range paths {
		printFile(p)
	}
	prog.done("Rendered suite", "files", len(paths), "bytes", res.Stats.Bytes)
	return nil
}
