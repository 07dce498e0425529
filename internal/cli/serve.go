package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/legalcanvas/internal/server"
	"github.com/matzehuels/legalcanvas/pkg/export"
	"github.com/matzehuels/legalcanvas/pkg/generate"
	"github.com/matzehuels/legalcanvas/pkg/observability"
	"github.com/matzehuels/legalcanvas/pkg/observability/prom"
	"github.com/matzehuels/legalcanvas/pkg/render/canvas"
	"github.com/matzehuels/legalcanvas/pkg/shell"
	"github.com/matzehuels/legalcanvas/pkg/suite"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	listen    string        // overrides the configured address
	suitePath string        // replay a stored suite instead of calling the model
	delay     time.Duration // artificial latency for replayed suites
	noMetrics bool          // do not mount /metrics
}

// serveCommand creates the serve command, which runs the web UI.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI",
		Long: `Serve runs the single-page web UI: paste a contract, generate the suite,
switch between sheets and download the active sheet as PNG.

With --suite the stored suite is returned for every submission and no model
is called, which is useful for demos and for working on the renderer.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.listen, "listen", "l", "", "listen address (default from config)")
	cmd.Flags().StringVar(&opts.suitePath, "suite", "", "serve this suite JSON instead of calling the model")
	cmd.Flags().DurationVar(&opts.delay, "delay", 0, "simulated model latency with --suite")
	cmd.Flags().BoolVar(&opts.noMetrics, "no-metrics", false, "disable the /metrics endpoint")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.config()
	if err != nil {
		return err
	}
	if opts.listen != "" {
		cfg.Listen = opts.listen
	}

	var gen generate.Generator
	if opts.suitePath != "" {
		s, err := suite.ReadFile(opts.suitePath)
		if err != nil {
			return err
		}
		gen = generate.Static{Suite: s, Delay: opts.delay}
		printInfo("Replaying %s (%d sheets)", StyleHighlight.Render(s.ProjectName), len(s.Sheets))
	} else {
		gen, err = c.newGenerator(ctx, cfg, logger)
		if err != nil {
			return err
		}
	}

	r, err := newRasterizer(cfg)
	if err != nil {
		return err
	}

	sh := shell.New(gen,
		shell.WithComposer(canvas.NewComposer(canvas.WithWidth(cfg.CanvasWidth))),
		shell.WithExporter(export.New(r, export.WithLogger(logger))),
		shell.WithLogger(logger),
	)

	srvCfg := server.Config{Timeout: cfg.timeout(), Logger: logger}
	if !opts.noMetrics {
		srvCfg.Metrics = installMetrics()
		defer observability.Reset()
	}

	srv, err := server.New(sh, srvCfg)
	if err != nil {
		return err
	}

	printSuccess("Serving on %s", StyleHighlight.Render(cfg.Listen))
	printKeyValue("Model", cfg.Model)
	printKeyValue("Rasterizer", r.Name())
	printNewline()

	err = srv.ListenAndServe(ctx, cfg.Listen)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// installMetrics registers the Prometheus hooks and returns the /metrics
// handler.
func installMetrics() http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom.New(reg).Install()
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
