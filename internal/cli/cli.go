// Package cli implements the legalcanvas command-line interface.
//
// The commands cover the whole flow from contract text to finished sheets:
//   - generate: send contract text to the model and store the returned suite
//   - render: render a stored suite to SVG, PNG, graph or JSON files
//   - browse: pick a sheet interactively and export it
//   - serve: run the web UI
//
// Settings come from a TOML file (see [Config]); flags override them. The
// Gemini API key is only read from the environment.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed to the libraries through their options and to commands through
// context.Context.
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/legalcanvas/pkg/buildinfo"
	"github.com/matzehuels/legalcanvas/pkg/export"
	"github.com/matzehuels/legalcanvas/pkg/generate"
	"github.com/matzehuels/legalcanvas/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "legalcanvas"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by --config; empty means the default location.
	configPath string

	// newGenerator builds the model client for generate. Tests replace it.
	newGenerator func(ctx context.Context, cfg Config, logger *log.Logger) (generate.Generator, error)
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:       newLogger(w, level),
		newGenerator: newClient,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "legalcanvas turns contracts into visual explanation sheets",
		Long:         `legalcanvas sends contract text to a Gemini model, which breaks it down into a suite of visual sheets (logic flows, risk heatmaps, responsibility matrices). The sheets can be browsed in a web UI or rendered to SVG and PNG files.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/legalcanvas/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// config loads the configuration selected by --config.
func (c *CLI) config() (Config, error) {
	if c.configPath != "" {
		return LoadConfig(c.configPath)
	}
	path, err := configFile()
	if err != nil {
		return DefaultConfig(), nil
	}
	cfg, err := LoadConfig(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// =============================================================================
// Factories
// =============================================================================

// newClient connects to Gemini with the key from the environment.
func newClient(ctx context.Context, cfg Config, logger *log.Logger) (generate.Generator, error) {
	return generate.NewClient(ctx, generate.APIKeyFromEnv(),
		generate.WithModel(cfg.Model),
		generate.WithLogger(logger),
	)
}

// newRasterizer builds the configured PNG backend.
func newRasterizer(cfg Config) (export.Rasterizer, error) {
	return export.NewRasterizer(cfg.Rasterizer, cfg.BrowserBin)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, strings.ToLower(f))
		}
	}
	return out
}
