package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/legalcanvas/pkg/errors"
	"github.com/matzehuels/legalcanvas/pkg/export"
	"github.com/matzehuels/legalcanvas/pkg/render/canvas"
	"github.com/matzehuels/legalcanvas/pkg/suite"
)

// browseOpts holds the command-line flags for the browse command.
type browseOpts struct {
	output string // download directory
	sheet  string // sheet id; skips the picker
	svg    bool   // save the canvas SVG instead of a PNG
}

// browseCommand creates the browse command, which lets the user pick one
// sheet of a suite and exports its canvas.
func (c *CLI) browseCommand() *cobra.Command {
	opts := browseOpts{output: "."}

	cmd := &cobra.Command{
		Use:   "browse [suite.json]",
		Short: "Pick a sheet of a suite and export it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "directory for the exported file")
	cmd.Flags().StringVarP(&opts.sheet, "sheet", "s", "", "export this sheet without the picker")
	cmd.Flags().BoolVar(&opts.svg, "svg", false, "save the canvas SVG instead of a PNG")

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, path string, opts browseOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.config()
	if err != nil {
		return err
	}

	s, err := suite.ReadFile(path)
	if err != nil {
		return err
	}
	if len(s.Sheets) == 0 {
		printInfo("%s has no sheets", path)
		return nil
	}

	var picked suite.Sheet
	if opts.sheet != "" {
		if err := errors.ValidateSheetID(opts.sheet); err != nil {
			return err
		}
		sh, ok := s.Sheet(opts.sheet)
		if !ok {
			return errors.New(errors.ErrCodeNotFound, "sheet %q not found", opts.sheet)
		}
		picked = *sh
	} else {
		final, err := tea.NewProgram(NewSheetListModel(s, s.FirstSheetID()), tea.WithContext(ctx)).Run()
		if err != nil {
			return err
		}
		fm, ok := final.(SheetListModel)
		if !ok || fm.Selected == nil {
			printDetail("No selection made")
			return nil
		}
		picked = *fm.Selected
	}

	surface := canvas.Build(picked, canvas.WithWidth(cfg.CanvasWidth))

	if opts.svg {
		p, err := saveSVG(opts.output, surface)
		if err != nil {
			return err
		}
		printSuccess("Saved %s", StyleHighlight.Render(picked.Title))
		printFile(p)
		return nil
	}

	r, err := newRasterizer(cfg)
	if err != nil {
		return err
	}
	exporter := export.New(r, export.WithLogger(logger))

	spinner := newSpinner(ctx, "Exporting "+picked.Title+"...")
	spinner.Start()
	img, err := exporter.Export(ctx, surface)
	if err != nil {
		spinner.StopWithError(errors.UserMessage(err))
		return err
	}
	spinner.Stop()

	p, err := export.Save(opts.output, img)
	if err != nil {
		return err
	}
	printSuccess("Exported %s", StyleHighlight.Render(picked.Title))
	printFile(p)
	return nil
}

// saveSVG writes the canvas SVG under the export file name with an .svg
// extension.
func saveSVG(dir string, s *canvas.Surface) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := strings.TrimSuffix(export.Filename(s.Title()), ".png") + ".svg"
	name = strings.NewReplacer("/", "-", `\`, "-").Replace(name)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, s.SVG(), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
