package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/legalcanvas/pkg/errors"
	"github.com/matzehuels/legalcanvas/pkg/export"
	"github.com/matzehuels/legalcanvas/pkg/render/canvas"
	"github.com/matzehuels/legalcanvas/pkg/render/nodelink"
	"github.com/matzehuels/legalcanvas/pkg/suite"
)

// RenderSheet generates the requested artifacts for one sheet. r is only
// used for png and may be nil otherwise. opts must have been validated.
func RenderSheet(ctx context.Context, project string, s suite.Sheet, r export.Rasterizer, opts Options) (map[string][]byte, error) {
	surface := canvas.Build(s, canvas.WithWidth(opts.Width))
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = surface.SVG()
		case FormatPNG:
			data, err = rasterize(ctx, r, surface)
		case FormatGraph:
			data, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(s, nodelink.Options{Detailed: opts.Detailed}))
		case FormatJSON:
			var buf bytes.Buffer
			err = suite.WriteJSON(&buf, &suite.Suite{ProjectName: project, Sheets: []suite.Sheet{s}})
			data = buf.Bytes()
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// rasterize converts a surface with the export defaults. Unlike
// [export.Exporter] it has no busy guard, so sheets can be rasterized in
// parallel.
func rasterize(ctx context.Context, r export.Rasterizer, s *canvas.Surface) ([]byte, error) {
	if r == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "png output needs a rasterizer")
	}
	opts := export.DefaultOptions()
	opts.Width, opts.Height = s.Size()
	opts.Root = s.RootID()

	png, err := r.Rasterize(ctx, s.SVG(), opts)
	if err != nil {
		return nil, errors.Export(err)
	}
	return png, nil
}
