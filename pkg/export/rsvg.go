package export

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// RSVG rasterizes with librsvg's rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
type RSVG struct {
	// Bin is the rsvg-convert executable; empty means "rsvg-convert" on PATH.
	Bin string
}

func (RSVG) Name() string { return "rsvg" }

func (r RSVG) bin() string {
	if r.Bin != "" {
		return r.Bin
	}
	return "rsvg-convert"
}

// Rasterize converts svg to PNG scaled by opts.PixelRatio and flattened onto
// opts.Background.
func (r RSVG) Rasterize(ctx context.Context, svg []byte, opts Options) ([]byte, error) {
	bin := r.bin()
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("png export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin")
	}

	cmd := exec.CommandContext(ctx, bin, rsvgArgs(opts)...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("rsvg-convert produced no output")
	}
	return out.Bytes(), nil
}

func rsvgArgs(opts Options) []string {
	args := []string{"-f", "png", "-z", fmt.Sprintf("%.2f", opts.PixelRatio)}
	if opts.Background != "" {
		args = append(args, "-b", opts.Background)
	}
	return args
}
