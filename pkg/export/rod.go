package export

import (
	"context"
	"fmt"
	"math"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Rod rasterizes by screenshotting the canvas root in headless Chromium.
// Each call launches and tears down its own browser.
type Rod struct {
	// Bin is the browser executable; empty lets rod locate or download one.
	Bin string
}

func (Rod) Name() string { return "rod" }

// Rasterize loads svg into a blank page sized to the document, sets the
// device scale factor to opts.PixelRatio and captures the element with id
// opts.Root.
func (r Rod) Rasterize(ctx context.Context, svg []byte, opts Options) ([]byte, error) {
	l := launcher.New().Context(ctx).Headless(true)
	if r.Bin != "" {
		l = l.Bin(r.Bin)
	}
	defer l.Cleanup()
	defer l.Kill()

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(url).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             int(math.Ceil(opts.Width)),
		Height:            int(math.Ceil(opts.Height)),
		DeviceScaleFactor: opts.PixelRatio,
		Mobile:            false,
	}).Call(page); err != nil {
		return nil, fmt.Errorf("set device metrics: %w", err)
	}

	if err := page.SetDocumentContent(pageHTML(svg, opts.Background)); err != nil {
		return nil, fmt.Errorf("load canvas: %w", err)
	}

	el, err := page.Element("#" + opts.Root)
	if err != nil {
		return nil, fmt.Errorf("locate canvas root %q: %w", opts.Root, err)
	}
	png, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return png, nil
}

func pageHTML(svg []byte, background string) string {
	if background == "" {
		background = DefaultBackground
	}
	return fmt.Sprintf(`<!doctype html><html><head><meta charset="utf-8"></head><body style="margin:0;background:%s">%s</body></html>`,
		background, svg)
}
