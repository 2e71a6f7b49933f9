// Package surfacechromium renders dashboards in headless Chromium and
// captures raster snapshots from the live page.
package surfacechromium

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/goliatone/go-dashboard-export/export"
)

// Browser owns a shared headless Chromium instance. Each dashboard gets
// its own surface via Surface; all surfaces share the one browser.
type Browser struct {
	BrowserPath string
	Headless    bool
	Timeout     time.Duration

	initOnce      sync.Once
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// Surface binds a dashboard to the browser. Each snapshot renders the
// dashboard's markup document in a fresh tab sized to the canvas.
func (b *Browser) Surface(dashboard export.DashboardConfig) export.RenderSurface {
	return &surface{browser: b, dashboard: dashboard}
}

// Close releases Chromium resources if they have been initialized.
func (b *Browser) Close() error {
	if b == nil {
		return nil
	}
	if b.browserCancel != nil {
		b.browserCancel()
	}
	if b.allocCancel != nil {
		b.allocCancel()
	}
	return nil
}

func (b *Browser) ensureBrowser() error {
	b.initOnce.Do(func() {
		options := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
		if b.BrowserPath != "" {
			options = append(options, chromedp.ExecPath(b.BrowserPath))
		}
		options = append(options, chromedp.Flag("headless", b.Headless))

		b.allocCtx, b.allocCancel = chromedp.NewExecAllocator(context.Background(), options...)
		b.browserCtx, b.browserCancel = chromedp.NewContext(b.allocCtx)
	})
	if b.allocCtx == nil || b.browserCtx == nil {
		return errors.New("chromium allocator unavailable")
	}
	return nil
}

type surface struct {
	browser   *Browser
	dashboard export.DashboardConfig

	markupOnce sync.Once
	markup     string
	markupErr  error
}

func (s *surface) document() (string, error) {
	s.markupOnce.Do(func() {
		s.markup, s.markupErr = export.BuildMarkup(s.dashboard)
	})
	return s.markup, s.markupErr
}

// Snapshot captures the rendered dashboard at the logical canvas size.
func (s *surface) Snapshot(ctx context.Context, req export.SnapshotRequest) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.browser.ensureBrowser(); err != nil {
		return nil, export.NewError(export.KindInternal, "chromium surface init failed", err)
	}

	format, err := screenshotFormat(req.Format)
	if err != nil {
		return nil, err
	}
	markup, err := s.document()
	if err != nil {
		return nil, err
	}

	tabCtx, cancel := chromedp.NewContext(s.browser.browserCtx)
	defer cancel()

	execCtx, cancelReq := context.WithCancel(tabCtx)
	defer cancelReq()
	go func() {
		select {
		case <-ctx.Done():
			cancelReq()
		case <-execCtx.Done():
		}
	}()
	if s.browser.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		execCtx, cancelTimeout = context.WithTimeout(execCtx, s.browser.Timeout)
		defer cancelTimeout()
	}

	scale := req.Scale
	if scale <= 0 {
		scale = 1
	}

	var shot []byte
	actions := []chromedp.Action{
		emulation.SetDeviceMetricsOverride(
			int64(export.CanvasWidth), int64(export.CanvasHeight), scale, false),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, markup).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			params := page.CaptureScreenshot().WithFormat(format)
			if format == page.CaptureScreenshotFormatJpeg {
				params = params.WithQuality(snapshotQualityPercent(req.Quality))
			}
			var err error
			shot, err = params.Do(ctx)
			return err
		}),
	}

	if err := chromedp.Run(execCtx, actions...); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, export.NewError(export.KindTimeout, "surface snapshot timed out", err)
		}
		return nil, export.NewError(export.KindInternal, "surface snapshot failed", err)
	}
	return shot, nil
}

func screenshotFormat(format export.Format) (page.CaptureScreenshotFormat, error) {
	switch format {
	case export.FormatJPEG:
		return page.CaptureScreenshotFormatJpeg, nil
	case export.FormatPNG:
		return page.CaptureScreenshotFormatPng, nil
	default:
		return "", export.NewError(export.KindValidation,
			fmt.Sprintf("unsupported snapshot format %q", format), nil)
	}
}

func snapshotQualityPercent(quality float64) int64 {
	if quality <= 0 || quality > 1 {
		quality = 1
	}
	return int64(math.Round(quality * 100))
}
