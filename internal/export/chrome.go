package export

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// settleScript resolves after two animation frames and document.fonts.ready.
const settleScript = `new Promise(function (resolve) {
  requestAnimationFrame(function () {
    requestAnimationFrame(function () {
      var ready = document.fonts ? document.fonts.ready : Promise.resolve();
      ready.then(function () { resolve(true); });
    });
  });
})`

// ChromeTarget launches a headless Chrome per surface.
type ChromeTarget struct {
	// ExecPath overrides the browser binary. Defaults to CHROME_PATH, then chromedp's lookup.
	ExecPath string
	// Timeout bounds each surface operation.
	Timeout time.Duration
}

// NewChromeTarget returns a target honoring CHROME_PATH.
func NewChromeTarget(timeout time.Duration) *ChromeTarget {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChromeTarget{ExecPath: os.Getenv("CHROME_PATH"), Timeout: timeout}
}

// Open starts an isolated browser with the given viewport.
func (t *ChromeTarget) Open(ctx context.Context, vp Viewport) (Surface, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(vp.Width, vp.Height),
	)
	if t.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(t.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.WithoutCancel(ctx), opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	s := &chromeSurface{
		ctx:     browserCtx,
		timeout: t.Timeout,
		cancel: func() {
			cancelBrowser()
			cancelAlloc()
		},
	}

	err := s.run(ctx,
		emulation.SetDeviceMetricsOverride(int64(vp.Width), int64(vp.Height), vp.Scale, false),
		chromedp.Navigate("about:blank"),
	)
	if err != nil {
		s.cancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return s, nil
}

type chromeSurface struct {
	ctx     context.Context
	timeout time.Duration
	cancel  func()
}

// run executes actions on the browser, bounded by the surface timeout and by ctx.
func (s *chromeSurface) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

func (s *chromeSurface) Load(ctx context.Context, html string) error {
	return s.run(ctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("#pdf-resume", chromedp.ByQuery),
	)
}

func (s *chromeSurface) Settle(ctx context.Context, delay time.Duration) error {
	var settled bool
	return s.run(ctx,
		chromedp.Evaluate(settleScript, &settled, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.Sleep(delay),
	)
}

func (s *chromeSurface) Measure(ctx context.Context, selector string) (float64, error) {
	var height float64
	expr := fmt.Sprintf(`(function () {
  var el = document.querySelector(%q);
  return el ? Math.max(el.scrollHeight, el.getBoundingClientRect().height) : 0;
})()`, selector)
	if err := s.run(ctx, chromedp.Evaluate(expr, &height)); err != nil {
		return 0, err
	}
	if height <= 0 {
		return 0, fmt.Errorf("element %s has no height", selector)
	}
	return height, nil
}

func (s *chromeSurface) PrintPDF(ctx context.Context) ([]byte, error) {
	var buf []byte
	err := s.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		buf, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithLandscape(false).
			WithPaperWidth(PaperWidthInches).
			WithPaperHeight(PaperHeightInches).
			WithMarginTop(0).
			WithMarginBottom(0).
			WithMarginLeft(0).
			WithMarginRight(0).
			WithPreferCSSPageSize(true).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (s *chromeSurface) Screenshot(ctx context.Context, width, height float64) ([]byte, error) {
	var buf []byte
	err := s.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		buf, err = page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormatPng).
			WithCaptureBeyondViewport(true).
			WithClip(&page.Viewport{X: 0, Y: 0, Width: width, Height: height, Scale: 1}).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (s *chromeSurface) Close() error {
	s.cancel()
	return nil
}
