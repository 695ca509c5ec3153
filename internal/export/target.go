package export

import (
	"context"
	"time"
)

// Viewport describes the render surface geometry.
type Viewport struct {
	Width  int
	Height int
	Scale  float64
}

// DefaultViewport is one A4 page at the raster scale.
var DefaultViewport = Viewport{Width: PageWidth, Height: PageHeight, Scale: RasterScale}

// Target opens isolated render surfaces. Each surface is independent of the others.
type Target interface {
	Open(ctx context.Context, vp Viewport) (Surface, error)
}

// Surface is one loaded document inside a render target. Close must always be called.
type Surface interface {
	// Load replaces the surface content with a standalone HTML document.
	Load(ctx context.Context, html string) error
	// Settle waits two animation frames, for fonts to load, and then for delay.
	Settle(ctx context.Context, delay time.Duration) error
	// Measure returns the scroll height of the element matched by selector, in CSS px.
	Measure(ctx context.Context, selector string) (float64, error)
	// PrintPDF prints the document on A4 portrait paper with zero margins and backgrounds.
	PrintPDF(ctx context.Context) ([]byte, error)
	// Screenshot captures a PNG of the region (0,0)-(width,height) at the viewport scale.
	Screenshot(ctx context.Context, width, height float64) ([]byte, error)
	Close() error
}
