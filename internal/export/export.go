// Package export turns a resume record into a paginated A4 PDF (or PNG pages) through a headless render target.
package export

import (
	"fmt"
	"strings"
)

// Page geometry shared by the render surface and the capture step.
const (
	PageWidth   = 794  // CSS px, A4 width at 96dpi
	PageHeight  = 1123 // CSS px, A4 height at 96dpi
	RasterScale = 2

	// RasterPageHeight is the height of one A4 page in a 2x raster.
	RasterPageHeight = 2246

	PaperWidthInches  = 8.27
	PaperHeightInches = 11.69
)

// Format selects the export output.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
)

// ParseFormat accepts "pdf" or "png" (case-insensitive). An empty string means pdf.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatPDF):
		return FormatPDF, nil
	case string(FormatPNG):
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (expected pdf or png)", s)
	}
}

// Options control a single export.
type Options struct {
	Format Format
	// Progress, if set, is called as each stage starts. Coalesced callers are not notified.
	Progress func(Stage)
}

func (o Options) report(s Stage) {
	if o.Progress != nil {
		o.Progress(s)
	}
}

func (o Options) withDefaults() Options {
	if o.Format == "" {
		o.Format = FormatPDF
	}
	return o
}

// Page is one rasterized A4 page.
type Page struct {
	Filename string
	Data     []byte
}

// Result is the output of a successful export.
type Result struct {
	Format   Format
	Filename string
	// Data holds the PDF bytes. Empty for PNG exports.
	Data []byte
	// Pages holds the PNG pages. Empty for PDF exports.
	Pages         []Page
	PageCount     int
	ContentHeight float64
}

// Files returns every output file of the result keyed by file name.
func (r *Result) Files() map[string][]byte {
	files := make(map[string][]byte, len(r.Pages)+1)
	if len(r.Data) > 0 {
		files[r.Filename] = r.Data
	}
	for _, p := range r.Pages {
		files[p.Filename] = p.Data
	}
	return files
}
