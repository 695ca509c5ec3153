package export

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // register the PNG decoder

	"github.com/fogleman/gg"
	"github.com/ledongthuc/pdf"
)

// Paginate slices a PNG raster into pages of pageHeight pixels.
// The last page is padded with white to a full page.
func Paginate(raster []byte, pageHeight int) ([][]byte, error) {
	if pageHeight <= 0 {
		return nil, fmt.Errorf("page height must be positive, got %d", pageHeight)
	}

	img, _, err := image.Decode(bytes.NewReader(raster))
	if err != nil {
		return nil, fmt.Errorf("decode raster: %w", err)
	}

	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("raster is empty")
	}

	count := (height + pageHeight - 1) / pageHeight
	pages := make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		dc := gg.NewContext(width, pageHeight)
		dc.SetRGB(1, 1, 1)
		dc.Clear()
		dc.DrawImage(img, -b.Min.X, -b.Min.Y-i*pageHeight)

		var out bytes.Buffer
		if err := dc.EncodePNG(&out); err != nil {
			return nil, fmt.Errorf("encode page %d: %w", i+1, err)
		}
		pages = append(pages, out.Bytes())
	}
	return pages, nil
}

// CountPDFPages returns the number of pages in a PDF document.
func CountPDFPages(data []byte) (count int, err error) {
	// The reader panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			count, err = 0, fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("failed to read pdf: %w", err)
	}
	return reader.NumPage(), nil
}

// estimatePages is the page count implied by a content height in CSS px.
func estimatePages(contentHeight float64) int {
	n := int(contentHeight) / PageHeight
	if int(contentHeight)%PageHeight != 0 || n == 0 {
		n++
	}
	return n
}
