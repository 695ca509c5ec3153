// Package rendering turns a resume record into HTML using the embedded template set.
package rendering

import (
	"html/template"
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/templates"
)

// DefaultPageWidth is an A4 page width in CSS pixels at 96 DPI.
const DefaultPageWidth = 794

// DocumentOptions controls BuildDocument.
type DocumentOptions struct {
	// Width is the fixed document width in CSS pixels. Zero means DefaultPageWidth.
	Width int
	// Title is the document title. Empty means "Resume".
	Title string
	// Print adds a script that opens the print dialog once the page loads.
	Print bool
}

type documentData struct {
	Width      int
	Title      string
	TemplateID string
	CSS        template.CSS
	Fragment   template.HTML
	Print      bool
}

// BuildDocument wraps a fragment produced by Render in a standalone, fixed-width HTML document
// with all styles inlined, so it renders the same in any surface.
func (e *Engine) BuildDocument(fragment string, cfg templates.Config, opts DocumentOptions) (string, error) {
	width := opts.Width
	if width <= 0 {
		width = DefaultPageWidth
	}
	title := opts.Title
	if strings.TrimSpace(title) == "" {
		title = "Resume"
	}

	css := strings.ReplaceAll(e.css, "{{PAGE_WIDTH}}", strconv.Itoa(width))

	data := documentData{
		Width:      width,
		Title:      title,
		TemplateID: cfg.ID,
		CSS:        template.CSS(css),       //nolint:gosec // embedded stylesheet
		Fragment:   template.HTML(fragment), //nolint:gosec // produced by Render, which escapes all user text
		Print:      opts.Print,
	}

	var result strings.Builder
	if err := e.tmpl.ExecuteTemplate(&result, "document", data); err != nil {
		return "", &TemplateError{
			Message: "failed to build export document",
			Cause:   err,
		}
	}
	return result.String(), nil
}
