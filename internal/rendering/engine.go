// Package rendering turns a resume record into HTML using the embedded template set.
package rendering

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed assets/*.tmpl assets/*.css
var assets embed.FS

// Engine renders resume fragments and standalone export documents.
// It is safe for concurrent use.
type Engine struct {
	tmpl *template.Template
	css  string
}

// NewEngine parses the embedded template set and stylesheets.
func NewEngine() (*Engine, error) {
	tmpl, err := template.New("rendering").ParseFS(assets, "assets/*.tmpl")
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse embedded templates",
			Cause:   err,
		}
	}

	var css strings.Builder
	for _, name := range []string{"assets/base.css", "assets/themes.css"} {
		content, err := assets.ReadFile(name)
		if err != nil {
			return nil, &TemplateError{
				Message: fmt.Sprintf("failed to read stylesheet: %s", name),
				Cause:   err,
			}
		}
		css.Write(content)
		css.WriteByte('\n')
	}

	return &Engine{tmpl: tmpl, css: css.String()}, nil
}

// Render produces the resume fragment: the header block followed by the non-empty
// sections in the order cfg lists them. Output is deterministic for a given input.
func (e *Engine) Render(rec *types.ResumeRecord, cfg templates.Config) (string, error) {
	if rec == nil {
		return "", &RenderError{Message: "no resume record to render"}
	}

	data := buildTemplateData(rec, cfg)

	var result strings.Builder
	if err := e.tmpl.ExecuteTemplate(&result, "resume", data); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}

	return strings.TrimSpace(result.String()), nil
}

// RenderPreview is Render with the recovery path: any error or panic is returned as a
// *RenderError together with the error panel HTML to show in place of the resume.
func (e *Engine) RenderPreview(rec *types.ResumeRecord, cfg templates.Config) (html string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RenderError{Message: fmt.Sprintf("panic while rendering: %v", r)}
			html = ErrorPanel(err)
		}
	}()

	html, err = e.Render(rec, cfg)
	if err != nil {
		var renderErr *RenderError
		if !errors.As(err, &renderErr) {
			err = &RenderError{Message: "failed to render resume", Cause: err}
		}
		return ErrorPanel(err), err
	}
	return html, nil
}
