// Package rendering turns a resume record into HTML using the embedded template set.
package rendering

import (
	"html/template"
	"strings"
)

// ResetURL is the endpoint the error panel's reset button calls to clear stored data.
const ResetURL = "/api/record"

var panelTmpl = template.Must(template.ParseFS(assets, "assets/panel.html.tmpl"))

// ErrorPanel returns the visible error block shown instead of the resume when rendering fails.
// It offers a data-reset action and shows the error message verbatim (escaped).
func ErrorPanel(err error) string {
	message := "unknown error"
	if err != nil {
		message = err.Error()
	}

	var result strings.Builder
	if execErr := panelTmpl.ExecuteTemplate(&result, "panel", struct {
		ResetURL string
		Message  string
	}{ResetURL: ResetURL, Message: message}); execErr != nil {
		return "<div class=\"rb-render-error\" role=\"alert\">Rendering Issue Detected</div>"
	}
	return result.String()
}
