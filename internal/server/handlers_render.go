package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/templates"
)

// handleListTemplates handles GET /api/templates
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"templates": templates.List(),
		"current":   s.ctrl.Template().ID,
	})
}

// handlePreview handles GET /preview. A failed render still answers 200 with the error panel,
// which offers the data reset.
func (s *Server) handlePreview(w http.ResponseWriter, _ *http.Request) {
	html, err := s.ctrl.Preview()
	if err != nil {
		w.Header().Set("X-Render-Error", "true")
	}
	htmlResponse(w, html)
}

// handlePrint handles GET /print, the standalone document that opens the print dialog.
func (s *Server) handlePrint(w http.ResponseWriter, _ *http.Request) {
	doc, err := s.ctrl.PrintDocument()
	if err != nil {
		s.writeError(w, err)
		return
	}
	htmlResponse(w, doc)
}

// handlePlainText handles GET /api/record/plaintext
func (s *Server) handlePlainText(w http.ResponseWriter, _ *http.Request) {
	text, err := s.ctrl.PlainText()
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text)) //nolint:errcheck
}

func htmlResponse(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html)) //nolint:errcheck
}
