package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-builder/internal/export"
)

// exportSummary describes a finished export in JSON responses and stream events.
type exportSummary struct {
	Format        export.Format `json:"format"`
	Filename      string        `json:"filename"`
	PageCount     int           `json:"page_count"`
	ContentHeight float64       `json:"content_height"`
	Data          []byte        `json:"data,omitempty"`
	Pages         []pagePayload `json:"pages,omitempty"`
	Locations     []string      `json:"locations,omitempty"`
}

type pagePayload struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
}

func summarize(res *export.Result) exportSummary {
	sum := exportSummary{
		Format:        res.Format,
		Filename:      res.Filename,
		PageCount:     res.PageCount,
		ContentHeight: res.ContentHeight,
	}
	for _, p := range res.Pages {
		sum.Pages = append(sum.Pages, pagePayload{Filename: p.Filename, Data: p.Data})
	}
	return sum
}

// exportRequest holds the parsed query of an export call.
type exportRequest struct {
	format export.Format
	save   bool
}

func (s *Server) parseExportRequest(r *http.Request) (exportRequest, error) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		return exportRequest{}, &RequestError{Message: err.Error()}
	}

	var save bool
	if v := r.URL.Query().Get("save"); v != "" {
		save, err = strconv.ParseBool(v)
		if err != nil {
			return exportRequest{}, &RequestError{Message: fmt.Sprintf("invalid save flag %q", v)}
		}
	}
	if save && s.sink == nil {
		return exportRequest{}, &RequestError{Message: "saving exports is not configured"}
	}
	return exportRequest{format: format, save: save}, nil
}

// runExport exports the current record and, when requested, saves the files to the sink.
func (s *Server) runExport(ctx context.Context, req exportRequest, progress func(export.Stage)) (*export.Result, []string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.exportTimeout)
	defer cancel()

	res, err := s.ctrl.Export(ctx, export.Options{Format: req.format, Progress: progress})
	if err != nil {
		return nil, nil, err
	}
	if !req.save {
		return res, nil, nil
	}

	locations, err := export.SaveResult(ctx, s.sink, res)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to save export: %w", err)
	}
	s.logger.Info("export saved", "file", res.Filename, "locations", locations)
	return res, locations, nil
}

// handleExport handles POST /api/export?format=pdf|png&save=bool.
// A PDF without save is returned as an attachment; everything else is a JSON summary.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseExportRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, locations, err := s.runExport(r.Context(), req, nil)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if res.Format == export.FormatPDF && !req.save {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
		w.Header().Set("X-Page-Count", strconv.Itoa(res.PageCount))
		w.WriteHeader(http.StatusOK)
		w.Write(res.Data) //nolint:errcheck
		return
	}

	sum := summarize(res)
	sum.Locations = locations
	s.jsonResponse(w, http.StatusOK, sum)
}

// handleExportStream handles POST /api/export/stream, reporting each stage as an SSE event.
func (s *Server) handleExportStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseExportRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	res, locations, err := s.runExport(r.Context(), req, func(stage export.Stage) {
		sse.WriteStage(string(stage))
	})
	if err != nil {
		sse.WriteError(s.errorBody(err))
		return
	}

	sum := summarize(res)
	sum.Data = res.Data
	sum.Locations = locations
	sse.WriteComplete(sum)
}
