package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-builder/internal/app"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

// PrintPath serves the print fallback document after a failed export.
const PrintPath = "/print"

// RequestError indicates a malformed request
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound     *app.NotFoundError
		fieldErr     *types.FieldError
		requestErr   *RequestError
		validation   validator.ValidationErrors
		precondition *export.PreconditionError
		pipeline     *export.PipelineError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &fieldErr), errors.As(err, &requestErr), errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &precondition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &pipeline):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status and a JSON body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, body := s.errorBody(err)
	s.jsonResponse(w, status, body)
}

// errorBody builds the error payload. Failed exports point at the print fallback.
func (s *Server) errorBody(err error) (int, map[string]any) {
	status := HTTPStatus(err)
	body := map[string]any{"error": err.Error()}

	var pipeline *export.PipelineError
	if errors.As(err, &pipeline) {
		body["stage"] = pipeline.Stage
		body["fallback"] = PrintPath
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "error", err)
	}
	return status, body
}

// saveError separates a failed write, which leaves the edit applied, from a rejected edit.
// It returns the write failure message and the remaining error.
func saveError(err error) (string, error) {
	var writeErr *storage.WriteError
	if errors.As(err, &writeErr) {
		return writeErr.Error(), nil
	}
	return "", err
}
