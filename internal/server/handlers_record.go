package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/resume-builder/internal/app"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

// RecordResponse is returned by GET /api/record.
type RecordResponse struct {
	Record    *types.ResumeRecord `json:"record"`
	Template  templates.Config    `json:"template"`
	Notice    string              `json:"notice,omitempty"`
	SaveError string              `json:"save_error,omitempty"`
}

// MutationResponse is returned by every edit. SaveError is set when the edit was applied
// in memory but could not be persisted.
type MutationResponse struct {
	ID        string `json:"id,omitempty"`
	Value     string `json:"value,omitempty"`
	SaveError string `json:"save_error,omitempty"`
}

// handleGetRecord handles GET /api/record
func (s *Server) handleGetRecord(w http.ResponseWriter, _ *http.Request) {
	resp := RecordResponse{
		Record:   s.ctrl.Snapshot(),
		Template: s.ctrl.Template(),
		Notice:   s.takeNotice(),
	}
	if err := s.ctrl.WriteError(); err != nil {
		resp.SaveError = err.Error()
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleClearRecord handles DELETE /api/record
func (s *Server) handleClearRecord(w http.ResponseWriter, r *http.Request) {
	msg, err := saveError(s.ctrl.ClearAll(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, MutationResponse{SaveError: msg})
}

// handleSetPersonal handles PUT /api/record/personal/{field}
func (s *Server) handleSetPersonal(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateValueRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	msg, err := saveError(s.ctrl.SetPersonal(r.PathValue("field"), req.Value))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, MutationResponse{Value: strings.TrimSpace(req.Value), SaveError: msg})
}

// handleSetSummary handles PUT /api/record/summary
func (s *Server) handleSetSummary(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateValueRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	value, err := s.ctrl.SetSummary(req.Value)
	msg, err := saveError(err)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, MutationResponse{Value: value, SaveError: msg})
}

// handleSetTemplate handles PUT /api/record/template
func (s *Server) handleSetTemplate(w http.ResponseWriter, r *http.Request) {
	var req types.SetTemplateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	id, err := s.ctrl.SetTemplate(r.Context(), req.TemplateID)
	msg, err := saveError(err)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, MutationResponse{Value: id, SaveError: msg})
}

// handleAddEntry handles POST /api/record/{section}. Skills take a name; other sections start empty.
func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	section, err := app.ParseSection(r.PathValue("section"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var id string
	if section == app.SectionSkills {
		var req types.AddSkillRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			s.writeError(w, err)
			return
		}
		id, err = s.ctrl.AddSkill(r.Context(), req.Name)
	} else {
		id, err = s.ctrl.AddEntry(r.Context(), section)
	}

	msg, err := saveError(err)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, MutationResponse{ID: id, SaveError: msg})
}

// handleUpdateEntry handles PATCH /api/record/{section}/{id}
func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	section, err := app.ParseSection(r.PathValue("section"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req types.UpdateEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	id := r.PathValue("id")
	msg, err := saveError(s.ctrl.UpdateEntry(section, id, req.Field, req.Value))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, MutationResponse{ID: id, Value: req.Value, SaveError: msg})
}

// handleRemoveEntry handles DELETE /api/record/{section}/{id}
func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	section, err := app.ParseSection(r.PathValue("section"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	id := r.PathValue("id")
	msg, err := saveError(s.ctrl.RemoveEntry(r.Context(), section, id))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, MutationResponse{ID: id, SaveError: msg})
}
