// Package types provides type definitions for the resume record and the requests that edit it.
package types

import (
	"github.com/go-playground/validator/v10"
)

// UpdateValueRequest carries a single free-text value, used for personal fields and the summary.
type UpdateValueRequest struct {
	Value string `json:"value"`
}

// SetTemplateRequest selects the active template.
type SetTemplateRequest struct {
	TemplateID string `json:"templateId" validate:"required"`
}

// UpdateEntryRequest sets one field of a list entry.
type UpdateEntryRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

// AddSkillRequest adds a skill by name.
type AddSkillRequest struct {
	Name string `json:"name" validate:"required"`
}

// EntryResponse is returned after an entry is created.
type EntryResponse struct {
	ID string `json:"id"`
}

// Validate validates the SetTemplateRequest using the validator.
func (r *SetTemplateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateEntryRequest using the validator.
func (r *UpdateEntryRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AddSkillRequest using the validator.
func (r *AddSkillRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
