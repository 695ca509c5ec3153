// Package types provides type definitions for the resume record and the requests that edit it.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// SchemaVersion is the persisted record version this build reads and writes.
const SchemaVersion = 1

// SummaryMaxLength is the maximum summary length in characters.
const SummaryMaxLength = 500

// DefaultTemplateID is used for new records and whenever a stored template id cannot be resolved.
const DefaultTemplateID = "modern-professional"

// PresentLabel is the end date written when an experience entry is marked as current.
const PresentLabel = "Present"

// ResumeRecord is the complete persisted and in-memory resume.
type ResumeRecord struct {
	SchemaVersion int        `json:"schemaVersion" yaml:"schemaVersion" validate:"min=1"`
	TemplateID    string     `json:"templateId" yaml:"templateId" validate:"required"`
	Data          ResumeData `json:"data" yaml:"data"`
}

// ResumeData holds the user-entered career data.
type ResumeData struct {
	Personal       Personal        `json:"personal" yaml:"personal"`
	Summary        string          `json:"summary" yaml:"summary" validate:"max=500"`
	Experience     []Experience    `json:"experience" yaml:"experience" validate:"dive"`
	Projects       []Project       `json:"projects" yaml:"projects" validate:"dive"`
	Education      []Education     `json:"education" yaml:"education" validate:"dive"`
	Skills         []Skill         `json:"skills" yaml:"skills" validate:"dive"`
	Certifications []Certification `json:"certifications" yaml:"certifications" validate:"dive"`
}

// NewRecord returns a record with all defaults.
func NewRecord() *ResumeRecord {
	r := &ResumeRecord{
		SchemaVersion: SchemaVersion,
		TemplateID:    DefaultTemplateID,
	}
	r.Normalize()
	return r
}

// NewID returns a time-ordered identifier for a new list entry.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Normalize replaces nil lists with empty ones so the record always serializes the same shape.
func (r *ResumeRecord) Normalize() {
	if r.Data.Experience == nil {
		r.Data.Experience = []Experience{}
	}
	if r.Data.Projects == nil {
		r.Data.Projects = []Project{}
	}
	if r.Data.Education == nil {
		r.Data.Education = []Education{}
	}
	if r.Data.Skills == nil {
		r.Data.Skills = []Skill{}
	}
	if r.Data.Certifications == nil {
		r.Data.Certifications = []Certification{}
	}
}

// Clone returns a deep copy of the record.
func (r *ResumeRecord) Clone() *ResumeRecord {
	c := *r
	c.Data.Experience = append([]Experience{}, r.Data.Experience...)
	c.Data.Projects = append([]Project{}, r.Data.Projects...)
	c.Data.Education = append([]Education{}, r.Data.Education...)
	c.Data.Skills = append([]Skill{}, r.Data.Skills...)
	c.Data.Certifications = append([]Certification{}, r.Data.Certifications...)
	return &c
}

// Validate checks structural constraints on an imported or edited record.
func (r *ResumeRecord) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ClampSummary trims the summary and cuts it to SummaryMaxLength characters.
func ClampSummary(summary string) string {
	summary = strings.TrimSpace(summary)
	if utf8.RuneCountInString(summary) <= SummaryMaxLength {
		return summary
	}
	runes := []rune(summary)
	return string(runes[:SummaryMaxLength])
}

// IsBlank reports whether s has no visible characters.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
