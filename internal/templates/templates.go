// Package templates holds the static table of resume templates: section order, labels and skills layout.
package templates

import (
	"github.com/jonathan/resume-builder/internal/types"
)

// Section names one of the six renderable resume sections.
type Section string

const (
	SectionSummary        Section = "summary"
	SectionExperience     Section = "experience"
	SectionProjects       Section = "projects"
	SectionEducation      Section = "education"
	SectionSkills         Section = "skills"
	SectionCertifications Section = "certifications"
)

// SkillsFormat selects how the skills section is laid out.
type SkillsFormat string

const (
	SkillsTags         SkillsFormat = "tags"
	SkillsCommaInline  SkillsFormat = "comma-inline"
	SkillsPipeInline   SkillsFormat = "pipe-inline"
	SkillsBulletInline SkillsFormat = "bullet-inline"
	SkillsRows         SkillsFormat = "rows"
)

// Config is the immutable rendering configuration for one template.
type Config struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Sections     []Section          `json:"sections"`
	SkillsFormat SkillsFormat       `json:"skillsFormat"`
	HeaderStyle  string             `json:"headerStyle"`
	Labels       map[Section]string `json:"labels,omitempty"`
}

var defaultLabels = map[Section]string{
	SectionSummary:        "Summary",
	SectionExperience:     "Experience",
	SectionProjects:       "Projects",
	SectionEducation:      "Education",
	SectionSkills:         "Technical Skills",
	SectionCertifications: "Certifications",
}

// Label returns the display heading for a section.
func (c Config) Label(s Section) string {
	if l, ok := c.Labels[s]; ok {
		return l
	}
	return defaultLabels[s]
}

var techOrder = []Section{SectionSkills, SectionExperience, SectionProjects, SectionEducation, SectionCertifications, SectionSummary}

var table = []Config{
	{
		ID:           types.DefaultTemplateID,
		Name:         "Modern Professional",
		Sections:     []Section{SectionSummary, SectionExperience, SectionProjects, SectionEducation, SectionSkills, SectionCertifications},
		SkillsFormat: SkillsTags,
		HeaderStyle:  "modern",
		Labels:       map[Section]string{SectionSkills: "Skills"},
	},
	{ID: "technical-it", Name: "Technical / IT", Sections: techOrder, SkillsFormat: SkillsTags, HeaderStyle: "tech"},
	{ID: "data-science", Name: "Data Science", Sections: techOrder, SkillsFormat: SkillsRows, HeaderStyle: "tech"},
	{
		ID:           "devops",
		Name:         "DevOps / Cloud",
		Sections:     []Section{SectionSkills, SectionCertifications, SectionExperience, SectionProjects, SectionEducation, SectionSummary},
		SkillsFormat: SkillsPipeInline,
		HeaderStyle:  "tech",
	},
	{
		ID:           "product",
		Name:         "Product Management",
		Sections:     []Section{SectionSummary, SectionExperience, SectionSkills, SectionEducation, SectionCertifications},
		SkillsFormat: SkillsCommaInline,
		HeaderStyle:  "business",
		Labels:       map[Section]string{SectionSkills: "Core Competencies"},
	},
	{
		ID:           "uiux",
		Name:         "UI/UX Design",
		Sections:     []Section{SectionSummary, SectionExperience, SectionProjects, SectionSkills, SectionEducation},
		SkillsFormat: SkillsTags,
		HeaderStyle:  "creative",
		Labels:       map[Section]string{SectionProjects: "Selected Work", SectionSkills: "Tools & Skills"},
	},
	{
		ID:           "business",
		Name:         "Business / Finance",
		Sections:     []Section{SectionSummary, SectionExperience, SectionEducation, SectionSkills, SectionCertifications},
		SkillsFormat: SkillsCommaInline,
		HeaderStyle:  "business",
		Labels:       map[Section]string{SectionSummary: "Professional Summary", SectionSkills: "Skills"},
	},
	{
		ID:           "healthcare",
		Name:         "Healthcare",
		Sections:     []Section{SectionCertifications, SectionExperience, SectionEducation, SectionSkills, SectionSummary},
		SkillsFormat: SkillsRows,
		HeaderStyle:  "healthcare",
		Labels:       map[Section]string{SectionCertifications: "Licenses & Certifications", SectionExperience: "Clinical Experience", SectionSkills: "Clinical Skills"},
	},
	{
		ID:           "engineering",
		Name:         "Engineering",
		Sections:     []Section{SectionSummary, SectionSkills, SectionExperience, SectionProjects, SectionEducation, SectionCertifications},
		SkillsFormat: SkillsTags,
		HeaderStyle:  "engineering",
	},
	{
		ID:           "marketing",
		Name:         "Marketing",
		Sections:     []Section{SectionSummary, SectionExperience, SectionProjects, SectionSkills, SectionEducation, SectionCertifications},
		SkillsFormat: SkillsBulletInline,
		HeaderStyle:  "marketing",
		Labels:       map[Section]string{SectionProjects: "Campaigns", SectionSkills: "Skills"},
	},
	{
		ID:           "education",
		Name:         "Education / Teaching",
		Sections:     []Section{SectionEducation, SectionCertifications, SectionExperience, SectionSkills, SectionSummary},
		SkillsFormat: SkillsRows,
		HeaderStyle:  "education",
		Labels:       map[Section]string{SectionExperience: "Teaching Experience", SectionCertifications: "Certifications & Licensure", SectionSkills: "Skills"},
	},
	{
		ID:           "sales",
		Name:         "Sales",
		Sections:     []Section{SectionSummary, SectionExperience, SectionSkills, SectionEducation, SectionCertifications},
		SkillsFormat: SkillsBulletInline,
		HeaderStyle:  "sales",
		Labels:       map[Section]string{SectionSkills: "Skills"},
	},
	{
		ID:           "hr",
		Name:         "Human Resources",
		Sections:     []Section{SectionSummary, SectionExperience, SectionCertifications, SectionEducation, SectionSkills},
		SkillsFormat: SkillsCommaInline,
		HeaderStyle:  "business",
		Labels:       map[Section]string{SectionSkills: "Skills"},
	},
	{
		ID:           "legal",
		Name:         "Legal",
		Sections:     []Section{SectionEducation, SectionCertifications, SectionExperience, SectionSkills, SectionSummary},
		SkillsFormat: SkillsRows,
		HeaderStyle:  "business",
		Labels:       map[Section]string{SectionCertifications: "Bar Admissions & Certifications", SectionSkills: "Areas of Practice"},
	},
}

var byID = func() map[string]Config {
	m := make(map[string]Config, len(table))
	for _, c := range table {
		m[c.ID] = c
	}
	return m
}()

// legacyIDs maps identifiers written by earlier releases to current ids.
var legacyIDs = map[string]string{
	"ats-tech":         "technical-it",
	"ats-data-science": "data-science",
	"ats-devops":       "devops",
	"ats-product":      "product",
	"ats-uiux":         "uiux",
	"ats-business":     "business",
	"ats-healthcare":   "healthcare",
	"ats-engineering":  "engineering",
	"ats-marketing":    "marketing",
	"ats-education":    "education",
	"ats-sales":        "sales",
	"ats-hr":           "hr",
	"ats-legal":        "legal",
	"classic":          types.DefaultTemplateID,
	"modern":           types.DefaultTemplateID,
	"minimal":          types.DefaultTemplateID,
	"professional":     "business",
	"technical":        "technical-it",
	"creative":         "uiux",
}

// Lookup returns the config for a current template id.
func Lookup(id string) (Config, bool) {
	c, ok := byID[id]
	return c, ok
}

// Migrate maps a legacy template id to its current id.
func Migrate(id string) (string, bool) {
	cur, ok := legacyIDs[id]
	return cur, ok
}

// Resolve returns the config for id, following the legacy table.
// Unknown ids resolve to the default template and ok is false.
func Resolve(id string) (cfg Config, ok bool) {
	if c, found := byID[id]; found {
		return c, true
	}
	if cur, found := legacyIDs[id]; found {
		return byID[cur], true
	}
	return byID[types.DefaultTemplateID], false
}

// Default returns the default template config.
func Default() Config {
	return byID[types.DefaultTemplateID]
}

// List returns every template in display order.
func List() []Config {
	out := make([]Config, len(table))
	copy(out, table)
	return out
}
