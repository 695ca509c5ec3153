// Package types provides type definitions for the resume record and the requests that edit it.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldError reports an unknown field name or a value that cannot be assigned to it.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field error: %s: %s", e.Field, e.Message)
}

func unknownField(field string) error {
	return &FieldError{Field: field, Message: "unknown field"}
}

// Entry is implemented by every repeatable list item.
type Entry interface {
	EntryID() string
	// HasIdentity reports whether at least one identity field is filled in.
	HasIdentity() bool
	SetField(field, value string) error
}

// Personal holds the fixed contact fields. An empty string means absent.
type Personal struct {
	FullName  string `json:"fullName" yaml:"fullName"`
	JobTitle  string `json:"jobTitle" yaml:"jobTitle"`
	Email     string `json:"email" yaml:"email"`
	Phone     string `json:"phone" yaml:"phone"`
	Location  string `json:"location" yaml:"location"`
	LinkedIn  string `json:"linkedin" yaml:"linkedin"`
	GitHub    string `json:"github" yaml:"github"`
	Portfolio string `json:"portfolio" yaml:"portfolio"`
}

// PersonalFields lists the personal field names in display order.
var PersonalFields = []string{"fullName", "jobTitle", "email", "phone", "location", "linkedin", "github", "portfolio"}

func (p *Personal) field(name string) *string {
	switch name {
	case "fullName":
		return &p.FullName
	case "jobTitle":
		return &p.JobTitle
	case "email":
		return &p.Email
	case "phone":
		return &p.Phone
	case "location":
		return &p.Location
	case "linkedin":
		return &p.LinkedIn
	case "github":
		return &p.GitHub
	case "portfolio":
		return &p.Portfolio
	}
	return nil
}

// Set assigns a trimmed value to the named field.
func (p *Personal) Set(name, value string) error {
	f := p.field(name)
	if f == nil {
		return unknownField(name)
	}
	*f = strings.TrimSpace(value)
	return nil
}

// Get returns the named field, or "" for unknown names.
func (p *Personal) Get(name string) string {
	if f := p.field(name); f != nil {
		return *f
	}
	return ""
}

// ContactLine returns the non-empty contact values in display order.
func (p Personal) ContactLine() []string {
	var out []string
	for _, v := range []string{p.Email, p.Phone, p.Location, p.LinkedIn, p.GitHub, p.Portfolio} {
		if !IsBlank(v) {
			out = append(out, v)
		}
	}
	return out
}

// Experience is one job.
type Experience struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Company     string `json:"company" yaml:"company"`
	Position    string `json:"position" yaml:"position"`
	Location    string `json:"location" yaml:"location"`
	StartDate   string `json:"startDate" yaml:"startDate"`
	EndDate     string `json:"endDate" yaml:"endDate"`
	Current     bool   `json:"current" yaml:"current"`
	Description string `json:"description" yaml:"description"`
}

func (e *Experience) EntryID() string { return e.ID }

func (e *Experience) HasIdentity() bool { return !IsBlank(e.Company) || !IsBlank(e.Position) }

func (e *Experience) SetField(field, value string) error {
	switch field {
	case "company":
		e.Company = value
	case "position":
		e.Position = value
	case "location":
		e.Location = value
	case "startDate":
		e.StartDate = value
	case "endDate":
		e.EndDate = value
	case "description":
		e.Description = value
	case "current":
		current, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return &FieldError{Field: field, Message: "expected true or false"}
		}
		e.Current = current
		if current {
			e.EndDate = PresentLabel
		}
	default:
		return unknownField(field)
	}
	return nil
}

// Project is one portfolio project. Highlights holds one achievement per line.
type Project struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	TechStack   string `json:"techStack" yaml:"techStack"`
	Link        string `json:"link" yaml:"link"`
	Highlights  string `json:"highlights" yaml:"highlights"`
}

func (p *Project) EntryID() string { return p.ID }

func (p *Project) HasIdentity() bool { return !IsBlank(p.Name) || !IsBlank(p.Link) }

func (p *Project) SetField(field, value string) error {
	switch field {
	case "name":
		p.Name = value
	case "description":
		p.Description = value
	case "techStack":
		p.TechStack = value
	case "link":
		p.Link = value
	case "highlights":
		p.Highlights = value
	default:
		return unknownField(field)
	}
	return nil
}

// Education is one degree or program.
type Education struct {
	ID             string `json:"id" yaml:"id" validate:"required"`
	Institution    string `json:"institution" yaml:"institution"`
	Degree         string `json:"degree" yaml:"degree"`
	Field          string `json:"field" yaml:"field"`
	Location       string `json:"location" yaml:"location"`
	GraduationDate string `json:"graduationDate" yaml:"graduationDate"`
	GPA            string `json:"gpa" yaml:"gpa"`
}

func (e *Education) EntryID() string { return e.ID }

func (e *Education) HasIdentity() bool { return !IsBlank(e.Institution) || !IsBlank(e.Degree) }

func (e *Education) SetField(field, value string) error {
	switch field {
	case "institution":
		e.Institution = value
	case "degree":
		e.Degree = value
	case "field":
		e.Field = value
	case "location":
		e.Location = value
	case "graduationDate":
		e.GraduationDate = value
	case "gpa":
		e.GPA = value
	default:
		return unknownField(field)
	}
	return nil
}

// Certification is one license or certificate.
type Certification struct {
	ID           string `json:"id" yaml:"id" validate:"required"`
	Name         string `json:"name" yaml:"name"`
	Issuer       string `json:"issuer" yaml:"issuer"`
	Date         string `json:"date" yaml:"date"`
	CredentialID string `json:"credentialId" yaml:"credentialId"`
}

func (c *Certification) EntryID() string { return c.ID }

func (c *Certification) HasIdentity() bool { return !IsBlank(c.Name) || !IsBlank(c.Issuer) }

func (c *Certification) SetField(field, value string) error {
	switch field {
	case "name":
		c.Name = value
	case "issuer":
		c.Issuer = value
	case "date":
		c.Date = value
	case "credentialId":
		c.CredentialID = value
	default:
		return unknownField(field)
	}
	return nil
}

// Skill is a single named skill.
type Skill struct {
	ID   string `json:"id" yaml:"id" validate:"required"`
	Name string `json:"name" yaml:"name" validate:"required"`
}
