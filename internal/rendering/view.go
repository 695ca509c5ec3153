// Package rendering turns a resume record into HTML using the embedded template set.
package rendering

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

const contactSeparator = " | "

// TemplateData is the view model passed to the resume template.
type TemplateData struct {
	TemplateID  string
	HeaderStyle string
	Header      HeaderView
	Sections    []SectionView
}

// HeaderView is the name, title and contact line block.
type HeaderView struct {
	Name    string
	Title   string
	Contact string
}

// SectionView is one rendered section. Exactly one of Summary, Entries or Skills is set.
type SectionView struct {
	Key     string
	Label   string
	Summary string
	Entries []EntryView
	Skills  *SkillsView
}

// EntryView is one rendered list entry.
type EntryView struct {
	Title    string
	Subtitle string
	Date     string
	Location string
	Details  []DetailView
	Blocks   []TextBlock
}

// DetailView is a labeled single-line value such as "GPA: 3.9".
type DetailView struct {
	Label string
	Value string
}

// TextBlock is a multi-line field: either a paragraph or a bullet list.
type TextBlock struct {
	Paragraph string
	Bullets   []string
}

// SkillsView is the skills block in one of the configured layouts.
type SkillsView struct {
	Format string
	Items  []string
	Joined string
	Rows   []SkillRow
}

// SkillRow is one labeled skills row.
type SkillRow struct {
	Label string
	Value string
}

var inlineSeparators = map[templates.SkillsFormat]string{
	templates.SkillsCommaInline:  ", ",
	templates.SkillsPipeInline:   " | ",
	templates.SkillsBulletInline: " • ",
}

// buildTemplateData constructs the view model, dropping empty sections and identity-less entries.
func buildTemplateData(rec *types.ResumeRecord, cfg templates.Config) *TemplateData {
	d := &rec.Data
	data := &TemplateData{
		TemplateID:  cfg.ID,
		HeaderStyle: cfg.HeaderStyle,
		Header: HeaderView{
			Name:    strings.TrimSpace(d.Personal.FullName),
			Title:   strings.TrimSpace(d.Personal.JobTitle),
			Contact: strings.Join(d.Personal.ContactLine(), contactSeparator),
		},
	}

	for _, section := range cfg.Sections {
		view := SectionView{Key: string(section), Label: cfg.Label(section)}
		switch section {
		case templates.SectionSummary:
			view.Summary = strings.TrimSpace(normalizeText(d.Summary))
			if view.Summary == "" {
				continue
			}
		case templates.SectionExperience:
			view.Entries = experienceEntries(d.Experience)
		case templates.SectionProjects:
			view.Entries = projectEntries(d.Projects)
		case templates.SectionEducation:
			view.Entries = educationEntries(d.Education)
		case templates.SectionCertifications:
			view.Entries = certificationEntries(d.Certifications)
		case templates.SectionSkills:
			view.Skills = skillsView(d.Skills, cfg.SkillsFormat)
			if view.Skills == nil {
				continue
			}
		default:
			continue
		}
		if view.Summary == "" && view.Skills == nil && len(view.Entries) == 0 {
			continue
		}
		data.Sections = append(data.Sections, view)
	}
	return data
}

func experienceEntries(list []types.Experience) []EntryView {
	var out []EntryView
	for i := range list {
		e := &list[i]
		if !e.HasIdentity() {
			continue
		}
		end := e.EndDate
		if e.Current && types.IsBlank(end) {
			end = types.PresentLabel
		}
		view := EntryView{
			Title:    strings.TrimSpace(e.Position),
			Subtitle: strings.TrimSpace(e.Company),
			Date:     dateRange(e.StartDate, end),
			Location: strings.TrimSpace(e.Location),
		}
		if b, ok := textBlock(e.Description); ok {
			view.Blocks = append(view.Blocks, b)
		}
		out = append(out, view)
	}
	return out
}

func projectEntries(list []types.Project) []EntryView {
	var out []EntryView
	for i := range list {
		p := &list[i]
		if !p.HasIdentity() {
			continue
		}
		view := EntryView{
			Title:    strings.TrimSpace(p.Name),
			Subtitle: strings.TrimSpace(p.Link),
		}
		if view.Title == "" {
			view.Title, view.Subtitle = view.Subtitle, ""
		}
		if v := strings.TrimSpace(p.TechStack); v != "" {
			view.Details = append(view.Details, DetailView{Label: "Tech Stack", Value: v})
		}
		if b, ok := textBlock(p.Description); ok {
			view.Blocks = append(view.Blocks, b)
		}
		if b, ok := textBlock(p.Highlights); ok {
			view.Blocks = append(view.Blocks, b)
		}
		out = append(out, view)
	}
	return out
}

func educationEntries(list []types.Education) []EntryView {
	var out []EntryView
	for i := range list {
		e := &list[i]
		if !e.HasIdentity() {
			continue
		}
		title := strings.TrimSpace(e.Degree)
		if field := strings.TrimSpace(e.Field); title != "" && field != "" {
			title += " in " + field
		}
		view := EntryView{
			Title:    title,
			Subtitle: strings.TrimSpace(e.Institution),
			Date:     strings.TrimSpace(e.GraduationDate),
			Location: strings.TrimSpace(e.Location),
		}
		if view.Title == "" {
			view.Title, view.Subtitle = view.Subtitle, ""
		}
		if v := strings.TrimSpace(e.GPA); v != "" {
			view.Details = append(view.Details, DetailView{Label: "GPA", Value: v})
		}
		out = append(out, view)
	}
	return out
}

func certificationEntries(list []types.Certification) []EntryView {
	var out []EntryView
	for i := range list {
		c := &list[i]
		if !c.HasIdentity() {
			continue
		}
		view := EntryView{
			Title:    strings.TrimSpace(c.Name),
			Subtitle: strings.TrimSpace(c.Issuer),
			Date:     strings.TrimSpace(c.Date),
		}
		if view.Title == "" {
			view.Title, view.Subtitle = view.Subtitle, ""
		}
		if v := strings.TrimSpace(c.CredentialID); v != "" {
			view.Details = append(view.Details, DetailView{Label: "Credential ID", Value: v})
		}
		out = append(out, view)
	}
	return out
}

func skillsView(skills []types.Skill, format templates.SkillsFormat) *SkillsView {
	var names []string
	for _, s := range skills {
		if name := strings.TrimSpace(s.Name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}

	view := &SkillsView{Format: string(format), Items: names}
	switch format {
	case templates.SkillsTags:
	case templates.SkillsRows:
		for _, name := range names {
			view.Rows = append(view.Rows, skillRow(name))
		}
	default:
		sep, ok := inlineSeparators[format]
		if !ok {
			sep = inlineSeparators[templates.SkillsCommaInline]
		}
		view.Joined = strings.Join(names, sep)
	}
	return view
}

// skillRow splits "Languages: Go, Rust" into a label and a value.
func skillRow(name string) SkillRow {
	label, value, found := strings.Cut(name, ":")
	label, value = strings.TrimSpace(label), strings.TrimSpace(value)
	if !found || label == "" || value == "" {
		return SkillRow{Value: name}
	}
	return SkillRow{Label: label, Value: value}
}

// dateRange joins start and end with " - " only when both are present.
func dateRange(start, end string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start != "" && end != "" {
		return start + " - " + end
	}
	return start + end
}

// textBlock splits a multi-line field. More than one non-blank line becomes a bullet list.
func textBlock(text string) (TextBlock, bool) {
	lines := splitLines(text)
	switch len(lines) {
	case 0:
		return TextBlock{}, false
	case 1:
		return TextBlock{Paragraph: lines[0]}, true
	default:
		return TextBlock{Bullets: lines}, true
	}
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(normalizeText(text), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
