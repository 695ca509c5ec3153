package rendering

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine()
	require.NoError(t, err)
	return engine
}

func parseFragment(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func sectionTitles(doc *goquery.Document) []string {
	var titles []string
	doc.Find(".rb-resume-section-title").Each(func(_ int, s *goquery.Selection) {
		titles = append(titles, s.Text())
	})
	return titles
}

func janeDoe() *types.ResumeRecord {
	rec := types.NewRecord()
	rec.Data.Personal.FullName = "Jane Doe"
	rec.Data.Experience = []types.Experience{{
		ID:        "e1",
		Company:   "Acme",
		Position:  "Engineer",
		StartDate: "Jan 2020",
		EndDate:   "Present",
		Current:   true,
	}}
	return rec
}

func TestRender_JaneDoeScenario(t *testing.T) {
	engine := newTestEngine(t)
	cfg, ok := templates.Resolve("modern-professional")
	require.True(t, ok)

	html, err := engine.Render(janeDoe(), cfg)
	require.NoError(t, err)

	doc := parseFragment(t, html)
	assert.Equal(t, "Jane Doe", doc.Find(".rb-resume-header .rb-resume-name").Text())
	assert.Equal(t, []string{"Experience"}, sectionTitles(doc))

	entry := doc.Find(`[data-section="experience"] .rb-resume-entry`)
	require.Equal(t, 1, entry.Length())
	assert.Equal(t, "Engineer", entry.Find(".rb-resume-entry-title").Text())
	assert.Equal(t, "Acme", entry.Find(".rb-resume-entry-subtitle").Text())
	assert.Equal(t, "Jan 2020 - Present", entry.Find(".rb-resume-entry-date").Text())
	assert.NotContains(t, html, "Education")
	assert.NotContains(t, html, "Skills")
}

func TestRender_CurrentWithoutEndDateShowsPresent(t *testing.T) {
	engine := newTestEngine(t)
	rec := janeDoe()
	rec.Data.Experience[0].EndDate = ""

	html, err := engine.Render(rec, templates.Default())
	require.NoError(t, err)
	assert.Equal(t, "Jan 2020 - Present", parseFragment(t, html).Find(".rb-resume-entry-date").Text())
}

func TestRender_DateRangeSeparatorOnlyWhenBothSet(t *testing.T) {
	assert.Equal(t, "2019 - 2021", dateRange("2019", "2021"))
	assert.Equal(t, "2019", dateRange("2019", ""))
	assert.Equal(t, "2021", dateRange(" ", "2021"))
	assert.Equal(t, "", dateRange("", ""))
}

func TestRender_EmptySectionsSuppressed(t *testing.T) {
	engine := newTestEngine(t)
	rec := types.NewRecord()
	rec.Data.Personal.FullName = "Jane Doe"
	// Entries without identity fields and blank skills must not produce headings.
	rec.Data.Experience = []types.Experience{{ID: "e1", Location: "Remote", Description: "stuff"}}
	rec.Data.Education = []types.Education{{ID: "ed1", GPA: "4.0"}}
	rec.Data.Skills = []types.Skill{{ID: "s1", Name: "   "}}
	rec.Data.Summary = "   "

	for _, cfg := range templates.List() {
		html, err := engine.Render(rec, cfg)
		require.NoError(t, err)
		doc := parseFragment(t, html)
		assert.Empty(t, sectionTitles(doc), "template %s rendered an empty section", cfg.ID)
	}
}

func TestRender_SkipsEntriesWithoutIdentity(t *testing.T) {
	engine := newTestEngine(t)
	rec := types.NewRecord()
	rec.Data.Experience = []types.Experience{
		{ID: "e1", Location: "NYC", StartDate: "2020", Description: "ghost entry"},
		{ID: "e2", Company: "Acme"},
	}
	rec.Data.Certifications = []types.Certification{
		{ID: "c1", Date: "2023", CredentialID: "XYZ"},
		{ID: "c2", Issuer: "AWS", CredentialID: "ABC-1"},
	}

	html, err := engine.Render(rec, templates.Default())
	require.NoError(t, err)
	doc := parseFragment(t, html)

	assert.Equal(t, 1, doc.Find(`[data-section="experience"] .rb-resume-entry`).Length())
	assert.NotContains(t, html, "ghost entry")
	assert.Equal(t, 1, doc.Find(`[data-section="certifications"] .rb-resume-entry`).Length())
	assert.Equal(t, "Credential ID: ABC-1", doc.Find(".rb-resume-entry-detail").Text())
	assert.NotContains(t, html, "XYZ")
}

func TestRender_EscapesUserText(t *testing.T) {
	engine := newTestEngine(t)
	rec := types.NewRecord()
	rec.Data.Personal.FullName = `<script>alert("x")</script>`
	rec.Data.Summary = `<b>bold</b> & more`

	html, err := engine.Render(rec, templates.Default())
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<b>")

	doc := parseFragment(t, html)
	assert.Equal(t, 0, doc.Find("script, b").Length())
	assert.Equal(t, `<script>alert("x")</script>`, doc.Find(".rb-resume-name").Text())
	assert.Equal(t, "<b>bold</b> & more", doc.Find(".rb-resume-summary").Text())
}

func TestRender_MultiLineFields(t *testing.T) {
	engine := newTestEngine(t)
	rec := types.NewRecord()
	rec.Data.Experience = []types.Experience{
		{ID: "e1", Company: "Multi", Description: "Built X\n\n  \nShipped Y\r\n"},
		{ID: "e2", Company: "Single", Description: "\nOnly line\n\n"},
		{ID: "e3", Company: "None", Description: " \n \n"},
	}

	html, err := engine.Render(rec, templates.Default())
	require.NoError(t, err)
	doc := parseFragment(t, html)
	entries := doc.Find(".rb-resume-entry")
	require.Equal(t, 3, entries.Length())

	multi := entries.Eq(0)
	var items []string
	multi.Find(".rb-resume-list li").Each(func(_ int, s *goquery.Selection) { items = append(items, s.Text()) })
	assert.Equal(t, []string{"Built X", "Shipped Y"}, items)

	single := entries.Eq(1)
	assert.Equal(t, 0, single.Find("ul").Length())
	assert.Equal(t, "Only line", single.Find(".rb-resume-entry-description").Text())

	none := entries.Eq(2)
	assert.Equal(t, 0, none.Find("ul, .rb-resume-entry-description").Length())
}

func TestRender_ProjectsAndEducation(t *testing.T) {
	engine := newTestEngine(t)
	rec := types.NewRecord()
	rec.Data.Projects = []types.Project{{
		ID:         "p1",
		Name:       "Resume Builder",
		Link:       "github.com/jane/rb",
		TechStack:  "Go, Chrome",
		Highlights: "Fast\nSmall",
	}}
	rec.Data.Education = []types.Education{{
		ID:          "ed1",
		Institution: "MIT",
		Degree:      "BSc",
		Field:       "Computer Science",
		GPA:         "3.9",
	}}

	html, err := engine.Render(rec, templates.Default())
	require.NoError(t, err)
	doc := parseFragment(t, html)

	project := doc.Find(`[data-section="projects"] .rb-resume-entry`)
	assert.Equal(t, "Resume Builder", project.Find(".rb-resume-entry-title").Text())
	assert.Equal(t, "github.com/jane/rb", project.Find(".rb-resume-entry-subtitle").Text())
	assert.Equal(t, "Tech Stack: Go, Chrome", project.Find(".rb-resume-entry-detail").Text())
	assert.Equal(t, 2, project.Find("li").Length())

	edu := doc.Find(`[data-section="education"] .rb-resume-entry`)
	assert.Equal(t, "BSc in Computer Science", edu.Find(".rb-resume-entry-title").Text())
	assert.Equal(t, "GPA: 3.9", edu.Find(".rb-resume-entry-detail").Text())
}

func TestRender_SkillsFormats(t *testing.T) {
	engine := newTestEngine(t)
	rec := types.NewRecord()
	rec.Data.Skills = []types.Skill{{ID: "1", Name: "Go"}, {ID: "2", Name: "Rust"}}

	tests := []struct {
		format   templates.SkillsFormat
		selector string
		want     string
	}{
		{templates.SkillsPipeInline, ".rb-resume-skills-inline", "Go | Rust"},
		{templates.SkillsCommaInline, ".rb-resume-skills-inline", "Go, Rust"},
		{templates.SkillsBulletInline, ".rb-resume-skills-inline", "Go • Rust"},
		{templates.SkillsTags, ".rb-resume-skills-list", "GoRust"},
		{templates.SkillsRows, ".rb-resume-skill-rows", "GoRust"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			cfg := templates.Config{
				ID:           "test",
				Sections:     []templates.Section{templates.SectionSkills},
				SkillsFormat: tt.format,
			}
			html, err := engine.Render(rec, cfg)
			require.NoError(t, err)
			doc := parseFragment(t, html)
			assert.Equal(t, tt.want, doc.Find(tt.selector).Text())
			assert.Equal(t, "Technical Skills", doc.Find(".rb-resume-section-title").Text())
		})
	}
}

func TestRender_SkillRowsSplitLabel(t *testing.T) {
	assert.Equal(t, SkillRow{Label: "Languages", Value: "Go, Rust"}, skillRow("Languages: Go, Rust"))
	assert.Equal(t, SkillRow{Value: "Kubernetes"}, skillRow("Kubernetes"))
	assert.Equal(t, SkillRow{Value: "C++:"}, skillRow("C++:"))
}

func TestRender_SectionOrderFollowsTemplate(t *testing.T) {
	engine := newTestEngine(t)
	rec := janeDoe()
	rec.Data.Summary = "Summary text"
	rec.Data.Skills = []types.Skill{{ID: "1", Name: "Go"}}
	rec.Data.Certifications = []types.Certification{{ID: "c1", Name: "CKA"}}

	cfg, ok := templates.Lookup("devops")
	require.True(t, ok)
	html, err := engine.Render(rec, cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{"Technical Skills", "Certifications", "Experience", "Summary"}, sectionTitles(parseFragment(t, html)))
}

func TestRender_HeaderContactLine(t *testing.T) {
	engine := newTestEngine(t)
	rec := types.NewRecord()
	rec.Data.Personal = types.Personal{FullName: "Jane", Email: "jane@example.com", Location: "Berlin", GitHub: "github.com/jane"}

	html, err := engine.Render(rec, templates.Default())
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com | Berlin | github.com/jane", parseFragment(t, html).Find(".rb-resume-contact").Text())
}

func TestRender_Idempotent(t *testing.T) {
	engine := newTestEngine(t)
	rec := janeDoe()
	rec.Data.Skills = []types.Skill{{ID: "1", Name: "Go"}}
	cfg := templates.Default()

	first, err := engine.Render(rec, cfg)
	require.NoError(t, err)
	second, err := engine.Render(rec, cfg)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRender_NilRecord(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.Render(nil, templates.Default())
	var renderErr *RenderError
	assert.True(t, errors.As(err, &renderErr))
}

func TestRenderPreview_ReturnsErrorPanel(t *testing.T) {
	engine := newTestEngine(t)

	html, err := engine.RenderPreview(nil, templates.Default())
	require.Error(t, err)
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)

	doc := parseFragment(t, html)
	assert.Equal(t, 1, doc.Find(`.rb-render-error button[data-action="reset"]`).Length())
	assert.Contains(t, doc.Find(".rb-render-error-message").Text(), err.Error())
}

func TestRenderPreview_Success(t *testing.T) {
	engine := newTestEngine(t)
	html, err := engine.RenderPreview(janeDoe(), templates.Default())
	require.NoError(t, err)
	assert.NotContains(t, html, "rb-render-error")
}

func TestErrorPanel_EscapesMessage(t *testing.T) {
	html := ErrorPanel(errors.New(`bad <img src=x onerror=alert(1)>`))
	doc := parseFragment(t, html)
	assert.Equal(t, 0, doc.Find("img").Length())
	assert.Equal(t, `Error: bad <img src=x onerror=alert(1)>`, doc.Find(".rb-render-error-message").Text())
	assert.Contains(t, doc.Find("button").Text(), "Clear Data & Refresh")
}
