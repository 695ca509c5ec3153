package rendering

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/templates"
)

func TestBuildDocument_Standalone(t *testing.T) {
	engine := newTestEngine(t)
	cfg, ok := templates.Lookup("devops")
	require.True(t, ok)

	fragment, err := engine.Render(janeDoe(), cfg)
	require.NoError(t, err)

	html, err := engine.BuildDocument(fragment, cfg, DocumentOptions{Title: "Jane Doe Resume"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "width: 794px")
	assert.NotContains(t, html, "{{PAGE_WIDTH}}")
	assert.NotContains(t, html, "@import")
	assert.NotContains(t, html, "window.print")

	doc := parseFragment(t, html)
	root := doc.Find("#pdf-resume")
	require.Equal(t, 1, root.Length())
	assert.Equal(t, "devops", root.AttrOr("data-template", ""))
	assert.Equal(t, "Jane Doe", root.Find(".rb-resume-name").Text())
	assert.Equal(t, "Jane Doe Resume", doc.Find("title").Text())
	assert.Contains(t, doc.Find("style").Text(), `[data-template="devops"]`)
	assert.Contains(t, doc.Find("style").Text(), "break-inside: avoid")
}

func TestBuildDocument_PrintAndWidth(t *testing.T) {
	engine := newTestEngine(t)
	html, err := engine.BuildDocument("<p>x</p>", templates.Default(), DocumentOptions{Width: 1000, Print: true})
	require.NoError(t, err)

	assert.Contains(t, html, "width: 1000px")
	assert.Contains(t, html, "window.print()")
	assert.Contains(t, html, "<title>Resume</title>")
}
