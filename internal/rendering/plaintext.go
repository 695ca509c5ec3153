// Package rendering turns a resume record into HTML using the embedded template set.
package rendering

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// plainTextSelectors lists the blocks emitted by the resume template, in the order they are read.
var plainTextSelectors = []string{
	".rb-resume-name",
	".rb-resume-title",
	".rb-resume-contact",
	".rb-resume-section-title",
	".rb-resume-summary",
	".rb-resume-entry-title",
	".rb-resume-entry-subtitle",
	".rb-resume-entry-date",
	".rb-resume-entry-location",
	".rb-resume-entry-detail",
	".rb-resume-entry-description",
	".rb-resume-list li",
	".rb-resume-skills-list",
	".rb-resume-skills-inline",
	".rb-resume-skill-row",
}

// PlainText extracts an ATS-friendly plain-text rendition of a resume fragment.
// Section titles are upper-cased and preceded by a blank line, list items get a "- " prefix.
func PlainText(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, button").Remove()

	var lines []string
	doc.Find(strings.Join(plainTextSelectors, ", ")).Each(func(_ int, s *goquery.Selection) {
		switch {
		case s.HasClass("rb-resume-section-title"):
			lines = append(lines, "", strings.ToUpper(cleanWhitespace(s.Text())))
		case s.Is("li"):
			lines = append(lines, "- "+cleanWhitespace(s.Text()))
		case s.HasClass("rb-resume-skills-list"):
			var names []string
			s.Find(".rb-resume-skill").Each(func(_ int, skill *goquery.Selection) {
				names = append(names, cleanWhitespace(skill.Text()))
			})
			lines = append(lines, strings.Join(names, ", "))
		default:
			if text := cleanWhitespace(s.Text()); text != "" {
				lines = append(lines, text)
			}
		}
	})

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// cleanWhitespace collapses runs of whitespace into single spaces.
func cleanWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
