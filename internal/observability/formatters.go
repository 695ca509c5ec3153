// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to the inner box width, counting runes.
func pad(s string) string {
	width := boxWidth - 4
	n := utf8.RuneCountInString(s)
	if n > width {
		return string([]rune(s)[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

// PrintRecordSummary outputs the personal details and section counts of a record.
func (p *Printer) PrintRecordSummary(rec *types.ResumeRecord) {
	if rec == nil {
		return
	}
	cfg, _ := templates.Resolve(rec.TemplateID)
	d := rec.Data

	var sb strings.Builder
	name := d.Personal.FullName
	if types.IsBlank(name) {
		name = "(no name)"
	}
	sb.WriteString(fmt.Sprintf("Name:      %s\n", name))
	if d.Personal.JobTitle != "" {
		sb.WriteString(fmt.Sprintf("Title:     %s\n", d.Personal.JobTitle))
	}
	if contact := d.Personal.ContactLine(); len(contact) > 0 {
		sb.WriteString(fmt.Sprintf("Contact:   %s\n", strings.Join(contact, " | ")))
	}
	sb.WriteString(fmt.Sprintf("Template:  %s (%s)\n", cfg.Name, cfg.ID))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Summary:         %d chars\n", utf8.RuneCountInString(d.Summary)))
	sb.WriteString(fmt.Sprintf("Experience:      %d\n", len(d.Experience)))
	sb.WriteString(fmt.Sprintf("Projects:        %d\n", len(d.Projects)))
	sb.WriteString(fmt.Sprintf("Education:       %d\n", len(d.Education)))
	sb.WriteString(fmt.Sprintf("Certifications:  %d\n", len(d.Certifications)))
	sb.WriteString(fmt.Sprintf("Skills:          %d\n", len(d.Skills)))

	if len(d.Experience) > 0 {
		sb.WriteString("\nRecent roles:\n")
		count := min(len(d.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := d.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s", orDash(e.Position)))
			if e.Company != "" {
				sb.WriteString(fmt.Sprintf(" @ %s", e.Company))
			}
			sb.WriteString("\n")
		}
		if len(d.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(d.Experience)-maxItemsToShow))
		}
	}

	p.printBox("RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTemplates lists the available templates and marks the current one.
func (p *Printer) PrintTemplates(list []templates.Config, current string) {
	var sb strings.Builder
	for _, cfg := range list {
		marker := " "
		if cfg.ID == current {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %-20s %s\n", marker, cfg.ID, cfg.Name))
	}
	p.printBox(fmt.Sprintf("TEMPLATES (%d)", len(list)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExportResult outputs the files an export produced and where they were written.
func (p *Printer) PrintExportResult(res *export.Result, locations []string) {
	if res == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Format:   %s\n", strings.ToUpper(string(res.Format))))
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", res.PageCount))
	sb.WriteString(fmt.Sprintf("Height:   %.0fpx\n", res.ContentHeight))
	if len(locations) > 0 {
		sb.WriteString("\nWritten:\n")
		for _, loc := range locations {
			sb.WriteString(fmt.Sprintf("  • %s\n", loc))
		}
	}

	p.printBox("EXPORT COMPLETE", strings.TrimSuffix(sb.String(), "\n"))
}

func orDash(s string) string {
	if types.IsBlank(s) {
		return "-"
	}
	return s
}
