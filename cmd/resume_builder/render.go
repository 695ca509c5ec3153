package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/templates"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the resume as HTML or plain text",
	Long: "Renders the stored resume with its template. --format html prints the preview fragment, " +
		"document prints the standalone A4 document used for export, text prints the ATS plain text.",
	RunE: runRender,
}

var (
	renderFormat     string
	renderOutputFile string
	renderPrint      bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "html", "Output format: html, document or text")
	renderCmd.Flags().StringVarP(&renderOutputFile, "out", "o", "", "Write to file instead of stdout")
	renderCmd.Flags().BoolVar(&renderPrint, "print", false, "With --format document, open the print dialog when loaded")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	sess, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.close() //nolint:errcheck
	sess.warnNotice(cmd.ErrOrStderr())

	var out string
	switch renderFormat {
	case "html":
		out, err = sess.ctrl.Preview()
		if err != nil {
			return fmt.Errorf("failed to render resume: %w", err)
		}
	case "text":
		out, err = sess.ctrl.PlainText()
		if err != nil {
			return fmt.Errorf("failed to render plain text: %w", err)
		}
	case "document":
		out, err = renderDocument(sess)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (expected html, document or text)", renderFormat)
	}

	if renderOutputFile == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	}
	if err := os.WriteFile(renderOutputFile, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", renderOutputFile)
	return nil
}

// renderDocument builds the standalone export document, optionally with the print trigger.
func renderDocument(sess *session) (string, error) {
	if renderPrint {
		return sess.ctrl.PrintDocument()
	}
	rec := sess.ctrl.Snapshot()
	cfg, _ := templates.Resolve(rec.TemplateID)
	fragment, err := sess.engine.Render(rec, cfg)
	if err != nil {
		return "", fmt.Errorf("failed to render resume: %w", err)
	}
	return sess.engine.BuildDocument(fragment, cfg, rendering.DocumentOptions{Title: rec.Data.Personal.FullName})
}
