package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/observability"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the resume as an A4 PDF or PNG pages",
	Long: "Renders the resume in headless Chrome and writes a paginated A4 PDF (or one PNG per page). " +
		"If the export fails, a print-ready HTML document is written instead.",
	RunE: runExport,
}

var (
	exportFormat    string
	exportOutputDir string
	exportUpload    bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "pdf", "Export format: pdf or png")
	exportCmd.Flags().StringVarP(&exportOutputDir, "out", "o", "", "Output directory (overrides config)")
	exportCmd.Flags().BoolVar(&exportUpload, "upload", false, "Upload to the configured S3 bucket instead of writing locally")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	sess, err := setup(ctx)
	if err != nil {
		return err
	}
	defer sess.close() //nolint:errcheck
	sess.warnNotice(cmd.ErrOrStderr())

	sink, err := sess.sink(ctx, exportUpload, exportOutputDir)
	if err != nil {
		return err
	}

	res, err := sess.ctrl.Export(ctx, export.Options{
		Format: format,
		Progress: func(st export.Stage) {
			sess.logger.Debug("export stage", "stage", st)
		},
	})
	if err != nil {
		return exportFailure(cmd, sess, err)
	}

	locations, err := export.SaveResult(ctx, sink, res)
	if err != nil {
		return fmt.Errorf("failed to save export: %w", err)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintExportResult(res, locations)
	return nil
}

// exportFailure explains a failed export. Pipeline failures leave a print document behind
// so the resume can still be saved as PDF from a browser.
func exportFailure(cmd *cobra.Command, sess *session, err error) error {
	var precondition *export.PreconditionError
	if errors.As(err, &precondition) {
		return fmt.Errorf("cannot export: %s", precondition.Message)
	}

	var pipeline *export.PipelineError
	if !errors.As(err, &pipeline) || pipeline.FallbackHTML == "" {
		return fmt.Errorf("export failed: %w", err)
	}

	dir := exportOutputDir
	if dir == "" {
		dir = sess.cfg.OutputDir
	}
	name := strings.TrimSuffix(export.PDFFilename(sess.ctrl.Snapshot().Data.Personal.FullName), ".pdf") + "_print.html"
	path, werr := export.FileSink{Dir: dir}.Save(cmd.Context(), name, []byte(pipeline.FallbackHTML))
	if werr != nil {
		return fmt.Errorf("export failed: %w (print fallback could not be written: %v)", err, werr)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Export failed at %s. Open %s in a browser and print it to PDF.\n", pipeline.Stage, path)
	return fmt.Errorf("export failed: %w", err)
}
