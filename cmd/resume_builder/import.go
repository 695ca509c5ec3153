package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the resume with a JSON or YAML record",
	Long: "Reads a record in the stored layout (or the legacy {version, template, data} layout) from a JSON " +
		"or YAML file, validates it and replaces the current resume.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	decode := storage.Decode
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		decode = storage.DecodeYAML
	}
	decoded, err := decode(raw)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}

	sess, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.close() //nolint:errcheck

	if decoded.TemplateFallback {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: unknown template %q, using %s\n",
			decoded.StoredTemplateID, decoded.Record.TemplateID)
	}
	if err := sess.ctrl.Replace(cmd.Context(), decoded.Record); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", path)
	observability.NewPrinter(cmd.OutOrStdout()).PrintRecordSummary(sess.ctrl.Snapshot())
	return nil
}
